package cognito

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
)

// ErrNotAuthorized maps the provider's credential rejections; everything
// else from the provider is treated as an internal failure.
var ErrNotAuthorized = errors.New("cognito: not authorized")

// Tokens is the credential set returned by a successful login or refresh.
// Refresh responses omit the refresh token; callers keep the old one.
type Tokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	IDToken      string `json:"id_token"`
	ExpiresIn    int32  `json:"expires_in"`
}

// Client wraps the user pool's InitiateAuth flows. The app client is
// configured with a secret, so every call carries the computed
// SECRET_HASH for its username.
type Client struct {
	cip          *cognitoidentityprovider.Client
	clientID     string
	clientSecret string
}

func New(ctx context.Context, region, clientID, clientSecret string) (*Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("cognito: load aws config: %w", err)
	}

	return &Client{
		cip:          cognitoidentityprovider.NewFromConfig(cfg),
		clientID:     clientID,
		clientSecret: clientSecret,
	}, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*Tokens, error) {
	return c.initiateAuth(ctx, types.AuthFlowTypeUserPasswordAuth, map[string]string{
		"USERNAME":    email,
		"PASSWORD":    password,
		"SECRET_HASH": c.secretHash(email),
	})
}

func (c *Client) Refresh(ctx context.Context, username, refreshToken string) (*Tokens, error) {
	return c.initiateAuth(ctx, types.AuthFlowTypeRefreshTokenAuth, map[string]string{
		"REFRESH_TOKEN": refreshToken,
		"SECRET_HASH":   c.secretHash(username),
	})
}

func (c *Client) initiateAuth(ctx context.Context, flow types.AuthFlowType, params map[string]string) (*Tokens, error) {
	out, err := c.cip.InitiateAuth(ctx, &cognitoidentityprovider.InitiateAuthInput{
		AuthFlow:       flow,
		ClientId:       aws.String(c.clientID),
		AuthParameters: params,
	})
	if err != nil {
		var notAuthorized *types.NotAuthorizedException
		if errors.As(err, &notAuthorized) {
			return nil, ErrNotAuthorized
		}
		var userNotFound *types.UserNotFoundException
		if errors.As(err, &userNotFound) {
			return nil, ErrNotAuthorized
		}
		return nil, fmt.Errorf("cognito: initiate auth: %w", err)
	}

	result := out.AuthenticationResult
	if result == nil || result.AccessToken == nil || result.IdToken == nil {
		return nil, errors.New("cognito: unexpected authentication result shape")
	}

	tokens := &Tokens{
		AccessToken: aws.ToString(result.AccessToken),
		IDToken:     aws.ToString(result.IdToken),
		ExpiresIn:   result.ExpiresIn,
	}
	if result.RefreshToken != nil {
		tokens.RefreshToken = aws.ToString(result.RefreshToken)
	}
	return tokens, nil
}

// secretHash computes base64(HMAC-SHA256(username + clientID, secret)) as
// required by user pool clients that have a client secret.
func (c *Client) secretHash(username string) string {
	mac := hmac.New(sha256.New, []byte(c.clientSecret))
	mac.Write([]byte(username + c.clientID))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
