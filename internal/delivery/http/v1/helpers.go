package v1

import (
	"meal-planner-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// bindJSON decodes the body without gin's binding validation; schema
// validation runs in the usecase against the registered schema.
func bindJSON(c *gin.Context, target any) error {
	if err := c.ShouldBindJSON(target); err != nil {
		return apperror.Validation("request body is not valid JSON")
	}
	return nil
}

// parseID reads a uuid path parameter. An unparseable id cannot name any
// resource, so it reports not found rather than a validation error.
func parseID(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, apperror.NotFound("resource not found")
	}
	return id, nil
}

// rejectEmpty guards optional string fields on merge updates: nil means
// "leave unchanged", but an explicitly supplied empty value is invalid
// and would otherwise skip the schema's min rule via omitempty.
func rejectEmpty(field string, value *string) error {
	if value != nil && *value == "" {
		return apperror.Validation(field + ": must not be empty")
	}
	return nil
}
