package schema

import (
	"fmt"
	"reflect"
	"sync"

	"meal-planner-backend/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

// Registry holds named request schemas backed by a shared validator
// instance. A schema is the prototype of a request struct; registering the
// same name twice is a no-op so handlers can register on construction
// without coordinating.
type Registry struct {
	mu         sync.RWMutex
	validate   *validator.Validate
	prototypes map[string]reflect.Type
}

func NewRegistry() *Registry {
	return &Registry{
		validate:   validator.New(),
		prototypes: make(map[string]reflect.Type),
	}
}

// Register records the prototype's type under name. Idempotent.
func (r *Registry) Register(name string, prototype any) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.prototypes[name]; exists {
		return
	}
	r.prototypes[name] = baseType(prototype)
}

// Validate checks payload against the schema registered under name.
// A payload failing its rules yields a validation error naming the field
// and reason. A missing schema or a payload of the wrong type is a
// programming error and surfaces as internal.
func (r *Registry) Validate(name string, payload any) error {
	r.mu.RLock()
	proto, exists := r.prototypes[name]
	r.mu.RUnlock()

	if !exists {
		return apperror.Internal(fmt.Errorf("schema %q is not registered", name))
	}
	if baseType(payload) != proto {
		return apperror.Internal(fmt.Errorf("schema %q expects %s, got %T", name, proto, payload))
	}

	err := r.validate.Struct(payload)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok || len(fieldErrs) == 0 {
		return apperror.Internal(err)
	}
	return apperror.Validation(formatFieldError(fieldErrs[0]))
}

func baseType(v any) reflect.Type {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

func formatFieldError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s: is required", e.Field())
	case "min":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("%s: must be at least %s characters", e.Field(), e.Param())
		}
		return fmt.Sprintf("%s: must be at least %s", e.Field(), e.Param())
	case "max":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("%s: must be at most %s characters", e.Field(), e.Param())
		}
		return fmt.Sprintf("%s: must be at most %s", e.Field(), e.Param())
	case "gt":
		return fmt.Sprintf("%s: must be greater than %s", e.Field(), e.Param())
	case "gte":
		return fmt.Sprintf("%s: must be at least %s", e.Field(), e.Param())
	case "email":
		return fmt.Sprintf("%s: must be a valid email address", e.Field())
	case "uuid":
		return fmt.Sprintf("%s: must be a valid UUID", e.Field())
	default:
		return fmt.Sprintf("%s: failed %s validation", e.Field(), e.Tag())
	}
}
