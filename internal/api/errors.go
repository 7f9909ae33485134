package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/kilo-recipes/recipe-api/backend/internal/middleware"
	"github.com/kilo-recipes/recipe-api/backend/internal/service"
	"github.com/kilo-recipes/recipe-api/backend/internal/types"
)

func init() {
	// Report validation failures under the JSON field names
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
	}
}

// respondError maps service errors to HTTP responses. Unexpected errors are
// logged and answered with a bare 500.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, verr.Fields)
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusBadRequest, gin.H{"non_field_errors": []string{"Unable to authenticate with provided credentials."}})
	default:
		_ = c.Error(err)
		logger.Error("request failed",
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// bindOptional binds like ShouldBind but accepts an empty body
func bindOptional(c *gin.Context, obj any) error {
	if err := c.ShouldBind(obj); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// bindErrors converts a gin binding failure into field-level messages
func bindErrors(err error) *service.ValidationError {
	out := &service.ValidationError{}

	var (
		verrs     validator.ValidationErrors
		typeErr   *json.UnmarshalTypeError
		fieldErr  *types.FieldError
		syntaxErr *json.SyntaxError
	)
	switch {
	case errors.As(err, &verrs):
		for _, fe := range verrs {
			out.Add(topField(fe.Namespace()), validationMessage(fe))
		}
	case errors.As(err, &fieldErr):
		out.Add(fieldErr.Field, fieldErr.Message)
	case errors.As(err, &typeErr):
		out.Add(topField("."+typeErr.Field), typeMessage(typeErr.Type))
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		out.Add("non_field_errors", "JSON parse error - "+err.Error())
	case errors.Is(err, io.EOF):
		out.Add("non_field_errors", "No data provided")
	default:
		out.Add("non_field_errors", err.Error())
	}
	return out
}

// topField reduces "RecipeRequest.tags[0].name" to "tags"
func topField(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		namespace = namespace[i+1:]
	}
	if i := strings.IndexAny(namespace, ".["); i >= 0 {
		namespace = namespace[:i]
	}
	if namespace == "" {
		return "non_field_errors"
	}
	return namespace
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "min":
		return fmt.Sprintf("Ensure this field has at least %s characters.", fe.Param())
	case "max":
		return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
	default:
		return "Invalid value."
	}
}

func typeMessage(t reflect.Type) string {
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "A valid integer is required."
	case reflect.Float32, reflect.Float64:
		return "A valid number is required."
	case reflect.Slice, reflect.Array:
		return "Expected a list of items."
	case reflect.Struct, reflect.Map:
		return "Invalid data. Expected a dictionary."
	default:
		return "Not a valid string."
	}
}
