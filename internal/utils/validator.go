package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const ValidationFailedMessage = "Invalid request parameters"

// ValidationErrorDetail represents the structure of a single validation error.
type ValidationErrorDetail struct {
	Field    string      `json:"field"`
	Message  string      `json:"message"`
	Expected string      `json:"expected"`
	Received interface{} `json:"received"`
}

// ValidationErrorData represents the data field in the validation error response.
type ValidationErrorData struct {
	Errors []ValidationErrorDetail `json:"errors"`
}

// BindAndValidate binds the request body to the given object and validates it.
// If validation fails, it sends a 400 response describing every failed field and returns false.
func BindAndValidate(c *gin.Context, obj interface{}) bool {
	err := c.ShouldBindJSON(obj)
	if err == nil {
		return true
	}

	c.JSON(http.StatusBadRequest, NewResponse(http.StatusBadRequest, ValidationFailedMessage, ValidationErrorData{
		Errors: ValidationDetails(obj, err),
	}))
	return false
}

// ValidationDetails converts a binding error into per-field details keyed by JSON field name.
func ValidationDetails(obj interface{}, err error) []ValidationErrorDetail {
	var validationErrors validator.ValidationErrors
	var typeErr *json.UnmarshalTypeError

	switch {
	case errors.As(err, &validationErrors):
		details := make([]ValidationErrorDetail, 0, len(validationErrors))
		for _, e := range validationErrors {
			details = append(details, fieldErrorDetail(getJSONTagName(obj, e.StructField()), e))
		}
		return details
	case errors.As(err, &typeErr):
		return []ValidationErrorDetail{{
			Field:    typeErr.Field,
			Message:  fmt.Sprintf("Field '%s' has invalid type", typeErr.Field),
			Expected: typeErr.Type.String(),
			Received: typeErr.Value,
		}}
	default:
		return []ValidationErrorDetail{{
			Field:    "body",
			Message:  "Malformed JSON or invalid request body",
			Expected: "valid JSON",
			Received: "invalid",
		}}
	}
}

func fieldErrorDetail(field string, e validator.FieldError) ValidationErrorDetail {
	detail := ValidationErrorDetail{
		Field:    field,
		Message:  fmt.Sprintf("Field validation for '%s' failed on the '%s' tag", field, e.Tag()),
		Expected: e.Param(),
		Received: e.Value(),
	}
	if detail.Expected == "" {
		detail.Expected = e.Tag()
	}

	switch e.Tag() {
	case "required":
		detail.Message = fmt.Sprintf("Field '%s' is required", field)
		detail.Expected = "not empty"
	case "min":
		detail.Message = fmt.Sprintf("Field '%s' must be at least %s characters long", field, e.Param())
		detail.Expected = fmt.Sprintf("min length %s", e.Param())
	case "max":
		detail.Message = fmt.Sprintf("Field '%s' must be at most %s characters long", field, e.Param())
		detail.Expected = fmt.Sprintf("max length %s", e.Param())
	}
	return detail
}

func getJSONTagName(obj interface{}, fieldName string) string {
	t := reflect.TypeOf(obj)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return fieldName
	}
	if f, ok := t.FieldByName(fieldName); ok {
		if tag := strings.Split(f.Tag.Get("json"), ",")[0]; tag != "" && tag != "-" {
			return tag
		}
	}
	return fieldName
}
