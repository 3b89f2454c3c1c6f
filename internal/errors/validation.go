package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func init() {
	// report fields by their json (or form) name instead of the Go name
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(fieldTagName)
	}
}

func fieldTagName(fld reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return ""
}

// FieldMessages renders validator failures keyed by JSON field name.
// ok is false when err is not a validation failure.
func FieldMessages(err error) (map[string][]string, bool) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, false
	}

	fields := make(map[string][]string, len(verrs))
	for _, fe := range verrs {
		name := jsonFieldName(fe)
		fields[name] = append(fields[name], fieldMessage(name, fe))
	}
	return fields, true
}

// jsonFieldName reports a confirmation mismatch against the confirmed field.
func jsonFieldName(fe validator.FieldError) string {
	name := fe.Field()
	if fe.Tag() == "eqfield" {
		return strings.TrimSuffix(name, "_confirmation")
	}
	return name
}

func fieldMessage(field string, fe validator.FieldError) string {
	label := strings.ReplaceAll(field, "_", " ")

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", label)
	case "email":
		return fmt.Sprintf("The %s must be a valid email address.", label)
	case "url":
		return fmt.Sprintf("The %s must be a valid URL.", label)
	case "eqfield":
		return fmt.Sprintf("The %s confirmation does not match.", label)
	case "min":
		if isNumeric(fe.Kind()) {
			return fmt.Sprintf("The %s must be at least %s.", label, fe.Param())
		}
		return fmt.Sprintf("The %s must be at least %s characters.", label, fe.Param())
	case "max":
		if isNumeric(fe.Kind()) {
			return fmt.Sprintf("The %s may not be greater than %s.", label, fe.Param())
		}
		return fmt.Sprintf("The %s may not be greater than %s characters.", label, fe.Param())
	case "gt", "gte":
		return fmt.Sprintf("The %s must be at least %s.", label, fe.Param())
	}
	return fmt.Sprintf("The %s is invalid.", label)
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// RespondWithBindError reports a ShouldBind failure: 422 with field messages
// for validation failures, 400 for bodies that could not be decoded.
func RespondWithBindError(c *gin.Context, err error) {
	if fields, ok := FieldMessages(err); ok {
		RespondWithValidationError(c, fields)
		return
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		RespondWithValidationError(c, map[string][]string{
			typeErr.Field: {fmt.Sprintf("The %s has an invalid type.", strings.ReplaceAll(typeErr.Field, "_", " "))},
		})
		return
	}
	if errors.As(err, &syntaxErr) {
		RespondWithError(c, http.StatusBadRequest, ValidationInvalidFormat, "Malformed JSON body")
		return
	}
	RespondWithError(c, http.StatusBadRequest, ValidationInvalidInput, "Invalid request body")
}

// FieldError builds a single-field 422 body.
func FieldError(c *gin.Context, field, message string) {
	RespondWithValidationError(c, map[string][]string{field: {message}})
}
