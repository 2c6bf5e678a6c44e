package utils

import (
	"errors"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var registerOnce sync.Once

// RegisterValidators adds the custom rules used by model binding tags to
// gin's validator. It is safe to call more than once.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}

		_ = v.RegisterValidation("notblank", validators.NotBlank)

		// Report JSON names instead of Go field names.
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return field.Name
			}
			return name
		})
	})
}

// FieldErrors maps each failing field to the rule it broke. It returns nil
// when err is not a validation failure.
func FieldErrors(err error) map[string]string {
	var verrs validator.ValidationErrors

	if !errors.As(err, &verrs) {
		return nil
	}

	fields := make(map[string]string, len(verrs))

	for _, fe := range verrs {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		fields[fe.Field()] = rule
	}

	return fields
}

// RespondBindError writes a 400 describing why the request body or form
// could not be bound.
func RespondBindError(ctx *gin.Context, err error) {
	if fields := FieldErrors(err); fields != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "fields": fields})
		return
	}

	ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
}
