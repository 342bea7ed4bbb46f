package api

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/shopspring/decimal"

	"github.com/matheusmosca/brewery-orders-service/internal/apperr"
)

var setupOnce sync.Once

// SetupValidation registers the field naming and custom rules on gin's
// validator. Safe to call more than once.
func SetupValidation() {
	setupOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}

		// report fields by their wire names
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})

		_ = v.RegisterValidation("notblank", validators.NotBlank)

		v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
			if d, ok := field.Interface().(decimal.Decimal); ok {
				f, _ := d.Float64()
				return f
			}
			return nil
		}, decimal.Decimal{})
	})
}

// BindJSON decodes and validates the request body into dst, converting
// every failure into an apperr.ValidationError.
func BindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return ValidationFromBinding(err)
	}
	return nil
}

// ValidationFromBinding maps decoder and validator errors to field messages.
func ValidationFromBinding(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fieldPath(fe)] = fieldMessage(fe)
		}
		return &apperr.ValidationError{Detail: "Validation failed", Fields: fields}
	}

	if errors.Is(err, io.EOF) {
		return apperr.Validation("body", "request body is required")
	}

	return apperr.Validation("body", "malformed request body: "+err.Error())
}

// fieldPath drops the struct name from the namespace:
// "CreateOrderCommand.orderLines[0].beerId" -> "orderLines[0].beerId".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func fieldMessage(fe validator.FieldError) string {
	name := fe.Field()
	switch fe.Tag() {
	case "required", "notblank":
		return name + " is required"
	case "gt":
		if fe.Param() == "0" {
			return name + " must be positive"
		}
		return fmt.Sprintf("%s must be greater than %s", name, fe.Param())
	case "email":
		return name + " must be valid"
	case "min":
		if fe.Kind() == reflect.Slice {
			if fe.Param() == "1" {
				return name + " must have at least one entry"
			}
			return fmt.Sprintf("%s must have at least %s entries", name, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s characters", name, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", name, fe.Param())
	default:
		return fmt.Sprintf("%s failed on the %s rule", name, fe.Tag())
	}
}

// PathID parses a positive integer path parameter.
func PathID(c *gin.Context, name string) (int, error) {
	raw := c.Param(name)
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, apperr.Validation(name, fmt.Sprintf("%s must be a positive integer, got %q", name, raw))
	}
	return id, nil
}
