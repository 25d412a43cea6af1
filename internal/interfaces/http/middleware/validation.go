package middleware

import (
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/protheus/connector/internal/domain/connector"
)

// SetupValidator configures gin's validator with the connector's custom tags
func SetupValidator() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	// Use JSON/form tag names for field names in errors
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		return name
	})

	// yyyymmdd validates the date format Protheus period filters expect
	v.RegisterValidation("yyyymmdd", func(fl validator.FieldLevel) bool {
		return connector.ValidateDate(fl.Field().String()) == nil
	})
}
