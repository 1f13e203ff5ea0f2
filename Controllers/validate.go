package Controllers

import (
	"Vigil/Clock"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("limittime", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if value == "" {
			return true
		}
		_, _, err := Clock.ParseLimitTime(value)
		return err == nil
	})
	v.RegisterValidation("evidencetype", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "", "PHOTO", "VIDEO", "BOTH":
			return true
		}
		return false
	})
	return v
}
