package validator

import (
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/x-xyz/stakeview/base/ethereum"
)

// IsValidAddress returns is an address valid or not
func IsValidAddress(address string) bool {
	return ethereum.IsValidAddress(address)
}

// New returns a validate with the custom tags used by request bodies registered
func New() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("tokenid", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if s == "" || len(s) > 78 {
			return false
		}
		for _, c := range s {
			if c < '0' || c > '9' {
				return false
			}
		}
		return true
	})
	return v
}

func NewCustomValidator(v *validator.Validate) echo.Validator {
	return &CustomValidator{v}
}

type CustomValidator struct {
	validator *validator.Validate
}

func (v *CustomValidator) Validate(i interface{}) error {
	if err := v.validator.Struct(i); err != nil {
		return err
	}
	return nil
}
