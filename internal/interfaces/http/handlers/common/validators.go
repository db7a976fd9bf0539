package common

import (
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const maxVINLength = 17

var registerOnce sync.Once

// RegisterValidators adds the custom binding rules to gin's validator.
func RegisterValidators() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			_ = v.RegisterValidation("vin", validateVIN)
		}
	})
}

// validateVIN accepts up to 17 ASCII letters and digits.
func validateVIN(fl validator.FieldLevel) bool {
	vin := fl.Field().String()
	if vin == "" || len(vin) > maxVINLength {
		return false
	}
	for _, r := range vin {
		isDigit := r >= '0' && r <= '9'
		isLetter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		if !isDigit && !isLetter {
			return false
		}
	}
	return true
}
