package validation

import (
	"regexp"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// nipPattern matches a Polish tax identification number: ten digits, no separators.
var nipPattern = regexp.MustCompile(`^\d{10}$`)

var once sync.Once

// Register installs the shop-specific binding validators on gin's engine.
// Safe to call from every handler constructor; registration runs once.
func Register() {
	once.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("nip", func(fl validator.FieldLevel) bool {
			return nipPattern.MatchString(fl.Field().String())
		})
	})
}
