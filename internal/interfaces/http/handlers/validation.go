package handlers

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Sale names end up in URLs and provider order IDs, so they are restricted
// to a URL-safe alphabet.
var saleNameRegexp = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_-]*$`)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("salename", func(fl validator.FieldLevel) bool {
			return saleNameRegexp.MatchString(fl.Field().String())
		})
	}
}
