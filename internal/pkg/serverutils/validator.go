package serverutils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"notes-api-be/internal/pkg/apperror"
)

var validate = validator.New()

// ValidateRequest checks struct tags on a parsed request body and turns
// the first violation into a 400 the error middleware can surface.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		f := verrs[0]
		return apperror.BadRequest(fmt.Sprintf("field '%s' failed on the '%s' rule", strings.ToLower(f.Field()), f.Tag()))
	}
	return apperror.BadRequest("invalid request payload")
}
