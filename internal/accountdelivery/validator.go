package accountdelivery

import (
	"github.com/go-playground/validator/v10"

	"github.com/anton-mel/OOPBankApplication/internal/domain"
)

// ValidAccountKind validates whether the account kind is supported.
var ValidAccountKind validator.Func = func(fl validator.FieldLevel) bool {
	if k, ok := fl.Field().Interface().(string); ok {
		_, supported := domain.PolicyFor(domain.AccountKind(k))
		return supported
	}

	return false
}
