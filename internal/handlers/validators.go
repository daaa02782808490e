package handlers

import (
	"reflect"
	"sync"

	"github.com/SscSPs/crm_backend/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var registerValidatorsOnce sync.Once

// RegisterValidators adds the CRM binding tags to gin's validator engine.
// Safe to call more than once.
func RegisterValidators() {
	registerValidatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("dealstatus", func(fl validator.FieldLevel) bool {
			return domain.DealStatus(fl.Field().String()).IsValid()
		})
		// Decimals are validated through their string form.
		v.RegisterCustomTypeFunc(func(field reflect.Value) any {
			if d, ok := field.Interface().(decimal.Decimal); ok {
				return d.String()
			}
			return nil
		}, decimal.Decimal{})
		_ = v.RegisterValidation("dealamount", func(fl validator.FieldLevel) bool {
			amount, err := decimal.NewFromString(fl.Field().String())
			return err == nil && domain.ValidateDealAmount(amount) == nil
		})
		_ = v.RegisterValidation("userrole", func(fl validator.FieldLevel) bool {
			return domain.UserRole(fl.Field().String()).IsValid()
		})
	})
}
