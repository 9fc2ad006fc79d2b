package dto

import (
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// RegisterValidators teaches v about decimal amounts: decimals validate as their string
// form, and the "dgt0" tag requires a value greater than zero.
func RegisterValidators(v *validator.Validate) error {
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
	return v.RegisterValidation("dgt0", decimalGreaterThanZero)
}

func decimalValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return d.String()
	}
	return nil
}

func decimalGreaterThanZero(fl validator.FieldLevel) bool {
	field := fl.Field()
	switch field.Kind() {
	case reflect.String:
		d, err := decimal.NewFromString(field.String())
		return err == nil && d.IsPositive()
	case reflect.Struct:
		d, ok := field.Interface().(decimal.Decimal)
		return ok && d.IsPositive()
	default:
		return false
	}
}
