// Package binding connects enumeration tables to the request-decoding and
// validation libraries used by HTTP handlers.
//
// RegisterConverter teaches a gorilla/schema decoder to read enumeration
// fields from query strings and forms by display name. RegisterValidation
// adds a go-playground/validator tag that accepts only active items.
package binding

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/broady/smartenum"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
)

// RegisterConverter registers a converter for T on dec. Values are parsed
// with e.Parse; text that names no item fails the decode for that field.
//
// When numeric is true, text that is not a display name is also accepted as
// the decimal value of an active item.
func RegisterConverter[T smartenum.Integer](dec *schema.Decoder, e *smartenum.Enum[T], numeric bool) {
	var zero T
	dec.RegisterConverter(zero, func(s string) reflect.Value {
		if v, ok := e.Parse(s); ok {
			return reflect.ValueOf(v)
		}
		if numeric {
			if v, ok := parseNumber(e, s); ok {
				return reflect.ValueOf(v)
			}
		}
		return reflect.Value{}
	})
}

func parseNumber[T smartenum.Integer](e *smartenum.Enum[T], s string) (T, bool) {
	var v T
	if e.Declaration().Signed() {
		n, err := strconv.ParseInt(s, 10, e.Declaration().Bits())
		if err != nil {
			return 0, false
		}
		v = T(n)
	} else {
		n, err := strconv.ParseUint(s, 10, e.Declaration().Bits())
		if err != nil {
			return 0, false
		}
		v = T(n)
	}
	return v, e.Contains(v)
}

// RegisterValidation registers tag on v. A field carrying the tag passes
// when it is an active item of e (integer fields, including T) or a display
// name of one (string fields). Fields of any other kind fail. Zero values
// are validated like any other value; combine with omitempty to skip them.
func RegisterValidation[T smartenum.Integer](v *validator.Validate, tag string, e *smartenum.Enum[T]) error {
	if err := v.RegisterValidation(tag, Validator(e)); err != nil {
		return fmt.Errorf("register %q validation for %s: %w", tag, e.Name(), err)
	}
	return nil
}

// Validator returns the validator.Func used by RegisterValidation.
func Validator[T smartenum.Integer](e *smartenum.Enum[T]) validator.Func {
	target := reflect.TypeFor[T]()
	return func(fl validator.FieldLevel) bool {
		field := fl.Field()
		switch {
		case field.Kind() == reflect.String:
			_, ok := e.Parse(field.String())
			return ok
		case isInteger(field.Kind()) && field.CanConvert(target):
			return e.Contains(field.Convert(target).Interface().(T))
		default:
			return false
		}
	}
}

func isInteger(k reflect.Kind) bool {
	return k >= reflect.Int && k <= reflect.Uintptr
}
