package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Violations maps a request field to a human readable message.
type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

func (v Violations) Add(field, message string) {
	if _, exists := v[field]; !exists {
		v[field] = message
	}
}

// Merge copies other into v with every field prefixed.
func (v Violations) Merge(prefix string, other Violations) {
	for field, msg := range other {
		v.Add(prefix+field, msg)
	}
}

// Err returns v as an error, or nil when there are no violations.
func (v Violations) Err() error {
	if v.Empty() {
		return nil
	}

	return v
}

func (v Violations) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}

	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, v[f]))
	}

	return "validation failed: " + strings.Join(parts, "; ")
}

// From extracts the violations carried by err, if any.
func From(err error) (Violations, bool) {
	var v Violations
	if errors.As(err, &v) {
		return v, true
	}

	return nil, false
}

// Single is shorthand for an error with one violated field.
func Single(field, message string) error {
	return Violations{field: message}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.String()
		}

		return nil
	}, decimal.Decimal{})

	must(v.RegisterValidation("nospace", noSpace))
	must(v.RegisterValidation("telephone", telephone))
	must(v.RegisterValidation("known", known))
	must(v.RegisterValidation("nonnegative", decimalCheck(func(d, _ decimal.Decimal) bool { return !d.IsNegative() })))
	must(v.RegisterValidation("places", decimalCheck(func(d, p decimal.Decimal) bool { return d.Equal(d.Round(int32(p.IntPart()))) })))
	must(v.RegisterValidation("below", decimalCheck(func(d, p decimal.Decimal) bool { return d.LessThan(p) })))

	return v
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

func noSpace(fl validator.FieldLevel) bool {
	return !strings.ContainsAny(fl.Field().String(), " \t")
}

// telephone accepts digits with an optional leading plus.
func telephone(fl validator.FieldLevel) bool {
	s := strings.TrimPrefix(fl.Field().String(), "+")
	if s == "" {
		return false
	}

	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}

// known passes values that report themselves valid, such as enum types.
func known(fl validator.FieldLevel) bool {
	k, ok := fl.Field().Interface().(interface{ Valid() bool })
	return ok && k.Valid()
}

func decimalCheck(ok func(d, param decimal.Decimal) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(fl.Field().String())
		if err != nil {
			return false
		}

		p, err := decimal.NewFromString(fl.Param())
		if err != nil {
			p = decimal.Zero
		}

		return ok(d, p)
	}
}

// Struct validates s against its validate tags. Fields are keyed by their
// json names, nested fields joined with a dot.
func Struct(s any) Violations {
	v := Violations{}

	err := validate.Struct(s)
	if err == nil {
		return v
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		v.Add("", err.Error())
		return v
	}

	for _, fe := range fieldErrs {
		v.Add(fieldPath(fe), message(fe))
	}

	return v
}

func fieldPath(fe validator.FieldError) string {
	_, path, found := strings.Cut(fe.Namespace(), ".")
	if !found {
		return fe.Field()
	}

	return path
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "required_if":
		cond, _, _ := strings.Cut(fe.Param(), " ")
		return "is required when " + strings.ToLower(cond)
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "gte", "nonnegative":
		return "must not be negative"
	case "nospace":
		return "cannot contain spaces, enter numbers only"
	case "telephone":
		return "must contain only digits, optionally starting with +"
	case "known":
		return "is not a known value"
	case "places":
		return fmt.Sprintf("must have at most %s decimal places", fe.Param())
	case "below":
		return "is too large"
	default:
		return "is invalid"
	}
}
