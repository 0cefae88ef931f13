package form

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"hr-dashboard/internal/shared/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const (
	MsgRequired = "Harap diisi"
	MsgInvalid  = "Tidak valid"
)

// FieldErrors memetakan nama field (tag json) ke pesan yang ditampilkan di bawah input.
type FieldErrors map[string]string

func (f FieldErrors) Error() string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+f[k])
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

func (f FieldErrors) Fields() map[string]string { return f }

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(apperror.JSONTagName)
	_ = v.RegisterValidation("amount", validateAmount)
	return v
}

// validateAmount: string desimal > 0 (contoh "4500000.50").
func validateAmount(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		return false
	}
	d, err := decimal.NewFromString(strings.TrimSpace(fl.Field().String()))
	if err != nil {
		return false
	}
	return d.IsPositive()
}

func isRequiredTag(tag string) bool {
	return tag == "required" || strings.HasPrefix(tag, "required_")
}

// Checker adalah aturan lintas field (contoh end_date >= start_date). Check
// hanya dijalankan setelah semua tag lolos.
type Checker interface {
	Check() FieldErrors
}

// Validate menjalankan tag `validate` pada struct form. Semua field yang gagal
// dilaporkan sekaligus.
func Validate(v any) error {
	if v == nil {
		return nil
	}
	err := validate.Struct(v)
	if err == nil {
		if c, ok := v.(Checker); ok {
			if fe := c.Check(); len(fe) > 0 {
				return fe
			}
		}
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return fmt.Errorf("form: %w", err)
	}

	out := make(FieldErrors, len(ve))
	for _, fe := range ve {
		msg := MsgInvalid
		if isRequiredTag(fe.Tag()) {
			msg = MsgRequired
		}
		// pesan required menang jika satu field gagal di beberapa rule
		if _, exists := out[fe.Field()]; exists && msg != MsgRequired {
			continue
		}
		out[fe.Field()] = msg
	}
	return out
}
