package dto

import (
	"html"
	"reflect"
	"regexp"
	"strings"

	"muhasebe-api/internal/core/domain"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	currencyRe   = regexp.MustCompile(`^[A-Za-z]{3}$`)
	capabilityRe = regexp.MustCompile(`^[A-Za-z]+:(read|create|update|delete)$`)
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = RegisterValidators(v)
	}
}

// RegisterValidators adds the custom tags used by the request types.
func RegisterValidators(v *validator.Validate) error {
	for tag, fn := range map[string]validator.Func{
		"object_id":   validateObjectID,
		"record_type": validateRecordType,
		"currency":    validateCurrency,
		"capability":  validateCapability,
	} {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

// validateObjectID accepts a 24-hex id. The empty string passes so that an
// empty optional link can be normalized to absent downstream.
func validateObjectID(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return s == "" || domain.IsValidID(s)
}

func validateRecordType(fl validator.FieldLevel) bool {
	return domain.RecordType(fl.Field().String()).Valid()
}

func validateCurrency(fl validator.FieldLevel) bool {
	return currencyRe.MatchString(strings.TrimSpace(fl.Field().String()))
}

func validateCapability(fl validator.FieldLevel) bool {
	return capabilityRe.MatchString(strings.ToLower(strings.TrimSpace(fl.Field().String())))
}

// SanitizeStruct trims whitespace on every exported string field (including
// *string) of a struct pointer, descending into embedded structs. Fields
// tagged sanitize:"html" are also HTML-escaped; sanitize:"-" is left as is.
func SanitizeStruct(v any) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return
	}
	sanitizeFields(rv.Elem())
}

func sanitizeFields(rv reflect.Value) {
	rt := rv.Type()
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if !f.CanSet() {
			continue
		}
		mode := rt.Field(i).Tag.Get("sanitize")
		if mode == "-" {
			continue
		}
		switch f.Kind() {
		case reflect.String:
			f.SetString(sanitize(f.String(), mode))
		case reflect.Ptr:
			if f.IsNil() {
				continue
			}
			if elem := f.Elem(); elem.Kind() == reflect.String {
				elem.SetString(sanitize(elem.String(), mode))
			}
		case reflect.Struct:
			if rt.Field(i).Anonymous {
				sanitizeFields(f)
			}
		}
	}
}

func sanitize(s, mode string) string {
	s = strings.TrimSpace(s)
	if mode == "html" {
		s = html.EscapeString(s)
	}
	return s
}
