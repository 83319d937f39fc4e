package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"github.com/b2ygroup/conecta-pro/internal/pkg/constants"

	"github.com/go-playground/validator/v10"
)

// MinPasswordLength matches the hosted auth provider the frontend was built against.
const MinPasswordLength = 6

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ErrInvalidInput is wrapped by every *Error so handlers can map it with errors.Is.
var ErrInvalidInput = errors.New("invalid input")

// Error lists the offending fields by their JSON names.
type Error struct {
	Fields []string
}

func (e *Error) Error() string {
	return "Invalid fields: " + strings.Join(e.Fields, ", ")
}

func (e *Error) Unwrap() error {
	return ErrInvalidInput
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("document", func(fl validator.FieldLevel) bool {
		return IsValidDocument(fl.Field().String())
	})
	_ = v.RegisterValidation("cep", func(fl validator.FieldLevel) bool {
		return IsValidCEP(fl.Field().String())
	})
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return IsValidPhone(fl.Field().String())
	})
	_ = v.RegisterValidation("profiletype", func(fl validator.FieldLevel) bool {
		return constants.IsValidProfileType(fl.Field().String())
	})
	return v
}

// Struct validates s against its `validate` tags.
func Struct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &Error{}
	seen := map[string]bool{}
	for _, fe := range verrs {
		name := fieldPath(fe.Namespace())
		if !seen[name] {
			seen[name] = true
			out.Fields = append(out.Fields, name)
		}
	}
	return out
}

// fieldPath drops the root struct name: "Listing.monthlyCosts.rent" -> "monthlyCosts.rent".
func fieldPath(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func IsValidEmail(email string) bool {
	return emailRe.MatchString(email)
}

func IsValidPassword(password string) bool {
	return len(password) >= MinPasswordLength
}

// Digits strips everything but 0-9 ("123.456.789-09" -> "12345678909").
func Digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsValidDocument accepts a CPF (11 digits) or CNPJ (14 digits), punctuation allowed.
func IsValidDocument(doc string) bool {
	d := Digits(doc)
	switch len(d) {
	case 11:
		return cpfCheck(d)
	case 14:
		return cnpjCheck(d)
	}
	return false
}

func IsValidCEP(cep string) bool {
	return len(Digits(cep)) == 8 && !strings.ContainsFunc(cep, unicode.IsLetter)
}

// IsValidPhone accepts Brazilian numbers with area code (10 or 11 digits), optionally +55.
func IsValidPhone(phone string) bool {
	d := Digits(phone)
	if strings.HasPrefix(strings.TrimSpace(phone), "+55") {
		d = d[2:]
	}
	return len(d) == 10 || len(d) == 11
}

func allSame(d string) bool {
	return strings.Count(d, d[:1]) == len(d)
}

func cpfCheck(d string) bool {
	if allSame(d) {
		return false
	}
	for pos := 9; pos <= 10; pos++ {
		sum := 0
		for i := 0; i < pos; i++ {
			sum += int(d[i]-'0') * (pos + 1 - i)
		}
		dv := sum * 10 % 11
		if dv == 10 {
			dv = 0
		}
		if dv != int(d[pos]-'0') {
			return false
		}
	}
	return true
}

func cnpjCheck(d string) bool {
	if allSame(d) {
		return false
	}
	weights := []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	for pos := 12; pos <= 13; pos++ {
		sum := 0
		w := weights[13-pos:]
		for i := 0; i < pos; i++ {
			sum += int(d[i]-'0') * w[i]
		}
		dv := sum % 11
		if dv < 2 {
			dv = 0
		} else {
			dv = 11 - dv
		}
		if dv != int(d[pos]-'0') {
			return false
		}
	}
	return true
}
