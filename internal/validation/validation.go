package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"

	"inkblog/internal/apperr"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// bcrypt refuses to hash anything longer.
const maxPasswordBytes = 72

// messages keyed by "<json field>.<rule>".
var messages = map[string]string{
	"title.min":           "Title must be at least 3 characters",
	"title.max":           "Title too long",
	"slug.min":            "Slug must be at least 3 characters",
	"slug.max":            "Slug must be at most 160 characters",
	"slug.slug":           "Slug must be lowercase and hyphen-separated",
	"description.min":     "Description must be at least 10 characters",
	"description.max":     "Description too long",
	"content.min":         "Content must be at least 50 characters",
	"photo.url":           "Photo must be a valid URL",
	"seoKeywords.max":     "SEO keywords must be at most 300 characters",
	"id.required":         "Invalid blog ID",
	"id.uuid":             "Invalid blog ID",
	"name.min":            "Name must be at least 2 characters",
	"email.required":      "Invalid email",
	"email.email":         "Invalid email",
	"image.url":           "Image must be a valid URL",
	"password.min":        "Password must be at least 6 characters",
	"password.bcrypt":     "Password must be at most 72 bytes",
	"currentPassword.min": "Password must be at least 8 characters",
	"newPassword.min":     "Password must be at least 8 characters",
	"newPassword.bcrypt":  "Password must be at most 72 bytes",
}

type Validator struct {
	validate *validator.Validate
	trans    ut.Translator
}

func New() *Validator {
	validate := validator.New(validator.WithRequiredStructEnabled())

	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})

	// registration only fails on an empty tag or nil func
	_ = validate.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return IsSlug(fl.Field().String())
	})
	_ = validate.RegisterValidation("bcrypt", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) <= maxPasswordBytes
	})

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	_ = entranslations.RegisterDefaultTranslations(validate, trans)

	return &Validator{validate: validate, trans: trans}
}

func IsSlug(s string) bool {
	return slugPattern.MatchString(s)
}

// NormalizeEmail is applied before an address is stored or looked up, so
// uniqueness and sign-in ignore case.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Struct validates s and returns nil or an *apperr.Error of kind
// KindValidation listing one message per failing field.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperr.Wrap(apperr.KindUnknown, "Invalid input", err)
	}

	fields := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		if _, seen := fields[fe.Field()]; seen {
			continue
		}
		fields[fe.Field()] = v.message(fe)
	}

	return apperr.Validation(fields)
}

func (v *Validator) message(fe validator.FieldError) string {
	if msg, ok := messages[fe.Field()+"."+fe.Tag()]; ok {
		return msg
	}
	return fe.Translate(v.trans)
}
