// Package i18n renders user-facing messages in English or Hindi.
package i18n

import (
	"errors"
	"strings"

	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/hi"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/nmm-portal/nmm-api/internal/models"
	"github.com/nmm-portal/nmm-api/internal/validation"
)

// Translator holds the en and hi catalogues
type Translator struct {
	uni *ut.UniversalTranslator
}

// New builds the catalogues and registers binding translations on validate
func New(validate *validator.Validate) (*Translator, error) {
	english := en.New()
	uni := ut.New(english, english, hi.New())

	enTrans, _ := uni.GetTranslator(string(models.LanguageEnglish))
	hiTrans, _ := uni.GetTranslator(string(models.LanguageHindi))

	for key, text := range englishMessages {
		if err := enTrans.Add(key, text, false); err != nil {
			return nil, err
		}
	}
	for key, text := range hindiMessages {
		if err := hiTrans.Add(key, text, false); err != nil {
			return nil, err
		}
	}

	if validate != nil {
		if err := en_translations.RegisterDefaultTranslations(validate, enTrans); err != nil {
			return nil, err
		}
		registerTags(validate, enTrans, englishTagMessages)
		registerTags(validate, hiTrans, hindiTagMessages)
	}

	return &Translator{uni: uni}, nil
}

func registerTags(validate *validator.Validate, trans ut.Translator, texts map[string]string) {
	for tag, text := range texts {
		tag, text := tag, text
		_ = validate.RegisterTranslation(tag, trans,
			func(t ut.Translator) error { return t.Add(tag, text, true) },
			func(t ut.Translator, fe validator.FieldError) string {
				s, err := t.T(tag, fe.Field(), fe.Param())
				if err != nil {
					return fe.Error()
				}
				return s
			},
		)
	}
}

// For returns the catalogue for lang, falling back to English
func (t *Translator) For(lang models.Language) ut.Translator {
	trans, found := t.uni.GetTranslator(string(lang))
	if !found {
		trans, _ = t.uni.GetTranslator(string(models.LanguageEnglish))
	}
	return trans
}

// Message translates an English message, or a message key with params.
// Unknown keys come back unchanged.
func (t *Translator) Message(lang models.Language, key string, params ...string) string {
	if s, err := t.For(lang).T(key, params...); err == nil && s != "" {
		return s
	}
	if lang != models.LanguageEnglish {
		return t.Message(models.LanguageEnglish, key, params...)
	}
	return key
}

// Localize rewrites the messages of errs into lang
func (t *Translator) Localize(lang models.Language, errs validation.ValidationErrors) validation.ValidationErrors {
	out := make(validation.ValidationErrors, len(errs))
	for i, ve := range errs {
		out[i] = ve
		switch {
		case ve.Code == validation.CodeTooLarge && len(ve.Params) > 0:
			out[i].Message = t.Message(lang, KeyFileTooLarge, ve.Params...)
		case ve.Code == validation.CodeFileType && len(ve.Params) > 0:
			out[i].Message = t.Message(lang, KeyFileType, ve.Params...)
		case lang != models.LanguageEnglish:
			out[i].Message = t.Message(lang, ve.Message)
		}
	}
	return out
}

// BindingErrors converts validator errors from request binding into field
// errors rendered in lang. Other errors yield nil.
func (t *Translator) BindingErrors(lang models.Language, err error) validation.ValidationErrors {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	trans := t.For(lang)
	out := make(validation.ValidationErrors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, validation.ValidationError{
			Field:   fieldPath(fe),
			Code:    fe.Tag(),
			Message: fe.Translate(trans),
		})
	}
	return out
}

// fieldPath drops the top-level struct name from the namespace
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

// ParseLanguage picks a supported language from a preference value or an
// Accept-Language header. English is the default.
func ParseLanguage(values ...string) models.Language {
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			tag := strings.ToLower(strings.TrimSpace(strings.SplitN(part, ";", 2)[0]))
			switch {
			case tag == "":
				continue
			case strings.HasPrefix(tag, "hi"):
				return models.LanguageHindi
			case strings.HasPrefix(tag, "en"):
				return models.LanguageEnglish
			}
		}
	}
	return models.LanguageEnglish
}
