package i18n

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/nmm-portal/nmm-api/internal/models"
	"github.com/nmm-portal/nmm-api/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTranslator(t *testing.T) (*Translator, *validator.Validate) {
	t.Helper()
	v := validator.New()
	require.NoError(t, validation.RegisterBindingValidators(v))
	tr, err := New(v)
	require.NoError(t, err)
	return tr, v
}

func TestMessage(t *testing.T) {
	tr, _ := newTranslator(t)

	assert.Equal(t, "नाम आवश्यक है", tr.Message(models.LanguageHindi, "Name is required"))
	assert.Equal(t, "Name is required", tr.Message(models.LanguageEnglish, "Name is required"))
	assert.Equal(t, "something new", tr.Message(models.LanguageHindi, "something new"))
	assert.Equal(t, "File a.png exceeds 2MB size limit", tr.Message(models.LanguageEnglish, KeyFileTooLarge, "a.png", "2"))
	assert.Equal(t, "Name is required", tr.Message("fr", "Name is required"))
}

func TestLocalize(t *testing.T) {
	tr, _ := newTranslator(t)

	errs := validation.ValidateRegistrationForm(&models.RegistrationDraft{})
	hiErrs := tr.Localize(models.LanguageHindi, errs)

	require.Len(t, hiErrs, len(errs))
	assert.Equal(t, "नाम आवश्यक है", hiErrs[0].Message)
	assert.Equal(t, errs[0].Field, hiErrs[0].Field)
	// the input is left untouched
	assert.Equal(t, "Name is required", errs[0].Message)

	fileErrs := validation.ValidationErrors{{
		Field: "photo", Code: validation.CodeFileType, Message: "File x.exe type not allowed", Params: []string{"x.exe"},
	}}
	assert.Equal(t, "फ़ाइल x.exe का प्रकार अनुमत नहीं है", tr.Localize(models.LanguageHindi, fileErrs)[0].Message)
}

func TestBindingErrors(t *testing.T) {
	tr, v := newTranslator(t)

	type otpForm struct {
		Mobile string `json:"mobile" validate:"required,mobile"`
		Role   string `json:"role" validate:"required"`
	}

	err := v.Struct(otpForm{Mobile: "123"})
	require.Error(t, err)

	en := tr.BindingErrors(models.LanguageEnglish, err)
	require.Len(t, en, 2)
	assert.Equal(t, "mobile", en[0].Field)
	assert.Equal(t, "mobile must be a valid mobile number", en[0].Message)
	assert.Equal(t, "role is a required field", en[1].Message)

	hi := tr.BindingErrors(models.LanguageHindi, err)
	assert.Equal(t, "role आवश्यक है", hi[1].Message)

	assert.Nil(t, tr.BindingErrors(models.LanguageEnglish, assert.AnError))
}

func TestParseLanguage(t *testing.T) {
	assert.Equal(t, models.LanguageHindi, ParseLanguage("hi"))
	assert.Equal(t, models.LanguageHindi, ParseLanguage("", "hi-IN,en;q=0.8"))
	assert.Equal(t, models.LanguageEnglish, ParseLanguage("en-GB"))
	assert.Equal(t, models.LanguageEnglish, ParseLanguage("fr-FR,de"))
	assert.Equal(t, models.LanguageEnglish, ParseLanguage())
}
