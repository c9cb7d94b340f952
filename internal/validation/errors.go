package validation

import "strings"

// Error codes shared with the message catalogue
const (
	CodeRequired = "required"
	CodeInvalid  = "invalid"
	CodeTooLarge = "too_large"
	CodeFileType = "file_type"
	CodeTooMany  = "too_many"
)

// ValidationError is one field failure. Field is a dot-path for nested
// fields ("address.state").
type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
	// Params fill the placeholders of parameterised messages
	Params []string `json:"-"`
}

// ValidationErrors is an ordered validation result; empty means valid
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, ve := range e {
		msgs = append(msgs, ve.Field+": "+ve.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// ToMap returns field -> message. The first message for a field wins.
func (e ValidationErrors) ToMap() map[string]string {
	out := make(map[string]string, len(e))
	for _, ve := range e {
		if _, ok := out[ve.Field]; !ok {
			out[ve.Field] = ve.Message
		}
	}
	return out
}

// Fields lists the failing fields in order
func (e ValidationErrors) Fields() []string {
	out := make([]string, 0, len(e))
	for _, ve := range e {
		out = append(out, ve.Field)
	}
	return out
}

func (e *ValidationErrors) add(field, code, message string) {
	*e = append(*e, ValidationError{Field: field, Code: code, Message: message})
}

func (e *ValidationErrors) addf(field, code, message string, params ...string) {
	*e = append(*e, ValidationError{Field: field, Code: code, Message: message, Params: params})
}
