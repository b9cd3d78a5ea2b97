package form

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Kind controls how a field is rendered and parsed
type Kind string

const (
	KindText     Kind = "text"
	KindTextArea Kind = "textarea"
	KindPassword Kind = "password"
	KindEmail    Kind = "email"
	KindURL      Kind = "url"
	KindSelect   Kind = "select"
)

const (
	MsgRequired     = "This field is required."
	MsgInvalidURL   = "Invalid URL."
	MsgInvalidEmail = "Invalid email address."
	MsgInvalidValue = "Invalid value."
	MsgNotAChoice   = "Not a valid choice."
)

// FieldSpec declares one input. Rules is a validator tag, e.g. "required,min=6".
type FieldSpec struct {
	Name  string
	Label string
	Kind  Kind
	Rules string
}

// Schema is an ordered set of fields, evaluated per request
type Schema struct {
	Fields []FieldSpec
}

// Choice is one option of a select field
type Choice struct {
	Value string
	Label string
}

// Field is a FieldSpec bound to a submitted value
type Field struct {
	FieldSpec
	Value   string
	Choices []Choice
	Errors  []string
}

// Display is the value echoed back into the rendered input. Passwords are
// never echoed.
func (f *Field) Display() string {
	if f.Kind == KindPassword {
		return ""
	}
	return f.Value
}

func (f *Field) Required() bool {
	for _, rule := range strings.Split(f.Rules, ",") {
		if rule == "required" {
			return true
		}
	}
	return false
}

func (f *Field) Selected(value string) bool {
	return f.Value == value
}

// Form holds bound fields and their validation errors
type Form struct {
	fields []*Field
	index  map[string]*Field
}

var validate = validator.New()

func (s *Schema) newForm() *Form {
	f := &Form{index: make(map[string]*Field, len(s.Fields))}
	for _, spec := range s.Fields {
		field := &Field{FieldSpec: spec}
		f.fields = append(f.fields, field)
		f.index[spec.Name] = field
	}
	return f
}

// Empty returns an unbound form, used for GET requests
func (s *Schema) Empty() *Form {
	return s.newForm()
}

// Parse binds submitted values to the schema. Surrounding whitespace is
// dropped except for passwords.
func (s *Schema) Parse(values url.Values) *Form {
	f := s.newForm()
	for _, field := range f.fields {
		v := values.Get(field.Name)
		if field.Kind != KindPassword {
			v = strings.TrimSpace(v)
		}
		field.Value = v
	}
	return f
}

func (f *Form) Fields() []*Field {
	return f.fields
}

// Field returns the named field, or nil
func (f *Form) Field(name string) *Field {
	return f.index[name]
}

// Get returns the value of the named field, or "" for unknown names
func (f *Form) Get(name string) string {
	if field, ok := f.index[name]; ok {
		return field.Value
	}
	return ""
}

func (f *Form) Set(name, value string) {
	if field, ok := f.index[name]; ok {
		field.Value = value
	}
}

func (f *Form) SetChoices(name string, choices []Choice) {
	if field, ok := f.index[name]; ok {
		field.Choices = choices
	}
}

// AddError attaches a message to a field, e.g. after a uniqueness failure
func (f *Form) AddError(name, message string) {
	if field, ok := f.index[name]; ok {
		field.Errors = append(field.Errors, message)
	}
}

// Valid reports whether no field carries errors
func (f *Form) Valid() bool {
	for _, field := range f.fields {
		if len(field.Errors) > 0 {
			return false
		}
	}
	return true
}

// Validate runs every field's rules and reports whether the form is valid.
// Existing errors are cleared first.
func (f *Form) Validate() bool {
	for _, field := range f.fields {
		field.Errors = nil

		if field.Rules != "" {
			if err := validate.Var(field.Value, field.Rules); err != nil {
				field.Errors = append(field.Errors, messageFor(err))
				continue
			}
		}

		if field.Kind == KindSelect && !field.hasChoice(field.Value) {
			field.Errors = append(field.Errors, MsgNotAChoice)
		}
	}
	return f.Valid()
}

func (f *Field) hasChoice(value string) bool {
	for _, c := range f.Choices {
		if c.Value == value {
			return true
		}
	}
	return false
}

func messageFor(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return MsgInvalidValue
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return MsgRequired
	case "url", "http_url":
		return MsgInvalidURL
	case "email":
		return MsgInvalidEmail
	case "min":
		return fmt.Sprintf("Field must be at least %s characters long.", fe.Param())
	case "max":
		return fmt.Sprintf("Field cannot be longer than %s characters.", fe.Param())
	}
	return MsgInvalidValue
}
