package validate

import (
	"net/url"
)

// Field is the state of one bound form control: its current value and the
// error it displays. Invalid is always derived from Message.
type Field struct {
	Key     string
	Value   string
	Message string
	Invalid bool

	rule Rule
}

// AriaInvalid returns the value of the field's aria-invalid attribute.
func (f *Field) AriaInvalid() string {
	if f.Invalid {
		return "true"
	}
	return "false"
}

// Rule returns the rule bound to the field.
func (f *Field) Rule() Rule {
	return f.rule
}

func (f *Field) setError(msg string) {
	f.Message = msg
	f.Invalid = msg != ""
}

// Form is the controller of a submission form. A Form built from an empty
// schema is inert: it validates to true and never marks anything.
type Form struct {
	fields []*Field
	index  map[string]*Field
}

// NewForm binds every spec in the schema to its value. Values missing from
// the given map start empty.
func NewForm(schema Schema, values url.Values) *Form {
	form := &Form{
		fields: make([]*Field, 0, len(schema)),
		index:  make(map[string]*Field, len(schema)),
	}

	for _, spec := range schema {
		if _, dup := form.index[spec.Key]; dup {
			continue
		}

		f := &Field{
			Key:   spec.Key,
			Value: values.Get(spec.Key),
			rule:  spec.Rule,
		}

		form.fields = append(form.fields, f)
		form.index[spec.Key] = f
	}

	return form
}

// Inert returns true if the form has no bound fields.
func (f *Form) Inert() bool {
	return len(f.fields) == 0
}

// Field returns the field with the given key or nil.
func (f *Form) Field(key string) *Field {
	return f.index[key]
}

// Fields returns all fields in schema order.
func (f *Form) Fields() []*Field {
	return f.fields
}

// SetValue changes the value of a field without revalidating it.
func (f *Form) SetValue(key, value string) {
	if field := f.index[key]; field != nil {
		field.Value = value
	}
}

// ValidateField reruns the rule of the given field against its current value
// and updates the displayed error. Unknown keys are valid.
func (f *Form) ValidateField(key string) bool {
	field := f.index[key]
	if field == nil {
		return true
	}

	field.setError(field.rule.Check(field.Value))
	return !field.Invalid
}

// ValidateAll validates every field, even after the first failure, and
// returns true if all of them passed.
func (f *Form) ValidateAll() bool {
	ok := true
	for _, field := range f.fields {
		if !f.ValidateField(field.Key) {
			ok = false
		}
	}
	return ok
}

// FirstInvalid returns the first field currently marked invalid, or nil.
func (f *Form) FirstInvalid() *Field {
	for _, field := range f.fields {
		if field.Invalid {
			return field
		}
	}
	return nil
}

// ClearErrors clears the error display of every field.
func (f *Form) ClearErrors() {
	for _, field := range f.fields {
		field.setError("")
	}
}

// Reset puts the form back to its default state: empty values, no errors.
func (f *Form) Reset() {
	for _, field := range f.fields {
		field.Value = ""
	}
	f.ClearErrors()
}

// Values returns the current values of all fields.
func (f *Form) Values() url.Values {
	v := make(url.Values, len(f.fields))
	for _, field := range f.fields {
		v.Set(field.Key, field.Value)
	}
	return v
}
