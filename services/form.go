package services

// InputField is the live state of one calculator input.
type InputField struct {
	Key              string
	RawValue         string
	Unit             string
	ConversionFactor float64
}

// Normalized returns the field's base-unit value.
func (f *InputField) Normalized() float64 {
	return Normalize(f.RawValue, f.ConversionFactor)
}

// Form is the keyed input state of one calculator page. Fields start empty.
type Form struct {
	order  []string
	fields map[string]*InputField
}

// NewForm creates an empty form for def.
func NewForm(def *CalculatorDef) *Form {
	f := &Form{fields: make(map[string]*InputField, len(def.Inputs))}
	for _, in := range def.Inputs {
		f.order = append(f.order, in.Key)
		f.fields[in.Key] = &InputField{
			Key:              in.Key,
			Unit:             in.Unit,
			ConversionFactor: in.ConversionFactor,
		}
	}
	return f
}

// Set proposes a new raw value for key. Values failing the numeric input
// guard, and unknown keys, leave the form unchanged; Set reports whether the
// value was accepted.
func (f *Form) Set(key, proposed string) bool {
	field, ok := f.fields[key]
	if !ok || !AcceptNumericInput(proposed) {
		return false
	}
	field.RawValue = proposed
	return true
}

// Raw returns the raw text of key.
func (f *Form) Raw(key string) string {
	if field, ok := f.fields[key]; ok {
		return field.RawValue
	}
	return ""
}

// Field returns the field for key.
func (f *Form) Field(key string) (*InputField, bool) {
	field, ok := f.fields[key]
	return field, ok
}

// Fields returns the fields in definition order.
func (f *Form) Fields() []*InputField {
	out := make([]*InputField, 0, len(f.order))
	for _, key := range f.order {
		out = append(out, f.fields[key])
	}
	return out
}

// Reset clears every raw value.
func (f *Form) Reset() {
	for _, field := range f.fields {
		field.RawValue = ""
	}
}

// Normalized returns every field's base-unit value keyed by input key.
func (f *Form) Normalized() Values {
	out := make(Values, len(f.fields))
	for key, field := range f.fields {
		out[key] = field.Normalized()
	}
	return out
}

// RawValues returns the raw text keyed by input key.
func (f *Form) RawValues() map[string]string {
	out := make(map[string]string, len(f.fields))
	for key, field := range f.fields {
		out[key] = field.RawValue
	}
	return out
}
