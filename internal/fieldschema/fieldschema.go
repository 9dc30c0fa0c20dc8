package fieldschema

import (
	"errors"
	"fmt"
	"strings"
)

// FieldType enumerates the input widgets a form field may render as.
type FieldType string

const (
	TypeText     FieldType = "text"
	TypeNumber   FieldType = "number"
	TypeDate     FieldType = "date"
	TypeSelect   FieldType = "select"
	TypeCheckbox FieldType = "checkbox"
	TypeRadio    FieldType = "radio"
	TypeTextarea FieldType = "textarea"
)

var (
	// ErrFieldNameRequired indicates a field definition with an empty name.
	ErrFieldNameRequired = errors.New("field name is required")
	// ErrFieldTypeRequired indicates a field definition with no type at all.
	ErrFieldTypeRequired = errors.New("field type is required")
	// ErrFieldTypeInvalid indicates a type outside the enumerated set.
	ErrFieldTypeInvalid = errors.New("invalid field type")
)

// OptionsRequiredError is returned when a choice-type field carries no options.
type OptionsRequiredError struct {
	FieldType FieldType
}

func (e OptionsRequiredError) Error() string {
	return fmt.Sprintf("options are required for field type %q", e.FieldType)
}

// FieldDefinition describes one configurable input embedded in a subcategory.
// Order within the containing slice is significant and preserved verbatim.
type FieldDefinition struct {
	Name      string    `json:"name"`
	FieldType FieldType `json:"fieldType"`
	Options   []string  `json:"options,omitempty"`
	Required  bool      `json:"required"`
}

// IsChoice reports whether the type renders a fixed set of options.
func (t FieldType) IsChoice() bool {
	switch t {
	case TypeSelect, TypeRadio, TypeCheckbox:
		return true
	}
	return false
}

// Valid reports whether the type is one of the enumerated values.
func (t FieldType) Valid() bool {
	switch t {
	case TypeText, TypeNumber, TypeDate, TypeSelect, TypeCheckbox, TypeRadio, TypeTextarea:
		return true
	}
	return false
}

// Validate checks every definition in input order and returns the first
// violation, or nil when all fields are well-formed. It has no side effects
// and is applied identically on create and on full replacement update.
func Validate(fields []FieldDefinition) error {
	for _, f := range fields {
		if strings.TrimSpace(f.Name) == "" {
			return ErrFieldNameRequired
		}
		if f.FieldType == "" {
			return ErrFieldTypeRequired
		}
		if !f.FieldType.Valid() {
			return ErrFieldTypeInvalid
		}
		if f.FieldType.IsChoice() && len(f.Options) == 0 {
			return OptionsRequiredError{FieldType: f.FieldType}
		}
	}
	return nil
}
