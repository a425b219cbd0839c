package code

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// SyntaxStyle is the expanded form of a token style.
type SyntaxStyle struct {
	Color          string `json:"color,omitempty"`
	FontStyle      string `json:"fontStyle,omitempty"`
	FontWeight     string `json:"fontWeight,omitempty"`
	TextDecoration string `json:"textDecoration,omitempty"`
}

// SyntaxValue is a token style declared either as a bare color or as a
// SyntaxStyle. Style always returns the expanded form.
type SyntaxValue struct {
	style SyntaxStyle
	bare  bool
	set   bool
}

// Color declares a token style with only a color.
func Color(c string) SyntaxValue {
	return SyntaxValue{style: SyntaxStyle{Color: c}, bare: true, set: true}
}

// Styled declares a token style with font and decoration settings.
func Styled(s SyntaxStyle) SyntaxValue {
	return SyntaxValue{style: s, set: true}
}

// Style returns the normalized style.
func (v SyntaxValue) Style() SyntaxStyle {
	return v.style
}

// IsBare reports whether the value was declared as a bare color.
func (v SyntaxValue) IsBare() bool {
	return v.bare
}

// IsZero reports whether the value was never declared.
func (v SyntaxValue) IsZero() bool {
	return !v.set
}

func (v SyntaxValue) MarshalJSON() ([]byte, error) {
	if !v.set {
		return []byte("null"), nil
	}
	if v.bare {
		return json.Marshal(v.style.Color)
	}
	return json.Marshal(v.style)
}

func (v *SyntaxValue) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	switch {
	case bytes.Equal(trimmed, []byte("null")):
		*v = SyntaxValue{}
		return nil
	case len(trimmed) > 0 && trimmed[0] == '"':
		var c string
		if err := json.Unmarshal(trimmed, &c); err != nil {
			return err
		}
		*v = Color(c)
		return nil
	case len(trimmed) > 0 && trimmed[0] == '{':
		var s SyntaxStyle
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*v = Styled(s)
		return nil
	default:
		return fmt.Errorf("syntax style must be a color string or an object, got %s", trimmed)
	}
}
