package record

import (
	"fmt"
	"strconv"
	"strings"
)

// Value is a literal converted to its field's kind.
type Value struct {
	Kind Kind

	str string
	i64 int64
	f64 float64
	b   bool
}

func StringValue(s string) Value { return Value{Kind: KindString, str: s} }
func IntValue(i int64) Value     { return Value{Kind: KindInt, i64: i} }
func FloatValue(f float64) Value { return Value{Kind: KindFloat, f64: f} }
func BooleanValue(b bool) Value  { return Value{Kind: KindBoolean, b: b} }

// ParseValue converts literal text to a Value of kind k. The whole text must be consumed.
func ParseValue(text string, k Kind) (Value, error) {
	switch k {
	case KindString:
		if text == "" {
			return Value{}, fmt.Errorf("empty string literal")
		}
		return StringValue(text), nil
	case KindInt:
		i, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return Value{}, fmt.Errorf("not an INT literal: %q", text)
		}
		return IntValue(i), nil
	case KindFloat:
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Value{}, fmt.Errorf("not a FLOAT literal: %q", text)
		}
		return FloatValue(f), nil
	case KindBoolean:
		switch strings.ToUpper(text) {
		case "TRUE":
			return BooleanValue(true), nil
		case "FALSE":
			return BooleanValue(false), nil
		}
		return Value{}, fmt.Errorf("not a BOOLEAN literal: %q", text)
	default:
		return Value{}, fmt.Errorf("%w: %v", ErrInvalidKind, k)
	}
}

// IsValidLiteral reports whether text is acceptable for a field of kind k.
func IsValidLiteral(text string, k Kind) bool {
	_, err := ParseValue(text, k)
	return err == nil
}

// Native returns the Go value: string, int64, float64 or bool.
func (v Value) Native() any {
	switch v.Kind {
	case KindString:
		return v.str
	case KindInt:
		return v.i64
	case KindFloat:
		return v.f64
	case KindBoolean:
		return v.b
	default:
		return nil
	}
}

func (v Value) String() string {
	switch v.Kind {
	case KindString:
		return v.str
	case KindInt:
		return strconv.FormatInt(v.i64, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f64, 'g', -1, 64)
	case KindBoolean:
		return strconv.FormatBool(v.b)
	default:
		return ""
	}
}
