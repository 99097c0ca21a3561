package content

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownField is returned when a template names a field absent from the values.
	ErrUnknownField = errors.New("unknown template field")
	// ErrMalformedTemplate is returned for unbalanced braces or empty field names.
	ErrMalformedTemplate = errors.New("malformed template")
)

// Format expands {name} placeholders in tmpl from values. Literal braces are
// written as {{ and }}. Format specs and conversions are not supported.
func Format(tmpl string, values map[string]any) (string, error) {
	var b strings.Builder
	b.Grow(len(tmpl))

	for i := 0; i < len(tmpl); i++ {
		c := tmpl[i]
		switch c {
		case '{':
			if i+1 < len(tmpl) && tmpl[i+1] == '{' {
				b.WriteByte('{')
				i++
				continue
			}
			end := strings.IndexByte(tmpl[i+1:], '}')
			if end < 0 {
				return "", fmt.Errorf("%w: unclosed '{' at offset %d", ErrMalformedTemplate, i)
			}
			name := tmpl[i+1 : i+1+end]
			if name == "" || strings.ContainsAny(name, "{:!") {
				return "", fmt.Errorf("%w: invalid field %q", ErrMalformedTemplate, name)
			}
			v, ok := values[name]
			if !ok {
				return "", fmt.Errorf("%w: %s", ErrUnknownField, name)
			}
			b.WriteString(formatValue(v))
			i += end + 1
		case '}':
			if i+1 < len(tmpl) && tmpl[i+1] == '}' {
				b.WriteByte('}')
				i++
				continue
			}
			return "", fmt.Errorf("%w: single '}' at offset %d", ErrMalformedTemplate, i)
		default:
			b.WriteByte(c)
		}
	}
	return b.String(), nil
}

func formatValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case fmt.Stringer:
		return val.String()
	case nil:
		return ""
	default:
		return fmt.Sprint(val)
	}
}
