package utils

import "fmt"

// ToString renders any value as a string, for redis keys and log fields.
func ToString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	if s, ok := v.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%v", v)
}
