package logging

import (
	"fmt"
	"sort"
	"strings"
)

const clipLimit = 240

// Truncate flattens and clips a value for single-line log fields. Script
// output lines can be arbitrarily long; logs stay readable.
func Truncate(value string) string {
	value = strings.TrimSpace(value)
	value = strings.ReplaceAll(value, "\n", " ")
	value = strings.ReplaceAll(value, "\r", " ")
	if value == "" {
		return "<empty>"
	}
	if len(value) > clipLimit {
		return value[:clipLimit] + "..."
	}
	return value
}

// FormatEventLine renders an event as one plain text line for dumb
// terminals and tests.
func FormatEventLine(event Event) string {
	ts := event.Time.Format("15:04:05")
	level := strings.ToUpper(event.Level.String())
	fields := ""
	if len(event.Fields) > 0 {
		keys := orderedFieldKeys(event.Fields)
		parts := make([]string, 0, len(keys))
		for _, key := range keys {
			parts = append(parts, fmt.Sprintf("%s=%s", key, formatFieldValue(event.Fields[key])))
		}
		fields = " " + strings.Join(parts, " ")
	}
	return fmt.Sprintf("%s [%s] %s%s\n", ts, level, event.Message, fields)
}

func formatFieldValue(value any) string {
	switch v := value.(type) {
	case nil:
		return "<nil>"
	case error:
		return v.Error()
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprintf("%v", value)
	}
}

func orderedFieldKeys(fields map[string]any) []string {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
