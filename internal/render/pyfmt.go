package render

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// The plain renderer prints values the way the classic sqlite3 tutorial
// scripts do with print(): str() for bare fields, repr() inside tuples and
// lists.

// str formats a single value as a bare field.
func str(v any) string {
	switch val := v.(type) {
	case nil:
		return "None"
	case string:
		return val
	case []byte:
		return repr(val)
	default:
		return repr(v)
	}
}

// repr formats a value as it appears inside a tuple.
func repr(v any) string {
	switch val := v.(type) {
	case nil:
		return "None"
	case string:
		return quote(val)
	case []byte:
		return "b" + quote(string(val))
	case bool:
		if val {
			return "True"
		}
		return "False"
	case int64:
		return strconv.FormatInt(val, 10)
	case int:
		return strconv.Itoa(val)
	case float64:
		return formatFloat(val)
	case time.Time:
		return quote(val.Format("2006-01-02 15:04:05"))
	default:
		return fmt.Sprint(val)
	}
}

// quote wraps s in single quotes, or double quotes when s contains a single
// quote and no double quote.
func quote(s string) string {
	q := "'"
	if strings.Contains(s, "'") && !strings.Contains(s, `"`) {
		q = `"`
	}

	b := strings.Builder{}
	b.WriteString(q)
	for _, r := range s {
		switch {
		case r == '\\':
			b.WriteString(`\\`)
		case string(r) == q:
			b.WriteString(`\` + q)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteString(q)
	return b.String()
}

// formatFloat uses the shortest representation and always keeps a decimal
// part, so 20.0 stays "20.0" and 20.4 stays "20.4".
func formatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}

	abs := math.Abs(f)
	if abs != 0 && (abs >= 1e16 || abs < 1e-4) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// tuple formats values as a tuple literal.
func tuple(values []any) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = repr(v)
	}
	if len(parts) == 1 {
		return "(" + parts[0] + ",)"
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// list formats rows as a list of tuples.
func list(rows [][]any) string {
	parts := make([]string, len(rows))
	for i, row := range rows {
		parts[i] = tuple(row)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// fields formats the picked columns of row separated by a space.
func fields(row []any, columns []int) string {
	parts := make([]string, 0, len(columns))
	for _, c := range columns {
		if c < len(row) {
			parts = append(parts, str(row[c]))
		}
	}
	return strings.Join(parts, " ")
}
