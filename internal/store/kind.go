package store

import (
	"strings"

	"github.com/orsinium-labs/enum"
)

// StatementKind tells whether a statement returns rows or changes the
// database.
type StatementKind = enum.Member[string]

var (
	KindRead  = StatementKind{Value: "read"}
	KindWrite = StatementKind{Value: "write"}
)

// readPrefixes are the leading keywords of statements that produce rows.
var readPrefixes = []string{"select", "with", "pragma", "explain", "values"}

// DetectStatementKind classifies query by its first keyword. Anything that
// is not a known row-producing statement is a write.
func DetectStatementKind(query string) StatementKind {
	trimmed := strings.ToLower(strings.TrimSpace(query))
	trimmed = strings.TrimLeft(trimmed, "(")

	for _, prefix := range readPrefixes {
		if strings.HasPrefix(trimmed, prefix) {
			return KindRead
		}
	}
	return KindWrite
}
