package shell

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/nsqlite/schooldb/internal/styled"
	"github.com/nsqlite/schooldb/internal/store"
)

var identifierRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func cmdQuery(s *Shell, input string) {
	tw := styled.NewTableWriter()

	switch store.DetectStatementKind(input) {
	case store.KindRead:
		res, err := s.store.Query(s.ctx, input)
		if err != nil {
			appendError(tw, err)
			break
		}

		header := table.Row{}
		for _, col := range res.Columns {
			header = append(header, col)
		}
		tw.AppendHeader(header)
		for _, values := range res.Values {
			tw.AppendRow(values)
		}

	default:
		res, err := s.store.Exec(s.ctx, input)
		if err != nil {
			appendError(tw, err)
			break
		}
		tw.AppendHeader(table.Row{"-", "Rows Affected", "Last Insert ID"})
		tw.AppendRow(table.Row{"OK", res.RowsAffected, res.LastInsertID})
	}

	fmt.Fprintln(s.out, tw.Render())
}

func cmdCount(s *Shell, tableName string) {
	if !identifierRe.MatchString(tableName) {
		fmt.Fprintln(s.out, "Usage: .count [table_name]")
		return
	}
	cmdQuery(s, fmt.Sprintf("SELECT COUNT(*) AS count FROM %s", tableName))
}

func appendError(tw table.Writer, err error) {
	tw.AppendHeader(table.Row{"Error"})
	tw.AppendRow(table.Row{cleanError(err.Error())})
}

// cleanError removes the wrapping added by the store so only the SQLite
// message is left.
func cleanError(errStr string) string {
	errStr = strings.ReplaceAll(errStr, "failed to execute read query:", "")
	errStr = strings.ReplaceAll(errStr, "failed to execute write query:", "")
	return strings.TrimSpace(errStr)
}
