// Package render prints query and statement results to the console.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/nsqlite/schooldb/internal/store"
	"github.com/nsqlite/schooldb/internal/styled"
)

// Mode selects how the rows of a result are printed.
type Mode int

const (
	// ModeFields prints the picked columns of every row on its own line.
	ModeFields Mode = iota
	// ModeTuples prints every row as a tuple on its own line.
	ModeTuples
	// ModeList prints all rows on one line as a list of tuples.
	ModeList
)

// Layout describes how a result is printed.
type Layout struct {
	Mode    Mode
	Columns []int
}

// Fields prints the given column indexes of every row.
func Fields(columns ...int) Layout {
	return Layout{Mode: ModeFields, Columns: columns}
}

// Tuples prints whole rows.
func Tuples() Layout {
	return Layout{Mode: ModeTuples}
}

// List prints the whole result on one line.
func List() Layout {
	return Layout{Mode: ModeList}
}

// Renderer prints the results of the lesson steps.
type Renderer interface {
	// Rows prints a read result. banner may be empty.
	Rows(banner string, res store.ReadResult, layout Layout) error
	// Written reports a write statement.
	Written(name string, res store.WriteResult) error
}

// Plain prints results in the classic print() transcript format.
type Plain struct {
	out io.Writer
}

// NewPlain returns a Plain renderer writing to out.
func NewPlain(out io.Writer) *Plain {
	return &Plain{out: out}
}

func (p *Plain) Rows(banner string, res store.ReadResult, layout Layout) error {
	lines := []string{}
	if banner != "" {
		lines = append(lines, banner)
	}

	switch layout.Mode {
	case ModeTuples:
		for _, row := range res.Values {
			lines = append(lines, tuple(row))
		}
	case ModeList:
		lines = append(lines, list(res.Values))
	default:
		for _, row := range res.Values {
			lines = append(lines, fields(row, layout.Columns))
		}
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(p.out, line); err != nil {
			return err
		}
	}
	return nil
}

// Written prints nothing, the transcript only shows reads.
func (p *Plain) Written(string, store.WriteResult) error {
	return nil
}

// Table prints every result as a go-pretty table.
type Table struct {
	out io.Writer
}

// NewTable returns a Table renderer writing to out.
func NewTable(out io.Writer) *Table {
	return &Table{out: out}
}

func (t *Table) Rows(banner string, res store.ReadResult, layout Layout) error {
	tw := styled.NewTableWriter()
	if title := bannerTitle(banner); title != "" {
		tw.SetTitle(title)
	}

	columns := layout.Columns
	if layout.Mode != ModeFields {
		columns = make([]int, len(res.Columns))
		for i := range columns {
			columns[i] = i
		}
	}

	header := table.Row{}
	for _, c := range columns {
		if c < len(res.Columns) {
			header = append(header, res.Columns[c])
		}
	}
	tw.AppendHeader(header)

	for _, values := range res.Values {
		row := table.Row{}
		for _, c := range columns {
			if c < len(values) {
				row = append(row, str(values[c]))
			}
		}
		tw.AppendRow(row)
	}

	tw.AppendFooter(table.Row{rowCount(len(res.Values))})

	_, err := fmt.Fprintln(t.out, tw.Render())
	return err
}

func (t *Table) Written(name string, res store.WriteResult) error {
	tw := styled.NewTableWriter()
	tw.AppendHeader(table.Row{"Statement", "Rows Affected", "Last Insert ID"})
	tw.AppendRow(table.Row{name, res.RowsAffected, res.LastInsertID})

	_, err := fmt.Fprintln(t.out, tw.Render())
	return err
}

// bannerTitle strips the dash rulers around a banner.
func bannerTitle(banner string) string {
	return strings.TrimSpace(strings.Trim(banner, "- "))
}

func rowCount(n int) string {
	if n == 1 {
		return "1 row"
	}
	return intWithCommas(n) + " rows"
}

// intWithCommas groups the digits of i by thousands.
//
//	12345 -> "12,345"
func intWithCommas(i int) string {
	if i < 0 {
		return "-" + intWithCommas(-i)
	}
	if i < 1000 {
		return fmt.Sprintf("%d", i)
	}
	return intWithCommas(i/1000) + "," + fmt.Sprintf("%03d", i%1000)
}
