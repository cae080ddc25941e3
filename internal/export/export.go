// Package export writes the school tables to an Excel workbook.
package export

import (
	"context"
	"errors"
	"fmt"

	"github.com/nsqlite/schooldb/internal/log"
	"github.com/nsqlite/schooldb/internal/store"
	"github.com/xuri/excelize/v2"
)

// defaultSheet is the sheet excelize creates with every new workbook.
const defaultSheet = "Sheet1"

// Workbook writes one sheet per table to path. Every sheet starts with a
// header row holding the column names.
func Workbook(
	ctx context.Context, st *store.Store, logger log.Logger, path string, tables []string,
) error {
	if len(tables) == 0 {
		return errors.New("at least one table is required")
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			logger.ErrorNs("export", "failed to close workbook", log.KV{"error": err.Error()})
		}
	}()

	for i, table := range tables {
		res, err := st.Query(ctx, fmt.Sprintf("SELECT * FROM %q", table))
		if err != nil {
			return fmt.Errorf("failed to read table %s: %w", table, err)
		}

		if i == 0 {
			if err := f.SetSheetName(defaultSheet, table); err != nil {
				return fmt.Errorf("failed to rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(table); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", table, err)
		}

		if err := writeSheet(f, table, res); err != nil {
			return err
		}

		logger.DebugNs("export", "sheet written", log.KV{
			"table": table,
			"rows":  len(res.Values),
		})
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	logger.InfoNs("export", "workbook saved", log.KV{"path": path})
	return nil
}

func writeSheet(f *excelize.File, sheet string, res store.ReadResult) error {
	header := make([]any, len(res.Columns))
	for i, c := range res.Columns {
		header[i] = c
	}
	if err := setRow(f, sheet, 1, header); err != nil {
		return err
	}

	for i, row := range res.Values {
		if err := setRow(f, sheet, i+2, cellValues(row)); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, rowNum int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("failed to compute cell name: %w", err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d of %s: %w", rowNum, sheet, err)
	}
	return nil
}

// cellValues converts blobs to strings; excelize writes the other driver
// types as they are.
func cellValues(row []any) []any {
	out := make([]any, len(row))
	for i, v := range row {
		if b, ok := v.([]byte); ok {
			out[i] = string(b)
			continue
		}
		out[i] = v
	}
	return out
}
