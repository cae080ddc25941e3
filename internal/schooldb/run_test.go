package schooldb

import (
	"bytes"
	"context"
	"database/sql"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nsqlite/schooldb/internal/log"
	"github.com/nsqlite/schooldb/internal/schooldb/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var logger = log.NewLogger(io.Discard, slog.LevelDebug)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		DatabasePath: filepath.Join(t.TempDir(), "students.db"),
		Output:       config.OutputPlain,
		LogLevel:     "debug",
	}
}

// runAndClose executes a full run and closes the store like Run does.
func runAndClose(t *testing.T, conf config.Config) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	st, err := run(context.Background(), conf, logger, buf)
	if st != nil {
		require.NoError(t, st.Close())
	}
	return buf.String(), err
}

// dump returns every row of every table of the database at path.
func dump(t *testing.T, path string) map[string][][]any {
	t.Helper()
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	out := map[string][][]any{}
	for _, table := range []string{"Students", "Courses", "Enrollments"} {
		rows, err := db.Query("SELECT * FROM " + table + " ORDER BY id")
		require.NoError(t, err)
		cols, err := rows.Columns()
		require.NoError(t, err)

		out[table] = [][]any{}
		for rows.Next() {
			values := make([]any, len(cols))
			ptrs := make([]any, len(cols))
			for i := range values {
				ptrs[i] = &values[i]
			}
			require.NoError(t, rows.Scan(ptrs...))
			out[table] = append(out[table], values)
		}
		require.NoError(t, rows.Close())
	}
	return out
}

func TestRun(t *testing.T) {
	t.Run("EndState", func(t *testing.T) {
		conf := testConfig(t)
		out, err := runAndClose(t, conf)
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(out, "SQL with Go\n(1, 'Alice', 'Johnson', 20, 'alice@gmail.com', 'New York')\n"))
		assert.True(t, strings.HasSuffix(out, "Tables and data created successfully.\n"))
		assert.NotContains(t, out, "SQLite error")

		state := dump(t, conf.DatabasePath)
		assert.Len(t, state["Students"], 5)
		assert.Len(t, state["Courses"], 3)
		assert.Len(t, state["Enrollments"], 0)
	})

	t.Run("Idempotent", func(t *testing.T) {
		conf := testConfig(t)
		first, err := runAndClose(t, conf)
		require.NoError(t, err)
		firstState := dump(t, conf.DatabasePath)

		second, err := runAndClose(t, conf)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, firstState, dump(t, conf.DatabasePath))
	})

	t.Run("KeepExistingReportsDatabaseError", func(t *testing.T) {
		conf := testConfig(t)
		_, err := runAndClose(t, conf)
		require.NoError(t, err)

		conf.KeepExisting = true
		out, err := runAndClose(t, conf)
		require.NoError(t, err)

		assert.Contains(t, out, "SQLite error:")
		assert.Contains(t, out, "UNIQUE constraint failed: Students.email")
		assert.NotContains(t, out, "Tables and data created successfully.")
		assert.Len(t, dump(t, conf.DatabasePath)["Students"], 5)
	})

	t.Run("TableOutput", func(t *testing.T) {
		conf := testConfig(t)
		conf.Output = config.OutputTable
		out, err := runAndClose(t, conf)
		require.NoError(t, err)

		assert.Contains(t, out, "StudentName")
		assert.Contains(t, out, "Rows Affected")
		assert.Contains(t, out, "GROUP BY")
	})

	t.Run("Export", func(t *testing.T) {
		conf := testConfig(t)
		conf.ExportPath = filepath.Join(t.TempDir(), "school.xlsx")
		out, err := runAndClose(t, conf)
		require.NoError(t, err)

		assert.FileExists(t, conf.ExportPath)
		assert.Contains(t, out, "Tables exported to")
	})

	t.Run("ExportFailurePropagates", func(t *testing.T) {
		conf := testConfig(t)
		conf.ExportPath = filepath.Join(t.TempDir(), "missing", "dir", "school.xlsx")
		_, err := runAndClose(t, conf)
		assert.ErrorContains(t, err, "failed to save workbook")

		// The lesson was committed before the export ran.
		assert.Len(t, dump(t, conf.DatabasePath)["Students"], 5)
	})

	t.Run("OpenFailurePropagates", func(t *testing.T) {
		conf := testConfig(t)
		conf.DatabasePath = filepath.Join(t.TempDir(), "missing", "students.db")
		out, err := runAndClose(t, conf)
		assert.ErrorContains(t, err, "error opening database")
		assert.Equal(t, "SQL with Go\n", out)
	})
}
