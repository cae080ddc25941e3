package render

import (
	"bytes"
	"testing"

	"github.com/nsqlite/schooldb/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var students = store.ReadResult{
	Columns: []string{"id", "StudentName", "Surname"},
	Types:   []string{"INTEGER", "VARCHAR(255)", "VARCHAR(255)"},
	Values: [][]any{
		{int64(1), "Alice", "Johnson"},
		{int64(2), "Bob", "Smith"},
	},
}

func TestPlain(t *testing.T) {
	t.Run("Tuples", func(t *testing.T) {
		buf := &bytes.Buffer{}
		require.NoError(t, NewPlain(buf).Rows("", students, Tuples()))
		assert.Equal(t, "(1, 'Alice', 'Johnson')\n(2, 'Bob', 'Smith')\n", buf.String())
	})

	t.Run("FieldsWithBanner", func(t *testing.T) {
		buf := &bytes.Buffer{}
		require.NoError(t, NewPlain(buf).Rows("----- names -----", students, Fields(1, 2)))
		assert.Equal(t, "----- names -----\nAlice Johnson\nBob Smith\n", buf.String())
	})

	t.Run("List", func(t *testing.T) {
		buf := &bytes.Buffer{}
		require.NoError(t, NewPlain(buf).Rows("", students, List()))
		assert.Equal(t, "[(1, 'Alice', 'Johnson'), (2, 'Bob', 'Smith')]\n", buf.String())
	})

	t.Run("EmptyResultPrintsOnlyBanner", func(t *testing.T) {
		buf := &bytes.Buffer{}
		require.NoError(t, NewPlain(buf).Rows("--- none ---", store.ReadResult{}, Fields(0)))
		assert.Equal(t, "--- none ---\n", buf.String())
	})

	t.Run("WrittenIsSilent", func(t *testing.T) {
		buf := &bytes.Buffer{}
		require.NoError(t, NewPlain(buf).Written("insert", store.WriteResult{RowsAffected: 1}))
		assert.Empty(t, buf.String())
	})
}

func TestTable(t *testing.T) {
	t.Run("FieldsPickColumns", func(t *testing.T) {
		buf := &bytes.Buffer{}
		require.NoError(t, NewTable(buf).Rows("------ names ------", students, Fields(1)))

		out := buf.String()
		assert.Contains(t, out, "names")
		assert.NotContains(t, out, "-----")
		assert.Contains(t, out, "StudentName")
		assert.NotContains(t, out, "Surname")
		assert.Contains(t, out, "Alice")
		assert.Contains(t, out, "2 rows")
	})

	t.Run("TuplesShowAllColumns", func(t *testing.T) {
		buf := &bytes.Buffer{}
		require.NoError(t, NewTable(buf).Rows("", students, Tuples()))
		assert.Contains(t, buf.String(), "Surname")
		assert.Contains(t, buf.String(), "Smith")
	})

	t.Run("Written", func(t *testing.T) {
		buf := &bytes.Buffer{}
		require.NoError(t, NewTable(buf).Written("insert", store.WriteResult{RowsAffected: 1, LastInsertID: 6}))
		assert.Contains(t, buf.String(), "Rows Affected")
		assert.Contains(t, buf.String(), "insert")
	})
}

func TestRowCount(t *testing.T) {
	assert.Equal(t, "0 rows", rowCount(0))
	assert.Equal(t, "1 row", rowCount(1))
	assert.Equal(t, "12,345 rows", rowCount(12345))
	assert.Equal(t, "-1,000", intWithCommas(-1000))
}
