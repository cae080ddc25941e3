package schema

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/mattn/go-sqlite3"
	"github.com/nsqlite/schooldb/internal/log"
	"github.com/nsqlite/schooldb/internal/model"
	"github.com/nsqlite/schooldb/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(context.Background(), store.Config{
		Logger:   log.NewLogger(io.Discard, slog.LevelError),
		Path:     filepath.Join(t.TempDir(), "students.db"),
		Recreate: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, Create(context.Background(), st))
	return st
}

func count(t *testing.T, st *store.Store, table string) int64 {
	t.Helper()
	res, err := st.Query(context.Background(), "SELECT count(*) FROM "+table)
	require.NoError(t, err)
	return res.Values[0][0].(int64)
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("AllTables", func(t *testing.T) {
		st := newStore(t)
		res, err := st.Query(ctx, "SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY rowid")
		require.NoError(t, err)

		names := []string{}
		for _, row := range res.Values {
			names = append(names, row[0].(string))
		}
		assert.Equal(t, Tables, names)
	})

	t.Run("Idempotent", func(t *testing.T) {
		st := newStore(t)
		assert.NoError(t, Create(ctx, st))
	})
}

func TestConstraints(t *testing.T) {
	ctx := context.Background()
	alice := model.Student{Name: "Alice", Surname: "Johnson", Age: 20, Email: "alice@gmail.com", City: "New York"}
	python := model.Course{Name: "Python", Instructor: "Dr. Anderson", Credit: 3}

	t.Run("UniqueEmail", func(t *testing.T) {
		st := newStore(t)
		_, err := st.Exec(ctx, model.InsertStudent, alice.Args()...)
		require.NoError(t, err)

		twin := alice
		twin.Name = "Alicia"
		_, err = st.Exec(ctx, model.InsertStudent, twin.Args()...)
		require.Error(t, err)

		var sqliteErr sqlite3.Error
		require.True(t, errors.As(err, &sqliteErr))
		assert.Equal(t, sqlite3.ErrConstraint, sqliteErr.Code)
		assert.Equal(t, int64(1), count(t, st, "Students"))
	})

	t.Run("NotNull", func(t *testing.T) {
		st := newStore(t)
		_, err := st.Exec(ctx, model.InsertCourse, "Go", nil, 3)
		assert.ErrorContains(t, err, "NOT NULL")
	})

	t.Run("EnrollmentRequiresExistingRows", func(t *testing.T) {
		st := newStore(t)
		_, err := st.Exec(ctx, model.InsertEnrollment, model.Enrollment{StudentID: 42, CourseID: 7}.Args()...)
		assert.ErrorContains(t, err, "FOREIGN KEY")
	})

	t.Run("CascadeOnStudentDelete", func(t *testing.T) {
		st := newStore(t)
		student, err := st.Exec(ctx, model.InsertStudent, alice.Args()...)
		require.NoError(t, err)
		course, err := st.Exec(ctx, model.InsertCourse, python.Args()...)
		require.NoError(t, err)
		_, err = st.Exec(ctx, model.InsertEnrollment, student.LastInsertID, course.LastInsertID)
		require.NoError(t, err)
		require.Equal(t, int64(1), count(t, st, "Enrollments"))

		_, err = st.Exec(ctx, "DELETE FROM Students WHERE id = ?", student.LastInsertID)
		require.NoError(t, err)
		assert.Equal(t, int64(0), count(t, st, "Enrollments"))
		assert.Equal(t, int64(1), count(t, st, "Courses"))
	})

	t.Run("CascadeOnCourseDelete", func(t *testing.T) {
		st := newStore(t)
		student, err := st.Exec(ctx, model.InsertStudent, alice.Args()...)
		require.NoError(t, err)
		course, err := st.Exec(ctx, model.InsertCourse, python.Args()...)
		require.NoError(t, err)
		_, err = st.Exec(ctx, model.InsertEnrollment, student.LastInsertID, course.LastInsertID)
		require.NoError(t, err)

		_, err = st.Exec(ctx, "DELETE FROM Courses WHERE id = ?", course.LastInsertID)
		require.NoError(t, err)
		assert.Equal(t, int64(0), count(t, st, "Enrollments"))
		assert.Equal(t, int64(1), count(t, st, "Students"))
	})
}
