// Package schema creates the Students, Courses and Enrollments tables.
package schema

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/nsqlite/schooldb/internal/store"
)

//go:embed schema.sql
var ddl string

// Tables lists the table names in creation order.
var Tables = []string{"Students", "Courses", "Enrollments"}

// Create runs the schema DDL. Existing tables are left untouched.
func Create(ctx context.Context, st *store.Store) error {
	if err := st.ExecScript(ctx, ddl); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}
