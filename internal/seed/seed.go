// Package seed inserts the fixed sample students and courses.
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"

	"github.com/nsqlite/schooldb/internal/log"
	"github.com/nsqlite/schooldb/internal/model"
	"github.com/nsqlite/schooldb/internal/store"
	"gopkg.in/yaml.v3"
)

//go:embed data.yaml
var fixtures []byte

// Data is the sample data inserted on every run.
type Data struct {
	Students []model.Student `yaml:"students"`
	Courses  []model.Course  `yaml:"courses"`
}

// Load decodes the embedded fixtures. Unknown keys are rejected so a typo in
// data.yaml fails loudly instead of seeding empty columns.
func Load() (Data, error) {
	return decode(fixtures)
}

func decode(raw []byte) (Data, error) {
	data := Data{}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&data); err != nil {
		return Data{}, fmt.Errorf("failed to decode seed data: %w", err)
	}
	return data, nil
}

// Insert bulk-inserts the students, then the courses, in fixture order.
func Insert(ctx context.Context, st *store.Store, logger log.Logger, data Data) error {
	students := make([][]any, 0, len(data.Students))
	for _, s := range data.Students {
		students = append(students, s.Args())
	}
	res, err := st.ExecMany(ctx, model.InsertStudent, students)
	if err != nil {
		return fmt.Errorf("failed to insert students: %w", err)
	}
	logger.DebugNs("seed", "students inserted", log.KV{"rows": res.RowsAffected})

	courses := make([][]any, 0, len(data.Courses))
	for _, c := range data.Courses {
		courses = append(courses, c.Args())
	}
	res, err = st.ExecMany(ctx, model.InsertCourse, courses)
	if err != nil {
		return fmt.Errorf("failed to insert courses: %w", err)
	}
	logger.DebugNs("seed", "courses inserted", log.KV{"rows": res.RowsAffected})

	return nil
}
