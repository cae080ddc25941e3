// Package model holds the rows of the school schema.
package model

// Student is a row of the Students table.
type Student struct {
	ID      int64  `yaml:"-"`
	Name    string `yaml:"name"`
	Surname string `yaml:"surname"`
	Age     int    `yaml:"age"`
	Email   string `yaml:"email"`
	City    string `yaml:"city"`
}

// Args returns the insert parameters in InsertStudent column order.
func (s Student) Args() []any {
	return []any{s.Name, s.Surname, s.Age, s.Email, s.City}
}

// Course is a row of the Courses table.
type Course struct {
	ID         int64  `yaml:"-"`
	Name       string `yaml:"name"`
	Instructor string `yaml:"instructor"`
	Credit     int    `yaml:"credit"`
}

// Args returns the insert parameters in InsertCourse column order.
func (c Course) Args() []any {
	return []any{c.Name, c.Instructor, c.Credit}
}

// Enrollment links a student to a course.
type Enrollment struct {
	ID        int64 `yaml:"-"`
	StudentID int64 `yaml:"studentId"`
	CourseID  int64 `yaml:"courseId"`
}

// Args returns the insert parameters in InsertEnrollment column order.
func (e Enrollment) Args() []any {
	return []any{e.StudentID, e.CourseID}
}

const (
	InsertStudent    = "INSERT INTO Students (StudentName, Surname, age, email, city) VALUES (?,?,?,?,?)"
	InsertCourse     = "INSERT INTO Courses (CourseName, instructor, credit) VALUES (?,?,?)"
	InsertEnrollment = "INSERT INTO Enrollments (student_id, course_id) VALUES (?,?)"
)
