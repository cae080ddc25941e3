package lesson

import "github.com/nsqlite/schooldb/internal/render"

// Step is one statement of the lesson.
type Step struct {
	// Name identifies the step in logs and error messages.
	Name string
	// Banner is printed before the result. Empty means no banner.
	Banner string
	Query  string
	Layout render.Layout
}

// Queries returns the read-only demonstrations in the order they run.
func Queries() []Step {
	return []Step{
		{
			Name:   "select all students",
			Query:  "SELECT * FROM Students",
			Layout: render.Tuples(),
		},
		{
			Name:   "select student names",
			Query:  "SELECT StudentName FROM Students",
			Layout: render.Fields(0),
		},
		{
			Name:   "students aged 20",
			Banner: "--------------------------- age = 20 -----------------",
			Query:  "SELECT StudentName, Surname FROM Students WHERE age = 20",
			Layout: render.Fields(0, 1),
		},
		{
			Name:   "students ordered by age",
			Banner: "--------------------------- ORDER BY age -----------------",
			Query:  "SELECT * FROM Students ORDER BY age",
			Layout: render.Fields(0, 1),
		},
		{
			Name:   "all courses",
			Banner: "--------------------------- courses -----------------",
			Query:  "SELECT * FROM Courses",
			Layout: render.Fields(0, 1),
		},
		{
			Name:   "course names and instructors",
			Banner: "---------------------------Course Teacher and course name--------------------",
			Query:  "SELECT CourseName, instructor FROM COURSES",
			Layout: render.Fields(0, 1),
		},
		{
			Name:   "students from New York",
			Banner: "--------------------------- only istanbul -----------------",
			Query:  "SELECT * FROM Students WHERE city = 'New York'",
			Layout: render.Fields(0, 1, 2),
		},
		{
			Name:   "courses of Dr. Anderson",
			Banner: "--------------------------- only Dr. Anderson Courses -----------------",
			Query:  "SELECT CourseName, instructor, credit FROM COURSES where instructor = 'Dr. Anderson'",
			Layout: render.Fields(0, 1),
		},
		{
			Name:   "students whose name starts with A",
			Banner: "--------------------------- only start name with a -----------------",
			Query:  "SELECT StudentName, Surname FROM Students Where StudentName LIKE 'A%'",
			Layout: render.Fields(0, 1),
		},
		{
			Name:   "courses with at least 3 credits",
			Banner: "--------------------------- only credits upper than 3 -----------------",
			Query:  "SELECT CourseName FROM COURSES where credit >= 3",
			Layout: render.Fields(0),
		},
		{
			Name:   "students sorted by name",
			Banner: "--------------------------- sort students -----------------",
			Query:  "SELECT StudentName, Surname FROM Students ORDER BY StudentName",
			Layout: render.Fields(0, 1),
		},
		{
			Name:   "students older than 20 sorted by name",
			Banner: "--------------------------- sort students but they should be 20+ -----------------",
			Query:  "SELECT StudentName, Surname FROM Students WHERE age > 20 ORDER BY StudentName ",
			Layout: render.Fields(0, 1),
		},
	}
}

// Mutations returns the write demonstrations. The sixth student is inserted,
// updated and deleted again, so the run leaves Students unchanged.
func Mutations() []Step {
	return []Step{
		{
			Name: "insert Frank Miller",
			Query: `
				INSERT INTO Students (StudentName, Surname, age, email, city)
				VALUES ('Frank', 'Miller', 23, 'frank@gmail.com', 'Miami')
			`,
		},
		{
			Name:  "update age of student 6",
			Query: "UPDATE Students SET age = 24 WHERE id = 6",
		},
		{
			Name:  "delete student 6",
			Query: "DELETE FROM Students WHERE id = 6",
		},
	}
}

// Aggregates returns the aggregate demonstrations.
func Aggregates() []Step {
	return []Step{
		{
			Name:   "count students",
			Banner: "--------------COUNT--------------",
			Query:  "SELECT count(*) FROM Students",
			Layout: render.Fields(0),
		},
		{
			Name:   "average age",
			Banner: "--------------AVARAGE--------------",
			Query:  "SELECT AVG(age) FROM Students",
			Layout: render.Fields(0),
		},
		{
			Name:   "max and min age",
			Banner: "--------------MAX-MIN--------------",
			Query:  "SELECT MAX(age), MIN(age) FROM Students",
			Layout: render.Fields(0, 1),
		},
		{
			Name:   "students per city",
			Banner: "--------------GROUP BY--------------",
			Query:  "SELECT city, COUNT(*) FROM Students GROUP BY city",
			Layout: render.List(),
		},
	}
}
