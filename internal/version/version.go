package version

import "fmt"

const (
	Version = "v0.1.0"

	colorReset    = "\033[0m"
	colorCyanBold = "\033[36;1m"
)

// Banner returns the first line printed on every run.
func Banner() string {
	return "SQL with Go"
}

// CLIVersion returns the colored version text printed by --version.
func CLIVersion() string {
	return fmt.Sprintf(
		"%sSchoolDB %s%s\nA walk through basic SQL on an embedded SQLite database",
		colorCyanBold, Version, colorReset,
	)
}
