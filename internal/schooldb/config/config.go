package config

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/alexflint/go-arg"
	"github.com/nsqlite/schooldb/internal/version"
)

const (
	OutputPlain = "plain"
	OutputTable = "table"
)

// Config represents the configuration for schooldb.
type Config struct {
	DatabasePath string `arg:"--database-path,env:SCHOOLDB_DATABASE_PATH" help:"SQLite database file" default:"students.db"`
	KeepExisting bool   `arg:"--keep-existing,env:SCHOOLDB_KEEP_EXISTING" help:"Keep the database file found at startup. Without this flag the file is DELETED and recreated on every run" default:"false"`
	Output       string `arg:"--output,env:SCHOOLDB_OUTPUT" help:"Output style (plain, table)" default:"plain"`
	ExportPath   string `arg:"--export-path,env:SCHOOLDB_EXPORT_PATH" help:"Write the final tables to this .xlsx workbook"`
	Shell        bool   `arg:"--shell,env:SCHOOLDB_SHELL" help:"Open an interactive SQL shell after the run" default:"false"`
	LogLevel     string `arg:"--log-level,env:SCHOOLDB_LOG_LEVEL" help:"Log level for the JSON logs written to stderr (debug, info, warn, error)" default:"warn"`
}

func (Config) Version() string {
	return fmt.Sprintf("%s\n", version.CLIVersion())
}

// MustParse parses and validates the configuration from the command
// line arguments. It returns a Config struct or exits the program
// with an error.
func MustParse(args []string) Config {
	cfg := Config{}

	parser, err := arg.NewParser(
		arg.Config{},
		&cfg,
	)
	if err != nil {
		log.Fatal(err)
	}
	parser.MustParse(args[1:])

	if err := Validate(cfg); err != nil {
		log.Fatal(err)
	}

	return cfg
}

// Validate checks every option that go-arg cannot check by itself.
func Validate(cfg Config) error {
	if strings.TrimSpace(cfg.DatabasePath) == "" {
		return errors.New("database path is required")
	}
	if err := validateOutput(cfg.Output); err != nil {
		return err
	}
	if err := validateLogLevel(cfg.LogLevel); err != nil {
		return err
	}
	return validateExportPath(cfg.ExportPath)
}

// validateOutput validates if output is a known output style.
func validateOutput(output string) error {
	return oneOf("output style", output, []string{OutputPlain, OutputTable})
}

// validateLogLevel validates if level is a known log level.
func validateLogLevel(level string) error {
	return oneOf("log level", level, []string{"debug", "info", "warn", "error"})
}

// validateExportPath validates if path is empty or points to an .xlsx file.
func validateExportPath(path string) error {
	if path == "" {
		return nil
	}
	if strings.ToLower(filepath.Ext(path)) != ".xlsx" {
		return errors.New("invalid export path, the file must have the .xlsx extension")
	}
	return nil
}

func oneOf(name string, value string, valid []string) error {
	for _, v := range valid {
		if value == v {
			return nil
		}
	}

	return fmt.Errorf(
		"invalid %s, valid values are: %s",
		name, strings.Join(valid, ", "),
	)
}
