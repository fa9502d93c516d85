package ingest

import "fmt"

// Process exit codes. Config, template and range failures get distinct codes
// so calling scripts can tell a bad configuration apart from a runtime
// ingestion failure.
const (
	ExitSuccess  = 0
	ExitRuntime  = 1
	ExitConfig   = 2
	ExitTemplate = 3
	ExitRange    = 4
)

// ConfigError reports a malformed or semantically invalid ingestion
// configuration. It is not recoverable for the current run.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error: %s: %s", e.Field, e.Reason)
}

// ExitCode implements the exitCoder interface
func (e *ConfigError) ExitCode() int { return ExitConfig }

// TemplateError reports a file path template referencing an undefined
// placeholder
type TemplateError struct {
	Template    string
	Placeholder string
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("template error: unknown placeholder {%s} in %q", e.Placeholder, e.Template)
}

// ExitCode implements the exitCoder interface
func (e *TemplateError) ExitCode() int { return ExitTemplate }

// RangeError reports degenerate bounds, where min >= max on some axis
type RangeError struct {
	Axis string
	Min  float64
	Max  float64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("range error: %s bounds are degenerate: min %v >= max %v", e.Axis, e.Min, e.Max)
}

// ExitCode implements the exitCoder interface
func (e *RangeError) ExitCode() int { return ExitRange }

type exitCoder interface {
	ExitCode() int
}

// ExitCodeForError maps an error to the planner's exit code taxonomy.
// Unrecognized errors map to ExitRuntime.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if coder, ok := err.(exitCoder); ok {
		return coder.ExitCode()
	}
	return ExitRuntime
}
