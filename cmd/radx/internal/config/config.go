// Package config holds the global CLI flags shared by every radx subcommand.
package config

// OutputFormat selects how tabular command output (e.g. `radx dicom dump`) is rendered.
type OutputFormat string

const (
	// FormatTable renders output as an aligned, human-readable table.
	FormatTable OutputFormat = "table"
	// FormatJSON renders output as a JSON array.
	FormatJSON OutputFormat = "json"
	// FormatCSV renders output as comma-separated values.
	FormatCSV OutputFormat = "csv"
)

// GlobalConfig holds flags available to every radx subcommand, embedded into
// the root CLI struct so Kong populates it from global flags.
type GlobalConfig struct {
	Debug     bool         `name:"debug" help:"Enable debug logging and caller reporting"`
	Pretty    bool         `name:"pretty" default:"true" negatable:"" help:"Use human-readable (non-JSON) log output"`
	LogLevel  string       `name:"log-level" default:"info" enum:"trace,debug,info,warn,error,fatal" help:"Minimum log level"`
	Format    OutputFormat `name:"format" default:"table" enum:"table,json,csv" help:"Output format for tabular commands"`
	OutputDir string       `name:"output-dir" default:"." help:"Directory to write extracted artifacts to"`
}
