package terminal

import (
	"fmt"
	"strings"
)

// set of terminal flags
const (
	FlagOutputFormat      = "output-format"
	FlagOutputFormatShort = "f"
	FlagOutputFormatUsage = `Set the output format, available options: ["json"]`

	FlagOutputTarget      = "output-target"
	FlagOutputTargetShort = "o"
	FlagOutputTargetUsage = "Write output to the specified filepath"

	FlagDisableColors      = "disable-colors"
	FlagDisableColorsUsage = "Disable all output colors"
)

// OutputFormat is the terminal output format
type OutputFormat string

func (of OutputFormat) String() string { return string(of) }

// Type returns the OutputFormat type
func (of OutputFormat) Type() string { return "string" }

// Set validates and sets the output format value
func (of *OutputFormat) Set(val string) error {
	outputFormat := OutputFormat(val)

	if !isValidOutputFormat(outputFormat) {
		return fmt.Errorf("unsupported value, use one of [%s] instead", strings.Join([]string{
			string(OutputFormatJSON),
		}, ", "))
	}

	*of = outputFormat
	return nil
}

// set of supported terminal output formats
const (
	OutputFormatText OutputFormat = "" // zero-valued to be flag's default
	OutputFormatJSON OutputFormat = "json"
)

func isValidOutputFormat(outputFormat OutputFormat) bool {
	switch outputFormat {
	case
		OutputFormatJSON,
		OutputFormatText:
		return true
	}
	return false
}
