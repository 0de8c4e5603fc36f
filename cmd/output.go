package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

func outputJSON(data any) error {
	return writeJSON(os.Stdout, data)
}

func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}
	return nil
}

func writeYAML(w io.Writer, data any) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("encoding YAML output: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("encoding YAML output: %w", err)
	}
	return nil
}

// writeFormatted writes data as JSON or YAML.
func writeFormatted(w io.Writer, format string, data any) error {
	switch format {
	case "json":
		return writeJSON(w, data)
	case "yaml", "yml":
		return writeYAML(w, data)
	default:
		return fmt.Errorf("unsupported output format %q (use json or yaml)", format)
	}
}
