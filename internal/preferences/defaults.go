package preferences

import (
	_ "embed"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

var defaults = mustParseDefaults(defaultsYAML)

func mustParseDefaults(data []byte) Preferences {
	var p Preferences
	if err := yaml.Unmarshal(data, &p); err != nil {
		// Embedded file, so this only fails on a broken build.
		panic("failed to unmarshal embedded defaults.yaml: " + err.Error())
	}
	return p
}

// Defaults returns the resolved preferences of a user with no stored overrides.
func Defaults() Preferences {
	return defaults
}

// NewResponse builds a response from a partial record, filling every missing
// field with its default.
func NewResponse(partial *Update) Response {
	return MapPreferences(Merge(Defaults(), partial))
}
