// Package assets holds the preset message templates seeded into a guild
// the first time its configuration is saved.
package assets

import (
	_ "embed"
)

//go:embed presets/english_default.txt
var englishDefault string

//go:embed presets/german_default.txt
var germanDefault string

// Preset is a built-in template seeded for new guilds.
type Preset struct {
	Name    string
	Content string
}

// Presets returns the built-in templates in seed order. The first entry
// becomes the guild's default template.
func Presets() []Preset {
	return []Preset{
		{Name: "English Default", Content: englishDefault},
		{Name: "German Default", Content: germanDefault},
	}
}
