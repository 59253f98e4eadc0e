// Package i18n loads message catalogs that translate user-facing markup text.
package i18n

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/vidfriends/videoembed/internal/embed"
)

// Catalog maps source messages to translations. A nil or empty Catalog
// returns messages unchanged.
type Catalog struct {
	Locale   string            `toml:"locale"`
	Messages map[string]string `toml:"messages"`
}

// Load reads a TOML catalog such as:
//
//	locale = "fr"
//
//	[messages]
//	"Sorry, video does not exists" = "Désolé, cette vidéo n'existe pas"
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load message catalog: %w", err)
	}
	c, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("load message catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes a catalog from TOML text. Unknown keys are rejected.
func Parse(data string) (*Catalog, error) {
	var c Catalog
	md, err := toml.Decode(data, &c)
	if err != nil {
		return nil, fmt.Errorf("parse message catalog: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("parse message catalog: unknown keys %v", undecoded)
	}
	return &c, nil
}

// Translate implements embed.Translator.
func (c *Catalog) Translate(message string) string {
	if c == nil {
		return message
	}
	if translated, ok := c.Messages[message]; ok && translated != "" {
		return translated
	}
	return message
}

var _ embed.Translator = (*Catalog)(nil)
