// Package embed classifies video URLs by hosting provider and renders the
// provider's embeddable HTML fragment.
package embed

import "strings"

// Provider identifies a video hosting service.
type Provider int

const (
	Unknown Provider = iota
	YouTube
	Vimeo
	Dailymotion
	Wistia
	BBC
)

var providerNames = map[Provider]string{
	Unknown:     "unknown",
	YouTube:     "youtube",
	Vimeo:       "vimeo",
	Dailymotion: "dailymotion",
	Wistia:      "wistia",
	BBC:         "bbc",
}

// String returns the lowercase provider name.
func (p Provider) String() string {
	if name, ok := providerNames[p]; ok {
		return name
	}
	return providerNames[Unknown]
}

// MarshalText implements encoding.TextMarshaler.
func (p Provider) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// ParseProvider maps a provider name back to its Provider. Matching is
// case-insensitive; unrecognised names report false.
func ParseProvider(name string) (Provider, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for p, n := range providerNames {
		if p != Unknown && n == name {
			return p, true
		}
	}
	return Unknown, false
}

// VideoRef is the classification result for a URL.
type VideoRef struct {
	Provider Provider
	// ID is empty when the provider matched but no identifier could be extracted.
	ID string
}

// Found reports whether both a provider and an identifier were resolved.
func (r VideoRef) Found() bool {
	return r.Provider != Unknown && r.ID != ""
}
