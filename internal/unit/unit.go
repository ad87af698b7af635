// Package unit parses production unit identifiers.
//
// Serials look like "S-SE-MSN-123" (or the short "S-123"): the first
// character carries the category and everything after "MSN-" (or after the
// first dash of a short serial) is the id. Display labels look like
// "MSN-123". Both are parsed once into a Ref so that matching compares
// whole ids instead of raw strings; an id may itself contain dashes.
package unit

import (
	"strings"

	"shopfloor/internal/storage"
)

const displayPrefix = "MSN-"

type Ref struct {
	Category storage.Category `json:"category"`
	ID       string           `json:"id"`
}

func (r Ref) IsZero() bool {
	return r.ID == ""
}

// CategoryOf derives the category from the first character of a serial.
func CategoryOf(serial string) storage.Category {
	serial = strings.TrimSpace(serial)
	if serial == "" {
		return storage.CategoryUnknown
	}

	switch serial[0] {
	case 'S', 's':
		return storage.CategorySeries
	case 'R', 'r':
		return storage.CategoryRework
	case 'M', 'm':
		return storage.CategoryMIP
	default:
		return storage.CategoryUnknown
	}
}

// ParseSerial splits a serial into its category and id.
func ParseSerial(serial string) Ref {
	return Ref{Category: CategoryOf(serial), ID: serialID(serial)}
}

// ParseDisplay extracts the id from a display label. The category is not
// encoded in display labels and is left Unknown.
func ParseDisplay(label string) Ref {
	id, _ := strings.CutPrefix(strings.TrimSpace(label), displayPrefix)
	return Ref{Category: storage.CategoryUnknown, ID: strings.TrimSpace(id)}
}

func serialID(serial string) string {
	serial = strings.TrimSpace(serial)
	if i := strings.Index(serial, displayPrefix); i >= 0 {
		return strings.TrimSpace(serial[i+len(displayPrefix):])
	}
	if _, id, ok := strings.Cut(serial, "-"); ok {
		return strings.TrimSpace(id)
	}
	return serial
}

func prefix(c storage.Category) string {
	switch c {
	case storage.CategoryRework:
		return "R"
	case storage.CategoryMIP:
		return "M"
	default:
		return "S"
	}
}

// NewSerial builds the serial logged when a station starts a unit.
func NewSerial(c storage.Category, id string) string {
	return prefix(c) + "-SE-" + displayPrefix + strings.TrimSpace(id)
}

// Display builds the human label for an id.
func Display(id string) string {
	return displayPrefix + strings.TrimSpace(id)
}

// StripDisplay removes the label prefix, leaving other text untouched.
func StripDisplay(label string) string {
	return strings.TrimPrefix(label, displayPrefix)
}
