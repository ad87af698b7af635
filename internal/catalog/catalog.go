// Package catalog loads the plant layout: the station list and the causes
// the cause table is seeded with on first start.
package catalog

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"shopfloor/internal/storage"
)

type Catalog struct {
	Stations []string        `yaml:"stations"`
	Causes   []storage.Cause `yaml:"causes"`
}

func Parse(data []byte) (Catalog, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Catalog{}, fmt.Errorf("catalog: payload is empty")
	}

	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Catalog{}, fmt.Errorf("catalog: decode: %w", err)
	}
	c = c.Normalized()
	if err := c.Validate(); err != nil {
		return Catalog{}, err
	}

	return c, nil
}

func Load(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("catalog: read %s: %w", path, err)
	}

	c, err := Parse(data)
	if err != nil {
		return Catalog{}, fmt.Errorf("catalog: %s: %w", path, err)
	}

	return c, nil
}

func (c Catalog) Normalized() Catalog {
	out := Catalog{}
	for _, s := range c.Stations {
		if s = strings.TrimSpace(s); s != "" {
			out.Stations = append(out.Stations, s)
		}
	}
	for _, cause := range c.Causes {
		cause.Name = strings.TrimSpace(cause.Name)
		cause.Zone = storage.CauseZone(strings.ToUpper(strings.TrimSpace(string(cause.Zone))))
		out.Causes = append(out.Causes, cause)
	}
	return out
}

func (c Catalog) Validate() error {
	if len(c.Stations) == 0 {
		return fmt.Errorf("catalog: at least one station is required")
	}

	seen := make(map[string]bool)
	for _, s := range c.Stations {
		if seen[s] {
			return fmt.Errorf("catalog: duplicate station %q", s)
		}
		seen[s] = true
	}

	for i, cause := range c.Causes {
		if err := ValidateCause(cause); err != nil {
			return fmt.Errorf("catalog: cause %d: %w", i, err)
		}
	}

	return nil
}

func ValidateCause(c storage.Cause) error {
	if c.Name == "" {
		return fmt.Errorf("name is required")
	}
	switch c.Zone {
	case storage.ZoneLeft, storage.ZoneRight, storage.ZoneGeneric:
		return nil
	default:
		return fmt.Errorf("unknown zone %q", c.Zone)
	}
}

func (c Catalog) HasStation(id string) bool {
	for _, s := range c.Stations {
		if s == id {
			return true
		}
	}
	return false
}

// Suggest returns the causes an operator can pick from at a station in
// the given zone: that zone's causes plus the generic ones. An unknown
// zone offers everything.
func Suggest(causes []storage.Cause, zone storage.CauseZone) []storage.Cause {
	out := make([]storage.Cause, 0, len(causes))
	for _, want := range suggestionOrder(zone) {
		for _, c := range causes {
			if c.Zone == want {
				out = append(out, c)
			}
		}
	}
	return out
}

func suggestionOrder(zone storage.CauseZone) []storage.CauseZone {
	switch zone {
	case storage.ZoneLeft, storage.ZoneRight:
		return []storage.CauseZone{zone, storage.ZoneGeneric}
	default:
		return []storage.CauseZone{storage.ZoneLeft, storage.ZoneRight, storage.ZoneGeneric}
	}
}

// FormatCauses joins the picked causes into the note stored on the event,
// prefixed with the tool reference when there is one.
func FormatCauses(causes []string, toolRef string) string {
	note := strings.Join(causes, " + ")
	if ref := strings.TrimSpace(toolRef); ref != "" {
		note = fmt.Sprintf("[MAT:%s] %s", ref, note)
	}
	return note
}
