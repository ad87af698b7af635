package storage

// AnyStation replaced the per-station column of priority declarations.
const AnyStation = "any"

type Category string

const (
	CategorySeries  Category = "Series"
	CategoryRework  Category = "Rework"
	CategoryMIP     Category = "MIP"
	CategoryUnknown Category = "Unknown"
)

// Categories lists the declarable categories in board order.
var Categories = []Category{CategorySeries, CategoryMIP, CategoryRework}

type PriorityItem struct {
	ID        int64    `json:"id"`
	Type      Category `json:"type"`
	UnitLabel string   `json:"unit_label"`
	Station   string   `json:"station"`
	Location  string   `json:"location"`
}

type CauseZone string

const (
	ZoneLeft    CauseZone = "LEFT"
	ZoneRight   CauseZone = "RIGHT"
	ZoneGeneric CauseZone = "GENERIC"
)

type Cause struct {
	ID   int64     `json:"id" yaml:"-"`
	Zone CauseZone `json:"zone" yaml:"zone"`
	Name string    `json:"name" yaml:"name"`
}

// DefaultObjective is the weekly target used when none is stored.
const DefaultObjective = 35
