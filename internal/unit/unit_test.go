package unit

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"shopfloor/internal/storage"
)

func TestCategoryOf(t *testing.T) {
	assert.Equal(t, storage.CategorySeries, CategoryOf("S-SE-MSN-12"))
	assert.Equal(t, storage.CategorySeries, CategoryOf("s-001"))
	assert.Equal(t, storage.CategoryRework, CategoryOf("R-SE-MSN-12"))
	assert.Equal(t, storage.CategoryMIP, CategoryOf("m-7"))
	assert.Equal(t, storage.CategoryUnknown, CategoryOf("X-7"))
	assert.Equal(t, storage.CategoryUnknown, CategoryOf(""))
	assert.Equal(t, storage.CategoryUnknown, CategoryOf("none"))
}

func TestParseSerial(t *testing.T) {
	assert.Equal(t, Ref{Category: storage.CategorySeries, ID: "001"}, ParseSerial("S-001"))
	assert.Equal(t, Ref{Category: storage.CategoryRework, ID: "123"}, ParseSerial("R-SE-MSN-123"))
	assert.Equal(t, Ref{Category: storage.CategoryMIP, ID: "A-7"}, ParseSerial("M-SE-MSN-A-7"))
	assert.Equal(t, Ref{Category: storage.CategorySeries, ID: "A-7"}, ParseSerial("S-A-7"))
	assert.True(t, ParseSerial("").IsZero())
}

func TestParseDisplay(t *testing.T) {
	assert.Equal(t, "123", ParseDisplay("MSN-123").ID)
	assert.Equal(t, "123", ParseDisplay(" 123 ").ID)
	assert.Equal(t, storage.CategoryUnknown, ParseDisplay("MSN-123").Category)
}

func TestParseDisplay_DashedID(t *testing.T) {
	assert.Equal(t, "A-7", ParseDisplay(Display("A-7")).ID)
	assert.NotEqual(t, ParseDisplay(Display("7")).ID, ParseDisplay(Display("A-7")).ID)
}

func TestNewSerialRoundTrip(t *testing.T) {
	for _, c := range storage.Categories {
		ref := ParseSerial(NewSerial(c, "42"))
		assert.Equal(t, c, ref.Category)
		assert.Equal(t, "42", ref.ID)
	}
	assert.Equal(t, "MSN-42", Display("42"))
	assert.Equal(t, "42", StripDisplay(Display("42")))
	assert.Equal(t, "System", StripDisplay("System"))
}
