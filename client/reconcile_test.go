package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pricewise/corolla-pricer/models"
)

func TestReconcileOne(t *testing.T) {
	t.Run("partial row is completed with defaults", func(t *testing.T) {
		record := ReconcileOne(RawRecord{
			"Model":     "Corolla",
			"Fuel_Type": "Diesel",
			"KM":        "46986",
		})

		assert.Equal(t, "Corolla", record.Model)
		assert.Equal(t, "Diesel", record.FuelType)
		assert.Equal(t, 46986.0, record.KM)

		// Absent optional fields get the documented fallbacks
		assert.Equal(t, 1, record.MetColor)
		assert.Equal(t, 1, record.ABS)
		assert.Equal(t, 0, record.Automatic)
		assert.Equal(t, 0, record.TowBar)

		// Absent required numerics with no fallback entry become zero
		assert.Equal(t, 0.0, record.Age)
		assert.Equal(t, 0.0, record.Weight)

		// Absent categoricals keep the empty-string sentinel
		assert.Equal(t, "", record.Color)
	})

	t.Run("extraneous columns are dropped", func(t *testing.T) {
		record := ReconcileOne(RawRecord{
			"Model":       "Other",
			"Price":       "13500",
			"Became_Rust": "yes",
		})
		assert.Equal(t, "Other", record.Model)
		_, ok := record.Value("Price")
		assert.False(t, ok)
	})

	t.Run("unparseable numeric cell falls back without aborting", func(t *testing.T) {
		record := ReconcileOne(RawRecord{
			"KM":        "forty-six thousand",
			"Met_Color": "???",
		})
		assert.Equal(t, 0.0, record.KM)
		assert.Equal(t, 1, record.MetColor)
	})

	t.Run("non-finite spellings count as failed coercion", func(t *testing.T) {
		record := ReconcileOne(RawRecord{
			"KM":        "NaN",
			"Weight":    "-inf",
			"Met_Color": "inf",
			"ABS":       "Infinity",
		})
		assert.Equal(t, 0.0, record.KM)
		assert.Equal(t, 0.0, record.Weight)
		assert.Equal(t, 1, record.MetColor)
		assert.Equal(t, 1, record.ABS)
	})

	t.Run("integer fields reject values beyond int range", func(t *testing.T) {
		record := ReconcileOne(RawRecord{
			"Doors":     "1e300",
			"Met_Color": "-1e300",
			"KM":        "1e300",
		})
		assert.Equal(t, 0, record.Doors)
		assert.Equal(t, 1, record.MetColor)
		// Float fields keep any finite value
		assert.Equal(t, 1e300, record.KM)
	})

	t.Run("whitespace is trimmed", func(t *testing.T) {
		record := ReconcileOne(RawRecord{
			"Model": "  Other  ",
			"HP":    " 92 ",
		})
		assert.Equal(t, "Other", record.Model)
		assert.Equal(t, 92.0, record.HP)
	})

	t.Run("zero is an accepted value, not a missing one", func(t *testing.T) {
		record := ReconcileOne(RawRecord{"Met_Color": "0"})
		assert.Equal(t, 0, record.MetColor)
	})
}

func TestReconcileIsIdempotent(t *testing.T) {
	rows := []RawRecord{
		{"Model": "Other", "Fuel_Type": "Petrol", "Color": "Black", "KM": "3000", "HP": "92"},
		{"Model": "Corolla", "KM": "120000"},
	}
	first := Reconcile(rows)
	require.Len(t, first, 2)

	// Re-feed the completed records as raw rows
	again := make([]RawRecord, 0, len(first))
	for i := range first {
		row := make(RawRecord)
		for _, field := range models.RequiredFields {
			row[field] = formatCell(&first[i], field)
		}
		again = append(again, row)
	}

	second := Reconcile(again)
	assert.Equal(t, first, second)
}

func TestMissingFields(t *testing.T) {
	t.Run("full header set", func(t *testing.T) {
		assert.Empty(t, MissingFields(models.RequiredFields))
	})

	t.Run("reports absences in canonical order", func(t *testing.T) {
		headers := []string{"KM", "Model", "HP"}
		missing := MissingFields(headers)
		require.NotEmpty(t, missing)
		assert.Contains(t, missing, "Fuel_Type")
		assert.Contains(t, missing, "Tow_Bar")
		assert.NotContains(t, missing, "KM")
		assert.Equal(t, "Fuel_Type", missing[0])
		assert.Equal(t, "Tow_Bar", missing[len(missing)-1])
		assert.Len(t, missing, len(models.RequiredFields)-3)
	})
}
