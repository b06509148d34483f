package client

import (
	"math"
	"strconv"
	"strings"

	"github.com/pricewise/corolla-pricer/models"
)

// RawRecord is one uploaded row keyed by column header, values as the text
// the file carried. Column subset and order are arbitrary.
type RawRecord map[string]string

// Reconcile completes raw rows against the required feature schema:
//
//  1. Required fields absent from a row get the default table value; fields
//     with no default entry get an explicit zero/empty sentinel.
//  2. Extraneous columns are dropped; the result carries exactly the
//     recognized fields in canonical order.
//  3. Categorical fields keep their text as-is; every other field is coerced
//     to a number, falling back to its default (or zero) when the text does
//     not parse. A malformed cell never aborts the file.
//
// Reconcile is idempotent: feeding its own output back in changes nothing.
func Reconcile(rows []RawRecord) []models.FeatureRecord {
	records := make([]models.FeatureRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, ReconcileOne(row))
	}
	return records
}

// ReconcileOne completes a single raw row. See Reconcile.
func ReconcileOne(row RawRecord) models.FeatureRecord {
	var record models.FeatureRecord
	for _, field := range models.RequiredFields {
		value, present := row[field]
		value = strings.TrimSpace(value)

		if models.IsCategorical(field) {
			// No default table entries exist for categoricals; absence
			// yields the empty-string sentinel.
			record.SetCategorical(field, value)
			continue
		}

		if !present || value == "" {
			record.SetNumeric(field, models.Defaults[field])
			continue
		}

		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil || !coercible(field, parsed) {
			parsed = models.Defaults[field]
		}
		record.SetNumeric(field, parsed)
	}
	return record
}

// coercible reports whether a parsed number is usable for the field. ParseFloat
// accepts "NaN" and "inf" spellings, and an out-of-range value would overflow
// the integer cast in SetNumeric; both count as failed coercion.
func coercible(field string, v float64) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return false
	}
	if models.IsIntegerField(field) && (v >= math.MaxInt64 || v < math.MinInt64) {
		return false
	}
	return true
}

// MissingFields lists required columns absent from the given header set, in
// canonical order. Used to warn the operator before defaults are applied.
func MissingFields(headers []string) []string {
	present := make(map[string]bool, len(headers))
	for _, h := range headers {
		present[strings.TrimSpace(h)] = true
	}
	var missing []string
	for _, field := range models.RequiredFields {
		if !present[field] {
			missing = append(missing, field)
		}
	}
	return missing
}
