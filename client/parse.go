package client

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
)

// ParseSinglePrice extracts a price from a single-prediction response. It
// accepts a bare number, a mapping with a "predicted_price" key (a number or
// a numeric string), or - as an explicitly best-effort fallback - the first
// numeric value in the mapping (by sorted key, so the choice is at least
// deterministic). The second return is false when no price could be
// extracted; callers must surface the raw body instead of guessing further.
func ParseSinglePrice(raw json.RawMessage) (float64, bool) {
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return 0, false
	}

	switch v := decoded.(type) {
	case float64:
		return v, true
	case map[string]any:
		if price, ok := asNumber(v["predicted_price"]); ok {
			return price, true
		}
		// Fallback: first numeric value found
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if price, ok := v[k].(float64); ok {
				return price, true
			}
		}
	}
	return 0, false
}

// ParseBatchPrices extracts an ordered price list from a batch response. It
// accepts a bare array of numbers or a mapping carrying the list under
// "predictions" or "predicted_prices". The second return is false when the
// response matches neither shape.
func ParseBatchPrices(raw json.RawMessage) ([]float64, bool) {
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, false
	}

	switch v := decoded.(type) {
	case []any:
		return toFloats(v)
	case map[string]any:
		if list, ok := v["predictions"].([]any); ok {
			return toFloats(list)
		}
		if list, ok := v["predicted_prices"].([]any); ok {
			return toFloats(list)
		}
	}
	return nil, false
}

// asNumber accepts a JSON number or a finite numeric string.
func asNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case string:
		price, err := strconv.ParseFloat(v, 64)
		if err != nil || math.IsNaN(price) || math.IsInf(price, 0) {
			return 0, false
		}
		return price, true
	}
	return 0, false
}

func toFloats(list []any) ([]float64, bool) {
	prices := make([]float64, 0, len(list))
	for _, item := range list {
		price, ok := item.(float64)
		if !ok {
			return nil, false
		}
		prices = append(prices, price)
	}
	return prices, true
}
