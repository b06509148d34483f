package client

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSinglePrice(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		want   float64
		wantOK bool
	}{
		{name: "predicted_price key", body: `{"predicted_price": 12345.6}`, want: 12345.6, wantOK: true},
		{name: "predicted_price as numeric string", body: `{"predicted_price": "12000"}`, want: 12000, wantOK: true},
		{name: "predicted_price as junk string falls through", body: `{"predicted_price": "soon"}`, wantOK: false},
		{name: "predicted_price as NaN string falls through", body: `{"predicted_price": "NaN"}`, wantOK: false},
		{name: "bare number", body: `12345.6`, want: 12345.6, wantOK: true},
		{name: "fallback to first numeric value by sorted key", body: `{"note": "ok", "price": 9000, "z_extra": 1}`, want: 9000, wantOK: true},
		{name: "no numeric value anywhere", body: `{"foo": "bar"}`, wantOK: false},
		{name: "empty object", body: `{}`, wantOK: false},
		{name: "array is not a single price", body: `[12345.6]`, wantOK: false},
		{name: "invalid json", body: `{`, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseSinglePrice(json.RawMessage(tt.body))
			require.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParseSinglePriceFallbackIsDeterministic(t *testing.T) {
	body := json.RawMessage(`{"b_second": 2, "a_first": 1}`)
	for i := 0; i < 20; i++ {
		got, ok := ParseSinglePrice(body)
		require.True(t, ok)
		assert.Equal(t, 1.0, got)
	}
}

func TestParseBatchPrices(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		want   []float64
		wantOK bool
	}{
		{name: "bare array", body: `[1.5, 2.5, 3.5]`, want: []float64{1.5, 2.5, 3.5}, wantOK: true},
		{name: "predictions key", body: `{"predictions": [9000, 9500]}`, want: []float64{9000, 9500}, wantOK: true},
		{name: "predicted_prices key", body: `{"predicted_prices": [9000, 9500]}`, want: []float64{9000, 9500}, wantOK: true},
		{name: "empty array", body: `[]`, want: []float64{}, wantOK: true},
		{name: "non-numeric entry", body: `[1.5, "oops"]`, wantOK: false},
		{name: "empty object", body: `{}`, wantOK: false},
		{name: "unrelated mapping", body: `{"result": "ok"}`, wantOK: false},
		{name: "bare number is not a batch", body: `12345.6`, wantOK: false},
		{name: "invalid json", body: `[`, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseBatchPrices(json.RawMessage(tt.body))
			require.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
