// Package services provides technical concerns for the prediction API, such as the trained pipeline artifact
package services

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pricewise/corolla-pricer/models"
)

// testArtifact builds a small but schema-complete artifact with hand-checkable
// weights. Only Age and KM carry non-zero numeric coefficients.
func testArtifact() *PipelineArtifact {
	artifact := &PipelineArtifact{
		Intercept: 1000,
		Numeric:   make(map[string]NumericTerm),
		Categorical: map[string]map[string]float64{
			"Model":     {"Other": 100, "Corolla": 150},
			"Fuel_Type": {"Petrol": 50, "Diesel": -25},
			"Color":     {"Black": 10, "Red": 0},
		},
	}
	for _, field := range models.RequiredFields {
		if models.IsCategorical(field) {
			continue
		}
		artifact.Numeric[field] = NumericTerm{}
	}
	artifact.Numeric["Age_08_04"] = NumericTerm{Coefficient: -2}
	artifact.Numeric["KM"] = NumericTerm{Coefficient: -0.5, Mean: 50000, Scale: 10000}
	return artifact
}

func testRecord() models.FeatureRecord {
	return models.FeatureRecord{
		Model:    "Other",
		FuelType: "Petrol",
		Color:    "Black",
		Age:      40,
		KM:       60000,
	}
}

func TestNewPipeline(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*PipelineArtifact)
		expectError bool
	}{
		{
			name:   "complete artifact",
			mutate: func(a *PipelineArtifact) {},
		},
		{
			name:        "missing numeric field",
			mutate:      func(a *PipelineArtifact) { delete(a.Numeric, "Weight") },
			expectError: true,
		},
		{
			name:        "missing categorical field",
			mutate:      func(a *PipelineArtifact) { delete(a.Categorical, "Color") },
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			artifact := testArtifact()
			tt.mutate(artifact)
			pipeline, err := NewPipeline(artifact)
			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, pipeline)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, pipeline)
			}
		})
	}
}

func TestNewPipelineNilArtifact(t *testing.T) {
	_, err := NewPipeline(nil)
	assert.Error(t, err)
}

func TestLoadPipeline(t *testing.T) {
	raw, err := json.Marshal(testArtifact())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "pipeline.json")
	require.NoError(t, os.WriteFile(path, raw, 0o600))

	pipeline, err := LoadPipeline(path)
	require.NoError(t, err)

	record := testRecord()
	price, err := pipeline.Predict(context.Background(), &record)
	require.NoError(t, err)
	assert.InDelta(t, 1079.5, price, 1e-9)
}

func TestLoadPipelineBadInputs(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadPipeline(filepath.Join(t.TempDir(), "absent.json"))
		assert.Error(t, err)
	})

	t.Run("malformed json", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "pipeline.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))
		_, err := LoadPipeline(path)
		assert.Error(t, err)
	})
}

func TestPredict(t *testing.T) {
	pipeline, err := NewPipeline(testArtifact())
	require.NoError(t, err)

	t.Run("hand-checked price", func(t *testing.T) {
		// 1000 - 2*40 - 0.5*(60000-50000)/10000 + 100 + 50 + 10
		record := testRecord()
		price, err := pipeline.Predict(context.Background(), &record)
		require.NoError(t, err)
		assert.InDelta(t, 1079.5, price, 1e-9)
	})

	t.Run("unseen categorical level", func(t *testing.T) {
		record := testRecord()
		record.FuelType = "Hydrogen"
		_, err := pipeline.Predict(context.Background(), &record)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unseen level")
		assert.Contains(t, err.Error(), "Fuel_Type")
	})

	t.Run("nil record", func(t *testing.T) {
		_, err := pipeline.Predict(context.Background(), nil)
		assert.Error(t, err)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		record := testRecord()
		_, err := pipeline.Predict(ctx, &record)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestPredictBatch(t *testing.T) {
	pipeline, err := NewPipeline(testArtifact())
	require.NoError(t, err)

	t.Run("prices align with input order", func(t *testing.T) {
		newer := testRecord()
		older := testRecord()
		older.Age = 60

		prices, err := pipeline.PredictBatch(context.Background(), []models.FeatureRecord{newer, older})
		require.NoError(t, err)
		require.Len(t, prices, 2)
		assert.InDelta(t, 1079.5, prices[0], 1e-9)
		assert.InDelta(t, 1039.5, prices[1], 1e-9)
		assert.Greater(t, prices[0], prices[1])
	})

	t.Run("bad record fails the whole batch with its index", func(t *testing.T) {
		good := testRecord()
		bad := testRecord()
		bad.Color = "Chartreuse"

		prices, err := pipeline.PredictBatch(context.Background(), []models.FeatureRecord{good, bad})
		require.Error(t, err)
		assert.Nil(t, prices)
		assert.Contains(t, err.Error(), "record 1")
	})

	t.Run("empty input yields empty output", func(t *testing.T) {
		prices, err := pipeline.PredictBatch(context.Background(), nil)
		require.NoError(t, err)
		assert.Empty(t, prices)
	})
}
