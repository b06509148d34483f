// Package services provides technical concerns for the prediction API, such as the trained pipeline artifact
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/pricewise/corolla-pricer/models"
)

// Pipeline maps a fully specified feature record to a price. Implementations
// are read-only after construction and safe for concurrent use.
type Pipeline interface {
	Predict(ctx context.Context, record *models.FeatureRecord) (float64, error)
	PredictBatch(ctx context.Context, records []models.FeatureRecord) ([]float64, error)
}

// PipelineArtifact is the portable export of the trained regression
// pipeline: an intercept, one term per numeric field (with optional
// standardization), and one weight table per categorical field.
type PipelineArtifact struct {
	Intercept   float64                       `json:"intercept"`
	Numeric     map[string]NumericTerm        `json:"numeric"`
	Categorical map[string]map[string]float64 `json:"categorical"`
}

// NumericTerm holds the coefficient and standardization parameters for one
// numeric feature. A zero Scale means the feature enters unscaled.
type NumericTerm struct {
	Coefficient float64 `json:"coefficient"`
	Mean        float64 `json:"mean"`
	Scale       float64 `json:"scale"`
}

// PipelineImpl evaluates a loaded PipelineArtifact.
type PipelineImpl struct {
	artifact *PipelineArtifact
}

// LoadPipeline reads and validates a pipeline artifact from a JSON file.
// Called once at startup; the result is injected into the prediction flow.
func LoadPipeline(path string) (Pipeline, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pipeline artifact: %w", err)
	}

	var artifact PipelineArtifact
	if err := json.Unmarshal(raw, &artifact); err != nil {
		return nil, fmt.Errorf("failed to parse pipeline artifact: %w", err)
	}

	return NewPipeline(&artifact)
}

// NewPipeline wraps an already decoded artifact after checking it covers the
// full feature schema.
func NewPipeline(artifact *PipelineArtifact) (Pipeline, error) {
	if artifact == nil {
		return nil, fmt.Errorf("pipeline artifact is nil")
	}
	for _, field := range models.RequiredFields {
		if models.IsCategorical(field) {
			if _, ok := artifact.Categorical[field]; !ok {
				return nil, fmt.Errorf("pipeline artifact missing categorical field %q", field)
			}
			continue
		}
		if _, ok := artifact.Numeric[field]; !ok {
			return nil, fmt.Errorf("pipeline artifact missing numeric field %q", field)
		}
	}
	return &PipelineImpl{artifact: artifact}, nil
}

// Predict evaluates the regression for a single record.
func (p *PipelineImpl) Predict(ctx context.Context, record *models.FeatureRecord) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if record == nil {
		return 0, fmt.Errorf("record is nil")
	}

	price := p.artifact.Intercept

	for field, term := range p.artifact.Numeric {
		v, ok := record.Numeric(field)
		if !ok {
			return 0, fmt.Errorf("record has no numeric field %q", field)
		}
		if term.Scale != 0 {
			v = (v - term.Mean) / term.Scale
		}
		price += v * term.Coefficient
	}

	for field, levels := range p.artifact.Categorical {
		v, ok := record.Categorical(field)
		if !ok {
			return 0, fmt.Errorf("record has no categorical field %q", field)
		}
		weight, ok := levels[v]
		if !ok {
			return 0, fmt.Errorf("unseen level %q for categorical field %q", v, field)
		}
		price += weight
	}

	if math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, fmt.Errorf("pipeline produced a non-finite price")
	}
	return price, nil
}

// PredictBatch evaluates records in input order. The first failing record
// aborts the whole batch; there is no per-row error isolation.
func (p *PipelineImpl) PredictBatch(ctx context.Context, records []models.FeatureRecord) ([]float64, error) {
	prices := make([]float64, 0, len(records))
	for i := range records {
		price, err := p.Predict(ctx, &records[i])
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		prices = append(prices, price)
	}
	return prices, nil
}
