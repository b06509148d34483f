package businessflow

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"

	"github.com/pricewise/corolla-pricer/app/services"
	"github.com/pricewise/corolla-pricer/config"
	"github.com/pricewise/corolla-pricer/models"
)

var (
	predictionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "predictions_total",
			Help: "Total number of prediction requests by mode and outcome",
		},
		[]string{"mode", "outcome"},
	)

	batchSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "prediction_batch_size",
			Help:    "Number of records per batch prediction request",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		},
	)

	cacheHitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prediction_cache_requests_total",
			Help: "Prediction cache lookups by result",
		},
		[]string{"result"},
	)
)

// PredictionFlow defines the inference operations exposed over HTTP.
type PredictionFlow interface {
	PredictSingle(ctx context.Context, record *models.FeatureRecord, metadata *ClientMetadata) (float64, error)
	PredictBatch(ctx context.Context, records []models.FeatureRecord, metadata *ClientMetadata) ([]float64, error)
}

// PredictionFlowImpl evaluates the loaded pipeline. The pipeline is owned by
// the process, loaded once at startup, and only ever read here.
type PredictionFlowImpl struct {
	pipeline services.Pipeline
	cache    *redis.Client
	cacheCfg *config.CacheConfig
}

// NewPredictionFlow wires the flow. cache may be nil; predictions then always
// hit the pipeline directly.
func NewPredictionFlow(pipeline services.Pipeline, cache *redis.Client, cacheCfg *config.CacheConfig) PredictionFlow {
	return &PredictionFlowImpl{
		pipeline: pipeline,
		cache:    cache,
		cacheCfg: cacheCfg,
	}
}

// PredictSingle returns the price for one fully specified record.
func (f *PredictionFlowImpl) PredictSingle(ctx context.Context, record *models.FeatureRecord, metadata *ClientMetadata) (float64, error) {
	if f.pipeline == nil {
		return 0, NewBusinessError("PIPELINE_NOT_LOADED", "Pipeline is not loaded", ErrPipelineNotLoaded)
	}
	if record == nil {
		return 0, NewBusinessError("RECORD_MISSING", "Feature record is missing", ErrRecordMissing)
	}

	if price, ok := f.cachedPrice(ctx, record); ok {
		predictionsTotal.WithLabelValues("single", "success").Inc()
		return price, nil
	}

	price, err := f.pipeline.Predict(ctx, record)
	if err != nil {
		predictionsTotal.WithLabelValues("single", "failure").Inc()
		return 0, NewBusinessError("PREDICTION_FAILED", "Prediction failed", joinPredictionErr(err))
	}

	f.storePrice(ctx, record, price)
	predictionsTotal.WithLabelValues("single", "success").Inc()
	return price, nil
}

// PredictBatch returns one price per record, in input order. A single bad
// record fails the whole batch; partial results are never returned.
func (f *PredictionFlowImpl) PredictBatch(ctx context.Context, records []models.FeatureRecord, metadata *ClientMetadata) ([]float64, error) {
	if f.pipeline == nil {
		return nil, NewBusinessError("PIPELINE_NOT_LOADED", "Pipeline is not loaded", ErrPipelineNotLoaded)
	}
	if len(records) == 0 {
		return nil, NewBusinessError("EMPTY_BATCH", "Batch contains no records", ErrEmptyBatch)
	}

	batchSize.Observe(float64(len(records)))

	prices, err := f.pipeline.PredictBatch(ctx, records)
	if err != nil {
		predictionsTotal.WithLabelValues("batch", "failure").Inc()
		return nil, NewBusinessError("BATCH_PREDICTION_FAILED", "Batch prediction failed", joinPredictionErr(err))
	}

	predictionsTotal.WithLabelValues("batch", "success").Inc()
	return prices, nil
}

// cachedPrice looks up a previously computed price. Cache trouble is logged
// and treated as a miss; the cache never decides correctness.
func (f *PredictionFlowImpl) cachedPrice(ctx context.Context, record *models.FeatureRecord) (float64, bool) {
	if f.cache == nil {
		return 0, false
	}
	raw, err := f.cache.Get(ctx, f.cacheKey(record)).Result()
	if err != nil {
		if err != redis.Nil {
			log.Println("Prediction cache lookup failed", err)
		}
		cacheHitsTotal.WithLabelValues("miss").Inc()
		return 0, false
	}
	price, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		cacheHitsTotal.WithLabelValues("miss").Inc()
		return 0, false
	}
	cacheHitsTotal.WithLabelValues("hit").Inc()
	return price, true
}

func (f *PredictionFlowImpl) storePrice(ctx context.Context, record *models.FeatureRecord, price float64) {
	if f.cache == nil {
		return
	}
	ttl := time.Hour
	if f.cacheCfg != nil && f.cacheCfg.DefaultTTL > 0 {
		ttl = f.cacheCfg.DefaultTTL
	}
	value := strconv.FormatFloat(price, 'g', -1, 64)
	if err := f.cache.Set(ctx, f.cacheKey(record), value, ttl).Err(); err != nil {
		log.Println("Prediction cache store failed", err)
	}
}

// cacheKey hashes the canonical JSON encoding of the record. Struct field
// order is fixed, so equal records always hash equally.
func (f *PredictionFlowImpl) cacheKey(record *models.FeatureRecord) string {
	payload, _ := json.Marshal(record)
	sum := sha256.Sum256(payload)
	prefix := "corolla:"
	if f.cacheCfg != nil && f.cacheCfg.RedisPrefix != "" {
		prefix = f.cacheCfg.RedisPrefix
	}
	return prefix + "predict:" + hex.EncodeToString(sum[:])
}

func joinPredictionErr(err error) error {
	return &wrappedPredictionError{err: err}
}

// wrappedPredictionError tags pipeline failures so handlers can match them
// with errors.Is against ErrPredictionFailed while keeping the cause.
type wrappedPredictionError struct {
	err error
}

func (w *wrappedPredictionError) Error() string { return w.err.Error() }

func (w *wrappedPredictionError) Is(target error) bool { return target == ErrPredictionFailed }

func (w *wrappedPredictionError) Unwrap() error { return w.err }
