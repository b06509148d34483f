package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pricewise/corolla-pricer/models"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func TestPredict(t *testing.T) {
	t.Run("standard response", func(t *testing.T) {
		server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/predict", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "Other", body["Model"])
			assert.Len(t, body, len(models.RequiredFields))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"predicted_price": 12345.6}`))
		})

		price, err := New(server.URL).Predict(context.Background(), ReconcileOne(RawRecord{"Model": "Other"}))
		require.NoError(t, err)
		assert.Equal(t, 12345.6, price)
	})

	t.Run("bare number response", func(t *testing.T) {
		server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`12345.6`))
		})

		price, err := New(server.URL).Predict(context.Background(), models.FeatureRecord{})
		require.NoError(t, err)
		assert.Equal(t, 12345.6, price)
	})

	t.Run("unrecognized shape", func(t *testing.T) {
		server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"foo": "bar"}`))
		})

		_, err := New(server.URL).Predict(context.Background(), models.FeatureRecord{})
		require.Error(t, err)

		var shapeErr *UnexpectedResponseError
		require.ErrorAs(t, err, &shapeErr)
		assert.Contains(t, shapeErr.Body, `"foo"`)
	})

	t.Run("error status carries the body", func(t *testing.T) {
		server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"success":false,"message":"Prediction failed"}`))
		})

		_, err := New(server.URL).Predict(context.Background(), models.FeatureRecord{})
		require.Error(t, err)

		var statusErr *StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
		assert.Contains(t, statusErr.Body, "Prediction failed")
	})

	t.Run("unreachable service", func(t *testing.T) {
		server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {})
		server.Close()

		_, err := New(server.URL).Predict(context.Background(), models.FeatureRecord{})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrServiceUnreachable)
	})
}

func TestPredictBatch(t *testing.T) {
	t.Run("ordered price list", func(t *testing.T) {
		server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/predict_batch", r.URL.Path)

			var body []map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Len(t, body, 2)

			_, _ = w.Write([]byte(`{"predicted_prices": [12345.6, 9000]}`))
		})

		prices, err := New(server.URL).PredictBatch(context.Background(), make([]models.FeatureRecord, 2))
		require.NoError(t, err)
		assert.Equal(t, []float64{12345.6, 9000}, prices)
	})

	t.Run("predictions key variant", func(t *testing.T) {
		server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"predictions": [1.5]}`))
		})

		prices, err := New(server.URL).PredictBatch(context.Background(), make([]models.FeatureRecord, 1))
		require.NoError(t, err)
		assert.Equal(t, []float64{1.5}, prices)
	})

	t.Run("unrecognized shape", func(t *testing.T) {
		server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		})

		_, err := New(server.URL).PredictBatch(context.Background(), make([]models.FeatureRecord, 1))
		var shapeErr *UnexpectedResponseError
		require.ErrorAs(t, err, &shapeErr)
	})
}

func TestNewTrimsTrailingSlash(t *testing.T) {
	c := New("http://127.0.0.1:8000/")
	assert.Equal(t, "http://127.0.0.1:8000", c.baseURL)
}
