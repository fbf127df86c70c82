package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"titanic-service/internal/ml"
	"titanic-service/internal/models"
	"titanic-service/internal/training"
)

// TestMain sets Gin to test mode before running the package tests.
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// stubTrainer records requested keys and returns canned results.
type stubTrainer struct {
	metrics training.Metrics
	err     error
	keys    []string
}

func (s *stubTrainer) Train(key string) (training.Metrics, error) {
	s.keys = append(s.keys, key)
	if _, err := training.ParseModelKind(key); err != nil {
		return training.Metrics{}, err
	}
	return s.metrics, s.err
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
func stringPtr(v string) *string  { return &v }

func sampleRecords() []models.PassengerRecord {
	return []models.PassengerRecord{
		{PassengerID: 1, Name: "Braund, Mr. Owen Harris", Sex: intPtr(0), Age: floatPtr(22), ClassID: 3, SiblingsSpouses: 1, Ticket: "A/5 21171", Fare: floatPtr(7.25), EmbarkPort: stringPtr("S")},
		{PassengerID: 2, Name: "Cumings, Mrs. John Bradley", Sex: intPtr(1), Age: floatPtr(38), Survived: true, ClassID: 1, SiblingsSpouses: 1, Ticket: "PC 17599", Fare: floatPtr(71.28), EmbarkPort: stringPtr("C")},
		{PassengerID: 6, Name: "Moran, Mr. James", Sex: intPtr(0), ClassID: 3, Ticket: "330877", Fare: floatPtr(8.46), EmbarkPort: stringPtr("Q")},
	}
}

func newTestRouter(trainer Trainer, dataset models.Dataset) *gin.Engine {
	return NewRouter(NewAPI(trainer, dataset))
}

func performRequest(r http.Handler, method, path string, body []byte) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, bytes.NewBuffer(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestTrainModel_Success(t *testing.T) {
	trainer := &stubTrainer{metrics: training.Metrics{Precision: 0.81, Recall: 0.8, F1: 0.79}}
	router := newTestRouter(trainer, models.NewDataset(sampleRecords()))

	rr := performRequest(router, http.MethodPost, "/train", []byte(`{"model": "log_reg"}`))

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp models.TrainResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, models.TrainResponse{Precision: 0.81, Recall: 0.8, F1: 0.79}, resp)
	assert.Equal(t, []string{"log_reg"}, trainer.keys)
}

func TestTrainModel_ResponseKeys(t *testing.T) {
	router := newTestRouter(&stubTrainer{}, nil)

	rr := performRequest(router, http.MethodPost, "/train", []byte(`{"model": "knn"}`))

	require.Equal(t, http.StatusOK, rr.Code)
	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &raw))
	assert.Len(t, raw, 3)
	for _, key := range []string{"precision", "recall", "f1"} {
		assert.Contains(t, raw, key)
	}
}

func TestTrainModel_InvalidModelKind(t *testing.T) {
	trainer := &stubTrainer{}
	router := newTestRouter(trainer, nil)

	rr := performRequest(router, http.MethodPost, "/train", []byte(`{"model": "unknown_model"}`))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	var apiErr models.APIError
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &apiErr))
	assert.Equal(t, models.ErrorCodeInvalidModelKind, apiErr.Code)
}

func TestTrainModel_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		body []byte
	}{
		{name: "empty body", body: nil},
		{name: "malformed json", body: []byte(`{"model": `)},
		{name: "missing model", body: []byte(`{}`)},
		{name: "empty model", body: []byte(`{"model": ""}`)},
		{name: "wrong type", body: []byte(`{"model": 3}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trainer := &stubTrainer{}
			router := newTestRouter(trainer, nil)

			rr := performRequest(router, http.MethodPost, "/train", tt.body)

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			var apiErr models.APIError
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &apiErr))
			assert.Equal(t, models.ErrorCodeValidation, apiErr.Code)
			assert.Empty(t, trainer.keys, "trainer is not called for invalid payloads")
		})
	}
}

func TestTrainModel_TrainingFailure(t *testing.T) {
	trainer := &stubTrainer{err: fmt.Errorf("failed to fit svm: %w", ml.ErrSingleClass)}
	router := newTestRouter(trainer, nil)

	rr := performRequest(router, http.MethodPost, "/train", []byte(`{"model": "svm"}`))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	var apiErr models.APIError
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &apiErr))
	assert.Equal(t, models.ErrorCodeTrainingFailed, apiErr.Code)
}

func TestTrainModel_WithOrchestrator(t *testing.T) {
	records := make([]models.PassengerRecord, 40)
	for i := range records {
		sex := i % 2
		records[i] = models.PassengerRecord{PassengerID: i + 1, Sex: intPtr(sex), Age: floatPtr(30), Survived: sex == 1, ClassID: 3}
	}
	orchestrator, err := training.NewOrchestrator(records, training.DefaultOptions())
	require.NoError(t, err)
	router := newTestRouter(orchestrator, models.NewDataset(records))

	rr := performRequest(router, http.MethodPost, "/train", []byte(`{"model": "log_reg"}`))

	require.Equal(t, http.StatusOK, rr.Code)
	var resp models.TrainResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.InDelta(t, 1.0, resp.Precision, 1e-9)
	assert.InDelta(t, 1.0, resp.Recall, 1e-9)
	assert.InDelta(t, 1.0, resp.F1, 1e-9)

	rr = performRequest(router, http.MethodPost, "/train", []byte(`{"model": "unknown_model"}`))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGetAll_ColumnarDataset(t *testing.T) {
	router := newTestRouter(&stubTrainer{}, models.NewDataset(sampleRecords()))

	rr := performRequest(router, http.MethodGet, "/get/all", nil)

	require.Equal(t, http.StatusOK, rr.Code)
	var got map[string][]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))

	assert.Len(t, got, len(models.PassengerColumns))
	for _, col := range models.PassengerColumns {
		assert.Len(t, got[col], 3, "column %s", col)
	}
	assert.Equal(t, []interface{}{float64(1), float64(2), float64(6)}, got["passenger_id"])
	assert.Equal(t, []interface{}{"S", "C", "Q"}, got["port_id"])
	assert.Equal(t, []interface{}{float64(22), float64(38), nil}, got["age"], "absent values are null")
	assert.Equal(t, []interface{}{false, true, false}, got["survived"])
}

func TestGetAll_EmptyDataset(t *testing.T) {
	router := newTestRouter(&stubTrainer{}, models.NewDataset(nil))

	rr := performRequest(router, http.MethodGet, "/get/all", nil)

	require.Equal(t, http.StatusOK, rr.Code)
	var got map[string][]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Len(t, got, len(models.PassengerColumns))
	assert.Empty(t, got["name"])
}

func TestGetAll_NotLoaded(t *testing.T) {
	router := newTestRouter(&stubTrainer{}, nil)

	rr := performRequest(router, http.MethodGet, "/get/all", nil)

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestHealth(t *testing.T) {
	router := newTestRouter(&stubTrainer{}, models.NewDataset(sampleRecords()))

	rr := performRequest(router, http.MethodGet, "/healthz", nil)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok","rows":3}`, rr.Body.String())
}

func TestRequestID(t *testing.T) {
	router := newTestRouter(&stubTrainer{}, nil)

	t.Run("assigns a new id", func(t *testing.T) {
		rr := performRequest(router, http.MethodGet, "/healthz", nil)
		_, err := uuid.Parse(rr.Header().Get(RequestIDHeader))
		assert.NoError(t, err)
	})

	t.Run("propagates a valid incoming id", func(t *testing.T) {
		id := uuid.New().String()
		req, _ := http.NewRequest(http.MethodGet, "/healthz", nil)
		req.Header.Set(RequestIDHeader, id)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, id, rr.Header().Get(RequestIDHeader))
	})

	t.Run("replaces a malformed incoming id", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/healthz", nil)
		req.Header.Set(RequestIDHeader, "not-a-uuid")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		got := rr.Header().Get(RequestIDHeader)
		assert.NotEqual(t, "not-a-uuid", got)
		_, err := uuid.Parse(got)
		assert.NoError(t, err)
	})

	t.Run("error responses carry the id", func(t *testing.T) {
		rr := performRequest(router, http.MethodPost, "/train", []byte(`{}`))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.NotEmpty(t, rr.Header().Get(RequestIDHeader))
	})
}
