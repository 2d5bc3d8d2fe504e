package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mverdier/greenback/internal/model"
	"github.com/mverdier/greenback/internal/pipeline"
)

type identityScaler struct{}

func (identityScaler) Transform(vector []float64) ([]float64, error) {
	out := make([]float64, len(vector))
	copy(out, vector)
	return out, nil
}

type thresholdClassifier struct{}

func (thresholdClassifier) PredictWithConfidence(vector []float64) (int, [2]float64, error) {
	if vector[3] < 5.0 {
		return 1, [2]float64{0.15, 0.85}, nil
	}
	return 0, [2]float64{0.92, 0.08}, nil
}

type brokenScaler struct{}

func (brokenScaler) Transform([]float64) ([]float64, error) {
	return nil, errors.New("dimension mismatch")
}

// memStore is an in-memory RunStore for handler tests.
type memStore struct {
	runs []model.Run
}

func (m *memStore) RecordRun(_ context.Context, filename string, source model.RunSource, stats model.StatsSummary) (*model.Run, error) {
	run := model.Run{ID: "test-run", Filename: filename, Source: source, Stats: stats}
	m.runs = append(m.runs, run)
	return &run, nil
}

func (m *memStore) ListRuns(_ context.Context, limit int) ([]model.Run, error) {
	if limit > len(m.runs) {
		limit = len(m.runs)
	}
	return m.runs[:limit], nil
}

func testServer(t *testing.T, store RunStore) *Server {
	t.Helper()
	p, err := pipeline.New(identityScaler{}, thresholdClassifier{})
	require.NoError(t, err)
	srv, err := New(p, store, DefaultConfig())
	require.NoError(t, err)
	return srv
}

// uploadRequest builds a multipart POST /predict carrying contents as the
// "file" field.
func uploadRequest(t *testing.T, contents []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "billets.csv")
	require.NoError(t, err)
	_, err = part.Write(contents)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/predict", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

const validCSV = "diagonal;height_left;height_right;margin_low;margin_up;length\n" +
	"171.81;104.86;104.95;4.52;2.89;112.83\n" +
	"171.46;103.36;103.66;5.77;2.99;113.09\n"

func TestPredict(t *testing.T) {
	store := &memStore{}
	router := testServer(t, store).Router()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, uploadRequest(t, []byte(validCSV)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var result model.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.Len(t, result.Predictions, 2)

	assert.Equal(t, 1, result.Predictions[0].ID)
	assert.Equal(t, model.LabelGenuine, result.Predictions[0].Label)
	assert.Equal(t, "/images/genuine.png", result.Predictions[0].ImageURL)
	assert.Equal(t, model.LabelFake, result.Predictions[1].Label)
	assert.Equal(t, "/images/fake.png", result.Predictions[1].ImageURL)

	assert.Equal(t, 2, result.Stats.Total)
	assert.InDelta(t, 50.0, result.Stats.GenuinePercentage, 1e-9)

	// The run summary was recorded.
	require.Len(t, store.runs, 1)
	assert.Equal(t, "billets.csv", store.runs[0].Filename)
	assert.Equal(t, model.SourceHTTP, store.runs[0].Source)
}

func TestPredictMissingColumns(t *testing.T) {
	router := testServer(t, nil).Router()

	csv := "diagonal;height_left;margin_low;margin_up;length\n171.81;104.86;4.52;2.89;112.83\n"
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, uploadRequest(t, []byte(csv)))

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp["error"], "height_right")
	assert.NotContains(t, resp["error"], "diagonal")
}

func TestPredictUndecodableUpload(t *testing.T) {
	router := testServer(t, nil).Router()

	// Ragged rows fail CSV parsing.
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, uploadRequest(t, []byte("diagonal;length\n1;2;3\n")))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPredictMissingFileField(t *testing.T) {
	router := testServer(t, nil).Router()

	req := httptest.NewRequest(http.MethodPost, "/predict", bytes.NewBufferString("not multipart"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPredictScoringFailureIsOpaque(t *testing.T) {
	p, err := pipeline.New(brokenScaler{}, thresholdClassifier{})
	require.NoError(t, err)
	srv, err := New(p, nil, DefaultConfig())
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, uploadRequest(t, []byte(validCSV)))

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "internal server error", resp["error"])
}

func TestImages(t *testing.T) {
	router := testServer(t, nil).Router()

	for _, name := range []string{"genuine.png", "fake.png"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/images/"+name, nil))
		require.Equal(t, http.StatusOK, rec.Code, name)
		assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
		assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG")), "%s must be a PNG", name)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/images/other.png", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealthAndRoot(t *testing.T) {
	router := testServer(t, nil).Router()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRuns(t *testing.T) {
	store := &memStore{}
	router := testServer(t, store).Router()

	// Seed one run through the predict path.
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, uploadRequest(t, []byte(validCSV)))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/runs", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Runs []model.Run `json:"runs"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Runs, 1)
	assert.Equal(t, 2, resp.Runs[0].Stats.Total)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/runs?limit=bogus", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRunsWithoutStore(t *testing.T) {
	router := testServer(t, nil).Router()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/runs", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
