package server

import (
	"embed"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mverdier/greenback/internal/common"
	"github.com/mverdier/greenback/internal/ingest"
	"github.com/mverdier/greenback/internal/model"
)

//go:embed assets/genuine.png assets/fake.png
var imageAssets embed.FS

// handleRoot returns the service banner.
func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "counterfeit banknote detection API",
	})
}

// handleHealth reports readiness. The pipeline exists only if both artifacts
// loaded, so reaching this handler at all means the service can score.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handlePredict accepts a delimited-text upload in the multipart field "file"
// and returns per-note predictions plus batch statistics. Bad uploads get a
// 400 with the reason; anything else is a 500 with a generic message and the
// detail logged server-side only.
func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxUploadSize)

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "upload a delimited text file in the 'file' field")
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read upload")
		return
	}

	slog.Info("received upload", "filename", header.Filename, "bytes", len(data))

	table, err := ingest.Decode(data)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.pipeline.Classify(r.Context(), table)
	if err != nil {
		if common.IsClientError(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.Error("classification failed", "filename", header.Filename, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	s.recordRun(r, header.Filename, result.Stats)

	writeJSON(w, http.StatusOK, result)
}

// handleRuns lists recent analysis summaries.
func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeJSON(w, http.StatusOK, map[string]any{"runs": []model.Run{}})
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	runs, err := s.store.ListRuns(r.Context(), limit)
	if err != nil {
		slog.Error("failed to list runs", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if runs == nil {
		runs = []model.Run{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"runs": runs})
}

// handleImage serves the two embedded result images.
func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name != "genuine.png" && name != "fake.png" {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	data, err := imageAssets.ReadFile("assets/" + name)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	_, _ = w.Write(data)
}

// recordRun stores the batch summary; failures are logged, never surfaced,
// since the prediction response is already complete.
func (s *Server) recordRun(r *http.Request, filename string, stats model.StatsSummary) {
	if s.store == nil {
		return
	}
	if _, err := s.store.RecordRun(r.Context(), filename, model.SourceHTTP, stats); err != nil {
		slog.Warn("failed to record run", "filename", filename, "error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
