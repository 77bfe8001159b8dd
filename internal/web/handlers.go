package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"catbridge/internal/builder"
	"catbridge/internal/catalog"
	"catbridge/internal/core"
	"catbridge/internal/rowio"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleListPlatforms returns the registered platforms with their
// recognized column sets.
func (s *Server) handleListPlatforms(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, s.service.Platforms())
}

// handleConvert accepts a catalog export file and returns the parsed
// canonical products with conversion statistics. The file arrives
// either as the "file" field of a multipart form or as the raw request
// body.
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	platform := chi.URLParam(r, "platform")

	if s.maxUpload > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	}

	file, filename, err := uploadedFile(r)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}
	defer file.Close()

	result, err := s.service.Convert(r.Context(), platform, filename, file)
	if err != nil {
		s.respondError(w, r, err, statusForError(err))
		return
	}

	s.respondJSON(w, http.StatusOK, result)
}

// buildRequest is the JSON body of build and export requests.
type buildRequest struct {
	Products []*catalog.Product `json:"products"`
}

// handleBuild renders canonical products into the named platform's
// import payloads.
func (s *Server) handleBuild(w http.ResponseWriter, r *http.Request) {
	platform := chi.URLParam(r, "platform")

	var req buildRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	payloads, err := s.service.BuildPayloads(platform, req.Products)
	if err != nil {
		s.respondError(w, r, err, statusForError(err))
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{
		"platform": platform,
		"payloads": payloads,
	})
}

// handleExport writes canonical products as an interchange CSV download.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	var req buildRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="catalog-export.csv"`)
	if err := s.service.ExportCSV(w, req.Products); err != nil {
		// Headers are already sent; the truncated download is all we
		// can signal. Log it.
		s.log.Error("csv export failed", "error", err)
	}
}

// handleHistory returns recent conversion batches, newest first.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		respondErrorJSON(w, core.UserMessage{
			Message: "Conversion history is not configured",
			Action:  "Set DATABASE_URL to enable the audit trail",
			Code:    "DB000",
		}, http.StatusServiceUnavailable)
		return
	}

	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	entries, err := s.history.Recent(r.Context(), limit)
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []core.Conversion{}
	}
	s.respondJSON(w, http.StatusOK, entries)
}

// uploadedFile extracts the upload from a multipart form when one is
// present, falling back to the raw request body.
func uploadedFile(r *http.Request) (io.ReadCloser, string, error) {
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "multipart/form-data") {
		file, header, err := r.FormFile("file")
		if err != nil {
			if errors.Is(err, http.ErrMissingFile) {
				return nil, "", fmt.Errorf("no file provided")
			}
			return nil, "", fmt.Errorf("invalid csv upload: %w", err)
		}
		return file, header.Filename, nil
	}
	return r.Body, r.URL.Query().Get("filename"), nil
}

// decodeJSON decodes a JSON request body into v.
func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

// statusForError maps pipeline errors onto HTTP status codes.
func statusForError(err error) int {
	var limitErr *catalog.CombinationLimitError
	var noVariants *builder.ErrNoVariants

	switch {
	case errors.Is(err, core.ErrUnknownPlatform):
		return http.StatusNotFound
	case errors.Is(err, rowio.ErrNoHeader):
		return http.StatusBadRequest
	case errors.As(err, &limitErr), errors.As(err, &noVariants):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
