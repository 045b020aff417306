package ui

import (
	"encoding/json"
	"net/http"
	"time"

	"malariadash/internal/errors"
	"malariadash/internal/summary"
	"malariadash/internal/table"
)

var recognizedColumns = []string{
	table.ColCases,
	table.ColRegion,
	table.ColMonth,
	table.ColLatitude,
	table.ColLongitude,
}

func (s *Server) apiSummaryHandler(w http.ResponseWriter, r *http.Request) {
	upload, ok := s.currentUpload(r)
	if !ok {
		s.writeError(w, errors.NotFound("uploaded table"))
		return
	}
	s.writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: SummaryResponse{
		FileName: upload.FileName,
		Summary:  summary.Summarize(upload.Table),
	}})
}

func (s *Server) apiUploadHandler(w http.ResponseWriter, r *http.Request) {
	id := s.sessionID(w, r)
	upload, err := s.readUpload(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.store.Put(id, upload)
	s.logger.Info("table uploaded", "session", shortID(id), "file", upload.FileName, "rows", upload.Table.Len(), "api", true)

	s.writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: SummaryResponse{
		FileName: upload.FileName,
		Summary:  summary.Summarize(upload.Table),
	}})
}

// validateFileHandler decodes an upload and describes it without storing it.
func (s *Server) validateFileHandler(w http.ResponseWriter, r *http.Request) {
	upload, err := s.readUpload(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	schema := upload.Table.Schema()
	info := SchemaInfo{
		FileName:       upload.FileName,
		Rows:           upload.Table.Len(),
		Columns:        schema.Columns(),
		NumericColumns: summary.NumericColumns(upload.Table),
		Recognized:     []string{},
	}
	for _, c := range recognizedColumns {
		if schema.Has(c) {
			info.Recognized = append(info.Recognized, c)
		}
	}
	s.writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: info})
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": s.now().Format(time.RFC3339),
		"version":   "1.0.0",
	})
}

// writeJSON encodes v before touching the response so an encoding failure
// can still be reported as a 500.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		s.logger.Error("response encoding failed", "status", status, "error", err)
		internal := errors.InternalError("failed to encode response")
		status = http.StatusInternalServerError
		body, _ = json.Marshal(APIResponse{
			Success: false,
			Error:   internal.Error(),
			Code:    internal.Code,
		})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	s.writeJSON(w, statusFor(err), APIResponse{
		Success: false,
		Error:   err.Error(),
		Code:    errors.GetCode(err),
	})
}
