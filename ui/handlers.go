package ui

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"unicode"
	"unicode/utf8"

	"malariadash/internal/errors"
	"malariadash/internal/report"
	"malariadash/internal/session"
	"malariadash/internal/summary"
	"malariadash/internal/table"
)

func (s *Server) indexHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-cache")

	upload, ok := s.currentUpload(r)
	if !ok {
		s.renderUpload(w, http.StatusOK, "")
		return
	}

	d := summary.Summarize(upload.Table)
	data := DisplayData{
		FileName:   upload.FileName,
		FileSize:   upload.FileSize,
		UploadedAt: upload.UploadTime.Format("January 2, 2006 at 3:04 PM"),
		Columns:    upload.Table.Schema().Columns(),
		Preview:    cellStrings(upload.Table.Head(s.config.PreviewRows)),
		Rows:       cellStrings(upload.Table.Rows()),
		Summary:    d,
		Charts:     buildCharts(d),
		Operations: summary.Operations,
	}
	if err := displayTemplate.Execute(w, data); err != nil {
		s.logger.Error("template error", "template", "display.html", "error", err)
	}
}

func (s *Server) uploadHandler(w http.ResponseWriter, r *http.Request) {
	id := s.sessionID(w, r)

	upload, err := s.readUpload(w, r)
	if err != nil {
		s.logger.Warn("upload rejected", "session", shortID(id), "code", errors.GetCode(err), "error", err)
		s.renderUpload(w, statusFor(err), err.Error())
		return
	}

	s.store.Put(id, upload)
	s.logger.Info("table uploaded",
		"session", shortID(id),
		"file", upload.FileName,
		"rows", upload.Table.Len(),
		"columns", upload.Table.Schema().Len())
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) resetHandler(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(sessionCookie); err == nil {
		s.store.Delete(c.Value)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) calculateHandler(w http.ResponseWriter, r *http.Request) {
	upload, ok := s.currentUpload(r)
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form", http.StatusBadRequest)
		return
	}
	cols := r.Form["cols"]
	op := r.FormValue("operation")
	if len(cols) == 0 || op == "" {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	page := ResultPage{
		Operation: titleCase(op),
		FileName:  upload.FileName,
		Timestamp: s.now().Format("January 2, 2006 at 3:04 PM"),
	}
	for _, col := range cols {
		result, err := summary.ColumnStat(upload.Table, col, op)
		if err != nil {
			page.Errors = append(page.Errors, err.Error())
			continue
		}
		page.Results = append(page.Results, result)
	}

	status := http.StatusOK
	if len(page.Results) == 0 {
		status = http.StatusBadRequest
	}
	w.WriteHeader(status)
	if err := resultTemplate.Execute(w, page); err != nil {
		s.logger.Error("template error", "template", "results.html", "error", err)
	}
}

func (s *Server) exportHandler(w http.ResponseWriter, r *http.Request) {
	upload, ok := s.currentUpload(r)
	if !ok {
		http.Error(w, "No table uploaded", http.StatusNotFound)
		return
	}

	name := strings.TrimSuffix(upload.FileName, fileExt(upload.FileName)) + "-summary.xlsx"
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	d := summary.Summarize(upload.Table)
	if err := report.WriteWorkbook(w, upload.FileName, d, upload.Table); err != nil {
		s.logger.Error("export failed", "file", upload.FileName, "error", err)
	}
}

// readUpload decodes the multipart "file" field into a session upload.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (session.Upload, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.config.MaxUploadBytes); err != nil {
		var tooBig *http.MaxBytesError
		if stderrors.As(err, &tooBig) {
			return session.Upload{}, errors.TooLarge(fmt.Sprintf("file too large (limit %d bytes)", s.config.MaxUploadBytes))
		}
		return session.Upload{}, errors.InvalidInput("expected a multipart form with a file field")
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return session.Upload{}, errors.InvalidInput("no file uploaded")
	}
	defer file.Close()

	tbl, err := table.Decode(header.Filename, file, s.decodeOptions())
	if err != nil {
		return session.Upload{}, errors.Wrapf(err, "could not read %s", header.Filename)
	}

	return session.Upload{
		Table:      tbl,
		FileName:   header.Filename,
		FileSize:   header.Size,
		UploadTime: s.now(),
	}, nil
}

func (s *Server) renderUpload(w http.ResponseWriter, status int, message string) {
	w.WriteHeader(status)
	page := UploadPage{Error: message, MaxBytes: s.config.MaxUploadBytes}
	if err := uploadTemplate.Execute(w, page); err != nil {
		s.logger.Error("template error", "template", "upload.html", "error", err)
	}
}

func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.CodeInvalidInput, errors.CodeEmptyFile, errors.CodeUnsupportedFile:
		return http.StatusBadRequest
	case errors.CodeTooLarge:
		return http.StatusRequestEntityTooLarge
	case errors.CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func cellStrings(rows []table.Row) [][]string {
	out := make([][]string, len(rows))
	for i, row := range rows {
		values := row.Values()
		cells := make([]string, len(values))
		for j, v := range values {
			cells[j] = v.String()
		}
		out[i] = cells
	}
	return out
}

// titleCase upper-cases the first rune of a form value for use in a heading.
func titleCase(s string) string {
	s = strings.ToValidUTF8(s, "\uFFFD")
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func fileExt(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i:]
	}
	return ""
}
