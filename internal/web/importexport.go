package web

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/louisbranch/tempo/internal/auth/grant"
	apperrors "github.com/louisbranch/tempo/internal/platform/errors"
	"github.com/louisbranch/tempo/internal/timer/importer"
	"github.com/louisbranch/tempo/internal/timer/rowcodec"
)

// maxImportBytes caps the size of an uploaded batch.
const maxImportBytes = 8 << 20

type importErrorPayload struct {
	Kind      string `json:"kind"`
	Position  int    `json:"position,omitempty"`
	TimerName string `json:"timer_name,omitempty"`
	Code      string `json:"code"`
	Message   string `json:"message"`
}

type importResponse struct {
	Created []timerResponse      `json:"created"`
	Errors  []importErrorPayload `json:"errors"`
}

// handleExportTimer streams an owned timer as a CSV attachment. A timer
// without steps downloads as a header-only file.
func (h *apiHandler) handleExportTimer(w http.ResponseWriter, r *http.Request) {
	ownerID := grant.OwnerFromContext(r.Context())
	timerID := r.PathValue("id")

	rows, err := h.service.ExportTimer(r.Context(), ownerID, timerID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", "timer_"+timerID+".csv"))
	if err := rowcodec.WriteCSV(w, rows); err != nil {
		// Headers are already out; nothing useful left to send.
		return
	}
}

// handleImportBatch accepts a CSV upload, either as a multipart file field
// named "file" or as a raw request body, and imports it for the caller.
func (h *apiHandler) handleImportBatch(w http.ResponseWriter, r *http.Request) {
	ownerID := grant.OwnerFromContext(r.Context())

	reader, err := importBody(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	data, err := io.ReadAll(io.LimitReader(reader, maxImportBytes))
	if err != nil {
		writeError(w, r, apperrors.Wrap(apperrors.CodeRequestInvalid, "read upload", err))
		return
	}
	if !utf8.Valid(data) {
		writeError(w, r, apperrors.New(apperrors.CodeRequestInvalid, "upload must be UTF-8 text"))
		return
	}

	records, err := rowcodec.ReadCSV(strings.NewReader(string(data)))
	if err != nil {
		writeError(w, r, apperrors.Wrap(apperrors.CodeRequestInvalid, "upload is not valid CSV", err))
		return
	}

	result, err := h.service.ImportBatch(r.Context(), ownerID, records)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toImportResponse(result, requestLocale(r)))
}

func importBody(r *http.Request) (io.Reader, error) {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || !strings.HasPrefix(mediaType, "multipart/") {
		return r.Body, nil
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeRequestInvalid, "multipart upload needs a file field", err)
	}
	return file, nil
}

func toImportResponse(result importer.Result, loc string) importResponse {
	resp := importResponse{
		Created: make([]timerResponse, 0, len(result.Created)),
		Errors:  make([]importErrorPayload, 0, len(result.RowErrors)+len(result.GroupErrors)),
	}
	for _, timer := range result.Created {
		resp.Created = append(resp.Created, toTimerResponse(timer))
	}
	for _, rowErr := range result.RowErrors {
		resp.Errors = append(resp.Errors, importErrorPayload{
			Kind:     "row",
			Position: rowErr.Position,
			Code:     string(apperrors.GetCode(rowErr.Err)),
			Message:  apperrors.Localize(rowErr.Err, loc),
		})
	}
	for _, groupErr := range result.GroupErrors {
		resp.Errors = append(resp.Errors, importErrorPayload{
			Kind:      "group",
			TimerName: groupErr.Key.Name,
			Code:      string(apperrors.GetCode(groupErr.Err)),
			Message:   apperrors.Localize(groupErr.Err, loc),
		})
	}
	return resp
}
