package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/invoice-generator-api/pkg/invoice"
	"github.com/invoice-generator-api/pkg/storage"
)

const maxBodyBytes = 1 << 20

// Store is the artifact storage used by the handlers.
type Store interface {
	Put(name string, data []byte) error
	Get(name string) ([]byte, error)
}

// App holds the handler dependencies.
type App struct {
	composer *invoice.Composer
	store    Store
	log      *slog.Logger
}

// NewApp wires the composer and store into HTTP handlers. A nil logger
// falls back to slog.Default.
func NewApp(c *invoice.Composer, st Store, log *slog.Logger) *App {
	if log == nil {
		log = slog.Default()
	}
	return &App{composer: c, store: st, log: log}
}

type messageResponse struct {
	Message string `json:"message"`
}

type createResponse struct {
	Filename string `json:"filename"`
}

// rootHandler godoc
//
//	@Summary	Liveness check
//	@Produce	json
//	@Success	200	{object}	messageResponse
//	@Router		/ [get]
func (a *App) rootHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, messageResponse{Message: "Invoice Generator API is running"})
}

// createInvoiceHandler godoc
//
//	@Summary	Generate an invoice PDF
//	@Accept		json
//	@Produce	json
//	@Param		invoice	body		invoice.Payload	true	"Billing request"
//	@Success	200		{object}	createResponse
//	@Failure	422		{object}	detailResponse
//	@Failure	500		{object}	detailResponse
//	@Router		/invoices [post]
func (a *App) createInvoiceHandler(w http.ResponseWriter, r *http.Request) {
	var p invoice.Payload
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&p); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, decodeError(err).Fields)
		return
	}
	req, err := p.Request()
	if err != nil {
		var verr *invoice.ValidationError
		if errors.As(err, &verr) {
			writeDetail(w, http.StatusUnprocessableEntity, verr.Fields)
			return
		}
		writeDetail(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	filename, pdf, err := a.composer.ComposeBytes(req)
	if err != nil {
		a.requestLogger(r).Error("invoice_render_failed", "error", err)
		writeDetail(w, http.StatusInternalServerError, "Invoice rendering failed")
		return
	}
	if err := a.store.Put(filename, pdf); err != nil {
		a.requestLogger(r).Error("invoice_store_failed", "filename", filename, "error", err)
		writeDetail(w, http.StatusInternalServerError, "Invoice storage failed")
		return
	}
	a.requestLogger(r).Info("invoice_created", "filename", filename, "items", len(req.Items), "bytes", len(pdf))
	writeJSON(w, http.StatusOK, createResponse{Filename: filename})
}

// getInvoiceHandler godoc
//
//	@Summary	Download a generated invoice
//	@Produce	application/pdf
//	@Param		filename	path		string	true	"Invoice file name"
//	@Success	200			{file}		binary
//	@Failure	404			{object}	detailResponse
//	@Router		/invoices/{filename} [get]
func (a *App) getInvoiceHandler(w http.ResponseWriter, r *http.Request) {
	filename := mux.Vars(r)["filename"]
	b, err := a.store.Get(filename)
	if errors.Is(err, storage.ErrNotFound) {
		writeDetail(w, http.StatusNotFound, "Invoice not found")
		return
	}
	if err != nil {
		a.requestLogger(r).Error("invoice_read_failed", "filename", filename, "error", err)
		writeDetail(w, http.StatusInternalServerError, "Invoice storage failed")
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	w.Header().Set("Content-Length", strconv.Itoa(len(b)))
	_, _ = w.Write(b)
}

func notFoundHandler(w http.ResponseWriter, r *http.Request) {
	writeDetail(w, http.StatusNotFound, "Not Found")
}

func methodNotAllowedHandler(w http.ResponseWriter, r *http.Request) {
	writeDetail(w, http.StatusMethodNotAllowed, "Method Not Allowed")
}

// decodeError turns a JSON decoding failure into a field error.
func decodeError(err error) *invoice.ValidationError {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return invoice.NewValidationError("type_error", "Input should be a valid "+typeErr.Type.String(), typeErr.Field)
	}
	if errors.Is(err, io.EOF) {
		return invoice.NewValidationError("missing", "Field required")
	}
	return invoice.NewValidationError("json_invalid", "JSON decode error: "+err.Error())
}
