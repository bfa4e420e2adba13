package api

import (
	"net/http"

	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/invoice-generator-api/pkg/api/docs" // registers the swagger document
)

// NewRouter registers HTTP routes and returns the handler with middleware.
func NewRouter(app *App) http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(notFoundHandler)
	r.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowedHandler)

	r.HandleFunc("/", app.rootHandler).Methods(http.MethodGet)
	r.HandleFunc("/invoices", app.createInvoiceHandler).Methods(http.MethodPost)
	r.HandleFunc("/invoices/{filename}", app.getInvoiceHandler).Methods(http.MethodGet)
	r.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler).Methods(http.MethodGet)

	return app.observe(r)
}
