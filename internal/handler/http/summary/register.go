package summary

import "net/http"

// Register registers the summary handler with mux.
func Register(mux *http.ServeMux, svc Digester) {
	mux.Handle("POST /summaries", CreateHandler{Svc: svc})
}
