package news

import "net/http"

// Register registers the article listing and link handlers with mux.
func Register(mux *http.ServeMux, svc Lister) {
	mux.Handle("GET /news", ListHandler{Svc: svc})
	mux.Handle("GET /open", OpenHandler{})
}
