package news

import (
	"log/slog"
	"net/http"

	"newsbrief/internal/domain/entity"
	"newsbrief/internal/handler/http/respond"
	"newsbrief/internal/observability/logging"
)

// OpenHandler serves GET /open?url=. The server never redirects: a valid
// http(s) link is echoed back as {"url": ...} for the client's own link
// opener. Anything else is logged and answered with 204 No Content, so a
// bad link never surfaces as an error to the reader.
type OpenHandler struct{}

func (OpenHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	target := r.URL.Query().Get("url")
	if err := entity.ValidateArticleURL(target); err != nil {
		logging.FromContext(r.Context()).Warn("cannot open article link",
			slog.String("url", target),
			slog.Any("error", err))
		w.WriteHeader(http.StatusNoContent)
		return
	}
	respond.JSON(w, http.StatusOK, LinkDTO{URL: target})
}
