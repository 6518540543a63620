package news

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"newsbrief/internal/domain/entity"
	"newsbrief/internal/handler/http/respond"
	"newsbrief/internal/observability/logging"
	"newsbrief/internal/usecase/reader"
)

// Lister lists articles for a category or a free-text query.
type Lister interface {
	List(ctx context.Context, category, query string) ([]entity.Article, error)
}

// ListHandler serves GET /news.
type ListHandler struct {
	Svc Lister
}

// ServeHTTP lists articles.
// A non-blank q searches; otherwise category selects the listing
// (general, the default, is the top headlines). Upstream failures yield an
// empty list with status 200.
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)
	start := time.Now()

	query := r.URL.Query().Get("q")
	category := r.URL.Query().Get("category")

	articles, err := h.Svc.List(ctx, category, query)
	if err != nil {
		if errors.Is(err, reader.ErrUnknownCategory) {
			respond.SafeError(w, http.StatusBadRequest, err)
			return
		}
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	logger.Info("articles listed",
		slog.String("query", query),
		slog.String("category", category),
		slog.Int("count", len(articles)),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()))

	respond.JSON(w, http.StatusOK, toDTOs(articles))
}
