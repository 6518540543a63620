package summary

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"newsbrief/internal/domain/entity"
	"newsbrief/internal/handler/http/respond"
	"newsbrief/internal/observability/logging"
	"newsbrief/internal/usecase/reader"
)

// Digester summarizes an article into titled lines.
type Digester interface {
	Digest(ctx context.Context, article entity.Article) reader.Digest
}

// CreateHandler serves POST /summaries.
type CreateHandler struct {
	Svc Digester
}

// ServeHTTP summarizes the posted article. Upstream failures are reported
// through the summary text with status 200, as the reader shows them.
func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respond.SafeError(w, http.StatusRequestEntityTooLarge,
				respond.NewAppError(http.StatusRequestEntityTooLarge, "request body too large", nil))
			return
		}
		respond.SafeError(w, http.StatusBadRequest,
			respond.NewAppError(http.StatusBadRequest, "invalid request body", nil))
		return
	}

	article := entity.Article{
		URL:         strings.TrimSpace(req.URL),
		Title:       req.Title,
		Description: req.Description,
		Content:     req.Content,
	}
	if article.Body() == "" {
		respond.SafeError(w, http.StatusBadRequest,
			errors.New("content, description or title is required"))
		return
	}
	if article.URL != "" {
		if err := entity.ValidateArticleURL(article.URL); err != nil {
			respond.SafeError(w, http.StatusBadRequest, err)
			return
		}
	}

	start := time.Now()
	d := h.Svc.Digest(ctx, article)

	logger.Info("article summarized",
		slog.String("url", article.URL),
		slog.Int("lines", len(d.Lines)),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()))

	respond.JSON(w, http.StatusOK, toResponse(d))
}

func toResponse(d reader.Digest) Response {
	lines := make([]LineDTO, 0, len(d.Lines))
	for _, l := range d.Lines {
		lines = append(lines, LineDTO{Title: l.Title, Detail: l.Detail})
	}
	return Response{
		URL:     d.Article.URL,
		Summary: d.Raw,
		Lines:   lines,
	}
}
