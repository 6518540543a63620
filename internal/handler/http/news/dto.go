// Package news provides the HTTP handlers for listing articles and opening
// an article link.
package news

import "newsbrief/internal/domain/entity"

// DTO is the JSON shape of one listed article.
type DTO struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Content     string    `json:"content"`
	URL         string    `json:"url"`
	Image       string    `json:"image,omitempty"`
	PublishedAt string    `json:"published_at"`
	Source      SourceDTO `json:"source"`
}

// LinkDTO is the answer to GET /open: the validated link for the client to
// open itself.
type LinkDTO struct {
	URL string `json:"url"`
}

// SourceDTO is the publisher of an article.
type SourceDTO struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

func toDTO(a entity.Article) DTO {
	return DTO{
		Title:       a.Title,
		Description: a.Description,
		Content:     a.Content,
		URL:         a.URL,
		Image:       a.Image,
		PublishedAt: a.PublishedAt,
		Source:      SourceDTO{Name: a.Source.Name, URL: a.Source.URL},
	}
}

func toDTOs(articles []entity.Article) []DTO {
	out := make([]DTO, 0, len(articles))
	for _, a := range articles {
		out = append(out, toDTO(a))
	}
	return out
}
