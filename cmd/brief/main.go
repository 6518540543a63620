// Package main is a terminal news reader: it lists headlines or search
// results and can summarize one of the listed articles.
// Usage: brief [-q QUERY] [-category NAME] [-pick N] [-output text|json] [-color auto|always|never]
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"

	"newsbrief/internal/app"
	"newsbrief/internal/domain/entity"
	"newsbrief/internal/observability/logging"
	"newsbrief/internal/usecase/digest"
	"newsbrief/internal/usecase/reader"
	"newsbrief/pkg/config"
)

type options struct {
	query    string
	category string
	pick     int
	output   string
	colors   bool
}

// ListOutput is the JSON output of one run.
type ListOutput struct {
	Query    string          `json:"query,omitempty"`
	Category string          `json:"category"`
	Articles []ArticleOutput `json:"articles"`
	Digest   *DigestOutput   `json:"digest,omitempty"`
}

// ArticleOutput is one listed article.
type ArticleOutput struct {
	Index       int    `json:"index"`
	Title       string `json:"title"`
	Source      string `json:"source"`
	PublishedAt string `json:"published_at"`
	URL         string `json:"url"`
}

// DigestOutput is the summary of the picked article.
type DigestOutput struct {
	URL     string       `json:"url"`
	Title   string       `json:"title"`
	Summary string       `json:"summary"`
	Lines   []LineOutput `json:"lines"`
}

// LineOutput is one titled bullet.
type LineOutput struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

func main() {
	var opts options
	flag.StringVar(&opts.query, "q", "", "Search query (empty lists top headlines)")
	flag.StringVar(&opts.category, "category", reader.DefaultCategory,
		"Category: "+strings.Join(reader.Categories, ", "))
	flag.IntVar(&opts.pick, "pick", 0, "Summarize the Nth listed article (1-based, 0 = none)")
	flag.StringVar(&opts.output, "output", "text", "Output format: text or json")
	timeout := flag.Duration("timeout", 60*time.Second, "Overall time limit")
	colorMode := flag.String("color", "auto", "Colored text output: auto, always or never")
	flag.Parse()

	if opts.output != "text" && opts.output != "json" {
		fmt.Fprintf(os.Stderr, "Error: Invalid output '%s' (must be 'text' or 'json')\n", opts.output)
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Usage: brief [-q QUERY] [-category NAME] [-pick N] [-output text|json]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Examples:")
		fmt.Fprintln(os.Stderr, "  brief")
		fmt.Fprintln(os.Stderr, "  brief -category technology -pick 1")
		fmt.Fprintln(os.Stderr, "  brief -q \"monsoon\" -output json")
		os.Exit(2)
	}

	colors, err := resolveColors(*colorMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	opts.colors = colors

	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Logs go to stderr so stdout stays clean for the listing.
	logger := logging.New(os.Stderr, config.GetEnvString("LOG_LEVEL", "warn"), os.Getenv("LOG_FORMAT"))
	slog.SetDefault(logger)

	components, err := app.FromEnv(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	if err := run(ctx, reader.NewSession(components.Reader), opts, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// resolveColors maps the -color flag to whether text output is colored.
// auto follows the terminal and NO_COLOR.
func resolveColors(mode string) (bool, error) {
	switch mode {
	case "auto":
		return !color.NoColor, nil
	case "always":
		return true, nil
	case "never":
		return false, nil
	default:
		return false, fmt.Errorf("invalid color mode %q: must be auto, always, or never", mode)
	}
}

// run lists articles for opts, summarizes the picked one and writes the
// result to w.
func run(ctx context.Context, session *reader.Session, opts options, w io.Writer) error {
	var (
		articles []entity.Article
		err      error
	)
	switch {
	case strings.TrimSpace(opts.query) != "":
		articles, err = session.Search(ctx, opts.query)
	default:
		articles, err = session.SelectCategory(ctx, opts.category)
	}
	if err != nil {
		return err
	}

	var picked *reader.Digest
	if opts.pick != 0 {
		if opts.pick < 1 || opts.pick > len(articles) {
			return fmt.Errorf("pick must be between 1 and %d, got %d", len(articles), opts.pick)
		}
		d, err := session.Open(ctx, articles[opts.pick-1].URL)
		if err != nil {
			return err
		}
		picked = &d
	}

	snap := session.Snapshot()
	if opts.output == "json" {
		return writeJSON(w, snap, articles, picked)
	}
	writeText(printer{w: w, colors: opts.colors}, snap, articles, picked)
	return nil
}

// printer writes text output, styled when colors is set.
type printer struct {
	w      io.Writer
	colors bool
}

func (p printer) style(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if p.colors {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

func writeText(p printer, snap reader.Snapshot, articles []entity.Article, picked *reader.Digest) {
	heading := p.style(color.Bold)
	if snap.Query != "" {
		heading.Fprintf(p.w, "Results for %q\n", snap.Query)
	} else {
		heading.Fprintf(p.w, "Top stories: %s\n", snap.Category)
	}
	fmt.Fprintln(p.w)

	if len(articles) == 0 {
		fmt.Fprintln(p.w, "No articles found.")
		return
	}
	title := p.style(color.FgCyan)
	faint := p.style(color.Faint)
	for i, a := range articles {
		fmt.Fprintf(p.w, "%2d. ", i+1)
		title.Fprintln(p.w, a.Title)
		if meta := articleMeta(a); meta != "" {
			faint.Fprintf(p.w, "    %s\n", meta)
		}
	}

	if picked != nil {
		fmt.Fprintln(p.w)
		heading.Fprintf(p.w, "Summary: %s\n", picked.Article.Title)
		fmt.Fprintln(p.w)
		fmt.Fprint(p.w, digest.Render(picked.Lines))
		faint.Fprintf(p.w, "\nRead more: %s\n", picked.Article.URL)
	}
}

func articleMeta(a entity.Article) string {
	parts := make([]string, 0, 2)
	if a.Source.Name != "" {
		parts = append(parts, a.Source.Name)
	}
	if a.PublishedAt != "" {
		parts = append(parts, a.PublishedAt)
	}
	return strings.Join(parts, " | ")
}

func writeJSON(w io.Writer, snap reader.Snapshot, articles []entity.Article, picked *reader.Digest) error {
	out := ListOutput{
		Query:    snap.Query,
		Category: snap.Category,
		Articles: make([]ArticleOutput, 0, len(articles)),
	}
	for i, a := range articles {
		out.Articles = append(out.Articles, ArticleOutput{
			Index:       i + 1,
			Title:       a.Title,
			Source:      a.Source.Name,
			PublishedAt: a.PublishedAt,
			URL:         a.URL,
		})
	}
	if picked != nil {
		lines := make([]LineOutput, 0, len(picked.Lines))
		for _, l := range picked.Lines {
			lines = append(lines, LineOutput{Title: l.Title, Detail: l.Detail})
		}
		out.Digest = &DigestOutput{
			URL:     picked.Article.URL,
			Title:   picked.Article.Title,
			Summary: picked.Raw,
			Lines:   lines,
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
