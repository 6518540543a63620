package reader_test

import (
	"context"
	"sync"

	"newsbrief/internal/domain/entity"
)

// fakeNews returns canned results per query. A query listed in block waits
// until its channel is closed.
type fakeNews struct {
	mu      sync.Mutex
	results map[string][]entity.Article
	block   map[string]chan struct{}
	queries []string
}

func newFakeNews() *fakeNews {
	return &fakeNews{
		results: map[string][]entity.Article{},
		block:   map[string]chan struct{}{},
	}
}

func (f *fakeNews) FetchNews(ctx context.Context, query string) []entity.Article {
	f.mu.Lock()
	f.queries = append(f.queries, query)
	wait := f.block[query]
	res := f.results[query]
	f.mu.Unlock()

	if wait != nil {
		select {
		case <-wait:
		case <-ctx.Done():
			return []entity.Article{}
		}
	}
	if res == nil {
		return []entity.Article{}
	}
	return res
}

func (f *fakeNews) Queries() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.queries...)
}

// fakeSummaries echoes a fixed reply per content and records inputs.
type fakeSummaries struct {
	mu      sync.Mutex
	reply   map[string]string
	block   map[string]chan struct{}
	inputs  []string
	defText string
}

func newFakeSummaries() *fakeSummaries {
	return &fakeSummaries{
		reply:   map[string]string{},
		block:   map[string]chan struct{}{},
		defText: "No summary available.",
	}
}

func (f *fakeSummaries) SummarizeArticle(ctx context.Context, content string) string {
	f.mu.Lock()
	f.inputs = append(f.inputs, content)
	wait := f.block[content]
	reply, ok := f.reply[content]
	f.mu.Unlock()

	if wait != nil {
		<-wait
	}
	if !ok {
		return f.defText
	}
	return reply
}

func (f *fakeSummaries) Inputs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.inputs...)
}

type fakeContent struct {
	content string
	err     error
	calls   int
}

func (f *fakeContent) FetchContent(context.Context, string) (string, error) {
	f.calls++
	return f.content, f.err
}

func article(title, url string) entity.Article {
	return entity.Article{Title: title, URL: url, Content: title + " content"}
}
