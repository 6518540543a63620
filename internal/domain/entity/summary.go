package entity

// SummaryLine is one display bullet segmented from a raw summary line.
// It is created per render and never persisted.
type SummaryLine struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
}
