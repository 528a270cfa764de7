package docmap

import "context"

// Answer is the result of a documentation question.
type Answer struct {
	Text string `json:"text"`

	// Sources lists the files that contributed findings, in consultation
	// order.
	Sources []string `json:"sources,omitempty"`
}

// Asker provides natural language question answering over the indexed
// documentation.
type Asker interface {
	// Ask answers a natural language question about the documentation.
	Ask(ctx context.Context, question string) (*Answer, error)
}
