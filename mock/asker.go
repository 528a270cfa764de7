package mock

import (
	"context"

	"github.com/awray/docmap"
)

var _ docmap.Asker = (*Asker)(nil)

// Asker is a mock implementation of docmap.Asker.
type Asker struct {
	AskFn func(ctx context.Context, question string) (*docmap.Answer, error)
}

func (a *Asker) Ask(ctx context.Context, question string) (*docmap.Answer, error) {
	return a.AskFn(ctx, question)
}
