package service

import "context"

const PurgePrompt = "Are you sure you want to permanently delete this file?"

// Confirmer is a blocking yes/no prompt.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

type ConfirmFunc func(ctx context.Context, prompt string) bool

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) bool {
	return f(ctx, prompt)
}

// Answer is a Confirmer with a fixed reply, for callers that asked up front.
type Answer bool

func (a Answer) Confirm(context.Context, string) bool {
	return bool(a)
}
