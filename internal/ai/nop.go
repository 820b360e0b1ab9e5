package ai

import "context"

// Nop is used when the domain model is disabled. It predicts nothing.
type Nop struct{}

func (Nop) Predict(context.Context, string) (Entities, error) {
	return Entities{}, nil
}

func (Nop) Name() string { return "none" }
