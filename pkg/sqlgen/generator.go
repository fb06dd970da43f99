package sqlgen

import (
	"context"
)

// Message is one turn of the report-building conversation in a
// provider-agnostic format.
type Message struct {
	Role    string // "user", "assistant"
	Content string
}

// Option allows optional generation parameters.
type Option func(*Options)

type Options struct {
	Temperature float64
	Model       string // override default model
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// Generator is the external SQL-generation capability. Implementations turn a
// conversation history plus the latest user request into a SQL query string.
// Callers bound the call with a context deadline; a failure or timeout is an
// error, never a partial result.
type Generator interface {
	Generate(ctx context.Context, history []Message, latest string, options ...Option) (string, error)
}
