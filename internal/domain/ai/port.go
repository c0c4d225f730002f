package ai

import "context"

// Provider is a completion backend. Providers are tried in a fixed order by
// the risk completion client; Configured is the opaque precondition check
// (presence of credentials) done before any call is attempted.
type Provider interface {
	Name() string
	Configured() bool
	Complete(ctx context.Context, systemPrompt, userText string) (string, error)
}
