package completion

import "context"

// Request describes a single chat-completion exchange. The vendor behind the
// interface only needs to support synchronous text-in/text-out with an
// optional structured-JSON response hint.
type Request struct {
	System      string
	Prompt      string
	Temperature float64
	MaxTokens   int64
	// JSONMode asks the model to return a JSON body. Not all responses honor
	// it; callers must still parse defensively.
	JSONMode bool
}

// Client is the completion endpoint both the CV parser and the job matcher
// depend on. It is configured once at process start and injected; components
// never read client state from globals.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
}
