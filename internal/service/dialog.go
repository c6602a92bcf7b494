package service

import "context"

// Question is a yes/no confirmation shown before a flow changes anything.
type Question struct {
	Title       string
	Message     string
	Destructive bool
}

// Notice is an informational or error message shown after a flow.
type Notice struct {
	Title       string `json:"title,omitempty"`
	Message     string `json:"message"`
	Destructive bool   `json:"destructive,omitempty"`
}

// PromptRequest asks for one line of text.
type PromptRequest struct {
	Title   string
	Message string
	Hidden  bool
}

// Dialog is the user interaction capability a flow may need. Each surface
// (HTTP, terminal, tests) supplies its own per call.
type Dialog interface {
	// Confirm reports whether the user accepted q.
	Confirm(ctx context.Context, q Question) bool
	// Alert shows n.
	Alert(ctx context.Context, n Notice)
	// Prompt returns the entered text, or ok=false when the user aborted.
	Prompt(ctx context.Context, p PromptRequest) (text string, ok bool)
}

// Clipboard reads the system clipboard as text.
type Clipboard interface {
	ReadText(ctx context.Context) (string, error)
}
