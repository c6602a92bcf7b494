package handler

import (
	"context"

	"github.com/fsr-protokoll/editor/internal/service"
)

type questionBody struct {
	Title       string `json:"title"`
	Message     string `json:"message"`
	Destructive bool   `json:"destructive,omitempty"`
	// Hidden marks a password prompt rather than a yes/no question.
	Hidden bool `json:"hidden,omitempty"`
}

type noticeBody struct {
	Title       string `json:"title,omitempty"`
	Message     string `json:"message"`
	Destructive bool   `json:"destructive,omitempty"`
}

// requestDialog answers a flow's questions from what the request carried.
// An unanswered question makes the flow fail with domain.ErrCancelled; the
// question is kept so the client can ask the user and retry.
type requestDialog struct {
	confirmed bool
	password  *string

	asked   *questionBody
	notices []noticeBody
}

var _ service.Dialog = (*requestDialog)(nil)

func (d *requestDialog) Confirm(_ context.Context, q service.Question) bool {
	if d.confirmed {
		return true
	}
	d.asked = &questionBody{Title: q.Title, Message: q.Message, Destructive: q.Destructive}
	return false
}

func (d *requestDialog) Alert(_ context.Context, n service.Notice) {
	d.notices = append(d.notices, noticeBody{Title: n.Title, Message: n.Message, Destructive: n.Destructive})
}

func (d *requestDialog) Prompt(_ context.Context, p service.PromptRequest) (string, bool) {
	if d.password == nil {
		d.asked = &questionBody{Title: p.Title, Message: p.Message, Hidden: p.Hidden}
		return "", false
	}
	return *d.password, true
}

func (d *requestDialog) pending() *questionBody { return d.asked }

func (d *requestDialog) noticeBodies() []noticeBody { return d.notices }
