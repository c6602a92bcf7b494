package term

import (
	"context"

	"github.com/atotto/clipboard"
	"golang.org/x/xerrors"

	"github.com/fsr-protokoll/editor/internal/service"
)

// Clipboard reads the system clipboard through the platform's clipboard
// utility (pbpaste, xclip, xsel, wl-paste or the Windows API).
type Clipboard struct{}

var _ service.Clipboard = Clipboard{}

// ReadText returns the clipboard contents as text.
func (Clipboard) ReadText(_ context.Context) (string, error) {
	if clipboard.Unsupported {
		return "", xerrors.New("no clipboard utility available")
	}
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", xerrors.Errorf("failed to read clipboard: %w", err)
	}
	return text, nil
}
