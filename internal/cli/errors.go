package cli

import "fmt"

// ExitError ends the process with Code without printing anything; the user
// has already seen why.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}
