// Package cli implements the protokoll command line editor. Every command
// runs one editing flow against the configured store and exits.
package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fsr-protokoll/editor/internal/domain"
	"github.com/fsr-protokoll/editor/internal/service"
)

// Env is what commands run against.
type Env struct {
	Editor    *service.Editor
	Roster    domain.Roster
	Dialog    service.Dialog
	Clipboard service.Clipboard
}

// Opener builds the Env for one invocation. assumeYes is the --yes flag.
// Releasing what it opened is the caller's job.
type Opener func(cmd *cobra.Command, assumeYes bool) (*Env, error)

// App holds the global flags and the lazily opened Env.
type App struct {
	AssumeYes bool
	JSON      bool

	open Opener
	env  *Env
}

// NewRootCmd builds the command tree. open is called at most once, by the
// first command that needs the session.
func NewRootCmd(open Opener) *cobra.Command {
	app := &App{open: open}

	cmd := &cobra.Command{
		Use:           "protokoll",
		Short:         "Edit and publish FSR meeting minutes",
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: strings.TrimSpace(`
  # Start a meeting
  protokoll meta now start
  protokoll attendees add fsr Alice Bob
  protokoll topic add "Budget"
  protokoll point set 1 1 "approved"

  # Hand the minutes to the bot
  protokoll send
`),
	}

	cmd.PersistentFlags().BoolVarP(&app.AssumeYes, "yes", "y", false, "Answer yes to every confirmation")
	cmd.PersistentFlags().BoolVar(&app.JSON, "json", false, "Print the session as JSON instead of YAML")

	cmd.AddCommand(newShowCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newImportCmd(app))
	cmd.AddCommand(newPasteCmd(app))
	cmd.AddCommand(newSendCmd(app))
	cmd.AddCommand(newResetCmd(app))
	cmd.AddCommand(newTopicCmd(app))
	cmd.AddCommand(newPointCmd(app))
	cmd.AddCommand(newAttendeesCmd(app))
	cmd.AddCommand(newProtocolantCmd(app))
	cmd.AddCommand(newMetaCmd(app))
	cmd.AddCommand(newRosterCmd(app))
	cmd.AddCommand(newLangCmd(app))

	return cmd
}

func (a *App) load(cmd *cobra.Command) (*Env, error) {
	if a.env != nil {
		return a.env, nil
	}
	env, err := a.open(cmd, a.AssumeYes)
	if err != nil {
		return nil, err
	}
	a.env = env
	return env, nil
}

// flowError turns a flow's error into the command's result. Declined
// questions and failures the dialog already showed exit non-zero without
// printing again.
func flowError(env *Env, err error) error {
	if err == nil {
		return nil
	}
	if r, ok := env.Dialog.(interface{ Err() error }); ok && r.Err() != nil {
		return r.Err()
	}
	if errors.Is(err, domain.ErrCancelled) {
		return &ExitError{Code: 2}
	}
	if shown(err) {
		return &ExitError{Code: 1}
	}
	return err
}

// shown reports whether the flow has already alerted the user about err.
func shown(err error) bool {
	return errors.Is(err, domain.ErrFormat) ||
		errors.Is(err, domain.ErrClipboardEmpty) ||
		errors.Is(err, domain.ErrClipboardDenied) ||
		service.IsPublishError(err)
}

// resolveTopic accepts a 1-based position or a topic id.
func resolveTopic(s domain.Session, ref string) (string, error) {
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(s.Topics) {
			return "", fmt.Errorf("%w: no topic at position %d", domain.ErrValidation, n)
		}
		return s.Topics[n-1].ID, nil
	}
	if s.TopicIndex(ref) < 0 {
		return "", fmt.Errorf("%w: no topic with id %q", domain.ErrValidation, ref)
	}
	return ref, nil
}

// position parses a 1-based position argument.
func position(name, raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: %s must be a positive number, got %q", domain.ErrValidation, name, raw)
	}
	return n, nil
}
