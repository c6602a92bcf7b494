package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fsr-protokoll/editor/internal/domain"
	"github.com/fsr-protokoll/editor/internal/i18n"
	"github.com/fsr-protokoll/editor/internal/roster"
)

func newRosterCmd(app *App) *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "roster [query]",
		Short: "List members, or suggest names for an attendee field",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := app.load(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if kind == "" && len(args) == 0 {
				printMembers(cmd, "FSR", env.Roster.FSR)
				printMembers(cmd, "Associated", env.Roster.Associated)
				return nil
			}

			snap := env.Editor.Session().Snapshot()
			var members []domain.Member
			var selected []string
			switch kind {
			case "", string(domain.AttendeeFSR):
				members, selected = env.Roster.FSR, snap.FSRMembers
			case string(domain.AttendeeGuest):
				members, selected = env.Roster.Associated, snap.Guests
			case "protocolant":
				members, selected = env.Roster.FSR, snap.Protocolant
			default:
				return fmt.Errorf("%w: kind must be one of fsr, guest, protocolant", domain.ErrValidation)
			}
			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			for _, name := range roster.Suggest(members, query, selected) {
				fmt.Fprintln(out, name)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "", "Field to suggest for: fsr (default), guest or protocolant")
	return cmd
}

func printMembers(cmd *cobra.Command, label string, members []domain.Member) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s:\n", label)
	for _, m := range members {
		if len(m.Aliases) > 0 {
			fmt.Fprintf(out, "  %s [%s]\n", m.Name, strings.Join(m.Aliases, ", "))
			continue
		}
		fmt.Fprintf(out, "  %s\n", m.Name)
	}
}

func newLangCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "lang [de|en|es|ru]",
		Short: "Show or set the language of messages and new topics",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := app.load(cmd)
			if err != nil {
				return err
			}
			var lang i18n.Language
			if len(args) == 1 {
				lang = env.Editor.SetLanguage(cmd.Context(), args[0])
			} else {
				lang = env.Editor.Language(cmd.Context())
			}
			fmt.Fprintln(cmd.OutOrStdout(), lang)
			return nil
		},
	}
}
