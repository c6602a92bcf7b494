package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/fsr-protokoll/editor/internal/domain"
	"github.com/fsr-protokoll/editor/internal/roster"
)

// ---- topics ----------------------------------------------------------------

func newTopicCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "topic",
		Short: "Add, rename, remove and reorder agenda topics",
		Long:  "Topics are addressed by their 1-based position or by id.",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "add [title]",
		Short: "Append a topic",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := app.load(cmd)
			if err != nil {
				return err
			}
			topic := env.Editor.Session().AddTopic(cmd.Context())
			if len(args) == 1 {
				env.Editor.Session().UpdateTopicTitle(topic.ID, args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), topic.ID)
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "rename <topic> <title>",
		Short: "Rename a topic",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withTopic(cmd, args[0], func(env *Env, id string) {
				env.Editor.Session().UpdateTopicTitle(id, args[1])
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "rm <topic>",
		Short: "Remove a topic and its points",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withTopic(cmd, args[0], func(env *Env, id string) {
				env.Editor.Session().RemoveTopic(id)
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "move <from> <to>",
		Short: "Move the topic at position from to position to",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := position("from", args[0])
			if err != nil {
				return err
			}
			to, err := position("to", args[1])
			if err != nil {
				return err
			}
			env, err := app.load(cmd)
			if err != nil {
				return err
			}
			env.Editor.Session().MoveTopic(from-1, to-1)
			return nil
		},
	})
	return cmd
}

// ---- points ----------------------------------------------------------------

func newPointCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "point",
		Short: "Add, change and remove the points of a topic",
		Long:  "Points are addressed by their 1-based position within the topic.",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "add <topic> [text]",
		Short: "Append a point",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withTopic(cmd, args[0], func(env *Env, id string) {
				session := env.Editor.Session()
				session.AddPoint(id)
				if len(args) == 2 {
					s := session.Snapshot()
					session.UpdatePoint(id, len(s.Topics[s.TopicIndex(id)].Points)-1, args[1])
				}
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "set <topic> <n> <text>",
		Short: "Change a point",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := position("n", args[1])
			if err != nil {
				return err
			}
			return app.withTopic(cmd, args[0], func(env *Env, id string) {
				env.Editor.Session().UpdatePoint(id, n-1, args[2])
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "rm <topic> <n>",
		Short: "Remove a point",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := position("n", args[1])
			if err != nil {
				return err
			}
			return app.withTopic(cmd, args[0], func(env *Env, id string) {
				env.Editor.Session().RemovePoint(id, n-1)
			})
		},
	})
	return cmd
}

func (a *App) withTopic(cmd *cobra.Command, ref string, fn func(env *Env, id string)) error {
	env, err := a.load(cmd)
	if err != nil {
		return err
	}
	id, err := resolveTopic(env.Editor.Session().Snapshot(), ref)
	if err != nil {
		return err
	}
	fn(env, id)
	return nil
}

// ---- attendees -------------------------------------------------------------

func newAttendeesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "attendees",
		Short: "Edit the FSR member and guest lists",
	}
	edit := func(use, short string, apply func(selected []string, name string) []string) *cobra.Command {
		return &cobra.Command{
			Use:       use + " <fsr|guest> <name>...",
			Short:     short,
			Args:      cobra.MinimumNArgs(2),
			ValidArgs: []string{string(domain.AttendeeFSR), string(domain.AttendeeGuest)},
			RunE: func(cmd *cobra.Command, args []string) error {
				kind := domain.AttendeeKind(args[0])
				if !kind.Valid() {
					return fmt.Errorf("%w: attendee kind must be %q or %q", domain.ErrValidation, domain.AttendeeFSR, domain.AttendeeGuest)
				}
				env, err := app.load(cmd)
				if err != nil {
					return err
				}
				snap := env.Editor.Session().Snapshot()
				selected := snap.FSRMembers
				if kind == domain.AttendeeGuest {
					selected = snap.Guests
				}
				for _, name := range args[1:] {
					selected = apply(selected, name)
				}
				env.Editor.Session().SetAttendees(kind, selected)
				return nil
			},
		}
	}
	cmd.AddCommand(edit("add", "Add attendees", func(selected []string, name string) []string {
		return roster.AddSelection(selected, name, roster.Unlimited)
	}))
	cmd.AddCommand(edit("rm", "Remove attendees", roster.RemoveSelection))
	return cmd
}

func newProtocolantCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "protocolant",
		Short: "Set or clear the minute taker",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "set <name>",
		Short: "Set the minute taker",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := app.load(cmd)
			if err != nil {
				return err
			}
			env.Editor.Session().SetProtocolant(roster.AddSelection(nil, args[0], 1))
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Clear the minute taker",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := app.load(cmd)
			if err != nil {
				return err
			}
			env.Editor.Session().SetProtocolant(nil)
			return nil
		},
	})
	return cmd
}

// ---- meta ------------------------------------------------------------------

func newMetaCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "meta",
		Short: "Edit the meeting date and times",
	}

	var date, start, end string
	set := &cobra.Command{
		Use:   "set",
		Short: "Set the date, start or end; omitted flags are kept",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch domain.MetaPatch
			if cmd.Flags().Changed("date") {
				if date != "" {
					if _, err := time.Parse(domain.DateLayout, date); err != nil {
						return fmt.Errorf("%w: date must be YYYY-MM-DD", domain.ErrValidation)
					}
				}
				patch.Date = &date
			}
			if cmd.Flags().Changed("start") {
				patch.Start = &start
			}
			if cmd.Flags().Changed("end") {
				patch.End = &end
			}
			env, err := app.load(cmd)
			if err != nil {
				return err
			}
			env.Editor.Session().SetMeta(patch)
			return nil
		},
	}
	set.Flags().StringVar(&date, "date", "", "Meeting date (YYYY-MM-DD, empty clears)")
	set.Flags().StringVar(&start, "start", "", "Start time (HH:MM)")
	set.Flags().StringVar(&end, "end", "", "End time (HH:MM)")
	cmd.AddCommand(set)

	cmd.AddCommand(&cobra.Command{
		Use:       "now <start|end>",
		Short:     "Set the start or end to the current time (UTC)",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(domain.FieldStart), string(domain.FieldEnd)},
		RunE: func(cmd *cobra.Command, args []string) error {
			field := domain.TimeField(args[0])
			if !field.Valid() {
				return fmt.Errorf("%w: field must be %q or %q", domain.ErrValidation, domain.FieldStart, domain.FieldEnd)
			}
			env, err := app.load(cmd)
			if err != nil {
				return err
			}
			env.Editor.Session().StampNow(field)
			return nil
		},
	})
	return cmd
}
