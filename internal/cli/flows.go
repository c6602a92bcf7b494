package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/fsr-protokoll/editor/internal/codec"
)

func newShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := app.load(cmd)
			if err != nil {
				return err
			}
			return writeSession(cmd, app, env)
		},
	}
}

func newExportCmd(app *App) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the session as a YAML document",
		Long:  "Write the session as a YAML document to stdout, to a file, or into a directory under its default name.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := app.load(cmd)
			if err != nil {
				return err
			}
			export, err := env.Editor.Export(cmd.Context())
			if err != nil {
				return err
			}
			if out == "" || out == "-" {
				_, err := cmd.OutOrStdout().Write(export.Content)
				return err
			}
			path := out
			if info, err := os.Stat(out); err == nil && info.IsDir() {
				path = filepath.Join(out, export.Filename)
			}
			if err := os.WriteFile(path, export.Content, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "File or directory to write (default stdout)")
	return cmd
}

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the session with a YAML document (- reads stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := app.load(cmd)
			if err != nil {
				return err
			}
			var r io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}
			return flowError(env, env.Editor.Import(cmd.Context(), env.Dialog, r))
		},
	}
}

func newPasteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "paste",
		Short: "Replace the session with the YAML document on the clipboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := app.load(cmd)
			if err != nil {
				return err
			}
			return flowError(env, env.Editor.Paste(cmd.Context(), env.Dialog, env.Clipboard))
		},
	}
}

func newSendCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "send",
		Short: "Publish the session to the chat webhook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := app.load(cmd)
			if err != nil {
				return err
			}
			_, err = env.Editor.Send(cmd.Context(), env.Dialog)
			return flowError(env, err)
		},
	}
}

func newResetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Discard the session and start over",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := app.load(cmd)
			if err != nil {
				return err
			}
			return flowError(env, env.Editor.Reset(cmd.Context(), env.Dialog))
		},
	}
}

// writeSession prints the session as the YAML document or, with --json, as
// the API's JSON snapshot.
func writeSession(cmd *cobra.Command, app *App, env *Env) error {
	snap := env.Editor.Session().Snapshot()
	if app.JSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	}
	out, err := codec.Encode(snap)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}
