package cmd

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	dash "github.com/nfrund/userdash/internal/dashboard"
	dview "github.com/nfrund/userdash/internal/modules/dashboard/view"
	"github.com/nfrund/userdash/internal/view"
	"github.com/nfrund/userdash/web/src/templates/layouts"
)

func newSnapshotCmd(o *options) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "snapshot <user-id>",
		Short: "Load a dashboard to completion and write it as HTML",
		Long: `Run a dashboard controller for the user until both fetches have finished,
then render the final state as a standalone HTML document.

A failed fetch still produces a document; it shows the error alert.

Examples:
  userdash-cli snapshot 1                     # writes dashboard-1.html
  userdash-cli snapshot 1 --out out/u1.html
  userdash-cli snapshot 1 --out -             # writes to stdout`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			subject := args[0]
			if out == "" {
				out = "dashboard-" + subject + ".html"
			}

			state := runController(cmd.Context(), o, subject)

			html, err := renderSnapshot(cmd.Context(), state)
			if err != nil {
				return fmt.Errorf("rendering dashboard: %w", err)
			}

			if out == "-" {
				_, err := cmd.OutOrStdout().Write(html)
				return err
			}
			if err := o.fs.MkdirAll(filepath.Dir(out), 0o755); err != nil {
				return fmt.Errorf("creating output directory: %w", err)
			}
			if err := afero.WriteFile(o.fs, out, html, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (phase %s)\n", out, state.Phase)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", `output file, "-" for stdout (default dashboard-<user-id>.html)`)
	return cmd
}

func runController(ctx context.Context, o *options, subject string) dash.ViewState {
	if ctx == nil {
		ctx = context.Background()
	}
	controller := dash.NewController(ctx, o.client(), slog.Default().With("subject", subject))
	controller.SetSubject(subject)
	controller.Wait()
	return controller.Snapshot()
}

func renderSnapshot(ctx context.Context, state dash.ViewState) ([]byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	var buf bytes.Buffer
	content := view.AdaptGomponentToTempl(dview.Dashboard(state))
	if err := layouts.Base("User "+state.Subject, view.FlashData{}, content).Render(ctx, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
