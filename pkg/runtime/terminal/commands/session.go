package commands

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/cosmo-clinic/billing-atlas/pkg/export"
	"github.com/cosmo-clinic/billing-atlas/pkg/models/domain"
	"github.com/cosmo-clinic/billing-atlas/pkg/services/history"
	"github.com/cosmo-clinic/billing-atlas/pkg/services/notification"
	"github.com/spf13/cobra"
)

// Printer renders the text views of the notification panel and history.
type Printer interface {
	Notifications(n domain.Notifications) error
	History(h domain.History) error
}

func NewLoginCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Check the credentials of the selected profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			c, err := env.Client(ctx)
			if err != nil {
				return err
			}
			_, s, err := env.SignIn(ctx, c)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s (%s) via %s, landing on %s\n",
				s.Name, s.Role, s.LoggedInAs, s.Landing())
			return nil
		},
	}
}

func NewProfilesCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List the clinic accounts of the profiles file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if env.Profiles == nil {
				return errNoProfiles
			}
			ctx := cmd.Context()
			names, err := env.Profiles.GetProfiles(ctx)
			if err != nil {
				return err
			}
			for _, name := range names {
				p, err := env.Profiles.GetProfile(ctx, name)
				if err != nil {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\tinvalid: %v\n", name, err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", p.Name, p.Username, p.LoginAs)
			}
			return nil
		},
	}
}

func NewNotificationsCmd(env *Env, printer Printer) *cobra.Command {
	return &cobra.Command{
		Use:   "notifications",
		Short: "Show low stock, near expiry and upcoming visit alerts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			c, err := env.Client(ctx)
			if err != nil {
				return err
			}
			m, _, err := env.SignIn(ctx, c)
			if err != nil {
				return err
			}
			n, err := notification.NewPanel(c, m).Load(ctx)
			if err != nil {
				return err
			}
			return printer.Notifications(n)
		},
	}
}

type HistoryCmd struct {
	env     *Env
	printer Printer
	files   string
}

func NewHistoryCmd(env *Env, printer Printer) *cobra.Command {
	hc := &HistoryCmd{env: env, printer: printer}
	cmd := &cobra.Command{
		Use:   "history <patientUID>",
		Short: "Show a patient's visits and attached files",
		Args:  cobra.ExactArgs(1),
		RunE:  hc.run,
	}

	cmd.Flags().StringVar(&hc.files, "save-files", "", "Directory to write the attached images and PDFs to")

	return cmd
}

func (hc *HistoryCmd) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	c, err := hc.env.Client(ctx)
	if err != nil {
		return err
	}
	h, err := history.NewViewer(c).Load(ctx, args[0])
	if err != nil {
		return err
	}
	if err := hc.printer.History(h); err != nil {
		return err
	}
	if hc.files == "" {
		return nil
	}
	return saveFiles(ctx, export.DirSink{Dir: hc.files}, h)
}

func saveFiles(ctx context.Context, sink export.Sink, h domain.History) error {
	for _, visit := range h.Files {
		for _, f := range append(append([]domain.HistoryFile(nil), visit.Images...), visit.PDFs...) {
			if _, err := sink.Put(ctx, filepath.Base(f.Filename), f.ContentType, f.Data); err != nil {
				return fmt.Errorf("failed to save %s: %w", f.Filename, err)
			}
		}
	}
	return nil
}
