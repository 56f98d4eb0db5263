package commands

import (
	"fmt"

	"github.com/cosmo-clinic/billing-atlas/pkg/services/interval"
	"github.com/spf13/cobra"
)

type WeeksCmd struct {
	env  *Env
	date string
}

func NewWeeksCmd(env *Env) *cobra.Command {
	wc := &WeeksCmd{env: env}
	cmd := &cobra.Command{
		Use:   "weeks",
		Short: "List the selectable weeks of a month",
		RunE:  wc.run,
	}

	cmd.Flags().StringVar(&wc.date, "date", "", "Any date in the month (yyyy-MM-dd), defaults to today")

	return cmd
}

func (wc *WeeksCmd) run(cmd *cobra.Command, _ []string) error {
	ref, err := wc.env.date(wc.date)
	if err != nil {
		return err
	}
	weeks := interval.WeeksInMonth(ref)
	if len(weeks) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No weeks found")
		return nil
	}
	for i, w := range weeks {
		fmt.Fprintf(cmd.OutOrStdout(), "Week %d: %s\n", i+1, interval.Format(w))
	}
	return nil
}
