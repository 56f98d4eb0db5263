package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cosmo-clinic/billing-atlas/pkg/export"
	"github.com/cosmo-clinic/billing-atlas/pkg/models/domain"
	"github.com/cosmo-clinic/billing-atlas/pkg/services/aggregate"
	"github.com/cosmo-clinic/billing-atlas/pkg/services/interval"
	"github.com/cosmo-clinic/billing-atlas/pkg/services/report"

	termexport "github.com/cosmo-clinic/billing-atlas/pkg/runtime/terminal/export"
	"github.com/spf13/cobra"
)

type ReportCmd struct {
	env      *Env
	reporter *termexport.Reporter
	interval string
	date     string
	week     int
	csv      bool
	out      string
	s3       bool
}

func NewReportCmd(env *Env, reporter *termexport.Reporter) *cobra.Command {
	rc := &ReportCmd{env: env, reporter: reporter}
	kinds := report.NewDefaultRegistry().ListKinds()
	names := make([]string, 0, len(kinds))
	for _, k := range kinds {
		names = append(names, string(k))
	}

	cmd := &cobra.Command{
		Use:       fmt.Sprintf("report <%s>", strings.Join(names, "|")),
		Short:     "Show an aggregated report for a day, week or month",
		Args:      cobra.ExactArgs(1),
		ValidArgs: names,
		RunE:      rc.run,
	}

	cmd.Flags().StringVar(&rc.interval, "interval", string(domain.Day), "Report interval: day, week or month")
	cmd.Flags().StringVar(&rc.date, "date", "", "Reference date (yyyy-MM-dd), defaults to today")
	cmd.Flags().IntVar(&rc.week, "week", 0, "1-based week of the reference month for weekly reports")
	cmd.Flags().BoolVar(&rc.csv, "csv", false, "Export every table as CSV")
	cmd.Flags().StringVar(&rc.out, "out", "", "Export directory, or - for stdout")
	cmd.Flags().BoolVar(&rc.s3, "s3", false, "Upload exports to the configured S3 bucket")

	return cmd
}

func (rc *ReportCmd) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	kind := domain.ReportKind(args[0])

	g, err := interval.ParseGranularity(rc.interval)
	if err != nil {
		return err
	}
	ref, err := rc.env.date(rc.date)
	if err != nil {
		return err
	}
	sel := interval.NewSelection(g, ref)
	if rc.week > 0 {
		if g != domain.Week {
			return fmt.Errorf("--week requires --interval week: %w", domain.ErrInvalidInterval)
		}
		if err := sel.SelectWeekIndex(rc.week); err != nil {
			return err
		}
	}
	date, err := sel.CanonicalDate()
	if err != nil {
		return err
	}

	c, err := rc.env.Client(ctx)
	if err != nil {
		return err
	}
	state, err := rc.env.Fetcher(c).Fetch(ctx, report.Request{Kind: kind, Interval: g, Date: date})
	if err != nil {
		return err
	}
	if state.Status == report.StatusError {
		return errors.New(state.Message)
	}

	var tables []domain.Table
	if kind == domain.SummaryReport {
		tables = []domain.Table{aggregate.SummaryTable(state.Summaries)}
	} else {
		tables = aggregate.BuildTables(kind, state.Records)
	}

	heading := sel.Heading()
	for _, t := range tables {
		if err := rc.reporter.Handle(heading, t); err != nil {
			return err
		}
	}

	if !rc.csv {
		return nil
	}
	sink, err := rc.env.Sink(ctx, rc.out, rc.s3, cmd.OutOrStdout())
	if err != nil {
		return fmt.Errorf("failed to open export sink: %w", err)
	}
	for _, t := range tables {
		data, err := export.EncodeCSV(t)
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", t.Name, err)
		}
		location, err := sink.Put(ctx, export.Filename(t, heading), export.CSVContentType, data)
		if err != nil {
			return fmt.Errorf("failed to export %s: %w", t.Name, err)
		}
		rc.env.Metrics.ObserveExport("csv")
		fmt.Fprintf(cmd.ErrOrStderr(), "exported %s\n", location)
	}
	return nil
}
