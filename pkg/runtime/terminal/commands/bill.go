package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/cosmo-clinic/billing-atlas/pkg/models/domain"
	"github.com/cosmo-clinic/billing-atlas/pkg/services/billing"
	"github.com/cosmo-clinic/billing-atlas/pkg/services/interval"
	"github.com/cosmo-clinic/billing-atlas/pkg/services/report"
	"github.com/cosmo-clinic/billing-atlas/pkg/store/pricing"

	termexport "github.com/cosmo-clinic/billing-atlas/pkg/runtime/terminal/export"
	"github.com/spf13/cobra"
)

type BillCmd struct {
	env             *Env
	reporter        *termexport.Reporter
	interval        string
	date            string
	appointmentDate string
	sets            []string
	save            bool
	price           string
}

func NewBillCmd(env *Env, reporter *termexport.Reporter) *cobra.Command {
	bc := &BillCmd{env: env, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "bill",
		Short: "Edit pharmacy billing records",
	}

	edit := &cobra.Command{
		Use:   "edit <patientUID>",
		Short: "Change line items of a patient's pharmacy bill",
		Args:  cobra.ExactArgs(1),
		RunE:  bc.edit,
	}
	edit.Flags().StringArrayVar(&bc.sets, "set", nil, "Item change as index:field=value, e.g. 0:qty=3 (repeatable)")
	edit.Flags().BoolVar(&bc.save, "save", false, "Send the changes to the clinic API")
	edit.Flags().StringVar(&bc.appointmentDate, "appointment-date", "", "Appointment date of the record to edit, needed when the patient has several in the period")

	del := &cobra.Command{
		Use:   "delete <recordID>",
		Short: "Delete a billing record",
		Args:  cobra.ExactArgs(1),
		RunE:  bc.delete,
	}

	medicines := &cobra.Command{
		Use:   "medicines",
		Short: "List pharmacy medicines or look up a price",
		Args:  cobra.NoArgs,
		RunE:  bc.medicines,
	}
	medicines.Flags().StringVar(&bc.price, "price", "", "Medicine name to price")

	for _, c := range []*cobra.Command{edit, del} {
		c.Flags().StringVar(&bc.interval, "interval", string(domain.Day), "Report interval: day, week or month")
		c.Flags().StringVar(&bc.date, "date", "", "Canonical report date (yyyy-MM-dd), defaults to today")
	}

	cmd.AddCommand(edit, del, medicines)
	return cmd
}

type itemChange struct {
	index int
	field billing.Field
	value string
}

// parseSet reads "index:field=value".
func parseSet(s string) (itemChange, error) {
	target, value, ok := strings.Cut(s, "=")
	if !ok {
		return itemChange{}, fmt.Errorf("invalid --set %q: expected index:field=value", s)
	}
	idx, name, ok := strings.Cut(target, ":")
	if !ok {
		return itemChange{}, fmt.Errorf("invalid --set %q: expected index:field=value", s)
	}
	index, err := strconv.Atoi(strings.TrimSpace(idx))
	if err != nil {
		return itemChange{}, fmt.Errorf("invalid --set %q: %w", s, err)
	}
	field, err := billing.ParseField(strings.TrimSpace(name))
	if err != nil {
		return itemChange{}, err
	}
	return itemChange{index: index, field: field, value: value}, nil
}

func (bc *BillCmd) editor(cmd *cobra.Command) (*billing.Editor, error) {
	ctx := cmd.Context()
	c, err := bc.env.Client(ctx)
	if err != nil {
		return nil, err
	}
	e := billing.NewEditor(c, pricing.NewStore(c), bc.env.Fetcher(c))

	g, err := interval.ParseGranularity(bc.interval)
	if err != nil {
		return nil, err
	}
	ref, err := bc.env.date(bc.date)
	if err != nil {
		return nil, err
	}
	state, err := e.Load(ctx, g, interval.Format(ref))
	if err != nil {
		return nil, err
	}
	if state.Status == report.StatusError {
		return nil, errors.New(state.Message)
	}
	return e, nil
}

func (bc *BillCmd) edit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	uid := args[0]

	changes := make([]itemChange, 0, len(bc.sets))
	for _, s := range bc.sets {
		ch, err := parseSet(s)
		if err != nil {
			return err
		}
		changes = append(changes, ch)
	}

	e, err := bc.editor(cmd)
	if err != nil {
		return err
	}
	record, err := e.Record(uid, bc.appointmentDate)
	if err != nil {
		if errors.Is(err, domain.ErrAmbiguousRecord) {
			return fmt.Errorf("%w: pass --appointment-date", err)
		}
		return err
	}
	key := billing.KeyOf(record)

	e.Begin()
	for _, ch := range changes {
		if _, err := e.Edit(ctx, key, ch.index, ch.field, ch.value); err != nil {
			return err
		}
	}

	if bc.save {
		err := e.Save(ctx, key)
		fmt.Fprintln(cmd.OutOrStdout(), e.Message())
		if err != nil {
			return err
		}
	}

	return bc.reporter.Handle(interval.Heading(domain.Granularity(bc.interval)), e.Table())
}

func (bc *BillCmd) delete(cmd *cobra.Command, args []string) error {
	e, err := bc.editor(cmd)
	if err != nil {
		return err
	}
	err = e.Delete(cmd.Context(), args[0])
	fmt.Fprintln(cmd.OutOrStdout(), e.Message())
	return err
}

func (bc *BillCmd) medicines(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	c, err := bc.env.Client(ctx)
	if err != nil {
		return err
	}
	store := pricing.NewStore(c)

	if bc.price != "" {
		p := store.GetMedicinePrice(ctx, bc.price)
		if !p.Found {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: no price found\n", bc.price)
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", bc.price, p.Amount)
		return nil
	}

	names, err := store.ListMedicineNames(ctx)
	if err != nil {
		return err
	}
	for _, n := range names {
		fmt.Fprintln(cmd.OutOrStdout(), n)
	}
	return nil
}
