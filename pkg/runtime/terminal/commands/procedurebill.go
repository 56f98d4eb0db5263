package commands

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/cosmo-clinic/billing-atlas/pkg/export"
	"github.com/cosmo-clinic/billing-atlas/pkg/models/domain"
	"github.com/cosmo-clinic/billing-atlas/pkg/services/interval"
	"github.com/cosmo-clinic/billing-atlas/pkg/services/procedurebill"

	termexport "github.com/cosmo-clinic/billing-atlas/pkg/runtime/terminal/export"
	"github.com/spf13/cobra"
)

type ProcedureBillCmd struct {
	env               *Env
	reporter          *termexport.Reporter
	date              string
	payment           string
	prices            []string
	totals            []string
	rates             []string
	consumables       []string
	procedureSection  string
	consumableSection string
	pdf               bool
	out               string
	s3                bool
}

func NewProcedureBillCmd(env *Env, reporter *termexport.Reporter) *cobra.Command {
	pc := &ProcedureBillCmd{env: env, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "procedure-bill",
		Short: "Compose procedure and consumer bills",
	}
	cmd.PersistentFlags().StringVar(&pc.date, "date", "", "Appointment date (yyyy-MM-dd), defaults to today")

	list := &cobra.Command{
		Use:   "list",
		Short: "List patients with procedures on the date",
		Args:  cobra.NoArgs,
		RunE:  pc.list,
	}
	show := &cobra.Command{
		Use:   "show <patientUID>",
		Short: "Compose a bill without sending it",
		Args:  cobra.ExactArgs(1),
		RunE:  pc.show,
	}
	save := &cobra.Command{
		Use:   "save <patientUID>",
		Short: "Compose a bill and send it to the clinic API",
		Args:  cobra.ExactArgs(1),
		RunE:  pc.save,
	}

	for _, c := range []*cobra.Command{show, save} {
		c.Flags().StringVar(&pc.payment, "payment", string(domain.PaymentCard), "Payment type: Card or Cash")
		c.Flags().StringArrayVar(&pc.prices, "price", nil, "Procedure price as index=value (repeatable)")
		c.Flags().StringArrayVar(&pc.totals, "total", nil, "Procedure total including GST as index=value (repeatable)")
		c.Flags().StringArrayVar(&pc.rates, "rate", nil, "Procedure GST rate as index=value (repeatable)")
		c.Flags().StringArrayVar(&pc.consumables, "consumable", nil, "Consumable as item:qty:price (repeatable)")
		c.Flags().StringVar(&pc.procedureSection, "procedure-section", procedurebill.DefaultProcedureSection, "Section name of the procedure bill")
		c.Flags().StringVar(&pc.consumableSection, "consumable-section", procedurebill.DefaultConsumableSection, "Section name of the consumer bill")
		c.Flags().BoolVar(&pc.pdf, "pdf", false, "Render the bill as PDF")
		c.Flags().StringVar(&pc.out, "out", "", "PDF directory, or - for stdout")
		c.Flags().BoolVar(&pc.s3, "s3", false, "Upload the PDF to the configured S3 bucket")
	}

	cmd.AddCommand(list, show, save)
	return cmd
}

func (pc *ProcedureBillCmd) composer(cmd *cobra.Command) (*procedurebill.Composer, error) {
	ctx := cmd.Context()
	c, err := pc.env.Client(ctx)
	if err != nil {
		return nil, err
	}
	ref, err := pc.env.date(pc.date)
	if err != nil {
		return nil, err
	}
	comp := procedurebill.NewComposer(c)
	if err := comp.Load(ctx, interval.Format(ref)); err != nil {
		return nil, err
	}
	return comp, nil
}

func (pc *ProcedureBillCmd) list(cmd *cobra.Command, _ []string) error {
	comp, err := pc.composer(cmd)
	if err != nil {
		return err
	}
	patients := comp.Patients()
	if len(patients) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No patients found")
		return nil
	}
	for _, p := range patients {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d procedure(s)\n", p.PatientUID, p.PatientName, len(p.Procedures))
	}
	return nil
}

// indexed reads "index=value".
func indexed(s string) (int, string, error) {
	idx, value, ok := strings.Cut(s, "=")
	if !ok {
		return 0, "", fmt.Errorf("invalid value %q: expected index=value", s)
	}
	i, err := strconv.Atoi(strings.TrimSpace(idx))
	if err != nil {
		return 0, "", fmt.Errorf("invalid index in %q: %w", s, err)
	}
	return i, value, nil
}

// compose selects the patient and applies every flag in the order a user
// would fill the form: prices, then totals, then rates, then consumables.
func (pc *ProcedureBillCmd) compose(cmd *cobra.Command, uid string) (*procedurebill.Composer, error) {
	comp, err := pc.composer(cmd)
	if err != nil {
		return nil, err
	}
	if err := comp.Select(uid); err != nil {
		return nil, err
	}
	if err := comp.SetPaymentType(domain.PaymentType(pc.payment)); err != nil {
		return nil, err
	}
	comp.SetSections(pc.procedureSection, pc.consumableSection)

	steps := []struct {
		values []string
		apply  func(int, string) (domain.LineItem, error)
	}{
		{pc.prices, comp.SetPrice},
		{pc.totals, comp.SetTotal},
		{pc.rates, comp.SetRate},
	}
	for _, step := range steps {
		for _, v := range step.values {
			i, value, err := indexed(v)
			if err != nil {
				return nil, err
			}
			if _, err := step.apply(i, value); err != nil {
				return nil, err
			}
		}
	}

	for n, v := range pc.consumables {
		parts := strings.SplitN(v, ":", 3)
		if len(parts) != 3 {
			return nil, fmt.Errorf("invalid consumable %q: expected item:qty:price", v)
		}
		row := 0
		if n > 0 {
			if row, err = comp.AddConsumable(); err != nil {
				return nil, err
			}
		}
		fields := []procedurebill.ConsumableField{
			procedurebill.ConsumableItem, procedurebill.ConsumableQuantity, procedurebill.ConsumablePrice,
		}
		for i, f := range fields {
			if _, err := comp.SetConsumable(row, f, parts[i]); err != nil {
				return nil, err
			}
		}
	}
	return comp, nil
}

func (pc *ProcedureBillCmd) show(cmd *cobra.Command, args []string) error {
	comp, err := pc.compose(cmd, args[0])
	if err != nil {
		return err
	}
	return pc.present(cmd, comp)
}

func (pc *ProcedureBillCmd) save(cmd *cobra.Command, args []string) error {
	comp, err := pc.compose(cmd, args[0])
	if err != nil {
		return err
	}
	numbers, err := comp.Save(cmd.Context())
	fmt.Fprintln(cmd.OutOrStdout(), comp.Message())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Procedure bill: %s\nConsumer bill: %s\n", numbers.Procedure, numbers.Consumable)
	return pc.present(cmd, comp)
}

func (pc *ProcedureBillCmd) present(cmd *cobra.Command, comp *procedurebill.Composer) error {
	doc, err := comp.Document(pc.env.now())
	if err != nil {
		return err
	}
	heading := fmt.Sprintf("%s, %s", doc.PatientName, doc.PatientUID)
	for _, t := range []domain.Table{
		documentTable(pc.procedureSection, doc.ProcedureHead, doc.ProcedureRows),
		documentTable(pc.consumableSection, doc.ConsumableHead, doc.ConsumableRows),
	} {
		if err := pc.reporter.Handle(heading, t); err != nil {
			return err
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Total Amount: %s\n", doc.TotalAmount)

	if !pc.pdf {
		return nil
	}
	ctx := cmd.Context()
	header, err := export.LoadImage(pc.env.Settings.PDF.Header)
	if err != nil {
		return err
	}
	footer, err := export.LoadImage(pc.env.Settings.PDF.Footer)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := (export.PDFRenderer{Header: header, Footer: footer}).Render(&buf, doc); err != nil {
		return err
	}
	sink, err := pc.env.Sink(ctx, pc.out, pc.s3, cmd.OutOrStdout())
	if err != nil {
		return fmt.Errorf("failed to open export sink: %w", err)
	}
	location, err := sink.Put(ctx, export.ProcedureBillPDF, export.PDFContentType, buf.Bytes())
	if err != nil {
		return fmt.Errorf("failed to export bill: %w", err)
	}
	pc.env.Metrics.ObserveExport("pdf")
	fmt.Fprintf(cmd.ErrOrStderr(), "exported %s\n", location)
	return nil
}

func documentTable(title string, head []string, rows [][]string) domain.Table {
	t := domain.Table{Title: title, Empty: len(rows) == 0}
	for _, h := range head {
		t.Columns = append(t.Columns, domain.Column{Header: h})
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, domain.Row{Cells: r})
	}
	return t
}
