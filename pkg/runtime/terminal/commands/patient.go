package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cosmo-clinic/billing-atlas/pkg/models/domain"
	"github.com/cosmo-clinic/billing-atlas/pkg/services/intake"
	"github.com/spf13/cobra"
)

type PatientCmd struct {
	env     *Env
	patient domain.Patient
}

func NewPatientCmd(env *Env) *cobra.Command {
	pc := &PatientCmd{env: env}
	cmd := &cobra.Command{
		Use:   "patient",
		Short: "Front desk patient registration",
	}

	add := &cobra.Command{
		Use:   "add",
		Short: "Register a new patient and print the assigned UID",
		Args:  cobra.NoArgs,
		RunE:  pc.add,
	}
	f := add.Flags()
	f.StringVar(&pc.patient.PatientName, "name", "", "Patient name (required)")
	f.StringVar(&pc.patient.MobileNumber, "mobile", "", "Mobile number (required)")
	f.StringVar(&pc.patient.Age, "age", "", "Age in years")
	f.StringVar(&pc.patient.Gender, "gender", "", "Male, Female or Transgender")
	f.StringVar(&pc.patient.Email, "email", "", "Email address")
	f.StringVar(&pc.patient.Language, "language", "", "Preferred language")
	f.StringVar(&pc.patient.PurposeOfVisit, "purpose", "", "Purpose of visit")
	f.StringVar(&pc.patient.CustomPurpose, "custom-purpose", "", "Purpose of visit not in the usual list, replaces --purpose")
	f.StringVar(&pc.patient.Address, "address", "", "Postal address")

	cmd.AddCommand(add)
	return cmd
}

func (pc *PatientCmd) add(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	c, err := pc.env.Client(ctx)
	if err != nil {
		return err
	}

	form := intake.NewForm(c)
	uid, err := form.Submit(ctx, pc.patient)
	if err != nil {
		return errors.New(form.Message())
	}
	fmt.Fprintln(cmd.OutOrStdout(), form.Message())
	fmt.Fprintf(cmd.OutOrStdout(), "Patient UID: %s\n", uid)
	return nil
}

func NewComplaintsCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "complaints",
		Short: "List or extend the complaints catalog",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "Print the complaints catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			c, err := env.Client(ctx)
			if err != nil {
				return err
			}
			for _, it := range intake.NewCatalog(c).Load(ctx) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", it.ID, it.Name)
			}
			return nil
		},
	}

	add := &cobra.Command{
		Use:   "add <complaint>...",
		Short: "Add a complaint to the catalog",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, err := env.Client(ctx)
			if err != nil {
				return err
			}
			catalog := intake.NewCatalog(c)
			if _, err := catalog.Add(ctx, strings.Join(args, " ")); err != nil {
				return errors.New(catalog.Message())
			}
			fmt.Fprintln(cmd.OutOrStdout(), catalog.Message())
			return nil
		},
	}

	cmd.AddCommand(list, add)
	return cmd
}
