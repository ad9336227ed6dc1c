package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-clinic-client/models"
)

func (c *CLI) newPatientsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "patients",
		Aliases: []string{"pacientes"},
		Short:   "Browse and register patients",
	}

	cmd.AddCommand(c.newPatientsListCmd(), c.newPatientsGetCmd(), c.newPatientsCreateCmd())
	return cmd
}

func (c *CLI) newPatientsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List patients",
		Long: `List patients, optionally filtered by a search term or status.

Examples:
  clinic patients list
  clinic patients list --search Pérez --status activo`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := c.records()
			if err != nil {
				return err
			}

			search, _ := cmd.Flags().GetString("search")
			status, _ := cmd.Flags().GetString("status")

			patients, err := svc.ListPatients(cmd.Context(), models.PatientFilter{
				Search: search,
				Status: models.PatientStatus(status),
			})
			if err != nil {
				return err
			}

			if len(patients) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No patients found.")
				return nil
			}

			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintln(tw, "ID\tNAME\tPHONE\tEMAIL\tSTATUS")
			for _, p := range patients {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", p.ID, p.FullName(), p.Phone, p.Email, p.Status)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().String("search", "", "Search by name")
	cmd.Flags().String("status", "", "Filter by status: activo or inactivo")
	return cmd
}

func (c *CLI) newPatientsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <patient-id>",
		Short: "Show a patient",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := c.records()
			if err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			patient, err := svc.GetPatient(cmd.Context(), id)
			if err != nil {
				return err
			}

			printPatient(cmd.OutOrStdout(), patient)
			return nil
		},
	}
}

func (c *CLI) newPatientsCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register a new patient",
		Long: `Register a new patient.

Examples:
  clinic patients create --first-name Luis --last-name Pérez --birth-date 1980-04-12 --phone "600 000 000"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := c.records()
			if err != nil {
				return err
			}

			get := func(name string) string {
				v, _ := cmd.Flags().GetString(name)
				return v
			}

			patient, err := svc.CreatePatient(cmd.Context(), models.Patient{
				FirstName: get("first-name"),
				LastName:  get("last-name"),
				BirthDate: get("birth-date"),
				Sex:       get("sex"),
				Phone:     get("phone"),
				Email:     get("email"),
				Address:   get("address"),
				Status:    models.PatientActive,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Patient %d created: %s\n", patient.ID, patient.FullName())
			return nil
		},
	}

	cmd.Flags().String("first-name", "", "First name")
	cmd.Flags().String("last-name", "", "Last name")
	cmd.Flags().String("birth-date", "", "Birth date, YYYY-MM-DD")
	cmd.Flags().String("sex", "", "Sex")
	cmd.Flags().String("phone", "", "Phone number")
	cmd.Flags().String("email", "", "Email")
	cmd.Flags().String("address", "", "Address")
	return cmd
}
