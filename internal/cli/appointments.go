package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-clinic-client/models"
)

func (c *CLI) newAppointmentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "appointments",
		Aliases: []string{"citas"},
		Short:   "Browse appointments",
	}

	cmd.AddCommand(c.newAppointmentsListCmd())
	return cmd
}

func (c *CLI) newAppointmentsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List appointments",
		Long: `List appointments in a date range.

Examples:
  clinic appointments list --from 2026-05-01 --to 2026-05-31
  clinic appointments list --status programada --doctor "Dra. Ruiz"`,
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

			appointments, err := svc.ListAppointments(cmd.Context(), models.AppointmentFilter{
				From:   get("from"),
				To:     get("to"),
				Status: models.AppointmentStatus(get("status")),
				Doctor: get("doctor"),
			})
			if err != nil {
				return err
			}

			if len(appointments) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No appointments found.")
				return nil
			}

			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintln(tw, "ID\tDATE\tTIME\tPATIENT\tDOCTOR\tSTATUS\tREASON")
			for _, a := range appointments {
				patient := fmt.Sprintf("#%d", a.PatientID)
				if a.Patient != nil {
					patient = a.Patient.FullName()
				}
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n", a.ID, a.Date, a.Time, patient, a.Doctor, a.Status, a.Reason)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().String("from", "", "First date, YYYY-MM-DD")
	cmd.Flags().String("to", "", "Last date, YYYY-MM-DD")
	cmd.Flags().String("status", "", "Filter by status")
	cmd.Flags().String("doctor", "", "Filter by doctor")
	return cmd
}
