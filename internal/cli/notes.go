package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-clinic-client/models"
)

func (c *CLI) newNotesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "notes",
		Aliases: []string{"notas"},
		Short:   "Browse and write medical notes",
	}

	cmd.AddCommand(c.newNotesListCmd(), c.newNotesCreateCmd())
	return cmd
}

func (c *CLI) newNotesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <patient-id>",
		Short: "List the medical notes of a patient",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := c.records()
			if err != nil {
				return err
			}
			patientID, err := parseID(args[0])
			if err != nil {
				return err
			}

			notes, err := svc.ListNotes(cmd.Context(), patientID)
			if err != nil {
				return err
			}

			if len(notes) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No notes found.")
				return nil
			}

			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintln(tw, "ID\tDATE\tDIAGNOSIS\tTREATMENT")
			for _, n := range notes {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", n.ID, n.Date, n.Diagnosis, deref(n.Treatment))
			}
			return tw.Flush()
		},
	}
}

// vitalFlags maps flag names to the vital sign they set.
var vitalFlags = map[string]func(v *models.VitalSigns) **float64{
	"systolic":         func(v *models.VitalSigns) **float64 { return &v.SystolicPressure },
	"diastolic":        func(v *models.VitalSigns) **float64 { return &v.DiastolicPressure },
	"heart-rate":       func(v *models.VitalSigns) **float64 { return &v.HeartRate },
	"temperature":      func(v *models.VitalSigns) **float64 { return &v.Temperature },
	"weight":           func(v *models.VitalSigns) **float64 { return &v.Weight },
	"height":           func(v *models.VitalSigns) **float64 { return &v.Height },
	"oxygen":           func(v *models.VitalSigns) **float64 { return &v.OxygenSaturation },
	"respiratory-rate": func(v *models.VitalSigns) **float64 { return &v.RespiratoryRate },
}

func (c *CLI) newNotesCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create <patient-id>",
		Short: "Write a medical note for a patient",
		Long: `Write a medical note. Vital signs are optional.

Examples:
  clinic notes create 12 --date 2026-05-10 --diagnosis "Faringitis aguda" --temperature 38.2`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := c.records()
			if err != nil {
				return err
			}
			patientID, err := parseID(args[0])
			if err != nil {
				return err
			}

			optional := func(name string) *string {
				if !cmd.Flags().Changed(name) {
					return nil
				}
				v, _ := cmd.Flags().GetString(name)
				return &v
			}

			date, _ := cmd.Flags().GetString("date")
			diagnosis, _ := cmd.Flags().GetString("diagnosis")

			vitals := &models.VitalSigns{}
			for name, field := range vitalFlags {
				if cmd.Flags().Changed(name) {
					v, _ := cmd.Flags().GetFloat64(name)
					*field(vitals) = &v
				}
			}

			note, err := svc.CreateNote(cmd.Context(), models.Note{
				PatientID:    patientID,
				Date:         date,
				Reason:       optional("reason"),
				Symptoms:     optional("symptoms"),
				Diagnosis:    diagnosis,
				Treatment:    optional("treatment"),
				Observations: optional("observations"),
				VitalSigns:   vitals,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Note %d created.\n", note.ID)
			return nil
		},
	}

	cmd.Flags().String("date", "", "Consultation date, YYYY-MM-DD")
	cmd.Flags().String("reason", "", "Reason for the visit")
	cmd.Flags().String("symptoms", "", "Symptoms")
	cmd.Flags().String("diagnosis", "", "Diagnosis")
	cmd.Flags().String("treatment", "", "Treatment")
	cmd.Flags().String("observations", "", "Observations")
	for name := range vitalFlags {
		cmd.Flags().Float64(name, 0, "Vital sign: "+name)
	}
	_ = cmd.MarkFlagRequired("date")

	return cmd
}
