package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-clinic-client/models"
)

func (c *CLI) newPhotosCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "photos",
		Aliases: []string{"fotos"},
		Short:   "Manage patient photos",
	}

	cmd.AddCommand(c.newPhotosListCmd(), c.newPhotosUploadCmd(), c.newPhotosDeleteCmd())
	return cmd
}

func (c *CLI) newPhotosListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <patient-id>",
		Short: "List the photos of a patient",
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

			photos, err := svc.ListPhotos(cmd.Context(), patientID)
			if err != nil {
				return err
			}

			if len(photos) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No photos found.")
				return nil
			}

			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintln(tw, "ID\tURL\tDESCRIPTION")
			for _, p := range photos {
				fmt.Fprintf(tw, "%d\t%s\t%s\n", p.ID, p.URL, p.Description)
			}
			return tw.Flush()
		},
	}
}

func (c *CLI) newPhotosUploadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upload <patient-id> <file>",
		Short: "Upload a photo for a patient",
		Long: `Upload an image file for a patient.

Examples:
  clinic photos upload 12 ./radiografia.jpg --description "Radiografía de tórax"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := c.records()
			if err != nil {
				return err
			}
			patientID, err := parseID(args[0])
			if err != nil {
				return err
			}
			description, _ := cmd.Flags().GetString("description")

			photo, err := svc.UploadPhoto(cmd.Context(), models.PhotoUpload{
				PatientID:   patientID,
				FilePath:    args[1],
				Description: description,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Photo %d uploaded: %s\n", photo.ID, photo.URL)
			return nil
		},
	}

	cmd.Flags().String("description", "", "Photo description")
	return cmd
}

func (c *CLI) newPhotosDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <photo-id>",
		Short: "Delete a photo",
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

			if err := svc.DeletePhoto(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Photo %d deleted.\n", id)
			return nil
		},
	}
}
