package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-clinic-client/models"
)

func (c *CLI) newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Sign in, sign out and manage your account",
	}

	cmd.AddCommand(
		c.newLoginCmd(),
		c.newRegisterCmd(),
		c.newLogoutCmd(),
		c.newStatusCmd(),
		c.newProfileCmd(),
		c.newPasswordCmd(),
	)

	return cmd
}

func (c *CLI) newLoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with email and password",
		Long: `Sign in to the clinic API. The session is stored on this device.

Examples:
  clinic auth login --email ana@clinica.es --password secreto`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := c.auth()
			if err != nil {
				return err
			}

			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")

			sess, err := svc.Login(cmd.Context(), models.Credentials{Email: email, Password: password})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s <%s>\n", sess.User.FullName(), sess.User.Email)
			return nil
		},
	}

	cmd.Flags().String("email", "", "Account email")
	cmd.Flags().String("password", "", "Account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func (c *CLI) newRegisterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in with it",
		Long: `Create a new account. After registration you are signed in.

Examples:
  clinic auth register --name "Ana Ruiz" --email ana@clinica.es --password secreto
  clinic auth register --name "Luis Gil" --email luis@clinica.es --password secreto --role asistente`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := c.auth()
			if err != nil {
				return err
			}

			name, _ := cmd.Flags().GetString("name")
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")
			role, _ := cmd.Flags().GetString("role")

			sess, err := svc.Register(cmd.Context(), models.Registration{
				Name:     name,
				Email:    email,
				Password: password,
				Role:     models.Role(role),
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Registration successful!")
			fmt.Fprintf(out, "Signed in as %s <%s>\n", sess.User.FullName(), sess.User.Email)
			return nil
		},
	}

	cmd.Flags().String("name", "", "Full name")
	cmd.Flags().String("email", "", "Account email")
	cmd.Flags().String("password", "", "Account password")
	cmd.Flags().String("role", string(models.RoleDoctor), "Account role: medico, asistente or admin")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func (c *CLI) newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := c.auth()
			if err != nil {
				return err
			}
			if err := svc.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
			return nil
		},
	}
}

func (c *CLI) newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := c.auth()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			sess := svc.Status()
			if sess.State() != models.StateAuthenticated {
				fmt.Fprintln(out, "Not signed in.")
				fmt.Fprintln(out, "Use 'clinic auth login' to authenticate.")
				return nil
			}

			fmt.Fprintln(out, "Signed in")
			fmt.Fprintf(out, "Name:  %s\n", sess.User.FullName())
			fmt.Fprintf(out, "Email: %s\n", sess.User.Email)
			fmt.Fprintf(out, "Role:  %s\n", sess.User.Role)
			return nil
		},
	}
}

func (c *CLI) newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or update your profile",
		Long: `Show your profile. With any of the flags set, update those fields first.

Examples:
  clinic auth profile
  clinic auth profile --phone "+34 600 000 000" --specialty Cardiología`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := c.auth()
			if err != nil {
				return err
			}

			var update models.ProfileUpdate
			for flag, dst := range map[string]**string{
				"name":      &update.Name,
				"last-name": &update.LastName,
				"email":     &update.Email,
				"phone":     &update.Phone,
				"specialty": &update.Specialty,
			} {
				if cmd.Flags().Changed(flag) {
					v, _ := cmd.Flags().GetString(flag)
					*dst = &v
				}
			}

			var user models.User
			if update.IsEmpty() {
				user, err = svc.Profile(cmd.Context())
			} else {
				user, err = svc.UpdateProfile(cmd.Context(), update)
			}
			if err != nil {
				return err
			}

			printUser(cmd.OutOrStdout(), user)
			return nil
		},
	}

	cmd.Flags().String("name", "", "New name")
	cmd.Flags().String("last-name", "", "New last name")
	cmd.Flags().String("email", "", "New email")
	cmd.Flags().String("phone", "", "New phone")
	cmd.Flags().String("specialty", "", "New specialty")

	return cmd
}

func (c *CLI) newPasswordCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "password",
		Short: "Change your password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := c.auth()
			if err != nil {
				return err
			}

			current, _ := cmd.Flags().GetString("current")
			next, _ := cmd.Flags().GetString("new")

			if err := svc.ChangePassword(cmd.Context(), models.PasswordChange{CurrentPassword: current, NewPassword: next}); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Password changed.")
			return nil
		},
	}

	cmd.Flags().String("current", "", "Current password")
	cmd.Flags().String("new", "", "New password")
	_ = cmd.MarkFlagRequired("current")
	_ = cmd.MarkFlagRequired("new")

	return cmd
}
