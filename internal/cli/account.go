package cli

import (
	"errors"
	"fmt"

	"github.com/jrsteele09/truedev-client/users"
	"github.com/spf13/cobra"
)

func newAccountCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage your profile, password and account",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(
		newAccountUpdateCmd(opts),
		newAccountPasswordCmd(opts),
		newAccountDeleteCmd(opts),
	)
	return cmd
}

func newAccountUpdateCmd(opts *rootOptions) *cobra.Command {
	var name, email, image string

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Change nickname, email or profile image",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := opts.app
			if err := a.requireLogin(); err != nil {
				return err
			}
			current := a.store.State().User
			if name == "" {
				name = current.UserName
			}
			if email == "" {
				email = current.Email
			}
			if err := users.ValidateNickname(name); err != nil {
				return err
			}
			if err := users.ValidateEmail(email); err != nil {
				return err
			}
			file, err := loadOptionalFile(image)
			if err != nil {
				return err
			}

			user, err := a.api.UpdateAccount(cmd.Context(), name, email, file)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Profile updated: %s <%s>\n", user.UserName, user.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "new nickname")
	cmd.Flags().StringVar(&email, "email", "", "new email")
	cmd.Flags().StringVar(&image, "image", "", "new profile image file")
	return cmd
}

func newAccountPasswordCmd(opts *rootOptions) *cobra.Command {
	var current, next, confirm string

	cmd := &cobra.Command{
		Use:   "password",
		Short: "Change your password",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := opts.app
			if err := a.requireLogin(); err != nil {
				return err
			}
			if err := users.ValidatePasswordChange(current, next, confirm); err != nil {
				return err
			}
			if err := a.api.ChangePassword(cmd.Context(), current, next); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Password changed.")
			return nil
		},
	}
	cmd.Flags().StringVar(&current, "current", "", "current password")
	cmd.Flags().StringVar(&next, "new", "", "new password")
	cmd.Flags().StringVar(&confirm, "confirm", "", "new password again")
	return cmd
}

var errDeleteNotConfirmed = errors.New("account deletion needs --yes")

func newAccountDeleteCmd(opts *rootOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete your account and log out",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := opts.app
			if err := a.requireLogin(); err != nil {
				return err
			}
			if !yes {
				return errDeleteNotConfirmed
			}
			if err := a.api.DeleteAccount(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Account deleted.")
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deletion")
	return cmd
}
