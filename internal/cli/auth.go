package cli

import (
	"fmt"
	"time"

	"github.com/jrsteele09/truedev-client/api"
	"github.com/jrsteele09/truedev-client/token"
	"github.com/jrsteele09/truedev-client/users"
	"github.com/spf13/cobra"
)

func newSignupCmd(opts *rootOptions) *cobra.Command {
	var in api.SignupInput
	var confirm, image string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account",
		Example: `  truedev signup --email me@example.com --password 'correct horse' \
    --confirm 'correct horse' --name lucas --image avatar.png`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := users.ValidateSignup(in.Email, in.Password, confirm, in.Name); err != nil {
				return err
			}
			file, err := loadOptionalFile(image)
			if err != nil {
				return err
			}
			if err := opts.app.api.Signup(cmd.Context(), in, file); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Account created. You can now log in.")
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Email, "email", "", "email address")
	cmd.Flags().StringVar(&in.Password, "password", "", "password (8 to 72 characters)")
	cmd.Flags().StringVar(&confirm, "confirm", "", "password again")
	cmd.Flags().StringVar(&in.Name, "name", "", "nickname (2 to 20 characters)")
	cmd.Flags().StringVar(&image, "image", "", "profile image file")
	return cmd
}

func newLoginCmd(opts *rootOptions) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and keep the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := users.ValidateLogin(email, password); err != nil {
				return err
			}
			user, err := opts.app.api.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Welcome, %s.\n", user.UserName)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password")
	return cmd
}

func newLogoutCmd(opts *rootOptions) *cobra.Command {
	var local bool

	cmd := &cobra.Command{
		Use:   "logout",
		Short: "End the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			skipRequest := local || !opts.app.store.IsAuthenticated()
			if err := opts.app.api.Logout(cmd.Context(), skipRequest); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
	cmd.Flags().BoolVar(&local, "local", false, "only forget the local session")
	return cmd
}

func newWhoamiCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user and access token lifetime",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := opts.app
			if err := a.requireLogin(); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			state := a.store.State()
			fmt.Fprintf(out, "%s <%s>\n", state.User.UserName, state.User.Email)
			if state.User.ProfileImage != "" {
				fmt.Fprintln(out, mutedStyle.Render("image: "+state.User.ProfileImage))
			}
			fmt.Fprintln(out, mutedStyle.Render("backend: "+a.api.Client().BaseURL()))

			tok, err := token.NewSessionTokenSource(a.store).Token()
			if err != nil {
				a.logger.Debug().Err(err).Msg("Could not read access token")
				fmt.Fprintln(out, "access token: unreadable")
				return nil
			}
			if tok.Expiry.IsZero() {
				fmt.Fprintln(out, "access token: no expiry")
				return nil
			}
			if left := time.Until(tok.Expiry); left > 0 {
				fmt.Fprintf(out, "access token: expires in %s\n", left.Round(time.Second))
			} else {
				fmt.Fprintln(out, "access token: expired, it will be refreshed on the next request")
			}
			return nil
		},
	}
}

func loadOptionalFile(path string) (*api.File, error) {
	if path == "" {
		return nil, nil
	}
	return api.LoadFile(path)
}
