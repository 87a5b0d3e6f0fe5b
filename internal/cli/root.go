package cli

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/jrsteele09/truedev-client/internal/config"
	"github.com/spf13/cobra"
)

var errNotLoggedIn = errors.New("not logged in; run 'truedev login' first")

type rootOptions struct {
	configPath string
	verbose    bool
	app        *app
}

// NewRootCommand builds the truedev command tree.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&rootOptions{})
}

func newRootCommand(opts *rootOptions) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "truedev",
		Short: "TrueDev community board client",
		Long: `truedev talks to the TrueDev board from the terminal.

It keeps your login between runs, refreshes expired access tokens on its own
and shows the AI verification status of every article.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[annotationNoSession] == "true" {
				return nil
			}
			a, err := newApp(cmd.Context(), opts.configPath, opts.verbose, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			opts.app = a
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", config.DefaultPath(), "config file")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(
		newSignupCmd(opts),
		newLoginCmd(opts),
		newLogoutCmd(opts),
		newWhoamiCmd(opts),
		newAccountCmd(opts),
		newArticlesCmd(opts),
		newCommentsCmd(opts),
		newVersionCmd(),
	)
	return rootCmd
}

// annotationNoSession marks commands that run without config or a session.
const annotationNoSession = "no-session"

// Execute runs the CLI with ctx and the process arguments.
func Execute(ctx context.Context) error {
	return run(ctx, os.Args[1:], os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	return runWith(ctx, &rootOptions{}, args, stdout, stderr)
}

// runWith releases the session backend whether or not the command failed.
func runWith(ctx context.Context, opts *rootOptions, args []string, stdout, stderr io.Writer) (err error) {
	defer func() {
		err = errors.Join(err, opts.closeApp())
	}()

	cmd := newRootCommand(opts)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return cmd.ExecuteContext(ctx)
}

func (o *rootOptions) closeApp() error {
	if o.app == nil {
		return nil
	}
	a := o.app
	o.app = nil
	return a.close()
}
