package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/km-arc/go-beans/framework/app"
	"github.com/km-arc/go-beans/framework/beans"
	"github.com/km-arc/go-beans/framework/config"
	"github.com/km-arc/go-beans/framework/inspect"
	"github.com/km-arc/go-beans/internal/petstore"
)

type rootOptions struct {
	envFiles    []string
	definitions []string
	scan        []string

	// logger replaces the configured logger when set.
	logger *zap.Logger
}

func newRootCommand(opts *rootOptions) *cobra.Command {
	root := &cobra.Command{
		Use:   "beans",
		Short: "Inspect and instantiate beans from definition files",
		Long: `beans builds a container from YAML bean definitions and annotated
classes, then lists, describes or instantiates its beans.

Without --definitions or --scan (and with BEANS_DEFINITIONS and BEANS_SCAN
unset) the embedded pet store definitions are used.`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	flags := root.PersistentFlags()
	flags.StringSliceVar(&opts.envFiles, "env-file", nil, "env files to load (default .env)")
	flags.StringSliceVarP(&opts.definitions, "definitions", "f", nil, "bean definition files")
	flags.StringSliceVar(&opts.scan, "scan", nil, "base packages to scan for components")

	root.AddCommand(
		newListCommand(opts),
		newDescribeCommand(opts),
		newGetCommand(opts),
		newServeCommand(opts),
	)
	return root
}

// application builds the container described by the flags and environment.
func (o *rootOptions) application() (*app.Application, error) {
	cfg := config.Load(o.envFiles...)
	if len(o.definitions) > 0 {
		cfg.Beans.Definitions = o.definitions
	}
	if len(o.scan) > 0 {
		cfg.Beans.ScanPackages = o.scan
	}

	appOpts := []app.Option{app.WithClasses(petstore.Classes()...)}
	if len(cfg.Beans.Definitions) == 0 && len(cfg.Beans.ScanPackages) == 0 {
		cfg.Beans.Definitions = []string{"*.yaml"}
		appOpts = append(appOpts, app.WithDefinitionFS(petstore.Definitions))
	}
	if o.logger != nil {
		appOpts = append(appOpts, app.WithLogger(o.logger))
	}
	return app.New(cfg, appOpts...)
}

func newListCommand(opts *rootOptions) *cobra.Command {
	var scope string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered beans in registration order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := beans.ParseScope(scope)
			if err != nil {
				return err
			}
			a, err := opts.application()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tCLASS\tSCOPE")
			for _, b := range inspect.New(a.Container, a.Logger).Beans(s).Beans {
				fmt.Fprintf(w, "%s\t%s\t%s\n", b.ID, b.Class, b.Scope)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&scope, "scope", "", "only beans of this scope (singleton|prototype)")
	return cmd
}

func newDescribeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "describe <id>",
		Short: "Print a bean descriptor as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.application()
			if err != nil {
				return err
			}
			v, err := inspect.New(a.Container, a.Logger).Describe(args[0])
			if err != nil {
				return err
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(v); err != nil {
				return err
			}
			return enc.Close()
		},
	}
}

func newGetCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Instantiate a bean and print it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.application()
			if err != nil {
				return err
			}
			inst, err := a.GetBean(commandContext(cmd), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: %T\n", args[0], inst)
			if d, ok := inst.(interface{ Describe() string }); ok {
				fmt.Fprintln(out, d.Describe())
			}
			return nil
		},
	}
}

func newServeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the inspection endpoints on INSPECT_ADDR",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := opts.application()
			if err != nil {
				return err
			}
			defer func() { _ = a.Logger.Sync() }()

			ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.Serve(ctx)
		},
	}
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
