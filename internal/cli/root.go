// Package cli is the dailyenergy terminal client.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"daily-energy/config"
	"daily-energy/internal/advisor"
	"daily-energy/internal/api"
	"daily-energy/internal/service"
	"daily-energy/internal/session"
	"daily-energy/internal/store"
	"daily-energy/pkg/logger"
)

// app holds what every command needs. It is filled in by the root
// PersistentPreRunE so that --help never touches the store.
type app struct {
	apiURL    string
	storePath string
	verbose   bool

	store      store.Store
	closeStore func()
	session    *session.Session
	services   *service.Services
	logger     *logger.Logger
}

// Option adjusts the root command before it runs. Tests use it to inject a store.
type Option func(*app)

func WithStore(s store.Store) Option {
	return func(a *app) { a.store = s }
}

// NewRootCmd builds the command tree. The returned func releases the
// preferences store opened while running and must be called after Execute,
// whether or not the command failed.
func NewRootCmd(opts ...Option) (*cobra.Command, func()) {
	root, a := newRootCmd(opts...)
	return root, a.close
}

func newRootCmd(opts ...Option) (*cobra.Command, *app) {
	a := &app{}
	for _, opt := range opts {
		opt(a)
	}

	root := &cobra.Command{
		Use:           "dailyenergy",
		Short:         "dailyenergy tracks calories, exercise and weight against the Daily Energy API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd.Context())
		},
	}
	root.PersistentFlags().StringVar(&a.apiURL, "api-url", "", "API base URL (overrides config)")
	root.PersistentFlags().StringVar(&a.storePath, "store", "", "Path to the SQLite preferences file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Log requests to stderr")

	root.AddCommand(
		a.loginCmd(),
		a.logoutCmd(),
		a.statusCmd(),
		a.todayCmd(),
		a.trendCmd(),
		a.foodCmd(),
		a.exerciseCmd(),
		a.weightCmd(),
		a.profileCmd(),
		a.recognizeCmd(),
		a.statsCmd(),
	)
	return root, a
}

func Execute() {
	root, closeStore := NewRootCmd()
	err := root.ExecuteContext(context.Background())
	closeStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func (a *app) close() {
	if a.closeStore != nil {
		a.closeStore()
		a.closeStore = nil
	}
}

func (a *app) setup(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	a.logger = logger.NewNop()
	if a.verbose {
		a.logger = logger.NewDevelopment()
	}

	if a.store == nil {
		opts := cfg.StoreOptions()
		if a.storePath != "" {
			opts.Driver = store.DriverSQLite
			opts.Path = a.storePath
		}
		st, closeFn, err := store.Open(ctx, opts)
		if err != nil {
			return fmt.Errorf("open preferences: %w", err)
		}
		a.store, a.closeStore = st, closeFn
	}

	a.session = session.New(a.store, a.logger)
	clientCfg := cfg.ClientConfig(a.session.DeviceID(ctx))
	if a.apiURL != "" {
		clientCfg.BaseURL = a.apiURL
	}
	client := api.NewClient(clientCfg, a.session, a.logger)

	a.services = service.New(client, a.session, a.logger, service.Options{
		Poll: service.PollConfig{
			MaxAttempts: cfg.AI.MaxPollAttempts,
			Interval:    cfg.AI.PollInterval,
		},
		Advisor: advisor.NewClient(advisor.Config{
			APIKey:  cfg.GPT.APIKey,
			Model:   cfg.GPT.Model,
			BaseURL: cfg.GPT.BaseURL,
		}),
	})
	return nil
}

// requireLogin fails fast instead of letting the server answer unauthorized.
func (a *app) requireLogin(cmd *cobra.Command) error {
	if !a.services.Auth.IsLoggedIn(cmd.Context()) {
		return fmt.Errorf("not logged in, run `dailyenergy login send-code <phone>` first")
	}
	return nil
}
