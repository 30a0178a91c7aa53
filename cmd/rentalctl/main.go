package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/carrental/carrental/client"
	"github.com/carrental/carrental/internal/logger"
)

func main() {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// app carries the global flags shared by every sub-command.
type app struct {
	apiURL  string
	token   string
	debug   bool
	timeout time.Duration
	retries int

	logger zerolog.Logger
}

// NewRootCmd constructs the root CLI command; exposed for unit testing.
func NewRootCmd() *cobra.Command {
	a := &app{logger: zerolog.Nop()}

	// Flag defaults come from CARRENTAL_* variables when they parse.
	env, err := client.LoadEnv()
	if err != nil {
		env = &client.EnvConfig{APIBaseURL: client.DefaultBaseURL, HTTPTimeout: 30 * time.Second, RetryMaxAttempts: 1}
	}

	rootCmd := &cobra.Command{
		Use:           "rentalctl",
		Short:         "rentalctl talks to the car-rental service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
			a.logger = logger.NewConsole(cmd.ErrOrStderr(), a.debug)
			log.Logger = a.logger
			a.logger.Debug().Str("api_url", a.apiURL).Msg("debug logging enabled")
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.apiURL, "api-url", env.APIBaseURL, "Base URL of the rental API (env CARRENTAL_API_BASE_URL)")
	flags.StringVar(&a.token, "token", env.Token, "Bearer token for authenticated calls (env CARRENTAL_TOKEN)")
	flags.BoolVarP(&a.debug, "debug", "d", env.Debug, "Dump HTTP traffic and enable debug logs")
	flags.DurationVar(&a.timeout, "timeout", env.HTTPTimeout, "Per-command timeout")
	flags.IntVar(&a.retries, "retries", env.RetryMaxAttempts, "Attempts for idempotent requests (1 disables retries)")

	rootCmd.AddCommand(newAuthCmd(a))
	rootCmd.AddCommand(newCarsCmd(a))
	rootCmd.AddCommand(newBookingsCmd(a))
	rootCmd.AddCommand(newUsersCmd(a))
	rootCmd.AddCommand(newNotificationsCmd(a))
	rootCmd.AddCommand(newOverviewCmd(a))

	return rootCmd
}

// newClient builds a client from the global flags.
func (a *app) newClient() (*client.Client, error) {
	opts := []client.Option{
		client.WithLogger(a.logger),
		client.WithDebugLogging(a.debug),
	}
	if a.timeout > 0 {
		opts = append(opts, client.WithHTTPTimeout(a.timeout))
	}
	if a.token != "" {
		opts = append(opts, client.WithToken(a.token))
	}
	if a.retries > 1 {
		opts = append(opts, client.WithRetry(a.retries, 0, 0))
	}
	return client.New(a.apiURL, opts...)
}

// run executes fn with a fresh client and a command-scoped deadline, then
// prints the result as indented JSON.
func (a *app) run(cmd *cobra.Command, op string, fn func(ctx context.Context, c *client.Client) (any, error)) error {
	c, err := a.newClient()
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	start := time.Now()
	out, err := fn(ctx, c)
	elapsed := time.Since(start)
	if err != nil {
		a.logger.Debug().Err(err).Str("op", op).Dur("elapsed", elapsed).Msg("command failed")
		return fmt.Errorf("%s: %w", op, err)
	}
	a.logger.Debug().Str("op", op).Dur("elapsed", elapsed).Msg("command completed")
	return printJSON(cmd.OutOrStdout(), out)
}

func printJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
