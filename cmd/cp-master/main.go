package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/DoumanAsh/clipboard-master/clipboard"
	"github.com/DoumanAsh/clipboard-master/config"
	"github.com/DoumanAsh/clipboard-master/logutil"
	"github.com/DoumanAsh/clipboard-master/master"
	"github.com/DoumanAsh/clipboard-master/processor"
)

type cliOptions struct {
	magnet   bool
	interval time.Duration
	verbose  bool
	logFile  bool
	envPath  string
}

// abortError marks a failure of the running watcher, as opposed to a startup failure.
type abortError struct{ err error }

func (e *abortError) Error() string { return e.err.Error() }
func (e *abortError) Unwrap() error { return e.err }

func main() {
	if err := run(); err != nil {
		var aborted *abortError
		if errors.As(err, &aborted) {
			fmt.Fprintf(os.Stderr, "Aborted. Error: %v\n", aborted.err)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run() error {
	return runWithArgs(normalizeLegacyArgs(os.Args))
}

func runWithArgs(args []string) error {
	if len(args) == 0 {
		args = []string{"cp-master"}
	}

	opts := &cliOptions{}
	cmd := newRootCmd(opts, runWithOptions)
	cmd.SetArgs(args[1:])
	return cmd.Execute()
}

func newRootCmd(opts *cliOptions, runE func(cliOptions) error) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "cp-master [flags]",
		Short:         "Starts monitoring Clipboard changes",
		Long:          "Starts monitoring Clipboard changes.\n\nText is trimmed of trailing whitespace on each line. With --magnet, magnet URIs are handed to the torrent client instead.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runE(*opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.magnet, "magnet", "m", false, "Starts torrent client when detecting magnet URI")
	cmd.Flags().DurationVarP(&opts.interval, "interval", "i", 0, "Clipboard polling interval on platforms without change notifications (default 500ms)")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose output to stderr")
	cmd.Flags().BoolVar(&opts.logFile, "log-file", false, "Write logs to cp_master.log")
	cmd.Flags().StringVar(&opts.envPath, "config", "", "Path to a .env file (highest precedence)")

	return cmd
}

// resolve merges flags over the loaded configuration. Flags can only enable
// features the configuration left off.
func resolve(cfg *config.Config, opts cliOptions) cliOptions {
	opts.magnet = opts.magnet || cfg.Magnet
	opts.logFile = opts.logFile || cfg.EnableFileLogging
	if opts.interval <= 0 {
		opts.interval = cfg.SleepInterval
	}
	return opts
}

func runWithOptions(opts cliOptions) error {
	cfg, err := config.LoadWithOptions(config.LoadOptions{EnvPathOverride: opts.envPath})
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	opts = resolve(cfg, opts)

	// Configure logging BEFORE any other operations.
	logutil.Setup(opts.logFile, opts.verbose)
	log.Printf("cp-master: starting (magnet=%v interval=%v config=%q)", opts.magnet, opts.interval, cfg.EnvPath)

	if err := clipboard.Init(); err != nil {
		return fmt.Errorf("failed to initialize clipboard: %w", err)
	}

	m, err := master.New(processor.New(clipboard.Accessor{}, processor.Options{
		Magnet:   opts.magnet,
		Interval: opts.interval,
	}))
	if err != nil {
		return err
	}
	defer m.Close()

	shutdown := m.ShutdownChannel()
	defer shutdown.Close()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	defer func() {
		signal.Stop(signals)
		close(signals)
	}()
	go relaySignals(signals, shutdown)

	if err := m.Run(); err != nil {
		return &abortError{err: err}
	}
	log.Printf("cp-master: stopped")
	return nil
}

// relaySignals requests shutdown on the first signal. It returns once
// signals is closed.
func relaySignals(signals <-chan os.Signal, shutdown interface{ Signal() }) {
	if sig, ok := <-signals; ok {
		log.Printf("cp-master: received %v, shutting down", sig)
		shutdown.Signal()
	}
}

var legacyFlags = []string{"magnet", "interval", "verbose", "log-file", "config", "help"}

// normalizeLegacyArgs maps single-dash long flags (-magnet, -interval=1s) to
// their double-dash form.
func normalizeLegacyArgs(args []string) []string {
	if len(args) == 0 {
		return args
	}

	normalized := make([]string, len(args))
	copy(normalized, args)

	for i := 1; i < len(normalized); i++ {
		arg := normalized[i]
		if arg == "--" {
			break
		}
		for _, name := range legacyFlags {
			if arg == "-"+name || strings.HasPrefix(arg, "-"+name+"=") {
				normalized[i] = "-" + arg
				break
			}
		}
	}

	return normalized
}
