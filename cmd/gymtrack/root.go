package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/2beens/gymtrack/internal/gymtrack/cloud"
	"github.com/2beens/gymtrack/internal/gymtrack/storage"
	"github.com/2beens/gymtrack/internal/logging"
)

// commands annotated this way manage storage themselves
const annotationOwnStorage = "own-storage"

type app struct {
	configPath string
	storage    string
	dbPath     string
	serverURL  string
	timezone   string
	jsonOutput bool
	verbose    bool

	config   *cliConfig
	location *time.Location
	handle   *storage.Handle
}

// run executes the CLI with args and releases whatever storage the command opened.
func run(args []string, stdout, stderr io.Writer) error {
	a := &app{}
	rootCmd := newRootCmd(a)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.Execute()
	if closeErr := a.close(); closeErr != nil && err == nil {
		err = closeErr
	}
	return err
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gymtrack",
		Short: "Workout log and training reports",
		Long: `gymtrack logs strength workouts and reports on them.

REPORTS:

  $ gymtrack stats --range 90d            # totals, volume, per exercise stats
  $ gymtrack history "Bench Press"        # progress and personal record
  $ gymtrack streak --goal 4              # weekly streak and calendar

LOGGING:

  $ gymtrack log "Push day" --set "Bench Press:80x8@2" --set "Bench Press:82.5x6"
  $ gymtrack workouts list
  $ gymtrack routines add "Legs" --exercise "Squat:5x5"

STORAGE:

  local    SQLite file on this device (default)
  cloud    the gymtrack server, after 'gymtrack login'
  cached   the server, falling back to a local copy when it is unreachable

  $ gymtrack sync upload                  # copy local data to the server
  $ gymtrack sync download                # replace local data with the server copy`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.close()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", defaultConfigPath(), "path of the CLI config file")
	flags.StringVar(&a.storage, "storage", "", "storage mode: local, cloud or cached (default from config, then local)")
	flags.StringVar(&a.dbPath, "db", "", "path of the local SQLite database")
	flags.StringVar(&a.serverURL, "server", "", "gymtrack server URL")
	flags.StringVar(&a.timezone, "tz", "", "time zone for dates and weeks (default: device local time)")
	flags.BoolVar(&a.jsonOutput, "json", false, "print raw JSON")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "debug logging to stderr")

	rootCmd.AddCommand(
		newStatsCmd(a),
		newHistoryCmd(a),
		newStreakCmd(a),
		newLogCmd(a),
		newWorkoutsCmd(a),
		newRoutinesCmd(a),
		newSyncCmd(a),
		newExportCmd(a),
		newImportCmd(a),
		newRegisterCmd(a),
		newLoginCmd(a),
		newLogoutCmd(a),
	)
	return rootCmd
}

func (a *app) setup(cmd *cobra.Command) error {
	logLevel := "warn"
	if a.verbose {
		logLevel = "debug"
	}
	logging.Setup(logging.LoggerSetupParams{
		LogLevel: logLevel,
		Stdout:   os.Stderr,
	})

	cfg, err := loadCLIConfig(a.configPath)
	if err != nil {
		return err
	}
	if a.serverURL != "" {
		cfg.ServerURL = a.serverURL
	}
	a.config = cfg

	a.location, err = resolveLocation(a.timezone, cfg.Timezone)
	if err != nil {
		return err
	}

	if cmd.Annotations[annotationOwnStorage] != "" {
		return nil
	}
	return a.open(a.mode())
}

func (a *app) mode() storage.Mode {
	if a.storage != "" {
		return storage.Mode(a.storage)
	}
	return storage.Mode(a.config.StorageMode)
}

func (a *app) open(mode storage.Mode) error {
	handle, err := storage.Open(storage.Settings{
		Mode:      mode,
		DBPath:    a.localDBPath(),
		ServerURL: a.config.ServerURL,
		Token:     a.config.Token,
		Location:  a.location,
	})
	if err != nil {
		return err
	}
	a.handle = handle
	return nil
}

func (a *app) localDBPath() string {
	if a.dbPath != "" {
		return a.dbPath
	}
	return a.config.DBPath
}

func (a *app) close() error {
	if a.handle == nil {
		return nil
	}
	err := a.handle.Close()
	a.handle = nil
	return err
}

func (a *app) provider() storage.Provider {
	return a.handle.Provider
}

// client builds an API client from the config, with or without a session.
func (a *app) client() (*cloud.Client, error) {
	if a.config.ServerURL == "" {
		return nil, storage.ErrNoServerURL
	}
	return cloud.NewClient(a.config.ServerURL, a.config.Token, nil), nil
}

func (a *app) saveConfig() error {
	return saveCLIConfig(a.configPath, a.config)
}

func printJSON(w io.Writer, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %T: %w", v, err)
	}
	_, err = fmt.Fprintln(w, string(raw))
	return err
}
