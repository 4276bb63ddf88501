// Command electron is a command-line conversational assistant. It
// forwards user input plus a bounded window of recent turns to a
// chat-completion endpoint and persists every exchange to an
// append-only history log.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"electron/pkg/history"
	"electron/pkg/llm"
	loggerpkg "electron/pkg/logger"
	"electron/pkg/render"
	"electron/pkg/session"
	"electron/pkg/settings"
)

const (
	defaultSettingsFile = "settings.json"
	defaultHistoryFile  = "history.json"
	defaultLogFile      = "electron.log"
)

var (
	settingsPath string
	historyPath  string
	logPath      string
	windowLimit  int
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "electron [message...]",
	Short: "Electron - a command line AI assistant",
	Long: `Electron is an interactive command line AI assistant.

Arguments after the program name are joined with spaces and sent as the
first message of the session. Inside the session, type a message and
press Enter, or use the meta-commands:

  help         Show the help message
  history [N]  Show the full history, or the last N messages
  quit         End the session (also: q, exit, bye, close, stop, end,
               terminate, leave)`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().StringVar(&settingsPath, "settings", defaultSettingsFile, "Path to the settings file")
	rootCmd.Flags().StringVar(&historyPath, "history", defaultHistoryFile, "Path to the history log")
	rootCmd.Flags().StringVar(&logPath, "log", defaultLogFile, "Path to the application log file")
	rootCmd.Flags().IntVar(&windowLimit, "limit", history.DefaultWindowLimit, "Number of recent turns sent as model context")
	rootCmd.Flags().BoolVar(&verbose, "verbose", false, "Echo log lines to stderr")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	os.Exit(runSession(args))
	return nil
}

func runSession(args []string) int {
	_ = godotenv.Load()

	console := render.NewConsole(os.Stdout)
	appLogger, closeLogger := buildLogger()
	defer closeLogger()

	result, err := settings.Load(settingsPath, appLogger)
	if err != nil {
		loggerpkg.Errorf(appLogger, "unexpected error: %v", err)
		console.Farewell(1, fmt.Sprintf("Unexpected error: %v, see logs for more info.", err))
		return 1
	}
	loggerpkg.Infof(appLogger, "settings loaded from %s", result.Source)
	cfg := result.Settings

	scanner := bufio.NewScanner(os.Stdin)

	apiKey, err := session.ProvisionAPIKey(cfg, settingsPath, console, scanner, appLogger)
	if err != nil {
		console.Farewell(1, session.FarewellNoKey)
		return 1
	}

	log, err := history.Open(historyPath, appLogger)
	if err != nil {
		loggerpkg.Errorf(appLogger, "unexpected error: %v", err)
		console.Farewell(1, fmt.Sprintf("Unexpected error: %v, see logs for more info.", err))
		return 1
	}
	defer log.Close()

	// Interrupt ends the session the same way end-of-input does. The
	// loop blocks on stdin, so the handler exits directly; appends are
	// synced as they happen and lose nothing.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		appLogger.Info("session ended by user")
		console.Farewell(0, session.FarewellEOF)
		os.Exit(0)
	}()

	sess := session.New(session.Options{
		Settings:       cfg,
		Client:         llm.NewOpenAI(apiKey, "", cfg.Model),
		Log:            log,
		Window:         history.NewWindow(windowLimit, log.Tail(windowLimit)),
		Console:        console,
		Logger:         appLogger,
		Scanner:        scanner,
		InitialMessage: strings.Join(args, " "),
	})
	return sess.Run(context.Background())
}

// buildLogger prefers the log file, falling back to stderr when it
// cannot be opened. Verbose mode tees log lines to stderr as well.
func buildLogger() (loggerpkg.Logger, func()) {
	fileLogger, err := loggerpkg.NewFileLogger(logPath)
	if err != nil {
		return loggerpkg.NewWriterLogger(os.Stderr), func() {}
	}
	closer := func() { _ = fileLogger.Close() }
	if verbose {
		return loggerpkg.Tee(fileLogger, loggerpkg.NewWriterLogger(os.Stderr)), closer
	}
	return fileLogger, closer
}
