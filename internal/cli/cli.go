package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/navgridgo/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("navgrid", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
NavGrid - declarative navigation layouts, bound to asynchronous actions.

Usage:
  navgrid [options] [LAYOUT_PATH]

Arguments:
  LAYOUT_PATH
    Path to a directory containing .hcl layout files.

Options:
`)
		flagSet.PrintDefaults()
	}

	layoutFlag := flagSet.String("layout", "", "Path to the layout directory.")
	lFlag := flagSet.String("l", "", "Path to the layout directory (shorthand).")
	inspectorPortFlag := flagSet.Int("inspector-port", 0, "Port for the HTTP inspector server. 0 is disabled.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	remoteFlag := flagSet.String("remote", "", "URL of a remote Socket.IO shell that owns the page stack.")
	remoteNamespaceFlag := flagSet.String("remote-namespace", "", "Socket.IO namespace on the remote shell.")
	validateFlag := flagSet.Bool("validate", false, "Load and validate the layout, then exit.")
	triggerFlag := flagSet.String("trigger", "", "Run the actions bound to this element once, headless, then exit.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *layoutFlag != "" {
		path = *layoutFlag
	} else if *lFlag != "" {
		path = *lFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Layout path determined.", "path", path)

	if path == "" {
		slog.Debug("No layout path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		LayoutPath:      path,
		LogFormat:       logFormat,
		LogLevel:        logLevel,
		InspectorPort:   *inspectorPortFlag,
		RemoteURL:       *remoteFlag,
		RemoteNamespace: *remoteNamespaceFlag,
		ValidateOnly:    *validateFlag,
		Trigger:         *triggerFlag,
	})

	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
