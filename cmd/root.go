package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/khanhnv2901/laberator-checker/internal/status"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var cfgFile string
var logger *zap.SugaredLogger

var rootCmd = &cobra.Command{
	Use:           "laberator-checker <command> [args...]",
	Short:         "Put/get checker for the laberator service",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(cmd); err != nil {
			return status.Internal("config", err)
		}
		logger = newLogger(cmd.ErrOrStderr(), cliConfig.Verbose)
		logger.Debugw("config loaded",
			"command", cmd.Name(),
			"port", cliConfig.Port,
			"timeout_secs", cliConfig.TimeoutSecs,
			"channel_path", cliConfig.ChannelPath,
		)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprint(cmd.ErrOrStderr(), cmd.UsageString())
		return status.Internal("dispatch", &UnknownCommandError{})
	},
}

// Execute runs the command line and exits with the scoring status code.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes one invocation and returns its exit code. Standard output
// only ever receives command output; diagnostics go to stderr.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) (code int) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(stderr, "panic: %v\n%s", r, debug.Stack())
			code = status.CheckerError.ExitCode()
		}
	}()

	resetFlags(rootCmd)
	logger = nil
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.ExecuteContext(ctx)
	st := status.Classify(err)
	if err != nil {
		fmt.Fprintln(stderr, colorError("error:"), err)
		if logger != nil {
			logger.Warnw("invocation failed", "status", st.String(), "error", err)
		}
	}
	fmt.Fprintln(stderr, "status:", formatStatusWithColor(st))
	if logger != nil {
		_ = logger.Sync()
	}
	return st.ExitCode()
}

func newLogger(w io.Writer, verbose bool) *zap.SugaredLogger {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.AddSync(w),
		level,
	)
	return zap.New(core).Sugar()
}

// resetFlags restores every flag to its default so repeated invocations in
// one process do not inherit earlier values.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.laberator-checker.yaml)")
	rootCmd.PersistentFlags().Int("port", defaultPort, "service port used when the host has none")
	rootCmd.PersistentFlags().Int("timeout", defaultTimeoutSecs, "timeout in seconds for every network call")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log pipeline steps at debug level")

	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(putCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(versionCmd)

	// Flag values and placeholders are opaque and may start with "-".
	// Flags are only recognised before the host.
	putCmd.Flags().SetInterspersed(false)
	getCmd.Flags().SetInterspersed(false)
}
