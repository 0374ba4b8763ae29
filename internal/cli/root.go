package cli

import (
	"context"
	"fmt"
	"image/color"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lacquerai/heartbeat/internal/heartbeat"
	"github.com/lacquerai/heartbeat/internal/style"
)

var (
	// Global flags
	cfgFile      string
	logLevel     string
	outputFormat string
	quiet        bool
	verbose      bool

	// Loop flags
	interval    time.Duration
	count       int
	metricsAddr string
	progress    bool
)

// rootCmd runs the heartbeat loop when called without a subcommand
var rootCmd = &cobra.Command{
	Use:   "heartbeat",
	Short: "Heartbeat - a demo workload that beats every five seconds",
	Long: `Heartbeat is a small demo workload. On every beat it draws a random number,
serializes a fixed person record to JSON and checks a date against a pattern,
printing one line for each, then pauses.

Without --count it runs until the process is killed.

Examples:
  heartbeat                                # Beat every 5s forever
  heartbeat --count 3 --interval 1s        # Three beats, one second apart
  heartbeat --metrics-addr localhost:9090  # Also serve /metrics, /healthz and /ws
  heartbeat once --output json             # A single beat as JSON
  heartbeat record --output yaml           # The record each beat serializes`,
	Version:           getVersion(),
	SilenceUsage:      true,
	Args:              cobra.NoArgs,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		initLogging()
		return nil
	},
	RunE: runHeartbeat,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return fang.Execute(context.Background(), rootCmd, fang.WithColorSchemeFunc(func(lightDark lipgloss.LightDarkFunc) fang.ColorScheme {
		return fang.ColorScheme{
			Base:           style.PrimaryTextColor,
			Title:          style.AccentColor,
			Description:    style.PrimaryTextColor,
			Codeblock:      style.CodeColor,
			Program:        style.AccentColor,
			DimmedArgument: style.MutedColor,
			Comment:        style.MutedColor,
			Flag:           style.InfoColor,
			FlagDefault:    style.MutedColor,
			Command:        style.SuccessColor,
			QuotedString:   style.WarningColor,
			Argument:       style.PrimaryTextColor,
			Help:           style.InfoColor,
			Dash:           style.MutedColor,
			ErrorHeader:    [2]color.Color{style.ErrorColor, style.ErrorBgColor},
			ErrorDetails:   style.ErrorColor,
		}
	}))
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.heartbeat/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "disabled", "log level (debug, info, warn, error) (default: disabled)")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "output", "text", "output format (text, json, yaml)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Loop flags
	rootCmd.Flags().DurationVar(&interval, "interval", heartbeat.DefaultInterval, "pause between beats")
	rootCmd.Flags().IntVar(&count, "count", 0, "stop after this many beats (0 runs forever)")
	rootCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve /metrics, /healthz and /ws on this address")
	rootCmd.Flags().BoolVar(&progress, "progress", false, "show a spinner on stderr while pausing")

	// Bind flags to viper
	_ = viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("interval", rootCmd.Flags().Lookup("interval"))
	_ = viper.BindPFlag("count", rootCmd.Flags().Lookup("count"))
	_ = viper.BindPFlag("metrics-addr", rootCmd.Flags().Lookup("metrics-addr"))
	_ = viper.BindPFlag("progress", rootCmd.Flags().Lookup("progress"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	_ = godotenv.Load()

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Search config in home directory with name ".heartbeat" (without extension).
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home + "/.heartbeat")
		}
		viper.AddConfigPath(".")
		viper.AddConfigPath(".heartbeat")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Environment variables
	viper.SetEnvPrefix("HEARTBEAT")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		if !viper.GetBool("quiet") {
			style.Info(os.Stderr, fmt.Sprintf("Using config file: %s", viper.ConfigFileUsed()))
		}
	}
}

// initLogging configures the global logger
func initLogging() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level := viper.GetString("log-level")
	if viper.GetBool("verbose") && level == "disabled" {
		level = "debug"
	}

	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.Disabled)
	}

	// Logs go to stderr so stdout only carries beats
	if viper.GetString("output") == "text" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}
}

// getVersion returns the version information
func getVersion() string {
	return fmt.Sprintf("%s (commit: %s, built: %s, go: %s)", Version, Commit, Date, GoVersion)
}
