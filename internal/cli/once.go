package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lacquerai/heartbeat/internal/execcontext"
	"github.com/lacquerai/heartbeat/internal/heartbeat"
	"github.com/lacquerai/heartbeat/internal/style"
)

// onceCmd runs a single beat
var onceCmd = &cobra.Command{
	Use:   "once",
	Short: "Run a single beat and exit",
	Long: `Run a single beat and exit.

With --output text the beat prints the same three lines as the loop. With
--output json or yaml the beat is printed as one structured document.`,
	Example: `
  heartbeat once                # Three lines, like one loop iteration
  heartbeat once --output json  # {"sequence":1,"sample":...}`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		runCtx := execcontext.RunContext{
			Context: cmd.Context(),
			StdOut:  cmd.OutOrStdout(),
			StdErr:  cmd.ErrOrStderr(),
		}
		return runOnce(runCtx, viper.GetString("output"))
	},
}

func init() {
	rootCmd.AddCommand(onceCmd)
}

func runOnce(runCtx execcontext.RunContext, format string) error {
	var out io.Writer
	switch format {
	case "text":
		out = runCtx
	case "json", "yaml":
		out = io.Discard
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}

	driver, err := heartbeat.New(heartbeat.DefaultConfig(), out, heartbeat.WithSource(newSource()))
	if err != nil {
		return err
	}

	beat, err := driver.Beat()
	if err != nil {
		return err
	}

	switch format {
	case "json":
		style.PrintJSON(runCtx.StdOut, beat)
	case "yaml":
		style.PrintYAML(runCtx.StdOut, beat)
	}
	return nil
}
