package cli

import (
	"bytes"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lacquerai/heartbeat/internal/execcontext"
	"github.com/lacquerai/heartbeat/internal/record"
)

// recordCmd prints the record every beat serializes
var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Print the person record serialized on every beat",
	Long: `Print the person record serialized on every beat.

--output json (or text) prints the exact compact JSON of the "Serialized
Person" line. --output yaml prints the same record as YAML.`,
	Example: `
  heartbeat record                # {"name":"John Doe",...}
  heartbeat record --output yaml  # name: John Doe ...`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		runCtx := execcontext.RunContext{
			Context: cmd.Context(),
			StdOut:  cmd.OutOrStdout(),
			StdErr:  cmd.ErrOrStderr(),
		}
		return printRecord(runCtx, viper.GetString("output"))
	},
}

func init() {
	rootCmd.AddCommand(recordCmd)
}

func printRecord(runCtx execcontext.RunContext, output string) error {
	format := record.Format(output)
	if output == "text" {
		format = record.FormatJSON
	}

	data, err := record.Encode(record.Default(), format)
	if err != nil {
		return err
	}

	runCtx.Printf("%s\n", bytes.TrimRight(data, "\n"))
	return nil
}
