package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lacquerai/heartbeat/internal/record"
)

// schemaCmd prints the record's JSON schema
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Output the JSON schema of the serialized record",
	Long:  `Output the JSON Schema describing the person record printed on every beat.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		schemaBytes, err := record.SchemaJSON()
		if err != nil {
			return fmt.Errorf("generating schema: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), string(schemaBytes))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}
