package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/hb-chen/safeskill/internal/config"
	"github.com/hb-chen/safeskill/internal/skill"
)

const (
	outputJSON = "json"
	outputYAML = "yaml"
)

var (
	runJSONInput bool
	runOutput    string
)

// runCmd executes a skill once and prints its result
var runCmd = &cobra.Command{
	Use:   "run <skill> [input]",
	Short: "Execute a skill once",
	Long: `Execute a skill once and print the result.

Without an input argument the skill receives an absent value. With --json the
input argument is decoded as JSON first; otherwise it is passed as a string.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if runOutput != outputJSON && runOutput != outputYAML {
			return fmt.Errorf("unsupported output format %q", runOutput)
		}

		var input any
		if len(args) == 2 {
			input = args[1]
			if runJSONInput {
				decoded, err := skill.DecodeInput([]byte(args[1]))
				if err != nil {
					return err
				}
				input = decoded
			}
		}

		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		router, err := newRouter(cfg)
		if err != nil {
			return err
		}

		inv, err := router.Execute(cmd.Context(), args[0], input)
		if err != nil {
			return err
		}

		return writeOutput(cmd.OutOrStdout(), runOutput, inv.Result)
	},
}

func init() {
	runCmd.Flags().BoolVar(&runJSONInput, "json", false, "decode the input argument as JSON")
	runCmd.Flags().StringVarP(&runOutput, "output", "o", outputJSON, "output format: json, yaml")

	rootCmd.AddCommand(runCmd)
}

func writeOutput(w io.Writer, format string, v interface{}) error {
	if format == outputYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
