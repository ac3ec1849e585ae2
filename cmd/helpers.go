package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/hb-chen/safeskill/internal/skill/safe"
)

var greetCmd = &cobra.Command{
	Use:   "greet <name>",
	Short: "Print a greeting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		greeting, err := safe.Greet(args[0])
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), greeting)
		return err
	},
}

var addCmd = &cobra.Command{
	Use:   "add <a> <b>",
	Short: "Add two integers",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid number %q", args[0])
		}
		b, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid number %q", args[1])
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), safe.AddNumbers(a, b))
		return err
	},
}

var readCmd = &cobra.Command{
	Use:   "read <path>",
	Short: "Print a file, refusing paths that climb directories",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := safe.ReadFileSafely(args[0])
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), content)
		return err
	},
}

func init() {
	rootCmd.AddCommand(greetCmd, addCmd, readCmd)
}
