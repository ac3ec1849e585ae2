package cmd

import (
	"github.com/spf13/cobra"

	"github.com/hb-chen/safeskill/internal/config"
	"github.com/hb-chen/safeskill/internal/skill"
)

var listOutput, listMatch string

// listCmd prints the registered skill descriptors
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered skills",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		router, err := newRouter(cfg)
		if err != nil {
			return err
		}

		skills, err := router.GetRegistry().Match(listMatch)
		if err != nil {
			return err
		}
		descriptors := make([]skill.Descriptor, 0, len(skills))
		for _, s := range skills {
			descriptors = append(descriptors, s.Describe())
		}

		return writeOutput(cmd.OutOrStdout(), listOutput, descriptors)
	},
}

func init() {
	listCmd.Flags().StringVar(&listMatch, "match", "", "only list skills whose name matches this glob")
	listCmd.Flags().StringVarP(&listOutput, "output", "o", outputYAML, "output format: json, yaml")

	rootCmd.AddCommand(listCmd)
}
