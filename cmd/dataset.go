package cmd

import (
	"fmt"
	"strings"

	"codetrek/internal/dataset"

	"github.com/spf13/cobra"
)

var datasetCmd = &cobra.Command{
	Use:   "dataset",
	Short: "Inspect the problem dataset",
}

var datasetTopicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "List the distinct topics in the dataset",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		idx := dataset.Load(cfg.DatasetPath)
		for _, topic := range idx.Topics() {
			fmt.Fprintln(cmd.OutOrStdout(), topic)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d records, %d topics\n", idx.Len(), len(idx.Topics()))
		return nil
	},
}

var datasetMatchCmd = &cobra.Command{
	Use:   "match <topic>",
	Short: "Show which dataset topic a query resolves to",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		query := strings.Join(args, " ")

		topic, score, ok := dataset.Load(cfg.DatasetPath).ScoreTopic(query)
		if !ok {
			fmt.Fprintf(cmd.OutOrStdout(), "No topic matched %q (best score %d, need > %d)\n", query, score, dataset.MatchThreshold)
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s (score %d)\n", topic, score)
		return nil
	},
}

func init() {
	datasetCmd.AddCommand(datasetTopicsCmd)
	datasetCmd.AddCommand(datasetMatchCmd)
}
