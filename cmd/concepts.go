package cmd

import (
	"context"
	"fmt"
	"strings"

	"codetrek/internal/conceptstore"
	"codetrek/internal/server"

	"github.com/spf13/cobra"
)

var conceptsCmd = &cobra.Command{
	Use:   "concepts",
	Short: "Manage the concept knowledge base",
}

var conceptsIngestCmd = &cobra.Command{
	Use:   "ingest <dir>",
	Short: "Embed every .md and .txt file under dir into the concept store",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		docs, err := conceptstore.LoadDir(args[0])
		if err != nil {
			return fmt.Errorf("load documents: %w", err)
		}
		if len(docs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No documents found.")
			return nil
		}

		return withConceptStore(cmd, func(ctx context.Context, store *conceptstore.Store) error {
			if err := store.Add(ctx, docs); err != nil {
				return fmt.Errorf("ingest documents: %w", err)
			}
			total, err := store.Count(ctx)
			if err != nil {
				return fmt.Errorf("count documents: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Ingested %d documents into %q (%d total).\n", len(docs), store.Collection(), total)
			return nil
		})
	},
}

var conceptsQueryCmd = &cobra.Command{
	Use:   "query <text>",
	Short: "Show the closest concept documents for text",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		topK, _ := cmd.Flags().GetInt("top")
		text := strings.Join(args, " ")

		return withConceptStore(cmd, func(ctx context.Context, store *conceptstore.Store) error {
			matches, err := store.Search(ctx, text, topK)
			if err != nil {
				return fmt.Errorf("search: %w", err)
			}
			if len(matches) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No concepts indexed.")
				return nil
			}
			for _, m := range matches {
				fmt.Fprintf(cmd.OutOrStdout(), "%.3f  %s\n", m.Score, m.DocID)
			}
			return nil
		})
	},
}

func init() {
	conceptsQueryCmd.Flags().Int("top", 3, "Number of matches to show")

	conceptsCmd.AddCommand(conceptsIngestCmd)
	conceptsCmd.AddCommand(conceptsQueryCmd)
}

func withConceptStore(cmd *cobra.Command, fn func(context.Context, *conceptstore.Store) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	db, err := server.OpenDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	store, err := server.NewConceptStore(db, cfg)
	if err != nil {
		return err
	}
	return fn(ctx, store)
}
