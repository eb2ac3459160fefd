package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/recourse/intake/pkg/domain"
)

var draftsCmd = &cobra.Command{
	Use:   "drafts",
	Short: "Inspect and manage saved drafts",
}

var draftsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved drafts",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}
		store, err := openStore(cfg)
		if err != nil {
			fmt.Printf("Error opening store: %v\n", err)
			os.Exit(1)
		}

		ctx := context.Background()
		found := false
		for _, fl := range allFlows() {
			draft, err := store.Load(ctx, fl.DraftKey)
			if errors.Is(err, domain.ErrDraftNotFound) {
				continue
			}
			if err != nil {
				fmt.Printf("Error reading draft for %s: %v\n", fl.Name, err)
				continue
			}
			found = true
			fmt.Printf("%-16s step %d of %d, saved %s\n",
				fl.Name, draft.CurrentStep, fl.Steps(),
				draft.LastSavedAt.Local().Format("2006-01-02 15:04"))
		}
		if !found {
			fmt.Println("No saved drafts.")
		}
	},
}

var draftsDiscardCmd = &cobra.Command{
	Use:   "discard <flow>",
	Short: "Delete a flow's saved draft",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		fl, err := flowByName(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}
		store, err := openStore(cfg)
		if err != nil {
			fmt.Printf("Error opening store: %v\n", err)
			os.Exit(1)
		}

		if err := store.Delete(context.Background(), fl.DraftKey); err != nil {
			fmt.Printf("Error discarding draft: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Discarded draft for %s.\n", fl.Name)
	},
}

func init() {
	rootCmd.AddCommand(draftsCmd)
	draftsCmd.AddCommand(draftsListCmd)
	draftsCmd.AddCommand(draftsDiscardCmd)
}
