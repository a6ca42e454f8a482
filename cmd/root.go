package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tastebook",
	Short: "TasteBook recipe-sharing backend",
	Long: `TasteBook is a recipe-sharing backend: users submit recipes for
moderation, rate and comment on approved recipes, and admins approve or
reject submissions and moderate comments.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
