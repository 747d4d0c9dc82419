package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Waseem-Khan-Dawar/University-ChatBot/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "meritbot",
	Short: "University admission merit chatbot",
	Long:  "Answers admission-merit questions over an imported dataset. Extracts university, campus, department, program and year from free text, asks for whatever is missing, and falls back to the nearest year or alternate campuses when an exact match does not exist.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
