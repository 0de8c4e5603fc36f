package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "photo-prefs",
	Short: "User preferences and face detection progress service for a photo library",
	Long: `Photo Prefs serves per-user display preferences for a photo library and
tracks the progress of the video face detection job.

Preferences are validated partial updates merged over system defaults, so
every read returns a complete record. Face detection progress is streamed to
any number of watchers as it changes.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	// .env file is optional, don't fail if not found
	_ = godotenv.Load()
}
