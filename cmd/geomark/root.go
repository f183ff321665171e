// ABOUTME: Root Cobra command and global flags
// ABOUTME: Sets up CLI structure, config, storage, and the annotation store

package main

import (
	"fmt"
	"os"

	"github.com/baptistelechat/geomark/internal/config"
	"github.com/baptistelechat/geomark/internal/storage"
	"github.com/baptistelechat/geomark/internal/store"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	cfg     *config.Config
	repo    storage.Repository
	st      *store.Store
	log     zerolog.Logger
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "geomark",
	Short: "Map annotations: labeled points and drawn shapes",
	Long: `
 ██████╗ ███████╗ ██████╗ ███╗   ███╗ █████╗ ██████╗ ██╗  ██╗
██╔════╝ ██╔════╝██╔═══██╗████╗ ████║██╔══██╗██╔══██╗██║ ██╔╝
██║  ███╗█████╗  ██║   ██║██╔████╔██║███████║██████╔╝█████╔╝
██║   ██║██╔══╝  ██║   ██║██║╚██╔╝██║██╔══██║██╔══██╗██╔═██╗
╚██████╔╝███████╗╚██████╔╝██║ ╚═╝ ██║██║  ██║██║  ██║██║  ██╗
 ╚═════╝ ╚══════╝ ╚═════╝ ╚═╝     ╚═╝╚═╝  ╚═╝╚═╝  ╚═╝╚═╝  ╚═╝

       Annotate maps with labeled points and drawn shapes

Examples:
  geomark add "Tour Eiffel" 48.8584 2.2945 --icon star
  geomark list
  geomark export --format zip --output annotations.zip
  geomark search "champ de mars paris"`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := zerolog.InfoLevel
		if verbose {
			level = zerolog.DebugLevel
		}
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(level).
			With().Timestamp().Logger()

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		repo, err = cfg.OpenStorage()
		if err != nil {
			return fmt.Errorf("failed to open storage: %w", err)
		}

		st, err = store.New(repo, log)
		if err != nil {
			return fmt.Errorf("failed to load annotations: %w", err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if repo != nil {
			return repo.Close()
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
