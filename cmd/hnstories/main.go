package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/pders01/hnstories/internal/config"
	"github.com/pders01/hnstories/internal/debuglog"
	"github.com/pders01/hnstories/internal/fetch"
	"github.com/pders01/hnstories/internal/hn"
	"github.com/pders01/hnstories/internal/query"
	"github.com/pders01/hnstories/internal/session"
	"github.com/pders01/hnstories/internal/storage"
	"github.com/pders01/hnstories/internal/tui"
)

// Version is the version of the application, set at build time
var Version = "dev"

var (
	configPath string
	dbPath     string
	quiet      bool
)

var rootCmd = &cobra.Command{
	Use:          "hnstories",
	Short:        "Search Hacker News stories from the terminal",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		defer debuglog.Close()

		if !quiet {
			tui.ShowBanner(Version)
		}
		return runTUI(cfg)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("hnstories %s\n", Version)
		fmt.Println("Hacker News story search")
		fmt.Println("github.com/pders01/hnstories")
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configGenCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write the default configuration to ~/.config/hnstories/config.toml",
	Run: func(cmd *cobra.Command, args []string) {
		home, _ := os.UserHomeDir()
		configFile := filepath.Join(home, ".config", "hnstories", "config.toml")

		if err := config.GenerateDefaultConfig(configFile); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to generate config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Generated default configuration at: %s\n", configFile)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to configuration file")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to database file (overrides config)")
	rootCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Skip startup banner")

	configCmd.AddCommand(configGenCmd)
	rootCmd.AddCommand(versionCmd, configCmd, newSearchCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the configuration, applies flag overrides and starts the
// file logger.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if dbPath != "" {
		cfg.Database.Path = dbPath
	}

	if err := debuglog.Setup(debuglog.ParseLogLevel(cfg.Log.Level), cfg.Log.File); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runTUI(cfg *config.Config) error {
	store, err := storage.NewStore(cfg.Database.Path, cfg.Database.Timeout)
	if err != nil {
		return err
	}
	defer store.Close()

	builder := query.NewBuilder(cfg)
	orch := fetch.NewOrchestrator(hn.NewClient(cfg), builder.ExtractTerm, cfg.API.HTTPTimeout)

	sess, err := session.New(builder, orch, store, session.OptionsFromConfig(cfg))
	if err != nil {
		return err
	}

	debuglog.Infof("starting hnstories %s with term %q", Version, sess.Term())

	p := tea.NewProgram(tui.NewApp(sess, cfg), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running ui: %w", err)
	}
	return nil
}
