package main

import (
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"showcase/cmd/showcase/ui"
	"showcase/internal/config"
	"showcase/internal/dataset"
	"showcase/internal/gallery"
	"showcase/internal/logging"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
)

var (
	// Global flags
	verbose     bool
	configPath  string
	datasetPath string
	query       string
	seed        uint64
	watch       bool

	// Resolved settings
	cfg *config.Config

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "showcase",
	Short: "showcase - browse a community project gallery in the terminal",
	Long: `showcase renders a searchable, infinitely scrolling gallery of
community projects.

Projects are shuffled once at startup. Typing in the search box filters by
title after a short pause, and scrolling near the bottom loads the next page.

Run without arguments to start the interactive gallery.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadSettings(); err != nil {
			return err
		}

		if dir, err := config.ConfigDir(); err == nil {
			if err := logging.Initialize(filepath.Join(dir, "logs"), cfg.Logging.Options()); err != nil {
				return fmt.Errorf("failed to initialize logging: %w", err)
			}
		}

		// The interactive gallery owns the terminal, so it only logs to file
		if !cmd.HasParent() {
			if logging.IsDebugMode() {
				fmt.Fprintf(cmd.ErrOrStderr(), "debug log: %s\n", logging.LogPath())
			}
			logger = zap.NewNop()
			return nil
		}

		var err error
		logger, err = newLogger(verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
		logging.CloseAll()
	},
	RunE: runGallery,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: .showcase/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&datasetPath, "dataset", "d", "", "Dataset file, JSON or YAML (default: built-in sample)")
	rootCmd.PersistentFlags().StringVarP(&query, "query", "q", "", "Initial title filter")
	rootCmd.PersistentFlags().Uint64Var(&seed, "seed", 0, "Shuffle seed for a reproducible order (0 = random)")
	rootCmd.Flags().BoolVarP(&watch, "watch", "w", false, "Reload the gallery when the dataset file changes")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadSettings reads the config file and layers the command-line flags on
// top of it.
func loadSettings() error {
	path, err := resolveConfigPath()
	if err != nil {
		return err
	}

	c, err := config.Load(path)
	if err != nil {
		return err
	}

	if datasetPath != "" {
		c.Dataset.Path = datasetPath
	}
	if seed != 0 {
		c.Gallery.Seed = seed
	}
	if watch {
		c.Dataset.Watch = true
	}
	if verbose {
		c.Logging.DebugMode = true
		c.Logging.Level = "debug"
	}

	cfg = c
	return nil
}

func resolveConfigPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	p, err := config.DefaultPath()
	if err != nil {
		return "", fmt.Errorf("failed to resolve config path: %w", err)
	}
	return p, nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	zc.Encoding = "console"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zc.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return zc.Build()
}

// shuffleSource returns the seeded generator, or nil for the global one.
func shuffleSource() *rand.Rand {
	if cfg.Gallery.Seed == 0 {
		return nil
	}
	return rand.New(rand.NewPCG(cfg.Gallery.Seed, cfg.Gallery.Seed))
}

func galleryOptions() ui.Options {
	styles := ui.NewStyles(ui.ThemeByName(cfg.UI.Theme))
	return ui.Options{
		PageSize:        cfg.Gallery.PageSize,
		Debounce:        cfg.GetDebounce(),
		LoadDelay:       cfg.GetLoadDelay(),
		ScrollThreshold: cfg.Gallery.ScrollThreshold,
		CardWidth:       cfg.UI.CardWidth,
		ShowTags:        cfg.UI.ShowTags,
		LegacyLiveDemo:  cfg.Links.LegacyLiveDemo,
		InitialQuery:    query,
		Rand:            shuffleSource(),
		Styles:          &styles,
	}
}

// runGallery starts the interactive gallery, and the dataset watcher when
// enabled, until the user quits or a signal arrives.
func runGallery(cmd *cobra.Command, args []string) error {
	groups, err := dataset.Load(cfg.Dataset.Path)
	if err != nil {
		return err
	}
	logging.Boot("starting gallery: %d contributors, session %s", len(groups), logging.SessionID())

	p := tea.NewProgram(
		ui.NewModel(groups, galleryOptions()),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	var watcher *dataset.Watcher
	if cfg.Dataset.Watch {
		if cfg.Dataset.Path == "" {
			logging.BootWarn("--watch ignored: no dataset file configured")
		} else {
			watcher, err = dataset.NewWatcher(cfg.Dataset.Path, cfg.GetReloadDebounce(), func(groups []gallery.ContributorGroup) {
				p.Send(ui.DatasetReloadedMsg{Groups: groups})
			})
			if err != nil {
				return err
			}
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer stop()
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("gallery exited: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		p.Quit()
		return nil
	})
	if watcher != nil {
		g.Go(func() error {
			return watcher.Run(ctx)
		})
	}

	err = g.Wait()
	if watcher != nil {
		stats := watcher.Stats()
		logging.Watcher("events=%d reloads=%d errors=%d", stats.Events, stats.Reloads, stats.Errors)
	}
	return err
}
