package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vite-pwa/sveltekit-precache/internal/app"
	"github.com/vite-pwa/sveltekit-precache/internal/cache"
	"github.com/vite-pwa/sveltekit-precache/internal/config"
	"github.com/vite-pwa/sveltekit-precache/internal/utils"
	"github.com/vite-pwa/sveltekit-precache/pkg/version"
)

var (
	cfgFile string
	verbose bool
	log     *utils.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sveltekit-precache",
	Short: "Generate a service-worker precache manifest from a SvelteKit build",
	Long: `sveltekit-precache scans the output of a SvelteKit static build
(client assets, prerendered pages and their data dependencies), rewrites each
artifact's build path to the URL it is served at in production, and writes the
resulting precache manifest for the service worker.`,
	Version: version.Short(),
	RunE:    run,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.sveltekit-precache/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	rootCmd.Flags().String("out-dir", config.DefaultOutDir, "Adapter build output directory")
	rootCmd.Flags().String("layout", config.DefaultLayoutFile, "Project layout file")
	rootCmd.Flags().StringP("manifest", "m", config.DefaultManifestFile, "Manifest output path")
	rootCmd.Flags().String("summary", "", "Build summary output path")
	rootCmd.Flags().IntP("workers", "j", config.DefaultWorkers, "Number of hashing workers")
	rootCmd.Flags().Bool("no-cache", false, "Disable the revision cache")
	rootCmd.Flags().Bool("progress", false, "Show a progress bar while hashing")
	rootCmd.Flags().Bool("dry-run", false, "Simulate without writing files")

	_ = viper.BindPFlag("build.out_dir", rootCmd.Flags().Lookup("out-dir"))
	_ = viper.BindPFlag("build.layout_file", rootCmd.Flags().Lookup("layout"))
	_ = viper.BindPFlag("output.manifest_file", rootCmd.Flags().Lookup("manifest"))
	_ = viper.BindPFlag("output.summary_file", rootCmd.Flags().Lookup("summary"))
	_ = viper.BindPFlag("output.progress", rootCmd.Flags().Lookup("progress"))
	_ = viper.BindPFlag("concurrency.workers", rootCmd.Flags().Lookup("workers"))

	rootCmd.AddCommand(cleanCacheCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

func run(cmd *cobra.Command, args []string) error {
	logLevel := "info"
	if verbose {
		logLevel = "debug"
	}
	log = utils.NewLogger(utils.LoggerOptions{
		Level:   logLevel,
		Format:  "pretty",
		Verbose: verbose,
	})

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	noCache, _ := cmd.Flags().GetBool("no-cache")
	if noCache {
		cfg.Cache.Enabled = false
	}
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Info().Msg("Shutting down gracefully...")
		cancel()
	}()

	orchestrator, err := app.NewOrchestrator(app.Options{
		Config: cfg,
		DryRun: dryRun,
		Logger: log,
	})
	if err != nil {
		return fmt.Errorf("failed to create orchestrator: %w", err)
	}
	defer orchestrator.Close()

	summary, err := orchestrator.Run(ctx)
	if err != nil {
		return err
	}

	if dryRun {
		fmt.Printf("dry run: %d entries, %d bytes total\n",
			summary.EntryCount, summary.TotalSize)
	}
	return nil
}

var cleanCacheCmd = &cobra.Command{
	Use:   "clean-cache",
	Short: "Clear the revision cache",
	Long:  "Removes all cached artifact revisions so the next build rehashes every file.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		store, err := cache.NewRevisionStore(cache.Options{
			Directory: cfg.Cache.Directory,
			TTL:       cfg.Cache.TTL,
		})
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Clear(); err != nil {
			return err
		}
		fmt.Println("Revision cache cleared.")
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.Full())
	},
}
