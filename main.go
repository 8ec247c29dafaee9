// Command studynotes serves printable study notes built from a Google Sheet.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/adamspd/StudyNotes/auth"
	"github.com/adamspd/StudyNotes/config"
	"github.com/adamspd/StudyNotes/db"
	"github.com/adamspd/StudyNotes/handlers"
	"github.com/adamspd/StudyNotes/jobs"
	"github.com/adamspd/StudyNotes/notes"
	"github.com/adamspd/StudyNotes/pdf"
	"github.com/adamspd/StudyNotes/utils"
)

var (
	cfg       *config.Config
	verbose   bool
	sheetFile string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "studynotes",
		Short: "Printable study notes from a Google Sheet",
		Long: `studynotes reads a concept/problem sheet, groups the rows into sections
and serves them as a filterable, printable notes document.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load()
			if err != nil {
				return err
			}
			cfg = loaded

			level := cfg.LogLevel
			if verbose {
				level = "debug"
			}
			return utils.InitLogger(level)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			utils.SyncLogger()
		},
		RunE: runServe,
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&sheetFile, "file", "", "Read a local .csv/.xlsx export instead of the Google Sheet")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the dashboard and API server (default)",
		RunE:  runServe,
	}

	rootCmd.AddCommand(serveCmd, newRenderCmd(), newPreviewCmd(), newExportCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	utils.LogStartup("StudyNotes starting...")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.InitDB(cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(); err != nil {
			utils.LogError("Error closing database: %v", err)
		} else {
			utils.LogShutdown("Database connection closed successfully")
		}
	}()

	loader, service, err := newNotesService(ctx)
	if err != nil {
		return err
	}
	defer loader.Close()

	renderer, err := notes.NewRenderer()
	if err != nil {
		return err
	}

	printer := pdf.NewChromePrinter(cfg.Printer())
	defer printer.Close()

	exporter := jobs.NewExporter(database, service, renderer, printer, cfg.ExportDir)

	var queue jobs.Queue
	if cfg.RedisURL != "" {
		jobManager, err := jobs.NewJobManager(cfg.RedisURL)
		if err != nil {
			return err
		}
		jobManager.RegisterHandlers(exporter)
		if err := jobManager.Start(); err != nil {
			return err
		}
		defer jobManager.Stop()
		queue = jobManager
	} else {
		utils.LogStartup("REDIS_URL not set, running exports in-process")
		runner := jobs.NewInlineRunner(exporter)
		defer runner.Stop()
		queue = runner
	}

	if cfg.RefreshSchedule != "" {
		scheduler, err := jobs.NewScheduler(cfg.RefreshSchedule, loader)
		if err != nil {
			return err
		}
		scheduler.Start()
		defer scheduler.Stop()
	}

	sessionStore := auth.NewSessionStore()
	defer sessionStore.Close()

	router := handlers.NewRouter(database, sessionStore, service, renderer, loader, queue)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		utils.LogStartup("Starting HTTP server on port %s...", cfg.Port)
		utils.LogStartup("Server ready to accept connections at http://localhost:%s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		// Warm the sheet cache so the first visitor does not wait for the fetch.
		if _, err := loader.Load(gctx); err != nil {
			utils.LogWarn("Initial sheet load failed: %v", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		utils.LogShutdown("Received shutdown signal, stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
