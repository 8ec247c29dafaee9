package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/adamspd/StudyNotes/jobs"
	"github.com/adamspd/StudyNotes/models"
	"github.com/adamspd/StudyNotes/notes"
	"github.com/adamspd/StudyNotes/pdf"
	"github.com/adamspd/StudyNotes/sheet"
	"github.com/adamspd/StudyNotes/utils"
)

const fetchTimeout = 30 * time.Second

type filterFlags struct {
	subject      string
	mainCategory string
	minFrequency int
	sort         bool
	conceptOnly  bool
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.subject, "subject", "", "Only this subject")
	cmd.Flags().StringVar(&f.mainCategory, "main-category", "", "Only this main category")
	cmd.Flags().IntVar(&f.minFrequency, "min-frequency", 0, "Minimum exam frequency: 0, 3 or 5")
	cmd.Flags().BoolVar(&f.sort, "sort", false, "Order by frequency, highest first")
	cmd.Flags().BoolVar(&f.conceptOnly, "concept-only", false, "Leave out problems")
}

func (f *filterFlags) filter() (models.Filter, error) {
	if err := utils.ValidateFrequency(f.minFrequency); err != nil {
		return models.Filter{}, err
	}
	return models.Filter{
		Subject:         f.subject,
		MainCategory:    f.mainCategory,
		MinFrequency:    f.minFrequency,
		SortByFrequency: f.sort,
		ConceptOnly:     f.conceptOnly,
	}.Normalize(), nil
}

// newNotesService wires the sheet loader from --file or the configured sheet.
func newNotesService(ctx context.Context) (*sheet.Loader, *notes.Service, error) {
	columns, err := cfg.Columns()
	if err != nil {
		return nil, nil, err
	}

	var fetcher sheet.Fetcher
	format := cfg.SheetFormat
	if sheetFile != "" {
		fetcher = sheet.FileFetcher{Path: sheetFile}
		format = sheet.FormatFromPath(sheetFile)
	} else {
		exportURL, err := cfg.ExportURL()
		if err != nil {
			return nil, nil, err
		}
		client, err := sheet.NewClient(ctx, exportURL, cfg.CredentialsFile, fetchTimeout)
		if err != nil {
			return nil, nil, err
		}
		fetcher = client
	}

	loader := sheet.NewLoader(fetcher, format, columns, cfg.SheetCacheTTL)
	return loader, notes.NewService(loader, notes.NewMarkdown(), cfg.Title), nil
}

// loadView builds one notes view for the command line, which has no user.
func loadView(ctx context.Context, flags *filterFlags) (*models.NotesView, func(), error) {
	filter, err := flags.filter()
	if err != nil {
		return nil, nil, err
	}

	loader, service, err := newNotesService(ctx)
	if err != nil {
		return nil, nil, err
	}

	result, err := service.Notes(ctx, filter, nil)
	if err != nil {
		loader.Close()
		return nil, nil, fmt.Errorf("%s: %w", notes.LoadFailedMessage, err)
	}
	return result.View, loader.Close, nil
}

func newRenderCmd() *cobra.Command {
	var flags filterFlags
	var output string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Write the printable notes document as HTML",
		RunE: func(cmd *cobra.Command, args []string) error {
			view, done, err := loadView(cmd.Context(), &flags)
			if err != nil {
				return err
			}
			defer done()

			renderer, err := notes.NewRenderer()
			if err != nil {
				return err
			}

			file, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", output, err)
			}
			defer file.Close()

			if err := renderer.Document(file, view, true); err != nil {
				return fmt.Errorf("failed to render document: %w", err)
			}

			utils.LogInfo("Wrote %d sections (%d rows) to %s", len(view.Sections), view.RowCount, output)
			return file.Close()
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "notes.html", "Output file path")
	return cmd
}

func newPreviewCmd() *cobra.Command {
	var flags filterFlags
	var width int

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Print the notes to the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			view, done, err := loadView(cmd.Context(), &flags)
			if err != nil {
				return err
			}
			defer done()

			out, err := notes.Preview(view, width)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVar(&width, "width", 100, "Word wrap width")
	return cmd
}

func newExportCmd() *cobra.Command {
	var flags filterFlags
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print the notes document to PDF with headless Chrome",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := flags.filter()
			if err != nil {
				return err
			}

			loader, service, err := newNotesService(cmd.Context())
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

			exporter := jobs.NewExporter(nil, service, renderer, printer, cfg.ExportDir)
			data, err := exporter.PDF(cmd.Context(), filter, nil)
			if err != nil {
				return err
			}

			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}
			utils.LogInfo("Wrote %d bytes to %s", len(data), output)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "notes.pdf", "Output file path")
	return cmd
}
