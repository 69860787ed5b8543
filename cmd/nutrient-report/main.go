// Command nutrient-report generates the publication table of nutrient
// concentrations: it loads the measurement dataset, aggregates each
// (site, period, treatment) group to "mean ± standard error" cells plus a
// C:N:P ratio, arranges the rows into the target layout, and renders the
// result as HTML, CSV, and XLSX.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"strings"

	"stoichcli/internal/config"
	"stoichcli/internal/dataset"
	"stoichcli/internal/exporter"
	"stoichcli/internal/infrastructure"
	"stoichcli/internal/layout"
	"stoichcli/internal/stats"
	"stoichcli/pkg/contracts/domain"
)

func main() {
	configFile := flag.String("config", "", "path to YAML config file (optional)")
	source := flag.String("source", "", "dataset path or URL (overrides config)")
	delimiter := flag.String("delimiter", "", "record delimiter (overrides config)")
	tableSpec := flag.String("table", "", "path to YAML table spec describing the publication layout (optional)")
	formats := flag.String("formats", "", "comma-separated output formats: html,csv,xlsx (overrides config)")
	name := flag.String("name", "table1", "base name for output files")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if *source != "" {
		cfg.Input.Source = *source
	}
	if *delimiter != "" {
		cfg.Input.Delimiter = *delimiter
	}
	if *formats != "" {
		cfg.Report.Formats = strings.Split(*formats, ",")
	}
	if cfg.Input.Source == "" {
		slog.Error("No source dataset configured", "hint", "pass -source or set input.source in the config file")
		os.Exit(1)
	}

	paths := config.NewPaths(cfg.Paths)
	if err := paths.EnsureDirectories(); err != nil {
		slog.Error("Failed to create output directories", "error", err)
		os.Exit(1)
	}

	cfg.Logging.FilePath = paths.GetLogPath("nutrient-report.log")
	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	ctx := infrastructure.ContextWithRunID(context.Background())
	logger.InfoContext(ctx, "Starting report generation",
		slog.String("source", cfg.Input.Source),
		slog.Any("formats", cfg.Report.Formats))

	if err := run(ctx, cfg, paths, logger, *tableSpec, *name); err != nil {
		logger.ErrorContext(ctx, "Report generation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.InfoContext(ctx, "Report generated successfully",
		slog.String("reports_dir", paths.ReportsDir))
}

func run(ctx context.Context, cfg *config.Config, paths *config.Paths, logger *slog.Logger, tableSpecPath, name string) error {
	loader := dataset.NewLoader(logger)
	table, err := loader.Load(ctx, cfg.Input.Source, []rune(cfg.Input.Delimiter)[0])
	if err != nil {
		return err
	}

	logProfile(ctx, logger, cfg, table)

	summarizer := stats.NewSummarizer(logger)
	rows, err := summarizer.SummarizeMeanSE(ctx, table, cfg.Input.GroupFields, cfg.Input.ValueFields)
	if err != nil {
		return err
	}

	spec, err := resolveTableSpec(cfg, rows, tableSpecPath)
	if err != nil {
		return err
	}

	// The layout invariant (label count == row count) fails here, before
	// any renderer runs, so a bad spec produces no partial output.
	grid, err := spec.Layout.Build(rows)
	if err != nil {
		return err
	}

	for _, format := range cfg.Report.Formats {
		switch format {
		case "html":
			renderer := exporter.NewHTMLRenderer(paths)
			if err := renderer.WriteHTML(name+".html", grid, spec.Render); err != nil {
				return err
			}
		case "csv":
			writer := exporter.NewCSVWriter(paths)
			if err := writer.WriteGrid(name+".csv", grid); err != nil {
				return err
			}
		case "xlsx":
			writer := exporter.NewXLSXWriter(paths)
			if err := writer.WriteGrid(name+".xlsx", grid, spec.Render); err != nil {
				return err
			}
		}
	}

	return nil
}

// resolveTableSpec loads the publication layout from the spec file, or
// falls back to an automatic layout over all aggregated rows.
func resolveTableSpec(cfg *config.Config, rows []domain.AggregatedRow, path string) (*exporter.TableSpec, error) {
	if path != "" {
		return exporter.LoadTableSpec(path)
	}

	columns := make([]layout.Column, 0, len(cfg.Input.ValueFields)+1)
	for _, field := range cfg.Input.ValueFields {
		columns = append(columns, layout.Column{Key: field, Label: field})
	}
	if len(cfg.Input.ValueFields) == 3 {
		columns = append(columns, layout.Column{Key: layout.RatioKey, Label: "C:N:P"})
	}

	labelHeader := strings.Join(cfg.Input.GroupFields, " / ")
	return &exporter.TableSpec{
		Layout: *layout.Auto(rows, labelHeader, columns),
		Render: exporter.RenderOptions{
			Title:    cfg.Report.Title,
			Footnote: cfg.Report.Footnote,
		},
	}, nil
}

// logProfile logs a quick sanity summary of the decoded dataset. It only
// applies to the standard three-factor, three-nutrient schema.
func logProfile(ctx context.Context, logger *slog.Logger, cfg *config.Config, table *dataset.Table) {
	if len(cfg.Input.GroupFields) != 3 || len(cfg.Input.ValueFields) != 3 {
		return
	}
	measurements, err := table.Measurements(dataset.ColumnMapping{
		Site:       cfg.Input.GroupFields[0],
		Period:     cfg.Input.GroupFields[1],
		Treatment:  cfg.Input.GroupFields[2],
		Carbon:     cfg.Input.ValueFields[0],
		Nitrogen:   cfg.Input.ValueFields[1],
		Phosphorus: cfg.Input.ValueFields[2],
	})
	if err != nil {
		return
	}
	profile := dataset.Profiled(measurements)
	logger.InfoContext(ctx, "Dataset profile",
		slog.Int("rows", profile.Rows),
		slog.Any("rows_per_treatment", profile.RowsPerTreatment),
		slog.Int("missing_carbon", profile.MissingCarbon),
		slog.Int("missing_nitrogen", profile.MissingNitrogen),
		slog.Int("missing_phosphorus", profile.MissingPhosphorus))
}
