package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	sqliteadapter "github.com/tbrowse/themescan/internal/adapter/driven/sqlite"
	"github.com/tbrowse/themescan/internal/domain/port/driven"
)

var exportOutFlag string

// cacheExport is the envelope written by the export command.
type cacheExport struct {
	Count      int                  `json:"count"`
	ExportedAt time.Time            `json:"exported_at"`
	Entries    []driven.CacheRecord `json:"entries"`
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the evidence cache to JSON",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportOutFlag, "out", "evidence-export.json", "Output path for the export")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := sqliteadapter.NewDB(cfg.CachePath)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("error closing cache", "error", closeErr)
		}
	}()
	if err := sqliteadapter.RunMigrations(db.Writer); err != nil {
		return fmt.Errorf("migrate cache: %w", err)
	}

	records, err := sqliteadapter.NewEvidenceCache(db).List(ctx)
	if err != nil {
		return fmt.Errorf("list cache: %w", err)
	}

	export := cacheExport{
		Count:      len(records),
		ExportedAt: time.Now().UTC(),
		Entries:    records,
	}

	raw, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("encode export: %w", err)
	}
	if err := os.WriteFile(exportOutFlag, append(raw, '\n'), 0o644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}

	fmt.Printf("exported %d cache entries to %s\n", export.Count, exportOutFlag)
	return nil
}
