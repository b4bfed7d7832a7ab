package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vk/topasparse/internal/ctxlog"
	"github.com/vk/topasparse/internal/export"
	"github.com/vk/topasparse/internal/fsutil"
	"github.com/vk/topasparse/internal/input"
	"github.com/vk/topasparse/internal/topas"
)

// Run discovers every report under the input path, parses each one and
// writes the structures and atoms CSV tables into the output directory.
// The first malformed report aborts the batch, naming the file.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	files, err := fsutil.FindReports(a.config.InputPath, ".out", ".out.gz")
	if err != nil {
		return fmt.Errorf("failed to find report files in %s: %w", a.config.InputPath, err)
	}
	if len(files) == 0 {
		return errors.New("no .out report files found under " + a.config.InputPath)
	}

	var measurements []*topas.Measurement
	for _, path := range files {
		ms, err := a.parseReport(ctx, path)
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
		a.logger.Info("Parsed report.", "path", path, "measurements", len(ms))
		measurements = append(measurements, ms...)
	}

	if err := os.MkdirAll(a.config.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := a.writeTables(measurements); err != nil {
		return err
	}

	a.logger.Info("Export complete.",
		"measurements", len(measurements), "output_dir", a.config.OutputDir)
	fmt.Fprintf(a.outW, "parsed %d report(s), %d measurement(s); tables written to %s\n",
		len(files), len(measurements), a.config.OutputDir)
	return nil
}

func (a *App) parseReport(ctx context.Context, path string) ([]*topas.Measurement, error) {
	rc, err := input.Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return topas.Parse(ctx, rc, a.settings.Options())
}

func (a *App) writeTables(measurements []*topas.Measurement) error {
	structuresPath := filepath.Join(a.config.OutputDir, "structures.csv")
	sf, err := os.Create(structuresPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", structuresPath, err)
	}
	defer sf.Close()
	err = export.WriteStructures(sf, measurements,
		a.settings.Export.StructureParams, a.settings.Export.Renames)
	if err != nil {
		return fmt.Errorf("failed to write structures table: %w", err)
	}

	atomsPath := filepath.Join(a.config.OutputDir, "atoms.csv")
	af, err := os.Create(atomsPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", atomsPath, err)
	}
	defer af.Close()
	if err := export.WriteAtoms(af, measurements); err != nil {
		return fmt.Errorf("failed to write atoms table: %w", err)
	}
	return nil
}
