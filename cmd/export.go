package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync/atomic"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"repodash/config"
	"repodash/logger"
	"repodash/render"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Render every dashboard chart to a PNG file",
	RunE: func(cmd *cobra.Command, args []string) error {
		languages, _ := cmd.Flags().GetStringSlice("language")
		out, _ := cmd.Flags().GetString("out")
		written, err := runExport(cmd.Context(), cfg, languageSelection(cmd, languages), out)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d charts to %s\n", written, out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringSlice("language", nil, "Languages to include (repeatable; default all)")
	exportCmd.Flags().StringP("out", "o", "charts", "Output directory")
}

// runExport writes one <chart id>.png per panel into dir. Panels without
// data are skipped.
func runExport(ctx context.Context, cfg *config.Config, selected selection, dir string) (int, error) {
	d, ser, err := buildDashboard(ctx, cfg, selected)
	if err != nil {
		return 0, err
	}
	defer ser.Close()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("failed to create %s: %w", dir, err)
	}

	opts := ser.RenderOptions()
	var written atomic.Int32
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for _, panel := range d.Panels {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			var buf bytes.Buffer
			err := render.PNG(&buf, panel, opts)
			if errors.Is(err, render.ErrNoData) {
				logger.Info("Skipping chart without data", zap.String("chart", panel.Spec.ID))
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to render %s: %w", panel.Spec.ID, err)
			}
			path := filepath.Join(dir, panel.Spec.ID+".png")
			if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}
			written.Add(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	return int(written.Load()), nil
}
