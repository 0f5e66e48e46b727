package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"repodash/analytics"
	"repodash/config"
	"repodash/dashboard"
	"repodash/models"
	"repodash/service"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print the dashboard tables as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		languages, _ := cmd.Flags().GetStringSlice("language")
		return runSummary(cmd.Context(), cfg, languageSelection(cmd, languages), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
	summaryCmd.Flags().StringSlice("language", nil, "Languages to include (repeatable; default all)")
}

// selection picks the languages to show from a loaded dataset.
type selection func(ds *models.Dataset) []string

func languageSelection(cmd *cobra.Command, languages []string) selection {
	if !cmd.Flags().Changed("language") {
		return analytics.DistinctLanguages
	}
	return func(*models.Dataset) []string {
		if languages == nil {
			return []string{}
		}
		return languages
	}
}

func buildDashboard(ctx context.Context, cfg *config.Config, selected selection) (*dashboard.Dashboard, *service.Service, error) {
	ser, err := service.NewService(cfg)
	if err != nil {
		return nil, nil, err
	}
	ds, err := ser.Dataset(ctx)
	if err != nil {
		ser.Close()
		return nil, nil, err
	}
	d, err := dashboard.Build(ds, selected(ds))
	if err != nil {
		ser.Close()
		return nil, nil, err
	}
	return d, ser, nil
}

func runSummary(ctx context.Context, cfg *config.Config, selected selection, w io.Writer) error {
	d, ser, err := buildDashboard(ctx, cfg, selected)
	if err != nil {
		return err
	}
	defer ser.Close()

	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal dashboard: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
