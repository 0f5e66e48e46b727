package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"repodash/logger"
	"repodash/service"

	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		ser, err := service.NewService(cfg)
		if err != nil {
			return err
		}
		defer func() {
			if err := ser.Close(); err != nil {
				logger.Error("Error during service shutdown", zap.Error(err))
			}
		}()
		return ser.Start(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "HTTP listen address (env LISTEN_ADDR)")
	viper.BindPFlag("LISTEN_ADDR", serveCmd.Flags().Lookup("addr"))
}
