package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gpp-woo/publicationbank/internal/config"
	"github.com/gpp-woo/publicationbank/internal/server"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "run the registry worker (index sync and scheduled jobs)",
		Run: func(cmd *cobra.Command, args []string) {
			if err := server.Start(config.LoadConfig()); err != nil {
				logrus.Fatalf("worker stopped with error: %v", err)
			}
		},
	}
}
