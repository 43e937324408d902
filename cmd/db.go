package cmd

import (
	"github.com/spf13/cobra"

	"github.com/gpp-woo/publicationbank/internal/config"
	"github.com/gpp-woo/publicationbank/internal/store"
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "db commands",
}

func init() {
	dbCmd.AddCommand(Migrate())
}

func Migrate() *cobra.Command {
	command := &cobra.Command{
		Use:   "migrate",
		Short: "Migrate the database",
		Run: func(cmd *cobra.Command, args []string) {
			db := config.GetDb(config.LoadConfig())
			err := store.NewGormStore(db).Migrate()
			if err != nil {
				panic(err)
			}
		},
	}

	return command
}
