package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pubbank",
	Short: "publication registry management tool",
	Example: `pubbank pub create -t <title> -o <owner> --publisher <org-uuid> -c <category-uuid>
pubbank pub get -p <pub-uuid>
pubbank pub list
pubbank pub publish -p <pub-uuid>
pubbank pub revoke -p <pub-uuid>
pubbank doc create -p <pub-uuid> -t <title> -o <owner> -f <file>
pubbank doc get -d <doc-uuid>
pubbank doc complete -d <doc-uuid>
pubbank serve`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(dbCmd)
	rootCmd.AddCommand(serveCmd())
	rootCmd.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})

	rootCmd.CompletionOptions.HiddenDefaultCmd = true
	cobra.EnableCommandSorting = false
}
