package root

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "bookshelf",
	Short: "Bookshelf CLI",
	Long:  "Command line interface for interacting with the Bookshelf API",
}

// GetRoot returns the root command so subcommand packages can attach to it.
func GetRoot() *cobra.Command {
	return rootCmd
}
