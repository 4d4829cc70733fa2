package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of the CinemaS CLI",
	Run: func(cmd *cobra.Command, args []string) {
		out := fmt.Sprintf("cinemas %s", version)
		if commit != "none" && commit != "" {
			out += fmt.Sprintf(" (%s)", commit)
		}
		fmt.Println(out)
	},
}
