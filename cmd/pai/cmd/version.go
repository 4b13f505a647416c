package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  `Display the current version of the pai CLI.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("pai version %s\n", version)
		fmt.Println("Position analysis for broker deal feeds")
		fmt.Println("https://github.com/alun/pai")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
