package main

import (
	"os"

	"github.com/spf13/cobra"
)

var mainCMD = &cobra.Command{
	Use:   "exametl",
	Short: "Convert exam result files to XML",
	Long:  "Reads delimited exam result lines and writes them as a single XML document.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func init() {
	mainCMD.AddCommand(runCMD)
	mainCMD.AddCommand(versionCMD)
}

func main() {
	if err := mainCMD.Execute(); err != nil {
		os.Exit(1)
	}
}
