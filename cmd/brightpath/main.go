package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	root := &cobra.Command{
		Use:     "brightpath",
		Short:   "Brightpath — resilient tutoring content generation engine",
		Version: version,
	}

	root.AddCommand(
		newServeCmd(),
		newGenerateCmd(),
		newCacheCmd(),
		newGraphCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
