package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "toolbelt",
	Short: "Personal toolbelt: scraper, finance tracker, credential vault, chatbot",
	Long: `toolbelt bundles four small local tools into one binary:

  scrape   fetch a paginated quote listing, aggregate tags, chart and export
  finance  track income and expenses in a local SQLite database
  vault    keep credentials in an encrypted local store
  chat     a pattern-matching chatbot that learns new responses`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
