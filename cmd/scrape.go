package cmd

import (
	"fmt"
	"os"
	"time"

	"toolbelt/internal/chart"
	"toolbelt/internal/scraper"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	scrapeURL      string
	scrapeMaxPages int
	scrapeDelay    time.Duration
	scrapeOut      string
	scrapeChart    string
	scrapeTop      int
)

func init() {
	rootCmd.AddCommand(scrapeCmd)

	scrapeCmd.Flags().StringVar(&scrapeURL, "url", "http://quotes.toscrape.com", "base URL of the paginated quote listing")
	scrapeCmd.Flags().IntVar(&scrapeMaxPages, "max-pages", 10, "maximum number of pages to fetch")
	scrapeCmd.Flags().DurationVar(&scrapeDelay, "delay", 500*time.Millisecond, "politeness delay between page fetches")
	scrapeCmd.Flags().StringVar(&scrapeOut, "out", "quotes.csv", "CSV export path")
	scrapeCmd.Flags().StringVar(&scrapeChart, "chart", "tags.png", "tag frequency chart path")
	scrapeCmd.Flags().IntVar(&scrapeTop, "top", 10, "number of tags to chart")
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape a paginated quote listing, chart tag frequencies and export CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

		s := scraper.New(scrapeURL, scrapeMaxPages, scrapeDelay, log)
		res, err := s.Run(cmd.Context())
		if err != nil {
			return err
		}
		if len(res.Quotes) == 0 {
			return fmt.Errorf("no quotes collected from %s (%d pages failed)", scrapeURL, res.PagesFailed)
		}

		a := scraper.Analyze(res.Quotes)

		fmt.Printf("Scraped %d quotes from %d pages (%d pages failed)\n",
			len(res.Quotes), res.PagesFetched, res.PagesFailed)
		fmt.Printf("Average quote length: %.1f characters\n\n", a.AvgQuoteLen)

		fmt.Printf("%-24s %s\n", "TAG", "COUNT")
		fmt.Println("──────────────────────────────")
		for _, c := range scraper.Top(a.TagCounts, scrapeTop) {
			fmt.Printf("%-24s %d\n", c.Label, c.N)
		}

		fmt.Printf("\n%-24s %s\n", "AUTHOR", "QUOTES")
		fmt.Println("──────────────────────────────")
		for _, c := range scraper.Top(a.AuthorCounts, 5) {
			fmt.Printf("%-24s %d\n", c.Label, c.N)
		}

		if err := scraper.WriteCSV(scrapeOut, res.Quotes); err != nil {
			return err
		}
		fmt.Printf("\nExport written to %s\n", scrapeOut)

		items := make([]chart.Item, 0, scrapeTop)
		for _, c := range scraper.Top(a.TagCounts, scrapeTop) {
			items = append(items, chart.Item{Label: c.Label, Value: float64(c.N)})
		}
		if err := chart.Bar(scrapeChart, "Most common tags", items); err != nil {
			return err
		}
		fmt.Printf("Chart written to %s\n", scrapeChart)
		return nil
	},
}
