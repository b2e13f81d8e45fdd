package cli

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var statsJSON bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show collection statistics",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "output statistics as JSON")
	rootCmd.AddCommand(statsCmd)
}

// barWidth is the width of a full distribution bar.
const barWidth = 30

func runStats(cmd *cobra.Command, _ []string) error {
	if err := requireProperties(); err != nil {
		return err
	}

	stats, err := propertyService.Stats(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to get stats: %w", err)
	}

	if statsJSON {
		return printJSON(cmd, stats)
	}
	if stats.Empty() {
		cmd.Println("No Data Available. Add some properties to see statistics.")
		return nil
	}

	cmd.Printf("Total properties: %s\n", humanize.Comma(int64(stats.TotalProperties)))
	cmd.Printf("Favorites:        %s\n", humanize.Comma(int64(stats.Favorites)))
	cmd.Printf("For rent:         %s\n", humanize.Comma(int64(stats.ForRent())))
	cmd.Printf("For sale:         %s\n", humanize.Comma(int64(stats.ForSale())))

	cmd.Println()
	cmd.Println("By type:")
	for _, b := range stats.TypeBuckets() {
		share := stats.Share(b.Count)
		bar := strings.Repeat("█", int(share/100*barWidth))
		cmd.Printf("  %-12s %-*s %5.1f%% (%d)\n", b.Name, barWidth, bar, share, b.Count)
	}

	if len(stats.Recent) > 0 {
		cmd.Println()
		cmd.Println("Recent:")
		for i := range stats.Recent {
			p := &stats.Recent[i]
			location := p.Location
			if location == "" {
				location = "No location"
			}
			price := p.Price
			if price == "" {
				price = "N/A"
			}
			cmd.Printf("  %-10s %-24s %-12s %s\n", orDash(p.Headline()), location, price, added(p))
		}
	}
	return nil
}
