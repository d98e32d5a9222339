package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	pricingService "stoneerp.GO/service/pricing"
)

var (
	quotePercent string
	quoteItems   []string
)

var pricingQuoteCmd = &cobra.Command{
	Use:   "pricing:quote",
	Short: "Price contract items and add the mandatory surcharge",
	Run: func(c *cobra.Command, args []string) {
		if err := runQuote(c.OutOrStdout(), quotePercent, quoteItems); err != nil {
			fmt.Fprintf(c.ErrOrStderr(), "Quote failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func runQuote(out io.Writer, percent string, rawItems []string) error {
	pct, err := pricingService.ParseAmount(percent)
	if err != nil {
		return fmt.Errorf("percent %q: %w", percent, err)
	}
	items := make([]pricingService.Item, 0, len(rawItems))
	for _, raw := range rawItems {
		it, err := pricingService.ParseItem(raw)
		if err != nil {
			return err
		}
		items = append(items, it)
	}
	s, err := pricingService.Quote(items, pct)
	if err != nil {
		return err
	}

	for i, l := range s.Lines {
		label := l.Code
		if label == "" {
			label = fmt.Sprintf("item %d", i+1)
		}
		fmt.Fprintf(out, "  %-12s %s x %s = %s\n", label, l.Quantity, l.UnitPrice, l.Amount.StringFixed(0))
	}
	fmt.Fprintf(out, `
=== Quote ===
Subtotal:       %s
Mandatory (%s%%): %s
Total:          %s
=============
`, s.Subtotal.StringFixed(0), s.MandatoryPercent, s.MandatorySurcharge.StringFixed(0), s.Total.StringFixed(0))
	return nil
}

func init() {
	pricingQuoteCmd.Flags().StringVar(&quotePercent, "percent", decimal.Zero.String(), "Mandatory surcharge percent of the subtotal")
	pricingQuoteCmd.Flags().StringArrayVar(&quoteItems, "item", nil, "Item as qty:price or code:qty:price (repeatable)")
	pricingQuoteCmd.MarkFlagRequired("item")
	rootCmd.AddCommand(pricingQuoteCmd)
}
