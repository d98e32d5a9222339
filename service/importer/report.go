package importer

import (
	"fmt"
	"io"
	"time"
)

// WriteReport prints the run summary in the import command's report format.
// Write errors are ignored.
func WriteReport(w io.Writer, res *ImportResult) {
	if res == nil {
		return
	}
	for _, warn := range res.Warnings {
		fmt.Fprintf(w, "  [warn] %s\n", warn)
	}
	for _, e := range res.Errors {
		tag := "error"
		if e.Kind == KindSkipped {
			tag = "skip"
		}
		fmt.Fprintf(w, "  [%s] %s\n", tag, e.Error())
	}

	mode := "dry-run (use --apply to commit)"
	if res.Apply {
		mode = "apply"
	}

	fmt.Fprintf(w, "\n=== Import Report ===\n")
	fmt.Fprintf(w, "Source:         %s\n", res.Source)
	if res.Sheet != "" {
		fmt.Fprintf(w, "Sheet:          %s\n", res.Sheet)
	}
	fmt.Fprintf(w, "Rows:           %d\n", res.TotalRows)
	if len(res.Categories) > 0 {
		fmt.Fprintf(w, "Master data:\n")
		for _, c := range res.Categories {
			fmt.Fprintf(w, "  %-15s created=%d updated=%d failed=%d total=%d\n",
				c.Category, c.Created, c.Updated, c.Failed, c.Total)
		}
	}
	fmt.Fprintf(w, "Products:       imported=%d skipped=%d errored=%d\n",
		res.Products.Imported, res.Products.Skipped, res.Products.Errored)
	fmt.Fprintf(w, "Mode:           %s\n", mode)
	fmt.Fprintf(w, "Total time:     %s\n", res.TotalTime.Round(time.Millisecond))
	fmt.Fprintf(w, "  - Master data: %s\n", res.MasterDataTime.Round(time.Millisecond))
	fmt.Fprintf(w, "  - Products:    %s\n", res.ProductTime.Round(time.Millisecond))
	fmt.Fprintf(w, "=====================\n")
}
