// Package custom holds site-specific extensions registered through the cmd,
// cron and api registries. Blank-import it from main to enable them.
package custom

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"stoneerp.GO/cmd"
	"stoneerp.GO/config"
	mdEntity "stoneerp.GO/model/entity/masterdata"
	importRunRepo "stoneerp.GO/model/repository/importrun"
	mdRepo "stoneerp.GO/model/repository/masterdata"
)

var historyLimit int

func init() {
	cmd.Register(&cobra.Command{
		Use:   "masterdata:list <category>",
		Short: "Print the stored entries of one attribute category",
		Args:  cobra.ExactArgs(1),
		Run: func(c *cobra.Command, args []string) {
			cat, err := mdEntity.ParseCategory(args[0])
			if err != nil {
				fmt.Printf("%v (want one of %v)\n", err, mdEntity.Categories)
				os.Exit(1)
			}
			db, err := config.NewDB()
			if err != nil {
				fmt.Printf("Database connection failed: %v\n", err)
				os.Exit(1)
			}
			defer config.CloseDB(db)

			attrs, err := mdRepo.NewMasterDataRepository(db).FindAll(cat)
			if err != nil {
				fmt.Printf("List failed: %v\n", err)
				os.Exit(1)
			}
			w := tabwriter.NewWriter(c.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "CODE\tNAME\tVALUE\tACTIVE")
			for _, a := range attrs {
				value := "-"
				if a.Value != nil {
					value = fmt.Sprintf("%g", *a.Value)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%v\n", a.Code, a.Name, value, a.IsActive)
			}
			w.Flush()
		},
	})

	history := &cobra.Command{
		Use:   "import:history",
		Short: "Print the most recent applied import runs",
		Run: func(c *cobra.Command, args []string) {
			db, err := config.NewDB()
			if err != nil {
				fmt.Printf("Database connection failed: %v\n", err)
				os.Exit(1)
			}
			defer config.CloseDB(db)

			runs, err := importRunRepo.NewImportRunRepository(db).Latest(historyLimit)
			if err != nil {
				fmt.Printf("History failed: %v\n", err)
				os.Exit(1)
			}
			w := tabwriter.NewWriter(c.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "STARTED\tID\tROWS\tIMPORTED\tSKIPPED\tERRORED\tSOURCE")
			for _, r := range runs {
				fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%d\t%s\n",
					r.StartedAt.Format("2006-01-02 15:04"), r.ID, r.TotalRows, r.Imported, r.Skipped, r.Errored, r.Source)
			}
			w.Flush()
		},
	}
	history.Flags().IntVarP(&historyLimit, "limit", "n", 10, "Number of runs to show")
	cmd.Register(history)
}
