package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"stoneerp.GO/config"
	productRepo "stoneerp.GO/model/repository/product"
	"stoneerp.GO/service/search"
)

const reindexBatch = 500

var searchReindexCmd = &cobra.Command{
	Use:   "search:reindex",
	Short: "Push every stored product into the Elasticsearch index",
	Run: func(c *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		db, err := config.NewDB()
		if err != nil {
			fmt.Fprintf(c.ErrOrStderr(), "Database connection failed: %v\n", err)
			os.Exit(1)
		}
		defer config.CloseDB(db)

		if err := runReindex(ctx, c.OutOrStdout(), db, search.NewFromEnv()); err != nil {
			fmt.Fprintf(c.ErrOrStderr(), "Reindex failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func runReindex(ctx context.Context, out io.Writer, db *gorm.DB, svc *search.Service) error {
	if !svc.Enabled() {
		return search.ErrNotConfigured
	}
	repo := productRepo.NewProductRepository(db)
	indexed := 0
	for offset := 0; ; offset += reindexBatch {
		list, _, err := repo.List(reindexBatch, offset)
		if err != nil {
			return err
		}
		n, err := svc.IndexProducts(ctx, list)
		indexed += n
		if err != nil {
			return err
		}
		if len(list) < reindexBatch {
			break
		}
	}
	fmt.Fprintf(out, "Indexed %d products into %s\n", indexed, svc.Index())
	return nil
}

func init() {
	rootCmd.AddCommand(searchReindexCmd)
}
