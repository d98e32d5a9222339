package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"stoneerp.GO/config"
	"stoneerp.GO/service/importer"
)

// importFlags are shared by import:run, masterdata:sync and products:import.
type importFlags struct {
	file         string
	sheet        string
	profile      string
	colorDefault string
	currency     string
	apply        bool
}

type importMode int

const (
	modeFull importMode = iota
	modeMasterData
	modeProducts
)

func (f *importFlags) bind(c *cobra.Command) {
	c.Flags().StringVarP(&f.file, "file", "f", "", "Workbook path (default EXCEL_PATH or "+config.DefaultExcelPath+")")
	c.Flags().StringVarP(&f.sheet, "sheet", "s", "", "Sheet name (default EXCEL_SHEET or "+config.DefaultExcelSheet+")")
	c.Flags().StringVarP(&f.profile, "profile", "p", "", "Import profile YAML/JSON (default IMPORT_PROFILE or built-in layout)")
	c.Flags().StringVar(&f.colorDefault, "color-default", "", "Color code used when both color cells are blank (default COLOR_DEFAULT_CODE)")
	c.Flags().StringVar(&f.currency, "currency", "", "Currency for rows without one (default DEFAULT_CURRENCY or "+config.DefaultCurrency+")")
	c.Flags().BoolVar(&f.apply, "apply", false, "Commit changes (default is a dry-run)")
}

// importConfig layers the flags over the environment.
func (f *importFlags) importConfig() config.ImportConfig {
	cfg := config.ImportConfigFromEnv()
	if f.file != "" {
		cfg.ExcelPath = f.file
	}
	if f.sheet != "" {
		cfg.ExcelSheet = f.sheet
	}
	if f.profile != "" {
		cfg.ProfilePath = f.profile
	}
	if f.colorDefault != "" {
		cfg.ColorDefaultCode = f.colorDefault
	}
	if f.currency != "" {
		cfg.DefaultCurrency = f.currency
	}
	return cfg
}

func newImportCmd(use, short string, mode importMode) *cobra.Command {
	flags := &importFlags{}
	c := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		Run: func(c *cobra.Command, args []string) {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if err := runImport(ctx, c.OutOrStdout(), flags, mode); err != nil {
				fmt.Fprintf(c.ErrOrStderr(), "Import failed: %v\n", err)
				os.Exit(1)
			}
		},
	}
	flags.bind(c)
	return c
}

func runImport(ctx context.Context, out io.Writer, flags *importFlags, mode importMode) error {
	src, profile, err := importer.Open(flags.importConfig())
	if err != nil {
		return err
	}

	config.InitRedis()
	if flags.apply {
		fmt.Fprintln(out, config.PingRedis())
	}

	db, err := config.NewDB()
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer config.CloseDB(db)

	opts := importer.ImportOptions{
		Apply:   flags.apply,
		Profile: profile,
		Redis:   config.RedisClient,
		Indexer: importer.SearchIndexer(),
	}
	var res *importer.ImportResult
	switch mode {
	case modeMasterData:
		res, err = importer.SyncMasterData(ctx, db, src, opts)
	case modeProducts:
		res, err = importer.ImportProducts(ctx, db, src, opts)
	default:
		res, err = importer.Run(ctx, db, src, opts)
	}
	if err != nil {
		return err
	}
	importer.WriteReport(out, res)
	return nil
}

func init() {
	rootCmd.AddCommand(
		newImportCmd("import:run", "Sync master data and import products from the workbook", modeFull),
		newImportCmd("masterdata:sync", "Sync the seven attribute dictionaries from the workbook", modeMasterData),
		newImportCmd("products:import", "Import products against stored master data", modeProducts),
	)
}
