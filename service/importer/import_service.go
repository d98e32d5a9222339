package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	entity "stoneerp.GO/model/entity"
	mdEntity "stoneerp.GO/model/entity/masterdata"
	productEntity "stoneerp.GO/model/entity/product"
	importRunRepo "stoneerp.GO/model/repository/importrun"
	mdRepo "stoneerp.GO/model/repository/masterdata"
	productRepo "stoneerp.GO/model/repository/product"
)

// ImportOptions configures an import run.
type ImportOptions struct {
	// Apply commits the changes. Without it the run is a dry-run that only
	// reads the store.
	Apply   bool
	Profile *Profile

	SkipMasterData bool
	SkipProducts   bool

	// Redis enables the cross-process run lock for applied runs.
	Redis   *redis.Client
	LockTTL time.Duration

	// Indexer, when set, receives the products an applied run created.
	Indexer ProductIndexer
}

// ProductIndexer keeps a search index in step with imported products.
type ProductIndexer interface {
	IndexProducts(ctx context.Context, products []productEntity.Product) (int, error)
}

// ProductResult counts product rows by outcome.
type ProductResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
	Errored  int `json:"errored"`
}

// ImportResult holds counters, diagnostics and timing from an import run.
type ImportResult struct {
	RunID      string           `json:"run_id"`
	Source     string           `json:"source"`
	Sheet      string           `json:"sheet"`
	Apply      bool             `json:"apply"`
	TotalRows  int              `json:"total_rows"`
	Categories []CategoryResult `json:"categories"`
	Products   ProductResult    `json:"products"`
	Errors     []RowError       `json:"errors"`
	Warnings   []string         `json:"warnings"`

	StartedAt      time.Time     `json:"started_at"`
	MasterDataTime time.Duration `json:"master_data_time"`
	ProductTime    time.Duration `json:"product_time"`
	TotalTime      time.Duration `json:"total_time"`

	created []productEntity.Product
}

// RunStore persists applied runs.
type RunStore interface {
	Create(run *entity.ImportRun) error
}

// Stores bundles the store interfaces the pipeline talks to.
type Stores struct {
	Attributes AttributeStore
	Products   ProductStore
	Runs       RunStore
}

// NewStores returns the gorm-backed stores over db.
func NewStores(db *gorm.DB) Stores {
	return Stores{
		Attributes: mdRepo.NewMasterDataRepository(db),
		Products:   productRepo.NewProductRepository(db),
		Runs:       importRunRepo.NewImportRunRepository(db),
	}
}

// Run executes the pipeline against db: master data first, then products.
func Run(ctx context.Context, db *gorm.DB, src RowSource, opts ImportOptions) (*ImportResult, error) {
	return RunWithStores(ctx, NewStores(db), src, opts)
}

// SyncMasterData runs only the dictionary half of the pipeline.
func SyncMasterData(ctx context.Context, db *gorm.DB, src RowSource, opts ImportOptions) (*ImportResult, error) {
	opts.SkipMasterData, opts.SkipProducts = false, true
	return Run(ctx, db, src, opts)
}

// ImportProducts imports products against the master data already stored.
func ImportProducts(ctx context.Context, db *gorm.DB, src RowSource, opts ImportOptions) (*ImportResult, error) {
	opts.SkipMasterData, opts.SkipProducts = true, false
	return Run(ctx, db, src, opts)
}

// RunWithStores is Run over explicit stores. Source and store-load failures
// abort the run; row-level problems are collected in the result.
func RunWithStores(ctx context.Context, stores Stores, src RowSource, opts ImportOptions) (*ImportResult, error) {
	startTotal := time.Now()

	p := opts.Profile
	if p == nil {
		p = DefaultProfile()
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	if opts.Apply {
		lock, err := AcquireRunLock(ctx, opts.Redis, opts.LockTTL)
		if err != nil {
			return nil, err
		}
		defer func() {
			if err := lock.Release(context.Background()); err != nil {
				log.Printf("import: %v", err)
			}
		}()
	}

	res := &ImportResult{
		RunID:     uuid.NewString(),
		Source:    src.Source(),
		Sheet:     src.Sheet(),
		Apply:     opts.Apply,
		StartedAt: startTotal,
		Errors:    []RowError{},
		Warnings:  []string{},
	}

	pending := NewLookup()
	if !opts.SkipMasterData {
		startMD := time.Now()
		norm, err := Normalize(ctx, src, p)
		if err != nil {
			return nil, err
		}
		res.TotalRows = norm.Rows
		res.Warnings = append(res.Warnings, norm.Warnings...)

		for _, c := range mdEntity.Categories {
			cr, stored, errs := UpsertCategory(stores.Attributes, c, norm.Dictionaries[c].Entries(), opts.Apply)
			res.Categories = append(res.Categories, cr)
			res.Errors = append(res.Errors, errs...)
			pending.Add(c, stored...)
		}
		res.MasterDataTime = time.Since(startMD)
	}

	if !opts.SkipProducts {
		startProducts := time.Now()
		lookup, err := LoadLookup(stores.Attributes)
		if err != nil {
			return nil, fmt.Errorf("load master data: %w", err)
		}
		// A dry-run has written nothing, so overlay what it would have stored.
		for c, attrs := range pending {
			for _, a := range attrs {
				lookup.Add(c, a)
			}
		}

		seen := make(map[string]int)
		rows := 0
		err = src.Each(ctx, func(row Row) error {
			rows++
			importRow(row, p, lookup, stores.Products, seen, opts.Apply, res)
			return nil
		})
		if err != nil {
			return nil, err
		}
		if opts.SkipMasterData {
			res.TotalRows = rows
		}
		res.ProductTime = time.Since(startProducts)
	}

	if opts.Apply && opts.Indexer != nil && len(res.created) > 0 {
		if _, err := opts.Indexer.IndexProducts(ctx, res.created); err != nil {
			res.Warnings = append(res.Warnings, fmt.Sprintf("index products: %v", err))
		}
	}

	res.TotalTime = time.Since(startTotal)

	if opts.Apply && stores.Runs != nil {
		if err := persistRun(stores.Runs, res); err != nil {
			res.Warnings = append(res.Warnings, fmt.Sprintf("record import run: %v", err))
		}
	}
	return res, nil
}

// importRow composes and stores one product row. Every outcome lands in res;
// a panic in the store is contained to the row.
func importRow(row Row, p *Profile, lookup Lookup, products ProductStore, seen map[string]int, apply bool, res *ImportResult) {
	errored := func(code, msg string) {
		res.Products.Errored++
		res.Errors = append(res.Errors, RowError{Row: row.Number, Field: "product_code", Code: code, Kind: KindErrored, Message: msg})
	}
	skipped := func(code, msg string) {
		res.Products.Skipped++
		res.Errors = append(res.Errors, RowError{Row: row.Number, Field: "product_code", Code: code, Kind: KindSkipped, Message: msg})
	}
	defer func() {
		if r := recover(); r != nil {
			errored("", fmt.Sprintf("panic: %v", r))
		}
	}()

	prod, errs := ComposeProduct(row, p, lookup)
	if len(errs) > 0 {
		res.Products.Skipped++
		res.Errors = append(res.Errors, errs...)
		return
	}
	if first, ok := seen[prod.Code]; ok {
		skipped(prod.Code, fmt.Sprintf("product code already imported from row %d", first))
		return
	}

	exists, err := products.ExistsByCode(prod.Code)
	if err != nil {
		errored(prod.Code, err.Error())
		return
	}
	if exists {
		skipped(prod.Code, "product code already exists")
		return
	}

	if apply {
		if err := products.Create(prod); err != nil {
			if isDuplicateKey(err) {
				skipped(prod.Code, "product code already exists (duplicate key)")
				return
			}
			errored(prod.Code, err.Error())
			return
		}
	}
	seen[prod.Code] = row.Number
	res.Products.Imported++
	if apply {
		res.created = append(res.created, *prod)
	}
}

func persistRun(runs RunStore, res *ImportResult) error {
	categories, err := json.Marshal(res.Categories)
	if err != nil {
		return err
	}
	errs, err := json.Marshal(res.Errors)
	if err != nil {
		return err
	}
	return runs.Create(&entity.ImportRun{
		ID:         res.RunID,
		Source:     res.Source,
		Sheet:      res.Sheet,
		Apply:      res.Apply,
		TotalRows:  res.TotalRows,
		Imported:   res.Products.Imported,
		Skipped:    res.Products.Skipped,
		Errored:    res.Products.Errored,
		Categories: categories,
		Errors:     errs,
		StartedAt:  res.StartedAt,
		FinishedAt: res.StartedAt.Add(res.TotalTime),
	})
}
