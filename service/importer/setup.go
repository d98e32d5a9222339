package importer

import (
	"stoneerp.GO/config"
	"stoneerp.GO/service/search"
)

// ProfileFor resolves the profile named by cfg (or the default layout) and
// applies the color and currency overrides from the environment.
func ProfileFor(cfg config.ImportConfig) (*Profile, error) {
	p := DefaultProfile()
	if cfg.ProfilePath != "" {
		var err error
		if p, err = LoadProfile(cfg.ProfilePath); err != nil {
			return nil, err
		}
	}
	if cfg.ColorDefaultCode != "" {
		p.ColorDefaultCode = cfg.ColorDefaultCode
	}
	if cfg.DefaultCurrency != "" {
		p.DefaultCurrency = cfg.DefaultCurrency
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Open loads the profile and opens the workbook configured in cfg.
func Open(cfg config.ImportConfig) (RowSource, *Profile, error) {
	p, err := ProfileFor(cfg)
	if err != nil {
		return nil, nil, err
	}
	src, err := OpenSource(cfg.ExcelPath, cfg.ExcelSheet, p.HeaderRows)
	if err != nil {
		return nil, nil, err
	}
	return src, p, nil
}

// SearchIndexer returns the product search index configured through
// ELASTICSEARCH_HOST, or nil when search is disabled.
func SearchIndexer() ProductIndexer {
	if s := search.NewFromEnv(); s.Enabled() {
		return s
	}
	return nil
}
