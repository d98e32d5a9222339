package importer

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	mdEntity "stoneerp.GO/model/entity/masterdata"
)

// NoColumn marks an optional column as absent.
const NoColumn = -1

// ColumnPair locates the label and code cells of one category. Code may be
// NoColumn, in which case the code comes from the category's dictionary.
type ColumnPair struct {
	Label int `mapstructure:"label" json:"label"`
	Code  int `mapstructure:"code" json:"code"`
}

// DictionaryEntry maps a free-text label to a category code.
type DictionaryEntry struct {
	Label string `mapstructure:"label" json:"label"`
	Code  string `mapstructure:"code" json:"code"`
}

// Profile describes the positional layout of an import workbook and the
// static dictionaries used to resolve label-only cells. Column indexes are
// zero based.
type Profile struct {
	Name         string                                  `mapstructure:"name"`
	HeaderRows   int                                     `mapstructure:"header_rows"`
	Columns      map[mdEntity.Category]ColumnPair        `mapstructure:"columns"`
	ProductName  int                                     `mapstructure:"product_name"`
	ProductCode  int                                     `mapstructure:"product_code"`
	BasePrice    int                                     `mapstructure:"base_price"`
	Currency     int                                     `mapstructure:"currency"`
	Description  int                                     `mapstructure:"description"`
	Dictionaries map[mdEntity.Category][]DictionaryEntry `mapstructure:"dictionaries"`

	// ColorDefaultCode is used when both color cells of a product row are
	// blank. Empty means the color is required.
	ColorDefaultCode string `mapstructure:"color_default_code"`
	DefaultCurrency  string `mapstructure:"default_currency"`

	dicts map[mdEntity.Category]map[string]string
}

// DefaultProfile is the 16-column layout of the product workbook:
// seven label/code pairs followed by the product name and code.
func DefaultProfile() *Profile {
	p := &Profile{
		Name:            "default",
		HeaderRows:      1,
		Columns:         make(map[mdEntity.Category]ColumnPair, len(mdEntity.Categories)),
		ProductName:     14,
		ProductCode:     15,
		BasePrice:       NoColumn,
		Currency:        NoColumn,
		Description:     NoColumn,
		Dictionaries:    map[mdEntity.Category][]DictionaryEntry{},
		DefaultCurrency: "IRR",
	}
	for i, c := range mdEntity.Categories {
		p.Columns[c] = ColumnPair{Label: 2 * i, Code: 2*i + 1}
	}
	return p
}

// LoadProfile reads a YAML or JSON profile and layers it over DefaultProfile.
// Columns may be written as zero-based indexes or as spreadsheet letters.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrProfileInvalid, path, err)
	}
	p := DefaultProfile()
	if err := DecodeProfile(raw, p); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// DecodeProfile decodes a generic map onto p, keeping fields the map omits.
// A columns entry that leaves out label or code gets NoColumn for it.
func DecodeProfile(raw map[string]interface{}, p *Profile) error {
	if cols, ok := raw["columns"].(map[string]interface{}); ok {
		for _, v := range cols {
			pair, ok := v.(map[string]interface{})
			if !ok {
				continue
			}
			for _, key := range []string{"label", "code"} {
				if _, set := pair[key]; !set {
					pair[key] = NoColumn
				}
			}
		}
	}
	cfg := &mapstructure.DecoderConfig{
		DecodeHook:       columnHook(),
		Result:           p,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	}
	dec, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return err
	}
	if err := dec.Decode(raw); err != nil {
		return fmt.Errorf("%w: %v", ErrProfileInvalid, err)
	}
	return nil
}

// columnHook turns spreadsheet letters ("A", "p") into zero-based indexes.
func columnHook() mapstructure.DecodeHookFunc {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if from.Kind() != reflect.String || to.Kind() != reflect.Int {
			return data, nil
		}
		s := strings.TrimSpace(data.(string))
		if s == "" || s == "-" {
			return NoColumn, nil
		}
		if n, err := strconv.Atoi(s); err == nil {
			return n, nil
		}
		n, err := excelize.ColumnNameToNumber(s)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", s, err)
		}
		return n - 1, nil
	}
}

// Validate checks the column layout and builds the label dictionaries. A label
// that maps to two different codes is rejected instead of silently picking one.
func (p *Profile) Validate() error {
	if p.HeaderRows < 0 {
		return fmt.Errorf("%w: header_rows must not be negative", ErrProfileInvalid)
	}
	for c := range p.Columns {
		if c.Table() == "" {
			return fmt.Errorf("%w: columns: unknown category %q", ErrProfileInvalid, string(c))
		}
	}
	for c := range p.Dictionaries {
		if c.Table() == "" {
			return fmt.Errorf("%w: dictionaries: unknown category %q", ErrProfileInvalid, string(c))
		}
	}

	used := make(map[int]string)
	claim := func(col int, what string) error {
		if col < 0 {
			return nil
		}
		if prev, ok := used[col]; ok {
			return fmt.Errorf("%w: column %d used by both %s and %s", ErrProfileInvalid, col, prev, what)
		}
		used[col] = what
		return nil
	}

	dicts := make(map[mdEntity.Category]map[string]string, len(p.Dictionaries))
	for c, entries := range p.Dictionaries {
		d := make(map[string]string, len(entries))
		for _, e := range entries {
			label, code := cleanCell(e.Label), cleanCode(e.Code)
			if label == "" || code == "" {
				return fmt.Errorf("%w: dictionary %s: empty label or code", ErrProfileInvalid, c)
			}
			if prev, ok := d[label]; ok && prev != code {
				return fmt.Errorf("%w: dictionary %s: label %q maps to both %q and %q", ErrProfileInvalid, c, label, prev, code)
			}
			d[label] = code
		}
		dicts[c] = d
	}

	for _, c := range mdEntity.Categories {
		pair, ok := p.Columns[c]
		if !ok {
			return fmt.Errorf("%w: no columns for %s", ErrProfileInvalid, c)
		}
		if pair.Label < 0 {
			return fmt.Errorf("%w: %s label column is required", ErrProfileInvalid, c)
		}
		if pair.Code < 0 && len(dicts[c]) == 0 {
			return fmt.Errorf("%w: %s has neither a code column nor a dictionary", ErrProfileInvalid, c)
		}
		if err := claim(pair.Label, string(c)+" label"); err != nil {
			return err
		}
		if err := claim(pair.Code, string(c)+" code"); err != nil {
			return err
		}
	}

	if p.ProductCode < 0 {
		return fmt.Errorf("%w: product_code column is required", ErrProfileInvalid)
	}
	for _, c := range []struct {
		col  int
		what string
	}{
		{p.ProductCode, "product code"},
		{p.ProductName, "product name"},
		{p.BasePrice, "base price"},
		{p.Currency, "currency"},
		{p.Description, "description"},
	} {
		if err := claim(c.col, c.what); err != nil {
			return err
		}
	}

	p.ColorDefaultCode = cleanCode(p.ColorDefaultCode)
	if p.DefaultCurrency == "" {
		p.DefaultCurrency = "IRR"
	}
	p.dicts = dicts
	return nil
}

// lookupLabel resolves a label through the category dictionary.
func (p *Profile) lookupLabel(c mdEntity.Category, label string) (string, bool) {
	code, ok := p.dicts[c][label]
	return code, ok
}

// pair extracts the cleaned label and code of a category from a row. An empty
// code cell falls back to the category dictionary.
func (p *Profile) pair(row Row, c mdEntity.Category) (label, code string) {
	cols := p.Columns[c]
	label = cleanCell(row.Cell(cols.Label))
	code = cleanCode(row.Cell(cols.Code))
	if code == "" && label != "" {
		code, _ = p.lookupLabel(c, label)
	}
	return label, code
}
