package importer

import (
	"strings"

	"github.com/shopspring/decimal"

	mdEntity "stoneerp.GO/model/entity/masterdata"
	productEntity "stoneerp.GO/model/entity/product"
)

// ProductStore is the product side of the store.
type ProductStore interface {
	ExistsByCode(code string) (bool, error)
	Create(p *productEntity.Product) error
}

// Lookup holds, per category, the dictionary entries products may reference.
type Lookup map[mdEntity.Category]map[string]mdEntity.Attribute

func NewLookup() Lookup {
	l := make(Lookup, len(mdEntity.Categories))
	for _, c := range mdEntity.Categories {
		l[c] = make(map[string]mdEntity.Attribute)
	}
	return l
}

// Add registers attributes under their codes, replacing older entries.
func (l Lookup) Add(c mdEntity.Category, attrs ...mdEntity.Attribute) {
	m, ok := l[c]
	if !ok {
		m = make(map[string]mdEntity.Attribute, len(attrs))
		l[c] = m
	}
	for _, a := range attrs {
		m[a.Code] = a
	}
}

// LoadLookup reads every category from the store.
func LoadLookup(store AttributeStore) (Lookup, error) {
	l := NewLookup()
	for _, c := range mdEntity.Categories {
		attrs, err := store.FindAll(c)
		if err != nil {
			return nil, err
		}
		l.Add(c, attrs...)
	}
	return l, nil
}

// ComposeProduct validates a product row against the profile and the lookup
// tables and builds the product it describes. Checks run in order (required
// cells, product code, code resolution) and stop at the first failing stage;
// every problem of that stage is returned. The store is not consulted.
func ComposeProduct(row Row, p *Profile, lookup Lookup) (*productEntity.Product, []RowError) {
	codes := make(map[mdEntity.Category]string, len(mdEntity.Categories))
	var errs []RowError
	skip := func(c mdEntity.Category, field, code, msg string) {
		errs = append(errs, RowError{Row: row.Number, Category: c, Field: field, Code: code, Kind: KindSkipped, Message: msg})
	}

	for _, c := range mdEntity.Categories {
		label, code := p.pair(row, c)
		if c == mdEntity.Color && label == "" && code == "" && p.ColorDefaultCode != "" {
			codes[c] = p.ColorDefaultCode
			continue
		}
		switch {
		case label == "" && code == "":
			skip(c, "label", "", "label and code are empty")
		case label == "":
			skip(c, "label", code, "label is empty")
		case code == "":
			skip(c, "code", "", "code is empty for label "+label)
		default:
			codes[c] = code
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}

	productCode := cleanCode(row.Cell(p.ProductCode))
	if productCode == "" {
		skip("", "product_code", "", "product code is empty")
		return nil, errs
	}

	resolved := make(map[mdEntity.Category]mdEntity.Attribute, len(codes))
	for _, c := range mdEntity.Categories {
		a, ok := lookup[c][codes[c]]
		if !ok {
			skip(c, "code", codes[c], "code does not resolve to stored master data")
			continue
		}
		resolved[c] = a
	}
	if len(errs) > 0 {
		return nil, errs
	}

	name := cleanCell(row.Cell(p.ProductName))
	if name == "" {
		name = joinNonEmpty(resolved[mdEntity.StoneMaterial].Name, resolved[mdEntity.CutWidth].Name, resolved[mdEntity.Thickness].Name)
	}

	prod := &productEntity.Product{
		Code:        productCode,
		Name:        name,
		NamePersian: name,
		Currency:    p.DefaultCurrency,
		IsAvailable: true,
		IsActive:    true,
	}
	setTriple(prod, resolved)

	if raw := row.Cell(p.BasePrice); raw != "" {
		price, err := parsePrice(raw)
		if err != nil {
			skip("", "base_price", "", "invalid base price "+raw)
			return nil, errs
		}
		prod.BasePrice = decimal.NewNullDecimal(price)
	}
	if cur := strings.ToUpper(cleanCode(row.Cell(p.Currency))); cur != "" {
		prod.Currency = cur
	}
	if desc := cleanCell(row.Cell(p.Description)); desc != "" {
		prod.Description = &desc
	}
	return prod, nil
}

func setTriple(prod *productEntity.Product, r map[mdEntity.Category]mdEntity.Attribute) {
	a := r[mdEntity.CutType]
	prod.CutTypeCode, prod.CutTypeName, prod.CutTypeNamePersian = a.Code, a.Name, a.NamePersian
	a = r[mdEntity.StoneMaterial]
	prod.StoneMaterialCode, prod.StoneMaterialName, prod.StoneMaterialNamePersian = a.Code, a.Name, a.NamePersian
	a = r[mdEntity.CutWidth]
	prod.CutWidthCode, prod.CutWidthName, prod.CutWidthNamePersian = a.Code, a.Name, a.NamePersian
	a = r[mdEntity.Thickness]
	prod.ThicknessCode, prod.ThicknessName, prod.ThicknessNamePersian = a.Code, a.Name, a.NamePersian
	a = r[mdEntity.Mine]
	prod.MineCode, prod.MineName, prod.MineNamePersian = a.Code, a.Name, a.NamePersian
	a = r[mdEntity.FinishType]
	prod.FinishTypeCode, prod.FinishTypeName, prod.FinishTypeNamePersian = a.Code, a.Name, a.NamePersian
	a = r[mdEntity.Color]
	prod.ColorCode, prod.ColorName, prod.ColorNamePersian = a.Code, a.Name, a.NamePersian
}

// parsePrice accepts Persian digits and thousands separators ("۱۲,۵۰۰").
func parsePrice(s string) (decimal.Decimal, error) {
	s = foldDigits(s)
	s = strings.NewReplacer(",", "", "٬", "", "،", "", " ", "").Replace(s)
	s = strings.ReplaceAll(s, "٫", ".")
	return decimal.NewFromString(s)
}

func joinNonEmpty(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}
