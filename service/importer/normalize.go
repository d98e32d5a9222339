package importer

import (
	"context"
	"fmt"

	mdEntity "stoneerp.GO/model/entity/masterdata"
)

// Entry is a normalized dictionary entry collected from the sheet.
type Entry struct {
	Code  string
	Label string
	Value *float64
	// Row is the spreadsheet row the code was first seen on.
	Row int
}

// Attribute projects the entry onto the stored dictionary shape.
func (e Entry) Attribute() mdEntity.Attribute {
	return mdEntity.Attribute{
		Code:        e.Code,
		Name:        e.Label,
		NamePersian: e.Label,
		Value:       e.Value,
		IsActive:    true,
	}
}

// Dictionary is the ordered code → label mapping of one category.
type Dictionary struct {
	Category mdEntity.Category
	entries  []Entry
	index    map[string]int
}

func newDictionary(c mdEntity.Category) *Dictionary {
	return &Dictionary{Category: c, index: make(map[string]int)}
}

// add registers code → label. A repeated code keeps its position and takes
// the newer label; the previous label is returned when it differed.
func (d *Dictionary) add(code, label string, row int) (previous string, relabelled bool) {
	var value *float64
	if d.Category.Measured() {
		v := float64(ParseNumberFromText(label))
		value = &v
	}
	if i, ok := d.index[code]; ok {
		e := &d.entries[i]
		previous, relabelled = e.Label, e.Label != label
		e.Label, e.Value = label, value
		return previous, relabelled
	}
	d.index[code] = len(d.entries)
	d.entries = append(d.entries, Entry{Code: code, Label: label, Value: value, Row: row})
	return "", false
}

// Entries returns the entries in order of first appearance.
func (d *Dictionary) Entries() []Entry {
	out := make([]Entry, len(d.entries))
	copy(out, d.entries)
	return out
}

func (d *Dictionary) Len() int {
	return len(d.entries)
}

// Normalized is the output of Normalize.
type Normalized struct {
	Dictionaries map[mdEntity.Category]*Dictionary
	Rows         int
	Warnings     []string
}

// Normalize walks the source once and collects the seven category
// dictionaries. Rows with only one of label and code are left out of that
// category without an error.
func Normalize(ctx context.Context, src RowSource, p *Profile) (*Normalized, error) {
	out := &Normalized{Dictionaries: make(map[mdEntity.Category]*Dictionary, len(mdEntity.Categories))}
	for _, c := range mdEntity.Categories {
		out.Dictionaries[c] = newDictionary(c)
	}

	err := src.Each(ctx, func(row Row) error {
		out.Rows++
		for _, c := range mdEntity.Categories {
			label, code := p.pair(row, c)
			if label == "" || code == "" {
				continue
			}
			if prev, relabelled := out.Dictionaries[c].add(code, label, row.Number); relabelled {
				out.Warnings = append(out.Warnings, fmt.Sprintf("row %d: %s code %s relabelled %q -> %q", row.Number, c, code, prev, label))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
