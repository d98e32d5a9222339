package importer

import (
	mdEntity "stoneerp.GO/model/entity/masterdata"
)

// AttributeStore is the dictionary side of the store.
type AttributeStore interface {
	FindByCode(c mdEntity.Category, code string) (*mdEntity.Attribute, error)
	FindAll(c mdEntity.Category) ([]mdEntity.Attribute, error)
	Create(c mdEntity.Category, a *mdEntity.Attribute) error
	Update(c mdEntity.Category, a *mdEntity.Attribute) error
}

// CategoryResult counts the outcome of upserting one category.
type CategoryResult struct {
	Category mdEntity.Category `json:"category"`
	Created  int               `json:"created"`
	Updated  int               `json:"updated"`
	Failed   int               `json:"failed"`
	Total    int               `json:"total"`
}

// UpsertCategory creates or updates every entry by code. A failing entry is
// recorded and the rest of the batch continues. Without apply nothing is
// written and the counts describe what an applied run would do.
//
// The returned attributes are the entries that are (or would be) stored after
// the call, for use as product lookup data.
func UpsertCategory(store AttributeStore, c mdEntity.Category, entries []Entry, apply bool) (CategoryResult, []mdEntity.Attribute, []RowError) {
	res := CategoryResult{Category: c, Total: len(entries)}
	stored := make([]mdEntity.Attribute, 0, len(entries))
	var errs []RowError

	fail := func(e Entry, err error) {
		res.Failed++
		errs = append(errs, RowError{Row: e.Row, Category: c, Field: "code", Code: e.Code, Kind: KindFailed, Message: err.Error()})
	}

	for _, e := range entries {
		existing, err := store.FindByCode(c, e.Code)
		if err != nil {
			fail(e, err)
			continue
		}
		if existing != nil {
			existing.Name = e.Label
			existing.NamePersian = e.Label
			existing.Value = e.Value
			existing.IsActive = true
			if apply {
				if err := store.Update(c, existing); err != nil {
					fail(e, err)
					continue
				}
			}
			res.Updated++
			stored = append(stored, *existing)
			continue
		}

		a := e.Attribute()
		if apply {
			if err := store.Create(c, &a); err != nil {
				fail(e, err)
				continue
			}
		}
		res.Created++
		stored = append(stored, a)
	}
	return res, stored, errs
}
