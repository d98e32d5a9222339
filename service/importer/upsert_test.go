package importer

import (
	"errors"
	"testing"

	mdEntity "stoneerp.GO/model/entity/masterdata"
	mdRepo "stoneerp.GO/model/repository/masterdata"
)

func floatPtr(v float64) *float64 { return &v }

func TestUpsertCategory_Idempotent(t *testing.T) {
	repo := mdRepo.NewMasterDataRepository(testDB(t))
	entries := []Entry{
		{Code: "60", Label: "عرض 60", Value: floatPtr(60), Row: 2},
		{Code: "30", Label: "عرض 30", Value: floatPtr(30), Row: 3},
	}

	res, _, errs := UpsertCategory(repo, mdEntity.CutWidth, entries, true)
	if res.Created != 2 || res.Updated != 0 || res.Failed != 0 || res.Total != 2 {
		t.Errorf("first run = %+v, want created=2 total=2", res)
	}
	if len(errs) != 0 {
		t.Errorf("errs = %v, want none", errs)
	}

	res, stored, _ := UpsertCategory(repo, mdEntity.CutWidth, entries, true)
	if res.Created != 0 || res.Updated != 2 {
		t.Errorf("second run = %+v, want created=0 updated=2", res)
	}
	if len(stored) != 2 {
		t.Errorf("stored = %d, want 2", len(stored))
	}

	all, err := repo.FindAll(mdEntity.CutWidth)
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("rows = %d, want 2", len(all))
	}
	a, err := repo.FindByCode(mdEntity.CutWidth, "60")
	if err != nil || a == nil {
		t.Fatalf("FindByCode(60) = %v, %v", a, err)
	}
	if a.Name != "عرض 60" || a.Value == nil || *a.Value != 60 {
		t.Errorf("stored 60 = %+v, want name عرض 60 value 60", a)
	}
}

func TestUpsertCategory_UpdatesLabel(t *testing.T) {
	repo := mdRepo.NewMasterDataRepository(testDB(t))
	UpsertCategory(repo, mdEntity.Color, []Entry{{Code: "7", Label: "کرم"}}, true)
	res, _, _ := UpsertCategory(repo, mdEntity.Color, []Entry{{Code: "7", Label: "کرم روشن"}}, true)
	if res.Updated != 1 {
		t.Errorf("Updated = %d, want 1", res.Updated)
	}
	a, _ := repo.FindByCode(mdEntity.Color, "7")
	if a == nil || a.Name != "کرم روشن" || a.NamePersian != "کرم روشن" {
		t.Errorf("stored = %+v, want relabelled", a)
	}
}

func TestUpsertCategory_DryRunWritesNothing(t *testing.T) {
	repo := mdRepo.NewMasterDataRepository(testDB(t))
	res, stored, _ := UpsertCategory(repo, mdEntity.Mine, []Entry{{Code: "042", Label: "معدن هرسین"}}, false)
	if res.Created != 1 {
		t.Errorf("Created = %d, want 1 (would create)", res.Created)
	}
	if len(stored) != 1 {
		t.Errorf("stored = %d, want 1", len(stored))
	}
	all, _ := repo.FindAll(mdEntity.Mine)
	if len(all) != 0 {
		t.Errorf("rows after dry-run = %d, want 0", len(all))
	}
}

// flakyStore fails Create for one code.
type flakyStore struct {
	*mdRepo.MasterDataRepository
	failCode string
}

func (s flakyStore) Create(c mdEntity.Category, a *mdEntity.Attribute) error {
	if a.Code == s.failCode {
		return errors.New("constraint violation")
	}
	return s.MasterDataRepository.Create(c, a)
}

func TestUpsertCategory_ContainsEntryFailure(t *testing.T) {
	repo := mdRepo.NewMasterDataRepository(testDB(t))
	store := flakyStore{MasterDataRepository: repo, failCode: "2"}
	entries := []Entry{{Code: "1", Label: "a", Row: 2}, {Code: "2", Label: "b", Row: 3}, {Code: "3", Label: "c", Row: 4}}

	res, stored, errs := UpsertCategory(store, mdEntity.CutType, entries, true)
	if res.Created != 2 || res.Failed != 1 || res.Total != 3 {
		t.Errorf("result = %+v, want created=2 failed=1 total=3", res)
	}
	if len(stored) != 2 {
		t.Errorf("stored = %d, want 2", len(stored))
	}
	if len(errs) != 1 || errs[0].Row != 3 || errs[0].Kind != KindFailed || errs[0].Code != "2" {
		t.Errorf("errs = %+v, want one failed entry for code 2 on row 3", errs)
	}
}
