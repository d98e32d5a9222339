package cmd

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"stoneerp.GO/config"
	productEntity "stoneerp.GO/model/entity/product"
	"stoneerp.GO/service/search"
)

func TestRunReindex(t *testing.T) {
	sqliteEnv(t)
	var puts int32
	es := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.Copy(io.Discard, r.Body)
		if r.Method == http.MethodPut {
			atomic.AddInt32(&puts, 1)
		}
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"result":"created"}`)
	}))
	defer es.Close()

	db, err := config.NewDB()
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	defer config.CloseDB(db)
	for _, code := range []string{"111111", "222222"} {
		p := productEntity.Product{Code: code, Name: "p", NamePersian: "p", Currency: "IRR", IsActive: true}
		if err := db.Create(&p).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	var out bytes.Buffer
	if err := runReindex(context.Background(), &out, db, search.New(es.URL, "test")); err != nil {
		t.Fatalf("runReindex: %v", err)
	}
	if n := atomic.LoadInt32(&puts); n != 2 {
		t.Errorf("index requests = %d, want 2", n)
	}
	if !strings.Contains(out.String(), "Indexed 2 products into test_products") {
		t.Errorf("output = %q", out.String())
	}
}

func TestRunReindex_NotConfigured(t *testing.T) {
	t.Setenv("ELASTICSEARCH_HOST", "")
	var out bytes.Buffer
	if err := runReindex(context.Background(), &out, nil, search.NewFromEnv()); !errors.Is(err, search.ErrNotConfigured) {
		t.Errorf("err = %v, want ErrNotConfigured", err)
	}
}
