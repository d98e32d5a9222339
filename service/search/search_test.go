package search

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	productEntity "stoneerp.GO/model/entity/product"
)

// fakeES answers like an Elasticsearch node and records request paths.
func fakeES(t *testing.T, searchResponse string) (*httptest.Server, *[]string) {
	t.Helper()
	var mu sync.Mutex
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.Copy(io.Discard, r.Body)
		mu.Lock()
		paths = append(paths, r.Method+" "+r.URL.Path)
		mu.Unlock()
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		if strings.HasSuffix(r.URL.Path, "/_search") {
			io.WriteString(w, searchResponse)
			return
		}
		io.WriteString(w, `{"result":"created"}`)
	}))
	t.Cleanup(srv.Close)
	return srv, &paths
}

func TestDisabled(t *testing.T) {
	t.Setenv("ELASTICSEARCH_HOST", "")
	s := NewFromEnv()
	if s.Enabled() {
		t.Fatal("Enabled = true without host")
	}
	if _, err := s.Search(context.Background(), "کرم", 10, 0); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("Search err = %v, want ErrNotConfigured", err)
	}
	if s.Index() != "stoneerp_products" {
		t.Errorf("Index = %q, want stoneerp_products", s.Index())
	}
}

func TestIndexProducts(t *testing.T) {
	srv, paths := fakeES(t, "")
	s := New(srv.URL, "test")
	n, err := s.IndexProducts(context.Background(), []productEntity.Product{{Code: "111111"}, {Code: "222222"}})
	if err != nil {
		t.Fatalf("IndexProducts: %v", err)
	}
	if n != 2 {
		t.Errorf("indexed = %d, want 2", n)
	}
	if len(*paths) != 2 || (*paths)[0] != "PUT /test_products/_doc/111111" {
		t.Errorf("requests = %v, want PUT per document", *paths)
	}
}

func TestSearch(t *testing.T) {
	srv, _ := fakeES(t, `{"hits":{"total":{"value":2},"hits":[{"_source":{"code":"222222"}},{"_source":{"code":"111111"}}]}}`)
	res, err := New(srv.URL, "test").Search(context.Background(), "مرمریت", 10, 0)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if res.Total != 2 || len(res.Codes) != 2 || res.Codes[0] != "222222" {
		t.Errorf("result = %+v, want 222222 first of 2", res)
	}
}

func TestQueryBody(t *testing.T) {
	b, err := json.Marshal(QueryBody("کرم", 20, 40))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(b)
	for _, want := range []string{`"from":40`, `"size":20`, `"query":"کرم"`, `"is_active":true`} {
		if !strings.Contains(s, want) {
			t.Errorf("body %s missing %s", s, want)
		}
	}
}
