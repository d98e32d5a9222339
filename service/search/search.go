// Package search keeps an optional Elasticsearch index of products so the
// catalog can be searched by Persian name, mine, color and code.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"

	productEntity "stoneerp.GO/model/entity/product"
)

// ErrNotConfigured is returned when ELASTICSEARCH_HOST is unset.
var ErrNotConfigured = errors.New("elasticsearch not configured")

type Service struct {
	client *elasticsearch.Client
	index  string
}

// Document is the indexed shape of a product.
type Document struct {
	Code              string `json:"code"`
	Name              string `json:"name"`
	NamePersian       string `json:"name_persian"`
	CutTypeName       string `json:"cut_type_name"`
	StoneMaterialName string `json:"stone_material_name"`
	CutWidthName      string `json:"cut_width_name"`
	ThicknessName     string `json:"thickness_name"`
	MineName          string `json:"mine_name"`
	FinishTypeName    string `json:"finish_type_name"`
	ColorName         string `json:"color_name"`
	IsActive          bool   `json:"is_active"`
}

func documentOf(p *productEntity.Product) Document {
	return Document{
		Code:              p.Code,
		Name:              p.Name,
		NamePersian:       p.NamePersian,
		CutTypeName:       p.CutTypeName,
		StoneMaterialName: p.StoneMaterialName,
		CutWidthName:      p.CutWidthName,
		ThicknessName:     p.ThicknessName,
		MineName:          p.MineName,
		FinishTypeName:    p.FinishTypeName,
		ColorName:         p.ColorName,
		IsActive:          p.IsActive,
	}
}

// NewFromEnv reads ELASTICSEARCH_HOST and ELASTICSEARCH_INDEX_PREFIX. A
// missing host yields a disabled service.
func NewFromEnv() *Service {
	prefix := os.Getenv("ELASTICSEARCH_INDEX_PREFIX")
	if prefix == "" {
		prefix = "stoneerp"
	}
	host := os.Getenv("ELASTICSEARCH_HOST")
	if host == "" {
		return &Service{index: prefix + "_products"}
	}
	return New(host, prefix)
}

func New(host, prefix string) *Service {
	s := &Service{index: prefix + "_products"}
	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{host}})
	if err != nil {
		return s
	}
	s.client = client
	return s
}

func (s *Service) Enabled() bool {
	return s != nil && s.client != nil
}

func (s *Service) Index() string {
	return s.index
}

// IndexProducts upserts each product under its code.
func (s *Service) IndexProducts(ctx context.Context, products []productEntity.Product) (int, error) {
	if !s.Enabled() {
		return 0, ErrNotConfigured
	}
	n := 0
	for i := range products {
		body, err := json.Marshal(documentOf(&products[i]))
		if err != nil {
			return n, err
		}
		res, err := s.client.Index(
			s.index,
			bytes.NewReader(body),
			s.client.Index.WithContext(ctx),
			s.client.Index.WithDocumentID(products[i].Code),
		)
		if err != nil {
			return n, fmt.Errorf("index %s: %w", products[i].Code, err)
		}
		if res.IsError() {
			msg := res.String()
			res.Body.Close()
			return n, fmt.Errorf("index %s: elasticsearch error: %s", products[i].Code, msg)
		}
		io.Copy(io.Discard, res.Body)
		res.Body.Close()
		n++
	}
	return n, nil
}

// Result is one page of matching product codes, best match first.
type Result struct {
	Total int      `json:"total"`
	Codes []string `json:"codes"`
}

// QueryBody builds the multi_match request for query.
func QueryBody(query string, limit, offset int) map[string]interface{} {
	return map[string]interface{}{
		"from":    offset,
		"size":    limit,
		"_source": []string{"code"},
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must": []map[string]interface{}{
					{
						"multi_match": map[string]interface{}{
							"query": query,
							"fields": []string{
								"code^4", "name_persian^3", "name^3", "stone_material_name^2",
								"mine_name", "color_name", "finish_type_name", "cut_type_name",
							},
						},
					},
				},
				"filter": []map[string]interface{}{
					{"term": map[string]interface{}{"is_active": true}},
				},
			},
		},
	}
}

// Search returns the codes of products matching query.
func (s *Service) Search(ctx context.Context, query string, limit, offset int) (*Result, error) {
	if !s.Enabled() {
		return nil, ErrNotConfigured
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return &Result{Codes: []string{}}, nil
	}
	body, _ := json.Marshal(QueryBody(query, limit, offset))

	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(s.index),
		s.client.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch error: %s", res.String())
	}

	var esResp struct {
		Hits struct {
			Total struct {
				Value int `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source struct {
					Code string `json:"code"`
				} `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&esResp); err != nil {
		return nil, err
	}
	out := &Result{Total: esResp.Hits.Total.Value, Codes: make([]string, 0, len(esResp.Hits.Hits))}
	for _, h := range esResp.Hits.Hits {
		out.Codes = append(out.Codes, h.Source.Code)
	}
	return out, nil
}
