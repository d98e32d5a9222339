package pricing

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	pricingService "stoneerp.GO/service/pricing"
)

func post(body string) *httptest.ResponseRecorder {
	e := echo.New()
	RegisterPricingRoutes(e.Group("/api"), nil)
	req := httptest.NewRequest(http.MethodPost, "/api/pricing/quote", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestQuote(t *testing.T) {
	rec := post(`{"items":[{"quantity":"10","unit_price":"1500"},{"quantity":2,"unit_price":250}],"mandatory_percent":"9"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}
	var s pricingService.Summary
	if err := json.Unmarshal(rec.Body.Bytes(), &s); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if s.Subtotal.String() != "15500" || s.Total.String() != "16895" {
		t.Errorf("subtotal=%s total=%s, want 15500 and 16895", s.Subtotal, s.Total)
	}
}

func TestQuote_Validation(t *testing.T) {
	if rec := post(`{"items":[]}`); rec.Code != http.StatusBadRequest {
		t.Errorf("empty items status = %d, want 400", rec.Code)
	}
	if rec := post(`{"items":[{"quantity":"-1","unit_price":"10"}]}`); rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("negative quantity status = %d, want 422", rec.Code)
	}
	if rec := post(`{"items":`); rec.Code != http.StatusBadRequest {
		t.Errorf("bad json status = %d, want 400", rec.Code)
	}
}
