package products

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"stoneerp.GO/api"
	productRepo "stoneerp.GO/model/repository/product"
	"stoneerp.GO/service/search"
)

const (
	defaultLimit = 50
	maxLimit     = 500
)

func init() {
	api.RegisterModule(RegisterProductRoutes)
}

func RegisterProductRoutes(apiGroup *echo.Group, db *gorm.DB) {
	repo := productRepo.NewProductRepository(db)
	searcher := search.NewFromEnv()
	g := apiGroup.Group("/products")

	// GET /api/products?limit=&offset=
	g.GET("", func(c echo.Context) error {
		limit := queryInt(c, "limit", defaultLimit)
		if limit <= 0 || limit > maxLimit {
			limit = defaultLimit
		}
		offset := queryInt(c, "offset", 0)
		if offset < 0 {
			offset = 0
		}
		items, total, err := repo.List(limit, offset)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{
			"items":  items,
			"total":  total,
			"limit":  limit,
			"offset": offset,
		})
	})

	// GET /api/products/search?q=&limit=&offset=
	g.GET("/search", func(c echo.Context) error {
		if !searcher.Enabled() {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": search.ErrNotConfigured.Error()})
		}
		limit := queryInt(c, "limit", defaultLimit)
		if limit <= 0 || limit > maxLimit {
			limit = defaultLimit
		}
		offset := queryInt(c, "offset", 0)
		if offset < 0 {
			offset = 0
		}
		res, err := searcher.Search(c.Request().Context(), c.QueryParam("q"), limit, offset)
		if err != nil {
			return c.JSON(http.StatusBadGateway, echo.Map{"error": err.Error()})
		}
		items, err := repo.FindByCodes(res.Codes)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{
			"items":  items,
			"total":  res.Total,
			"limit":  limit,
			"offset": offset,
		})
	})

	// GET /api/products/:code
	g.GET("/:code", func(c echo.Context) error {
		p, err := repo.FindByCode(c.Param("code"))
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		if p == nil {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
		}
		return c.JSON(http.StatusOK, p)
	})
}

func queryInt(c echo.Context, name string, def int) int {
	v := c.QueryParam(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
