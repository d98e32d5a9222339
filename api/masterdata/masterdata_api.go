package masterdata

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"stoneerp.GO/api"
	"stoneerp.GO/core/cache"
	mdEntity "stoneerp.GO/model/entity/masterdata"
	mdRepo "stoneerp.GO/model/repository/masterdata"
)

const cacheTTL = 10 * time.Minute

func init() {
	api.RegisterModule(RegisterMasterDataRoutes)
}

func RegisterMasterDataRoutes(apiGroup *echo.Group, db *gorm.DB) {
	repo := mdRepo.NewMasterDataRepository(db)
	c := cache.GetInstance()

	// GET /api/master-data/:category
	apiGroup.GET("/master-data/:category", func(ctx echo.Context) error {
		cat, err := mdEntity.ParseCategory(ctx.Param("category"))
		if err != nil {
			return ctx.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
		}

		key := cache.Key(cache.TagMasterData, cat)
		if v, ok := c.Get(key); ok {
			ctx.Response().Header().Set("X-Cache", "HIT")
			return ctx.JSON(http.StatusOK, v)
		}

		attrs, err := repo.FindAll(cat)
		if err != nil {
			return ctx.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		body := echo.Map{"category": cat, "count": len(attrs), "items": attrs}
		c.Set(key, body, cacheTTL, []string{cache.TagMasterData})
		ctx.Response().Header().Set("X-Cache", "MISS")
		return ctx.JSON(http.StatusOK, body)
	})
}
