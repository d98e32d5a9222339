package pricing

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"stoneerp.GO/api"
	pricingService "stoneerp.GO/service/pricing"
)

func init() {
	api.RegisterModule(RegisterPricingRoutes)
}

type quoteRequest struct {
	Items            []pricingService.Item `json:"items"`
	MandatoryPercent decimal.Decimal       `json:"mandatory_percent"`
}

func RegisterPricingRoutes(apiGroup *echo.Group, _ *gorm.DB) {
	// POST /api/pricing/quote
	apiGroup.POST("/pricing/quote", func(c echo.Context) error {
		var body quoteRequest
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if len(body.Items) == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "items array is required and must not be empty"})
		}
		s, err := pricingService.Quote(body.Items, body.MandatoryPercent)
		if err != nil {
			if errors.Is(err, pricingService.ErrNegative) {
				return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, s)
	})
}
