package health

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"stoneerp.GO/api"
)

func init() {
	api.RegisterRoute(RegisterHealthRoute)
}

// RegisterHealthRoute adds GET /health, which pings the database.
func RegisterHealthRoute(e *echo.Echo, db *gorm.DB) {
	e.GET("/health", func(c echo.Context) error {
		status := echo.Map{"status": "ok", "database": "ok"}
		if db == nil {
			status["database"] = "not configured"
			return c.JSON(http.StatusOK, status)
		}
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request().Context())
		}
		if err != nil {
			status["status"] = "degraded"
			status["database"] = err.Error()
			return c.JSON(http.StatusServiceUnavailable, status)
		}
		return c.JSON(http.StatusOK, status)
	})
}
