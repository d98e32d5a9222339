package imports

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"stoneerp.GO/api"
	"stoneerp.GO/config"
	"stoneerp.GO/core/cache"
	importRunRepo "stoneerp.GO/model/repository/importrun"
	"stoneerp.GO/service/importer"
)

func init() {
	api.RegisterModule(RegisterImportRoutes)
}

func RegisterImportRoutes(apiGroup *echo.Group, db *gorm.DB) {
	g := apiGroup.Group("/imports")

	// POST /api/imports runs the pipeline on the configured workbook.
	// Body: {"apply": bool}; without apply the run is a dry-run.
	g.POST("", func(c echo.Context) error {
		start := time.Now()

		var body struct {
			Apply bool `json:"apply"`
		}
		if c.Request().ContentLength != 0 {
			if err := c.Bind(&body); err != nil {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
			}
		}

		src, profile, err := importer.Open(config.ImportConfigFromEnv())
		if err != nil {
			return c.JSON(statusFor(err), echo.Map{"error": err.Error()})
		}
		res, err := importer.Run(c.Request().Context(), db, src, importer.ImportOptions{
			Apply:   body.Apply,
			Profile: profile,
			Redis:   config.RedisClient,
			Indexer: importer.SearchIndexer(),
		})
		duration := time.Since(start).Milliseconds()
		if err != nil {
			return c.JSON(statusFor(err), echo.Map{"error": err.Error(), "request_duration_ms": duration})
		}
		if res.Apply {
			cache.GetInstance().DeleteByTag(cache.TagMasterData)
		}

		c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(duration, 10))
		return c.JSON(http.StatusOK, res)
	})

	// GET /api/imports?limit= lists recent applied runs.
	g.GET("", func(c echo.Context) error {
		limit, err := strconv.Atoi(c.QueryParam("limit"))
		if err != nil || limit <= 0 || limit > 100 {
			limit = 20
		}
		runs, err := importRunRepo.NewImportRunRepository(db).Latest(limit)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"items": runs})
	})
}

func statusFor(err error) int {
	var notFound *importer.FileNotFoundError
	switch {
	case errors.Is(err, importer.ErrRunInProgress):
		return http.StatusConflict
	case errors.As(err, &notFound),
		errors.Is(err, importer.ErrSheetNotFound),
		errors.Is(err, importer.ErrProfileInvalid),
		errors.Is(err, importer.ErrUnsupportedFormat):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
