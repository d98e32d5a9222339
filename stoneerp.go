//go:build !cli
// +build !cli

package main

import (
	"log"
	"strconv"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"stoneerp.GO/api"
	_ "stoneerp.GO/api/health"
	_ "stoneerp.GO/api/imports"
	_ "stoneerp.GO/api/masterdata"
	_ "stoneerp.GO/api/pricing"
	_ "stoneerp.GO/api/products"
	"stoneerp.GO/config"
	"stoneerp.GO/core/auth"
)

func main() {
	config.LoadEnv()
	config.LoadAppConfig()
	figure.NewFigure(config.AppConfig.AppName, "", true).Print()

	config.InitRedis()
	log.Println(config.PingRedis())

	db, err := config.NewDB()
	if err != nil {
		log.Fatalf("failed to connect to DB: %v", err)
	}
	defer config.CloseDB(db)

	sqldb, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get DB instance: %v", err)
	}
	if err := sqldb.Ping(); err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	log.Println("Database connection successful.")

	e := echo.New()
	e.HideBanner = true
	e.Debug = config.AppConfig.Debug
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.Gzip())
	e.Use(middleware.Decompress())

	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			duration := time.Since(start).Milliseconds()
			c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(duration, 10))
			return err
		}
	})

	api.ApplyRoutes(e, db)

	apiGroup := e.Group("/api")
	apiGroup.Use(auth.Middleware())
	api.ApplyModules(apiGroup, db)

	port := config.AppConfig.Port
	log.Printf("Server running on :%s (env=%q debug=%v)", port, config.AppConfig.Env, config.AppConfig.Debug)
	e.Logger.Fatal(e.Start(":" + port))
}
