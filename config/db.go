package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	entity "stoneerp.GO/model/entity"
	productEntity "stoneerp.GO/model/entity/product"
	mdRepo "stoneerp.GO/model/repository/masterdata"
)

// MySQLDSN builds the go-sql-driver DSN from MYSQL_DSN or the MYSQL_* parts.
func MySQLDSN() string {
	dsn := os.Getenv("MYSQL_DSN")
	if dsn != "" {
		return dsn
	}
	user := os.Getenv("MYSQL_USER")
	pass := os.Getenv("MYSQL_PASS")
	host := os.Getenv("MYSQL_HOST")
	port := os.Getenv("MYSQL_PORT")
	db := os.Getenv("MYSQL_DB")
	if port == "" {
		port = "3306"
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&charset=utf8mb4&loc=Local", user, pass, host, port, db)
}

// NewDB opens the store selected by DB_DRIVER (mysql by default, or sqlite).
func NewDB() (*gorm.DB, error) {
	logMode := logger.Info
	if os.Getenv("GORM_LOG") == "off" {
		logMode = logger.Silent
	}

	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logMode,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)
	cfg := &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
	}

	switch os.Getenv("DB_DRIVER") {
	case "sqlite":
		path := os.Getenv("SQLITE_PATH")
		if path == "" {
			path = "stoneerp.db"
		}
		db, err := gorm.Open(sqlite.Open(path), cfg)
		if err != nil {
			return nil, err
		}
		db.Exec("PRAGMA busy_timeout=5000")
		return db, nil
	case "", "mysql":
		return gorm.Open(mysql.Open(MySQLDSN()), cfg)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", os.Getenv("DB_DRIVER"))
	}
}

// CloseDB releases the pool behind db. Safe to defer right after NewDB.
func CloseDB(db *gorm.DB) {
	if db == nil {
		return
	}
	if sqldb, err := db.DB(); err == nil {
		_ = sqldb.Close()
	}
}

// AutoMigrate creates every table the importer and the API use.
// MySQL deployments run db/migrations instead.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&productEntity.Product{}, &entity.ImportRun{}); err != nil {
		return err
	}
	return mdRepo.Migrate(db)
}
