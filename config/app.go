package config

import (
	"os"
	"sync"
)

// AppConfig holds global application configuration
var AppConfig *Config
var once sync.Once

type Config struct {
	AppName string
	Port    string
	Env     string
	Debug   bool
}

// ImportConfig holds the spreadsheet import settings shared by the CLI,
// the API and the cron job. It is read from the environment on every run
// rather than cached in AppConfig, so a long-running server picks up changes.
type ImportConfig struct {
	ExcelPath        string
	ExcelSheet       string
	ProfilePath      string
	ColorDefaultCode string
	DefaultCurrency  string
	CronSchedule     string
}

const (
	DefaultExcelPath    = "data/products.xlsx"
	DefaultExcelSheet   = "Sheet2"
	DefaultCurrency     = "IRR"
	DefaultCronSchedule = "0 3 * * *"
)

// ImportConfigFromEnv reads EXCEL_PATH, EXCEL_SHEET, IMPORT_PROFILE,
// COLOR_DEFAULT_CODE, DEFAULT_CURRENCY and IMPORT_CRON.
// COLOR_DEFAULT_CODE has no default: unset means every row needs a color.
func ImportConfigFromEnv() ImportConfig {
	return ImportConfig{
		ExcelPath:        getenv("EXCEL_PATH", DefaultExcelPath),
		ExcelSheet:       getenv("EXCEL_SHEET", DefaultExcelSheet),
		ProfilePath:      os.Getenv("IMPORT_PROFILE"),
		ColorDefaultCode: os.Getenv("COLOR_DEFAULT_CODE"),
		DefaultCurrency:  getenv("DEFAULT_CURRENCY", DefaultCurrency),
		CronSchedule:     getenv("IMPORT_CRON", DefaultCronSchedule),
	}
}

// LoadAppConfig initializes the global AppConfig variable
func LoadAppConfig() {
	once.Do(func() {
		AppConfig = &Config{
			AppName: getenv("APP_NAME", "stoneerp"),
			Port:    getenv("PORT", "8080"),
			Env:     os.Getenv("APP_ENV"),
			Debug:   os.Getenv("DEBUG") == "true",
		}
	})
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
