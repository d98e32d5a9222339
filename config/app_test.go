package config

import "testing"

func TestImportConfigFromEnv_Defaults(t *testing.T) {
	for _, k := range []string{"EXCEL_PATH", "EXCEL_SHEET", "IMPORT_PROFILE", "COLOR_DEFAULT_CODE", "DEFAULT_CURRENCY", "IMPORT_CRON"} {
		t.Setenv(k, "")
	}
	cfg := ImportConfigFromEnv()
	if cfg.ExcelPath != DefaultExcelPath {
		t.Errorf("ExcelPath = %q, want %q", cfg.ExcelPath, DefaultExcelPath)
	}
	if cfg.ExcelSheet != DefaultExcelSheet {
		t.Errorf("ExcelSheet = %q, want %q", cfg.ExcelSheet, DefaultExcelSheet)
	}
	if cfg.DefaultCurrency != DefaultCurrency {
		t.Errorf("DefaultCurrency = %q, want %q", cfg.DefaultCurrency, DefaultCurrency)
	}
	if cfg.CronSchedule != DefaultCronSchedule {
		t.Errorf("CronSchedule = %q, want %q", cfg.CronSchedule, DefaultCronSchedule)
	}
	if cfg.ProfilePath != "" || cfg.ColorDefaultCode != "" {
		t.Errorf("ProfilePath, ColorDefaultCode = %q, %q, want empty", cfg.ProfilePath, cfg.ColorDefaultCode)
	}
}

func TestImportConfigFromEnv_FollowsEnvAfterLoad(t *testing.T) {
	LoadAppConfig()
	t.Setenv("EXCEL_PATH", "first.xlsx")
	if got := ImportConfigFromEnv().ExcelPath; got != "first.xlsx" {
		t.Fatalf("ExcelPath = %q, want first.xlsx", got)
	}
	t.Setenv("EXCEL_PATH", "second.xls")
	if got := ImportConfigFromEnv().ExcelPath; got != "second.xls" {
		t.Errorf("ExcelPath = %q, want second.xls", got)
	}
}
