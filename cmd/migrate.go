package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/spf13/cobra"

	"stoneerp.GO/config"
)

var (
	migrateAuto bool
	migrateDir  string
)

var dbMigrateCmd = &cobra.Command{
	Use:       "db:migrate [up|down|version]",
	Short:     "Apply SQL migrations (MySQL) or run gorm AutoMigrate with --auto",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"up", "down", "version"},
	Run: func(c *cobra.Command, args []string) {
		action := "up"
		if len(args) > 0 {
			action = args[0]
		}
		if err := runMigrate(action); err != nil {
			fmt.Printf("Migration failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func runMigrate(action string) error {
	if migrateAuto {
		db, err := config.NewDB()
		if err != nil {
			return fmt.Errorf("database connection failed: %w", err)
		}
		defer config.CloseDB(db)
		if err := config.AutoMigrate(db); err != nil {
			return err
		}
		fmt.Println("AutoMigrate completed.")
		return nil
	}

	m, err := migrate.New("file://"+migrateDir, "mysql://"+migrationDSN())
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}
	defer m.Close()

	switch action {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("migration up: %w", err)
		}
		fmt.Println("Migrations applied successfully.")
	case "down":
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("migration down: %w", err)
		}
		fmt.Println("Migrations reverted successfully.")
	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			return fmt.Errorf("get version: %w", err)
		}
		fmt.Printf("version: %d, dirty: %v\n", version, dirty)
	default:
		return fmt.Errorf("unknown action %q (want up, down or version)", action)
	}
	return nil
}

// migrationDSN enables multi-statement files, which the init migration needs.
func migrationDSN() string {
	dsn := config.MySQLDSN()
	if strings.Contains(dsn, "multiStatements=") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&multiStatements=true"
	}
	return dsn + "?multiStatements=true"
}

func init() {
	dbMigrateCmd.Flags().BoolVar(&migrateAuto, "auto", false, "Run gorm AutoMigrate against DB_DRIVER instead of SQL files")
	dbMigrateCmd.Flags().StringVar(&migrateDir, "dir", "db/migrations", "Migrations directory")
	rootCmd.AddCommand(dbMigrateCmd)
}
