package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// LoadEnv reads .env, or the comma separated files in ENV_FILE, into the
// process environment. Variables that are already set are not overridden.
func LoadEnv() {
	files := []string{".env"}
	if v := os.Getenv("ENV_FILE"); v != "" {
		files = strings.Split(v, ",")
	}
	if err := godotenv.Load(files...); err != nil {
		log.Printf("Environment files not loaded (%v), using process environment", err)
		return
	}
	log.Printf("Environment loaded from %s", strings.Join(files, ", "))
}
