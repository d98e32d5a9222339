//go:build cli
// +build cli

package main

import (
	_ "stoneerp.GO/cron/jobs"
	_ "stoneerp.GO/custom"

	"stoneerp.GO/cmd"
	"stoneerp.GO/config"
)

func main() {
	config.LoadEnv()
	config.LoadAppConfig()
	cmd.Execute()
}
