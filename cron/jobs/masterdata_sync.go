package jobs

import (
	"context"
	"log"
	"os"

	"stoneerp.GO/config"
	"stoneerp.GO/core/cache"
	"stoneerp.GO/cron"
	"stoneerp.GO/service/importer"
)

// MasterDataSyncJob is the cron name of the scheduled applied import.
const MasterDataSyncJob = "masterdatasync"

func init() {
	cron.RegisterJob(MasterDataSyncJob, cron.Job{
		Schedule: config.DefaultCronSchedule,
		ScheduleFrom: func() string {
			return config.ImportConfigFromEnv().CronSchedule
		},
		Run: MasterDataSync,
	})
}

// MasterDataSync runs an applied import of the configured workbook and logs
// the report. Failures are logged; the scheduler keeps running.
func MasterDataSync(args ...string) {
	cfg := config.ImportConfigFromEnv()
	if len(args) > 0 && args[0] != "" {
		cfg.ExcelPath = args[0]
	}

	src, profile, err := importer.Open(cfg)
	if err != nil {
		log.Printf("%s: %v", MasterDataSyncJob, err)
		return
	}

	db, err := config.NewDB()
	if err != nil {
		log.Printf("%s: database connection failed: %v", MasterDataSyncJob, err)
		return
	}
	defer config.CloseDB(db)

	res, err := importer.Run(context.Background(), db, src, importer.ImportOptions{
		Apply:   true,
		Profile: profile,
		Redis:   config.RedisClient,
		Indexer: importer.SearchIndexer(),
	})
	if err != nil {
		log.Printf("%s: import failed: %v", MasterDataSyncJob, err)
		return
	}
	cache.GetInstance().DeleteByTag(cache.TagMasterData)
	importer.WriteReport(os.Stdout, res)
}
