package cron

import (
	"fmt"
	"log"

	"github.com/robfig/cron/v3"
)

// StartCron schedules every registered job and starts the scheduler. A job
// whose spec does not parse aborts the start.
func StartCron() (*cron.Cron, error) {
	c := cron.New()
	for _, j := range Jobs() {
		job := j
		spec := job.Spec()
		if _, err := c.AddFunc(spec, func() {
			log.Printf("cron: running %s", job.Name)
			job.Run()
		}); err != nil {
			return nil, fmt.Errorf("schedule %s (%q): %w", job.Name, spec, err)
		}
		log.Printf("cron: %s scheduled at %q", job.Name, spec)
	}
	c.Start()
	return c, nil
}
