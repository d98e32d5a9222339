package cron

import (
	"sync"

	"stoneerp.GO/core/registry"
)

// Job is a named scheduled task. ScheduleFrom is read when the scheduler
// starts, after config is loaded, and wins over Schedule when non-empty.
type Job struct {
	Name         string
	Schedule     string
	ScheduleFrom func() string
	Run          func(...string)
}

func (j Job) Spec() string {
	if j.ScheduleFrom != nil {
		if s := j.ScheduleFrom(); s != "" {
			return s
		}
	}
	return j.Schedule
}

// guards the duplicate check in RegisterJob
var mu sync.Mutex

// RegisterJob adds job under name. It panics on a duplicate name or once the
// scheduler has read the jobs.
func RegisterJob(name string, job Job) {
	mu.Lock()
	defer mu.Unlock()
	if _, ok := Lookup(name); ok {
		panic("cron: duplicate job " + name)
	}
	job.Name = name
	if err := registry.Append(registry.GlobalRegistry, registry.KeyRegistryCron, job); err != nil {
		panic("cron: RegisterJob after start: " + err.Error())
	}
}

// Unregister drops a job and reopens the registry. Tests only.
func Unregister(name string) {
	mu.Lock()
	defer mu.Unlock()
	registry.GlobalRegistry.UnlockForTesting(registry.KeyRegistryCron)
	kept := make([]Job, 0)
	for _, j := range registry.List[Job](registry.GlobalRegistry, registry.KeyRegistryCron) {
		if j.Name != name {
			kept = append(kept, j)
		}
	}
	registry.GlobalRegistry.SetGlobal(registry.KeyRegistryCron, kept)
}

// Lookup finds a registered job by name.
func Lookup(name string) (Job, bool) {
	for _, j := range registry.List[Job](registry.GlobalRegistry, registry.KeyRegistryCron) {
		if j.Name == name {
			return j, true
		}
	}
	return Job{}, false
}

// Jobs returns the registered jobs in registration order and closes the
// registry.
func Jobs() []Job {
	registry.GlobalRegistry.Lock(registry.KeyRegistryCron)
	return registry.List[Job](registry.GlobalRegistry, registry.KeyRegistryCron)
}
