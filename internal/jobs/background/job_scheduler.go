package background

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
)

const jobTimeout = 2 * time.Minute

// ErrUnknownJob is returned by RunNow for a name that was never registered
var ErrUnknownJob = errors.New("unknown job")

// ProductCacheWarmer reloads the cached product list
type ProductCacheWarmer interface {
	WarmCache(ctx context.Context) error
}

// JobScheduler runs the periodic maintenance jobs
type JobScheduler struct {
	scheduler gocron.Scheduler
	archiver  *ActivityArchiver
	products  ProductCacheWarmer
	jobs      map[string]gocron.Job
	mu        sync.RWMutex
}

// SchedulerConfig sets job intervals. A zero interval or a nil dependency disables the job.
type SchedulerConfig struct {
	ArchiveInterval   time.Duration
	CacheWarmInterval time.Duration
}

func NewJobScheduler(archiver *ActivityArchiver, products ProductCacheWarmer, cfg SchedulerConfig) (*JobScheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	js := &JobScheduler{
		scheduler: scheduler,
		archiver:  archiver,
		products:  products,
		jobs:      make(map[string]gocron.Job),
	}

	if err := js.registerJobs(cfg); err != nil {
		_ = scheduler.Shutdown()
		return nil, err
	}
	return js, nil
}

func (js *JobScheduler) Start() {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
}

func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) registerJobs(cfg SchedulerConfig) error {
	if js.archiver != nil && cfg.ArchiveInterval > 0 {
		if err := js.addJob("activity-archive", cfg.ArchiveInterval, js.archiveActivity); err != nil {
			return err
		}
	}
	if js.products != nil && cfg.CacheWarmInterval > 0 {
		if err := js.addJob("product-cache-warm", cfg.CacheWarmInterval, js.warmProductCache); err != nil {
			return err
		}
	}
	log.Printf("Registered %d background jobs", len(js.jobs))
	return nil
}

func (js *JobScheduler) addJob(name string, interval time.Duration, task func() error) error {
	js.mu.Lock()
	defer js.mu.Unlock()

	job, err := js.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(task),
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to create %s job: %w", name, err)
	}
	js.jobs[name] = job
	return nil
}

func (js *JobScheduler) archiveActivity() error {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()
	return js.archiver.runLogged(ctx)
}

func (js *JobScheduler) warmProductCache() error {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()
	if err := js.products.WarmCache(ctx); err != nil {
		log.Printf("Product cache warm-up failed: %v", err)
		return err
	}
	return nil
}

// JobNames lists the registered jobs
func (js *JobScheduler) JobNames() []string {
	js.mu.RLock()
	defer js.mu.RUnlock()

	names := make([]string, 0, len(js.jobs))
	for name := range js.jobs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RunNow queues an immediate run of the named job outside its schedule.
// Singleton mode still applies, so a run already in flight is not doubled.
func (js *JobScheduler) RunNow(name string) error {
	js.mu.RLock()
	job, ok := js.jobs[name]
	js.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownJob, name)
	}
	return job.RunNow()
}
