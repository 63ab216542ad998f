package jobs

import (
	"log"
	"time"

	"github.com/lexcase/lexcase-backend/internal/storage"
)

// housekeepingInterval is how often expired credentials are swept.
const housekeepingInterval = 1 * time.Hour

// HousekeepingJob prunes expired one-time codes and reset codes. Verification
// never deletes rows, so without this sweep stale records accumulate forever.
type HousekeepingJob struct {
	store storage.Store
	stop  chan struct{}
}

// NewHousekeepingJob creates a new housekeeping job
func NewHousekeepingJob(store storage.Store) *HousekeepingJob {
	return &HousekeepingJob{
		store: store,
		stop:  make(chan struct{}),
	}
}

// Start begins the periodic sweep
func (j *HousekeepingJob) Start() {
	log.Println("Starting credential housekeeping job...")
	go j.run()
}

// Stop halts the sweep
func (j *HousekeepingJob) Stop() {
	close(j.stop)
	log.Println("Stopping credential housekeeping job...")
}

func (j *HousekeepingJob) run() {
	ticker := time.NewTicker(housekeepingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			j.sweep()
		case <-j.stop:
			return
		}
	}
}

func (j *HousekeepingJob) sweep() {
	otps, err := j.store.DeleteExpiredOTPs()
	if err != nil {
		log.Printf("Failed to prune expired OTPs: %v", err)
	}
	codes, err := j.store.DeleteExpiredResetCodes()
	if err != nil {
		log.Printf("Failed to prune expired reset codes: %v", err)
	}
	if otps > 0 || codes > 0 {
		log.Printf("Housekeeping pruned %d expired OTPs, %d expired reset codes", otps, codes)
	}
}
