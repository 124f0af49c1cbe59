package services

import "sync"

// Version-number allocation and calc-run attachment are both read-modify-write
// sequences against per-project records. A per-project mutex turns each into
// a critical section so concurrent requests for the same project cannot lose
// updates. Different projects never contend.
var (
	projectLocksMu sync.Mutex
	projectLocks   = map[string]*sync.Mutex{}
)

// lockProject acquires the mutex for projectID and returns its unlock func.
func lockProject(projectID string) func() {
	projectLocksMu.Lock()
	mu, ok := projectLocks[projectID]
	if !ok {
		mu = &sync.Mutex{}
		projectLocks[projectID] = mu
	}
	projectLocksMu.Unlock()

	mu.Lock()
	return mu.Unlock
}
