package reconcile

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// planCache holds the last built repair plan. Building a plan scans every
// collection, so the admin report endpoint caches it with a TTL instead of
// rebuilding per request.
type planCache struct {
	mu    sync.RWMutex
	plan  *Plan
	built time.Time
	sf    singleflight.Group
}

var globalPlanCache = &planCache{}

// GetOrBuildPlan returns the cached repair plan if it is younger than ttl,
// or builds a fresh one. Uses singleflight so concurrent requests don't
// trigger parallel full scans. A ttl of zero always rebuilds.
func GetOrBuildPlan(ctx context.Context, db *gorm.DB, ttl time.Duration) (*Plan, error) {
	if ttl > 0 {
		globalPlanCache.mu.RLock()
		plan, built := globalPlanCache.plan, globalPlanCache.built
		globalPlanCache.mu.RUnlock()
		if plan != nil && time.Since(built) < ttl {
			return plan, nil
		}
	}

	result, err, _ := globalPlanCache.sf.Do("plan", func() (interface{}, error) {
		// Double-check after acquiring the singleflight slot
		if ttl > 0 {
			globalPlanCache.mu.RLock()
			plan, built := globalPlanCache.plan, globalPlanCache.built
			globalPlanCache.mu.RUnlock()
			if plan != nil && time.Since(built) < ttl {
				return plan, nil
			}
		}

		plan, err := BuildPlan(ctx, db)
		if err != nil {
			return nil, err
		}

		globalPlanCache.mu.Lock()
		globalPlanCache.plan = plan
		globalPlanCache.built = time.Now()
		globalPlanCache.mu.Unlock()

		return plan, nil
	})
	if err != nil {
		return nil, err
	}

	return result.(*Plan), nil
}

// InvalidatePlan drops the cached plan. Called after ApplyPlan so the next
// report reflects the repairs.
func InvalidatePlan() {
	globalPlanCache.mu.Lock()
	globalPlanCache.plan = nil
	globalPlanCache.mu.Unlock()
}
