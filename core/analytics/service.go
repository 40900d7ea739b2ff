package analytics

import "time"

// Tuning constants carried over as-is.
const (
	// Retention is how long visits stay in the log before pruning.
	Retention = 24 * time.Hour
	// visitThrottle drops repeat visits from the same user.
	visitThrottle = time.Minute
	// activeWindow defines an "active user".
	activeWindow = 5 * time.Minute
	// chart series: six contiguous 5-minute windows.
	bucketSize   = 5 * time.Minute
	chartBuckets = 6
)

type (
	Repository interface {
		// AppendVisit stores the visit and prunes entries older than the
		// retention cutoff in the same write.
		AppendVisit(v Visit, pruneBefore time.Time) error
		LastVisit(userID string) (time.Time, bool, error)
		QueryVisitsSince(t time.Time) ([]Visit, error)
	}

	Service struct {
		repo Repository

		nowFunc func() time.Time // mockable
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo, nowFunc: time.Now}
}

// LogVisit appends a visit for the user unless their last recorded visit is
// under a minute old. Reports whether the visit was recorded.
func (svc *Service) LogVisit(userID string) (bool, error) {
	now := svc.nowFunc().UTC()

	last, ok, err := svc.repo.LastVisit(userID)
	if err != nil {
		return false, err
	}
	if ok && now.Sub(last) < visitThrottle {
		return false, nil
	}

	err = svc.repo.AppendVisit(Visit{UserID: userID, Timestamp: now}, now.Add(-Retention))
	return err == nil, err
}

// ActiveUsers counts distinct users with a visit in the trailing 5 minutes.
func (svc *Service) ActiveUsers() (int, error) {
	now := svc.nowFunc().UTC()
	visits, err := svc.repo.QueryVisitsSince(now.Add(-activeWindow))
	if err != nil {
		return 0, err
	}
	return distinct(visits), nil
}

// Snapshot aggregates today's visits and the trailing chart windows. The
// windows are non-overlapping, contiguous and ordered oldest to newest;
// the newest ends at "now".
func (svc *Service) Snapshot() (Snapshot, error) {
	now := svc.nowFunc().UTC()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	chartStart := now.Add(-chartBuckets * bucketSize)

	since := midnight
	if chartStart.Before(since) {
		since = chartStart
	}
	visits, err := svc.repo.QueryVisitsSince(since)
	if err != nil {
		return Snapshot{}, err
	}

	snap := Snapshot{Buckets: make([]Bucket, chartBuckets)}

	var today []Visit
	for _, v := range visits {
		if !v.Timestamp.Before(midnight) {
			today = append(today, v)
		}
	}
	snap.TodayVisitors = distinct(today)

	for i := 0; i < chartBuckets; i++ {
		start := chartStart.Add(time.Duration(i) * bucketSize)
		end := start.Add(bucketSize)

		var window []Visit
		for _, v := range visits {
			if !v.Timestamp.Before(start) && v.Timestamp.Before(end) {
				window = append(window, v)
			}
		}
		count := distinct(window)
		snap.Buckets[i] = Bucket{Start: start, Count: count}
		if count > snap.Peak {
			snap.Peak = count
		}
	}
	return snap, nil
}

func distinct(visits []Visit) int {
	seen := make(map[string]struct{}, len(visits))
	for _, v := range visits {
		seen[v.UserID] = struct{}{}
	}
	return len(seen)
}
