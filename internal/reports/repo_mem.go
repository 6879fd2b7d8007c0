package reports

import (
	"context"
	"slices"
	"sync"
	"time"
)

// MemRepo keeps reports in memory; used in tests and with store_driver = "memory".
type MemRepo struct {
	mu      sync.RWMutex
	lastID  int64
	reports map[int64]Report
	now     func() time.Time
}

func NewMemRepo() *MemRepo {
	return &MemRepo{
		reports: make(map[int64]Report),
		now:     time.Now,
	}
}

func (r *MemRepo) Add(_ context.Context, report Report) (*Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastID++
	report.ID = r.lastID
	report.CreatedAt = r.now().UTC()
	if report.Status == "" {
		report.Status = StatusGenerated
	}
	r.reports[report.ID] = report
	return &report, nil
}

func (r *MemRepo) Get(_ context.Context, id int64) (*Report, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	report, ok := r.reports[id]
	if !ok {
		return nil, ErrReportNotFound
	}
	return &report, nil
}

func (r *MemRepo) ListByPatient(_ context.Context, patientID string) ([]Report, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]Report, 0)
	for _, report := range r.reports {
		if report.PatientID == patientID {
			list = append(list, report)
		}
	}
	slices.SortFunc(list, func(a, b Report) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return int(b.ID - a.ID)
	})
	return list, nil
}
