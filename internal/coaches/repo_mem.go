package coaches

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"
)

type MemRepo struct {
	mu      sync.RWMutex
	lastID  int64
	coaches []Coach
}

func NewMemRepo() *MemRepo {
	return &MemRepo{}
}

func (r *MemRepo) Add(_ context.Context, coach Coach) (*Coach, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.coaches {
		if c.Email == coach.Email {
			return nil, ErrCoachEmailTaken
		}
	}

	r.lastID++
	coach.ID = r.lastID
	coach.CreatedAt = time.Now().UTC()
	r.coaches = append(r.coaches, coach)
	return &coach, nil
}

func (r *MemRepo) List(_ context.Context) ([]Coach, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := slices.Clone(r.coaches)
	if list == nil {
		list = make([]Coach, 0)
	}
	slices.SortFunc(list, func(a, b Coach) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
	})
	return list, nil
}
