package staging

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Registry holds the open drafts of every professor
type Registry struct {
	mu     sync.Mutex
	drafts map[uuid.UUID]*Draft
	ttl    time.Duration
	now    func() time.Time
}

// NewRegistry creates a registry whose drafts expire after ttl without use.
// A zero ttl keeps drafts until they are discarded.
func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{
		drafts: make(map[uuid.UUID]*Draft),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Create opens a new draft for professorID
func (r *Registry) Create(professorID int64, params DraftParams) *Draft {
	d := newDraft(professorID, params, r.now())

	r.mu.Lock()
	r.drafts[d.ID] = d
	r.mu.Unlock()
	return d
}

// With runs fn while holding the lock of draft id. It fails when the draft does
// not exist or belongs to another professor.
func (r *Registry) With(id uuid.UUID, professorID int64, fn func(*Draft) error) error {
	r.mu.Lock()
	d, ok := r.drafts[id]
	r.mu.Unlock()
	if !ok {
		return ErrDraftNotFound
	}
	if d.ProfessorID != professorID {
		return ErrForbidden
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.lastUsed = r.now()
	return fn(d)
}

// Discard removes draft id without persisting anything
func (r *Registry) Discard(id uuid.UUID, professorID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.drafts[id]
	if !ok {
		return ErrDraftNotFound
	}
	if d.ProfessorID != professorID {
		return ErrForbidden
	}
	delete(r.drafts, id)
	return nil
}

// ListByProfessor returns the ids of the drafts owned by professorID, oldest first
func (r *Registry) ListByProfessor(professorID int64) []uuid.UUID {
	r.mu.Lock()
	var owned []*Draft
	for _, d := range r.drafts {
		if d.ProfessorID == professorID {
			owned = append(owned, d)
		}
	}
	r.mu.Unlock()

	sort.Slice(owned, func(i, j int) bool { return owned[i].CreatedAt.Before(owned[j].CreatedAt) })
	ids := make([]uuid.UUID, len(owned))
	for i, d := range owned {
		ids[i] = d.ID
	}
	return ids
}

// Len returns the number of open drafts
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.drafts)
}

// Sweep removes drafts idle for longer than the ttl. Drafts in use are skipped.
func (r *Registry) Sweep() int {
	if r.ttl <= 0 {
		return 0
	}
	cutoff := r.now().Add(-r.ttl)

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, d := range r.drafts {
		if !d.mu.TryLock() {
			continue
		}
		expired := d.lastUsed.Before(cutoff)
		d.mu.Unlock()
		if expired {
			delete(r.drafts, id)
			removed++
		}
	}
	return removed
}

// RunSweeper calls Sweep every interval until ctx is done
func (r *Registry) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := r.Sweep(); removed > 0 {
				log.Printf("Discarded %d idle drafts", removed)
			}
		}
	}
}
