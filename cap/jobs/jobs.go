package jobs

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"
)

var ErrNotFound = errors.New("job not found")

// a posted job
type Job struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Salary    int       `json:"salary,omitempty"`
	OwnerID   string    `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`

	seq int64
}

// in-memory job store
type Store struct {
	mu   sync.RWMutex
	jobs map[string]*Job
	seq  atomic.Int64
}

func NewStore() *Store {
	return &Store{jobs: make(map[string]*Job)}
}

// stores a new job and assigns its ID
func (s *Store) Create(ownerID, title string, salary int) *Job {
	seq := s.seq.Add(1)

	job := &Job{
		ID:        fmt.Sprintf("j-%d", seq),
		Title:     title,
		Salary:    salary,
		OwnerID:   ownerID,
		CreatedAt: time.Now(),
		seq:       seq,
	}

	s.mu.Lock()
	s.jobs[job.ID] = job
	s.mu.Unlock()

	c := *job
	return &c
}

func (s *Store) Get(id string) (*Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, ok := s.jobs[id]
	if !ok {
		return nil, ErrNotFound
	}

	c := *job
	return &c, nil
}

// returns the jobs of ownerID, oldest first
func (s *Store) ListByOwner(ownerID string) []Job {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var jobs []Job
	for _, job := range s.jobs {
		if job.OwnerID == ownerID {
			jobs = append(jobs, *job)
		}
	}

	slices.SortFunc(jobs, func(a, b Job) int {
		return cmp.Compare(a.seq, b.seq)
	})

	return jobs
}
