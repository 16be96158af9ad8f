package jobstore

import (
	"log"
	"sync"
	"time"

	"visitdedupe/domain/core"
)

// ArtifactKind names one downloadable output of a dedupe job
type ArtifactKind string

const (
	ArtifactDeduped ArtifactKind = "deduped"
	ArtifactRemoved ArtifactKind = "removed"
	ArtifactBundle  ArtifactKind = "bundle"
)

// Artifact is one generated output file held in memory for download
type Artifact struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Summary describes what a dedupe job did, for display and the JSON API
type Summary struct {
	SourceFilename string                  `json:"source_filename"`
	Fingerprint    string                  `json:"fingerprint"`
	DatePolicy     string                  `json:"date_policy"`
	RowsBefore     int                     `json:"rows_before"`
	RowsAfter      int                     `json:"rows_after"`
	RemovedCount   int                     `json:"removed_count"`
	DuplicateStats *DuplicateGroupStats    `json:"duplicate_groups,omitempty"`
	Files          map[ArtifactKind]string `json:"files"`
}

// DuplicateGroupStats summarizes how large the duplicate groups were
type DuplicateGroupStats struct {
	Groups        int     `json:"groups"`
	MeanGroupSize float64 `json:"mean_group_size"`
	MaxGroupSize  int     `json:"max_group_size"`
}

// Job is the complete in-memory result of one upload/dedupe cycle. Nothing
// is persisted; jobs live only until their TTL runs out.
type Job struct {
	ID        core.JobID
	CreatedAt time.Time
	Summary   Summary
	Artifacts map[ArtifactKind]Artifact
}

// Store holds finished jobs for download, keyed by job ID, with TTL eviction
type Store struct {
	mu   sync.RWMutex
	jobs map[core.JobID]*Job
	ttl  time.Duration
}

// NewStore creates a store whose jobs expire after ttl
func NewStore(ttl time.Duration) *Store {
	return &Store{
		jobs: make(map[core.JobID]*Job),
		ttl:  ttl,
	}
}

// Put stores a finished job
func (s *Store) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

// Get returns a job by ID. Expired jobs are treated as gone.
func (s *Store) Get(id core.JobID) (*Job, error) {
	s.mu.RLock()
	job, ok := s.jobs[id]
	s.mu.RUnlock()

	if !ok {
		return nil, core.NewJobNotFoundError(id)
	}
	if time.Since(job.CreatedAt) > s.ttl {
		s.mu.Lock()
		delete(s.jobs, id)
		s.mu.Unlock()
		return nil, core.ErrJobExpired
	}
	return job, nil
}

// Artifact returns one downloadable output of a job
func (s *Store) Artifact(id core.JobID, kind ArtifactKind) (Artifact, error) {
	job, err := s.Get(id)
	if err != nil {
		return Artifact{}, err
	}
	artifact, ok := job.Artifacts[kind]
	if !ok {
		return Artifact{}, core.NewJobNotFoundError(id)
	}
	return artifact, nil
}

// CleanupExpired removes every job older than the TTL and returns the count
func (s *Store) CleanupExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, job := range s.jobs {
		if time.Since(job.CreatedAt) > s.ttl {
			delete(s.jobs, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of jobs currently held
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.jobs)
}

// StartJanitor starts a background loop evicting expired jobs
func (s *Store) StartJanitor(interval time.Duration) {
	go func() {
		for {
			time.Sleep(interval)
			if n := s.CleanupExpired(); n > 0 {
				log.Printf("[JobStore] Evicted %d expired job(s)", n)
			}
		}
	}()
}
