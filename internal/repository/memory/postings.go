package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/hiring-service/internal/domain"
	"github.com/spec-kit/hiring-service/internal/repository"
)

// JobPostingRepository keeps postings in insertion order.
type JobPostingRepository struct {
	mu       sync.RWMutex
	postings []domain.JobPosting
	byID     map[string]int
}

var _ repository.JobPostingRepository = (*JobPostingRepository)(nil)

// NewJobPostingRepository returns an empty repository.
func NewJobPostingRepository() *JobPostingRepository {
	return &JobPostingRepository{byID: make(map[string]int)}
}

func (r *JobPostingRepository) Create(_ context.Context, posting *domain.JobPosting) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if posting.ID == "" {
		posting.ID = uuid.NewString()
	}
	if _, exists := r.byID[posting.ID]; exists {
		return repository.ErrDuplicate
	}
	if posting.CreatedAt.IsZero() {
		posting.CreatedAt = time.Now().UTC()
	}
	r.byID[posting.ID] = len(r.postings)
	r.postings = append(r.postings, clonePosting(*posting))
	return nil
}

func (r *JobPostingRepository) GetByID(_ context.Context, id string) (*domain.JobPosting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := clonePosting(r.postings[idx])
	return &out, nil
}

func (r *JobPostingRepository) List(_ context.Context) ([]domain.JobPosting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.JobPosting, 0, len(r.postings))
	for _, p := range r.postings {
		out = append(out, clonePosting(p))
	}
	return out, nil
}

func (r *JobPostingRepository) Search(_ context.Context, text string, limit int) ([]domain.JobPosting, error) {
	if limit <= 0 {
		limit = repository.SearchLimit
	}
	terms := strings.Fields(strings.ToLower(text))
	if len(terms) == 0 {
		return []domain.JobPosting{}, nil
	}

	r.mu.RLock()
	matches := make([]domain.JobPosting, 0)
	for _, p := range r.postings {
		if postingMatches(p, terms) {
			matches = append(matches, clonePosting(p))
		}
	}
	r.mu.RUnlock()

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Experience < matches[j].Experience
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

func postingMatches(p domain.JobPosting, terms []string) bool {
	fields := make([]string, 0, len(p.SkillSet)+2)
	fields = append(fields, strings.ToLower(p.Role), strings.ToLower(p.Description))
	for _, skill := range p.SkillSet {
		fields = append(fields, strings.ToLower(skill))
	}
	for _, term := range terms {
		for _, field := range fields {
			if strings.Contains(field, term) {
				return true
			}
		}
	}
	return false
}

func clonePosting(p domain.JobPosting) domain.JobPosting {
	p.SkillSet = append([]string(nil), p.SkillSet...)
	return p
}
