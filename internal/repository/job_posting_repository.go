package repository

import (
	"context"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/hiring-service/internal/domain"
)

// SearchLimit caps the number of postings a text search returns.
const SearchLimit = 5

// JobPostingRepository encapsulates job posting persistence.
type JobPostingRepository interface {
	Create(ctx context.Context, posting *domain.JobPosting) error
	GetByID(ctx context.Context, id string) (*domain.JobPosting, error)
	List(ctx context.Context) ([]domain.JobPosting, error)
	// Search returns up to limit postings whose role, description or skills
	// match any term of text, ordered by required experience ascending.
	Search(ctx context.Context, text string, limit int) ([]domain.JobPosting, error)
}

type jobPostingRepository struct {
	pool *pgxpool.Pool
}

// NewJobPostingRepository instantiates repository.
func NewJobPostingRepository(pool *pgxpool.Pool) JobPostingRepository {
	return &jobPostingRepository{pool: pool}
}

const postingColumns = `id, role, description, experience, skill_set, recruiter_id, created_at`

func (r *jobPostingRepository) Create(ctx context.Context, posting *domain.JobPosting) error {
	const query = `
        INSERT INTO job_postings (id, role, description, experience, skill_set, recruiter_id)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING created_at`

	if posting.ID == "" {
		posting.ID = uuid.NewString()
	}
	if posting.SkillSet == nil {
		posting.SkillSet = []string{}
	}
	err := r.pool.QueryRow(ctx, query,
		posting.ID,
		posting.Role,
		posting.Description,
		posting.Experience,
		posting.SkillSet,
		posting.RecruiterID,
	).Scan(&posting.CreatedAt)
	return mapPgError(err)
}

func (r *jobPostingRepository) GetByID(ctx context.Context, id string) (*domain.JobPosting, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	query := `SELECT ` + postingColumns + ` FROM job_postings WHERE id=$1`

	var posting domain.JobPosting
	if err := scanPosting(r.pool.QueryRow(ctx, query, id), &posting); err != nil {
		return nil, mapPgError(err)
	}
	return &posting, nil
}

func (r *jobPostingRepository) List(ctx context.Context) ([]domain.JobPosting, error) {
	query := `SELECT ` + postingColumns + ` FROM job_postings ORDER BY created_at`
	return r.fetchMany(ctx, query)
}

func (r *jobPostingRepository) Search(ctx context.Context, text string, limit int) ([]domain.JobPosting, error) {
	if limit <= 0 {
		limit = SearchLimit
	}
	tsquery := searchQuery(text)
	if tsquery == "" {
		return []domain.JobPosting{}, nil
	}
	// Stop words are dropped by to_tsquery; a query of only stop words
	// matches nothing.
	query := `
        SELECT ` + postingColumns + `
        FROM job_postings
        WHERE to_tsvector('english', role || ' ' || description || ' ' || array_to_string(skill_set, ' '))
              @@ to_tsquery('english', $1)
        ORDER BY experience ASC, created_at ASC
        LIMIT $2`
	return r.fetchMany(ctx, query, tsquery, limit)
}

// searchQuery reduces free text to an OR of its distinct alphanumeric words,
// safe to hand to to_tsquery. Operators and punctuation never reach Postgres.
func searchQuery(text string) string {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	seen := make(map[string]struct{}, len(words))
	terms := make([]string, 0, len(words))
	for _, w := range words {
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		terms = append(terms, w)
	}
	return strings.Join(terms, " | ")
}

func (r *jobPostingRepository) fetchMany(ctx context.Context, query string, args ...any) ([]domain.JobPosting, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, mapPgError(err)
	}
	defer rows.Close()

	postings := make([]domain.JobPosting, 0)
	for rows.Next() {
		var posting domain.JobPosting
		if err := scanPosting(rows, &posting); err != nil {
			return nil, err
		}
		postings = append(postings, posting)
	}
	return postings, rows.Err()
}

func scanPosting(row pgx.Row, posting *domain.JobPosting) error {
	return row.Scan(
		&posting.ID,
		&posting.Role,
		&posting.Description,
		&posting.Experience,
		&posting.SkillSet,
		&posting.RecruiterID,
		&posting.CreatedAt,
	)
}
