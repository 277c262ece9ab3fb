package memory

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/hiring-service/internal/domain"
	"github.com/spec-kit/hiring-service/internal/repository"
)

func TestUserRepositoryCreateAndLookup(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	user := &domain.User{Username: "r1", Email: "r1@example.com", PasswordHash: "hash", Role: domain.RoleRecruiter}
	require.NoError(t, repo.Create(ctx, user))
	require.NotEmpty(t, user.ID)

	byName, err := repo.GetByUsername(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byName.ID)

	byID, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "r1", byID.Username)

	_, err = repo.GetByUsername(ctx, "R1")
	assert.ErrorIs(t, err, repository.ErrNotFound, "lookups are case-sensitive")

	err = repo.Create(ctx, &domain.User{Username: "r1", Role: domain.RoleJobSeeker})
	assert.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestUserRepositoryReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()
	user := &domain.User{Username: "c1", Role: domain.RoleJobSeeker}
	require.NoError(t, repo.Create(ctx, user))

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	got.Role = domain.RoleRecruiter

	again, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleJobSeeker, again.Role)

	require.NoError(t, repo.SetRole(user.ID, domain.RoleRecruiter))
	again, err = repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleRecruiter, again.Role)
}

func TestJobPostingSearchOrdersByExperienceAndLimits(t *testing.T) {
	ctx := context.Background()
	repo := NewJobPostingRepository()

	for i, exp := range []int{7, 3, 9, 1, 5, 2, 8} {
		require.NoError(t, repo.Create(ctx, &domain.JobPosting{
			Role:        fmt.Sprintf("Engineer %d", i),
			Description: "backend services",
			Experience:  exp,
			SkillSet:    []string{"Go"},
		}))
	}
	require.NoError(t, repo.Create(ctx, &domain.JobPosting{Role: "Designer", Description: "ui", Experience: 0}))

	results, err := repo.Search(ctx, "engineer", repository.SearchLimit)
	require.NoError(t, err)
	require.Len(t, results, 5)

	got := make([]int, 0, len(results))
	for _, p := range results {
		got = append(got, p.Experience)
	}
	assert.Equal(t, []int{1, 2, 3, 5, 7}, got)
}

func TestJobPostingSearchMatchesSkillsAndDescription(t *testing.T) {
	ctx := context.Background()
	repo := NewJobPostingRepository()
	require.NoError(t, repo.Create(ctx, &domain.JobPosting{Role: "Engineer", Description: "payments", SkillSet: []string{"Kafka"}}))
	require.NoError(t, repo.Create(ctx, &domain.JobPosting{Role: "Analyst", Description: "reporting", SkillSet: []string{"SQL"}}))

	bySkill, err := repo.Search(ctx, "kafka", 0)
	require.NoError(t, err)
	require.Len(t, bySkill, 1)
	assert.Equal(t, "Engineer", bySkill[0].Role)

	anyTerm, err := repo.Search(ctx, "reporting payments", 0)
	require.NoError(t, err)
	assert.Len(t, anyTerm, 2)

	none, err := repo.Search(ctx, "   ", 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestJobPostingGetByID(t *testing.T) {
	ctx := context.Background()
	repo := NewJobPostingRepository()
	posting := &domain.JobPosting{Role: "Engineer", SkillSet: []string{"Go"}}
	require.NoError(t, repo.Create(ctx, posting))

	got, err := repo.GetByID(ctx, posting.ID)
	require.NoError(t, err)
	got.SkillSet[0] = "mutated"

	again, err := repo.GetByID(ctx, posting.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Go"}, again.SkillSet)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCandidateProfileUpsertKeepsOneProfilePerUser(t *testing.T) {
	ctx := context.Background()
	repo := NewCandidateProfileRepository()

	first := &domain.CandidateProfile{UserID: "u1", FullName: "First"}
	require.NoError(t, repo.Upsert(ctx, first))

	second := &domain.CandidateProfile{UserID: "u1", FullName: "Second"}
	require.NoError(t, repo.Upsert(ctx, second))
	assert.Equal(t, first.ID, second.ID)

	got, err := repo.GetByUserID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Second", got.FullName)

	_, err = repo.GetByUserID(ctx, "u2")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
