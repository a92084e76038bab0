package gormrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"voting-service/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VoteRepository struct {
	db *gorm.DB
}

func NewVoteRepository(db *gorm.DB) *VoteRepository {
	return &VoteRepository{db: db}
}

// WithUserLock runs fn in a transaction that holds a row lock on the user, so
// concurrent writers for the same user are serialized while other users
// proceed in parallel. The repository passed to fn is bound to the
// transaction and must be used for every query inside fn.
func (r *VoteRepository) WithUserLock(ctx context.Context, userID uint, fn func(tx *VoteRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx.Model(&models.User{}).Select("id").Where("id = ?", userID)
		if tx.Dialector.Name() != "sqlite" {
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var user models.User
		if err := q.Take(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return fmt.Errorf("failed to lock user: %w", err)
		}

		return fn(&VoteRepository{db: tx})
	})
}

func (r *VoteRepository) CandidateExists(ctx context.Context, candidateID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Candidate{}).Where("id = ?", candidateID).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check candidate: %w", err)
	}
	return count > 0, nil
}

// FirstVoteSince returns the user's earliest vote created at or after since,
// or nil when there is none.
func (r *VoteRepository) FirstVoteSince(ctx context.Context, userID uint, since time.Time) (*models.VoteHistoryItem, error) {
	var items []models.VoteHistoryItem
	err := r.historyQuery(ctx).
		Where("votes.user_id = ? AND votes.created_at >= ?", userID, since).
		Order("votes.created_at ASC, votes.id ASC").
		Limit(1).
		Scan(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to look up today's vote: %w", err)
	}
	if len(items) == 0 {
		return nil, nil
	}
	return &items[0], nil
}

// CreateBatch inserts all rows in one statement and fills in their ids.
func (r *VoteRepository) CreateBatch(ctx context.Context, votes []models.Vote) error {
	if len(votes) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(&votes).Error; err != nil {
		return fmt.Errorf("failed to create votes: %w", err)
	}
	return nil
}

type tallyRow struct {
	CandidateID  uint
	Name         string
	Description  string
	Image        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	FreeVotes    int64
	PaidVotes    int64
	UniqueVoters int64
}

func (row tallyRow) result() models.CandidateResult {
	return models.CandidateResult{
		Candidate: models.Candidate{
			ID:          row.CandidateID,
			Name:        row.Name,
			Description: row.Description,
			Image:       row.Image,
			CreatedAt:   row.CreatedAt,
			UpdatedAt:   row.UpdatedAt,
		},
		CandidateTally: models.CandidateTally{
			CandidateID:  row.CandidateID,
			FreeVotes:    row.FreeVotes,
			PaidVotes:    row.PaidVotes,
			TotalVotes:   row.FreeVotes + row.PaidVotes,
			UniqueVoters: row.UniqueVoters,
		},
	}
}

func (r *VoteRepository) tallyQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Table("candidates").
		Select(`candidates.id AS candidate_id, candidates.name, candidates.description, candidates.image,
			candidates.created_at, candidates.updated_at,
			COALESCE(SUM(CASE WHEN votes.type = ? THEN 1 ELSE 0 END), 0) AS free_votes,
			COALESCE(SUM(CASE WHEN votes.type = ? THEN 1 ELSE 0 END), 0) AS paid_votes,
			COUNT(DISTINCT votes.user_id) AS unique_voters`, models.VoteTypeFree, models.VoteTypePaid).
		Joins("LEFT JOIN votes ON votes.candidate_id = candidates.id").
		Group("candidates.id, candidates.name, candidates.description, candidates.image, candidates.created_at, candidates.updated_at")
}

// Tallies aggregates every candidate's votes, ordered by candidate id.
func (r *VoteRepository) Tallies(ctx context.Context) ([]models.CandidateResult, error) {
	var rows []tallyRow
	if err := r.tallyQuery(ctx).Order("candidates.id ASC").Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate votes: %w", err)
	}

	results := make([]models.CandidateResult, len(rows))
	for i, row := range rows {
		results[i] = row.result()
	}
	return results, nil
}

func (r *VoteRepository) TallyFor(ctx context.Context, candidateID uint) (*models.CandidateResult, error) {
	var rows []tallyRow
	if err := r.tallyQuery(ctx).Where("candidates.id = ?", candidateID).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate candidate votes: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrCandidateNotFound
	}
	res := rows[0].result()
	return &res, nil
}

func (r *VoteRepository) historyQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Table("votes").
		Select("votes.id, votes.candidate_id, candidates.name AS candidate_name, votes.type, votes.created_at").
		Joins("JOIN candidates ON candidates.id = votes.candidate_id")
}

// HistoryForUser lists the user's votes, most recent first.
func (r *VoteRepository) HistoryForUser(ctx context.Context, userID uint) ([]models.VoteHistoryItem, error) {
	items := []models.VoteHistoryItem{}
	err := r.historyQuery(ctx).
		Where("votes.user_id = ?", userID).
		Order("votes.created_at DESC, votes.id DESC").
		Scan(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load vote history: %w", err)
	}
	return items, nil
}

// List returns every vote matching filter with owner and candidate, newest first.
func (r *VoteRepository) List(ctx context.Context, filter models.VoteFilter) ([]models.AdminVoteItem, error) {
	q := r.db.WithContext(ctx).Table("votes").
		Select(`votes.id, votes.user_id, users.email AS user_email, votes.candidate_id,
			candidates.name AS candidate_name, votes.type, votes.created_at`).
		Joins("JOIN users ON users.id = votes.user_id").
		Joins("JOIN candidates ON candidates.id = votes.candidate_id")
	if filter.UserID != 0 {
		q = q.Where("votes.user_id = ?", filter.UserID)
	}
	if filter.Type != "" {
		q = q.Where("votes.type = ?", filter.Type)
	}

	items := []models.AdminVoteItem{}
	if err := q.Order("votes.created_at DESC, votes.id DESC").Scan(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list votes: %w", err)
	}
	return items, nil
}
