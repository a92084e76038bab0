package gormrepo

import (
	"context"
	"errors"
	"fmt"

	"voting-service/internal/models"

	"gorm.io/gorm"
)

type CandidateRepository struct {
	db *gorm.DB
}

func NewCandidateRepository(db *gorm.DB) *CandidateRepository {
	return &CandidateRepository{db}
}

func (r *CandidateRepository) Create(ctx context.Context, candidate *models.Candidate) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureNameFree(tx, candidate.Name, 0); err != nil {
			return err
		}
		if err := tx.Create(candidate).Error; err != nil {
			return fmt.Errorf("failed to create candidate: %w", err)
		}
		return nil
	})
}

func (r *CandidateRepository) Update(ctx context.Context, candidate *models.Candidate) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Candidate
		if err := tx.Select("id").First(&existing, candidate.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCandidateNotFound
			}
			return err
		}
		if err := ensureNameFree(tx, candidate.Name, candidate.ID); err != nil {
			return err
		}
		err := tx.Model(&existing).Updates(map[string]interface{}{
			"name":        candidate.Name,
			"description": candidate.Description,
			"image":       candidate.Image,
		}).Error
		if err != nil {
			return fmt.Errorf("failed to update candidate: %w", err)
		}
		return nil
	})
}

// Delete removes the candidate and every vote cast for it.
func (r *CandidateRepository) Delete(ctx context.Context, candidateID uint) (int64, error) {
	var removedVotes int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		votes := tx.Where("candidate_id = ?", candidateID).Delete(&models.Vote{})
		if votes.Error != nil {
			return fmt.Errorf("failed to delete candidate votes: %w", votes.Error)
		}
		removedVotes = votes.RowsAffected

		result := tx.Delete(&models.Candidate{}, candidateID)
		if result.Error != nil {
			return fmt.Errorf("failed to delete candidate: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrCandidateNotFound
		}
		return nil
	})
	return removedVotes, err
}

func (r *CandidateRepository) GetAll(ctx context.Context) ([]models.Candidate, error) {
	var c []models.Candidate
	err := r.db.WithContext(ctx).Order("id ASC").Find(&c).Error
	return c, err
}

func (r *CandidateRepository) GetByID(ctx context.Context, candidateID uint) (*models.Candidate, error) {
	var c models.Candidate
	err := r.db.WithContext(ctx).First(&c, candidateID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCandidateNotFound
		}
		return nil, err
	}
	return &c, nil
}

func ensureNameFree(tx *gorm.DB, name string, exceptID uint) error {
	var count int64
	q := tx.Model(&models.Candidate{}).Where("name = ?", name)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check candidate name: %w", err)
	}
	if count > 0 {
		return ErrCandidateNameExists
	}
	return nil
}
