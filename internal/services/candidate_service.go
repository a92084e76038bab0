package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"strings"
	"time"

	"voting-service/internal/events"
	"voting-service/internal/models"
	"voting-service/internal/repositories/gormrepo"
	"voting-service/internal/storage"
)

// CandidateService manages the roster. Every change drops the cached results.
type CandidateService struct {
	repo      *gormrepo.CandidateRepository
	images    storage.ImageStore
	ledger    *VotingLedger
	publisher events.Publisher
}

func NewCandidateService(repo *gormrepo.CandidateRepository, images storage.ImageStore, ledger *VotingLedger, publisher events.Publisher) *CandidateService {
	return &CandidateService{
		repo:      repo,
		images:    images,
		ledger:    ledger,
		publisher: publisher,
	}
}

func (s *CandidateService) List(ctx context.Context) ([]models.Candidate, error) {
	candidates, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	if candidates == nil {
		candidates = []models.Candidate{}
	}
	return candidates, nil
}

func (s *CandidateService) Get(ctx context.Context, id uint) (*models.Candidate, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapCandidateErr(err)
	}
	return c, nil
}

func (s *CandidateService) Create(ctx context.Context, req *models.CreateCandidateRequest) (*models.Candidate, error) {
	c := &models.Candidate{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Image:       req.Image,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, mapCandidateErr(err)
	}

	slog.Info("Candidate created", "id", c.ID, "name", c.Name)
	s.changed(ctx, events.TypeCandidateChanged, c.ID)
	return c, nil
}

func (s *CandidateService) Update(ctx context.Context, id uint, req *models.UpdateCandidateRequest) (*models.Candidate, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapCandidateErr(err)
	}

	if req.Name != nil {
		c.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		c.Description = *req.Description
	}
	if req.Image != nil {
		c.Image = *req.Image
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, mapCandidateErr(err)
	}

	slog.Info("Candidate updated", "id", c.ID)
	s.changed(ctx, events.TypeCandidateChanged, c.ID)
	return s.Get(ctx, id)
}

// Delete removes the candidate together with its votes and returns how many
// votes were removed.
func (s *CandidateService) Delete(ctx context.Context, id uint) (int64, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return 0, mapCandidateErr(err)
	}

	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return 0, mapCandidateErr(err)
	}

	if c.Image != "" && s.images != nil {
		if err := s.images.Remove(ctx, c.Image); err != nil {
			slog.Warn("Failed to remove candidate image", "id", id, "error", err)
		}
	}

	slog.Info("Candidate deleted", "id", id, "removedVotes", removed)
	s.changed(ctx, events.TypeCandidateDeleted, id)
	return removed, nil
}

// UploadImage stores a new picture for the candidate and replaces the old one.
func (s *CandidateService) UploadImage(ctx context.Context, id uint, file *multipart.FileHeader) (*models.Candidate, error) {
	if s.images == nil {
		return nil, errors.New("image storage is not configured")
	}

	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapCandidateErr(err)
	}

	img, err := storage.ReadImage(file)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidImage) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
		}
		return nil, err
	}

	ref, err := s.images.Save(ctx, img)
	if err != nil {
		return nil, err
	}

	previous := c.Image
	c.Image = ref
	if err := s.repo.Update(ctx, c); err != nil {
		if rmErr := s.images.Remove(ctx, ref); rmErr != nil {
			slog.Warn("Failed to remove orphaned image", "ref", ref, "error", rmErr)
		}
		return nil, mapCandidateErr(err)
	}
	if previous != "" {
		if err := s.images.Remove(ctx, previous); err != nil {
			slog.Warn("Failed to remove previous image", "ref", previous, "error", err)
		}
	}

	slog.Info("Candidate image uploaded", "id", id, "ref", ref)
	s.changed(ctx, events.TypeCandidateChanged, id)
	return c, nil
}

func (s *CandidateService) changed(ctx context.Context, kind string, id uint) {
	if s.ledger != nil {
		s.ledger.InvalidateResults(ctx)
	}
	events.PublishQuietly(ctx, s.publisher, events.Event{
		Type:        kind,
		CandidateID: id,
		OccurredAt:  time.Now().UTC(),
	})
}

func mapCandidateErr(err error) error {
	switch {
	case errors.Is(err, gormrepo.ErrCandidateNotFound):
		return ErrCandidateNotFound
	case errors.Is(err, gormrepo.ErrCandidateNameExists):
		return ErrCandidateExists
	}
	return err
}
