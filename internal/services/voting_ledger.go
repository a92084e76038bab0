package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"voting-service/internal/events"
	"voting-service/internal/models"
	"voting-service/internal/repositories/gormrepo"
)

// ResultsCache stores the last computed results board. A miss is reported
// with found == false and a nil error.
type ResultsCache interface {
	GetResults(ctx context.Context) (results []models.CandidateResult, found bool, err error)
	SetResults(ctx context.Context, results []models.CandidateResult, ttl time.Duration) error
	InvalidateResults(ctx context.Context) error
}

// CastResult is what a successful cast or purchase produced.
type CastResult struct {
	Votes      []models.Vote
	Tally      models.CandidateTally
	NextVoteAt time.Time
}

// VotingLedger owns the once-per-UTC-day voting rule and the tallies.
type VotingLedger struct {
	votes     *gormrepo.VoteRepository
	publisher events.Publisher
	cache     ResultsCache
	cacheTTL  time.Duration
}

// NewVotingLedger wires the ledger. publisher and cache may be nil.
func NewVotingLedger(votes *gormrepo.VoteRepository, publisher events.Publisher, cache ResultsCache, cacheTTL time.Duration) *VotingLedger {
	return &VotingLedger{
		votes:     votes,
		publisher: publisher,
		cache:     cache,
		cacheTTL:  cacheTTL,
	}
}

// DayStart is the UTC midnight that begins the calendar day of now.
func DayStart(now time.Time) time.Time {
	u := now.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// NextVoteAt is the first instant of the UTC day after now.
func NextVoteAt(now time.Time) time.Time {
	return DayStart(now).Add(24 * time.Hour)
}

func eligibility(ctx context.Context, repo *gormrepo.VoteRepository, userID uint, now time.Time) (*models.Eligibility, error) {
	today, err := repo.FirstVoteSince(ctx, userID, DayStart(now))
	if err != nil {
		return nil, err
	}
	if today == nil {
		return &models.Eligibility{CanVote: true}, nil
	}

	next := NextVoteAt(now)
	return &models.Eligibility{CanVote: false, NextVote: &next, TodayVote: today}, nil
}

// CanVote reports whether the user has not voted yet during now's UTC day.
// It always reads the stored votes.
func (l *VotingLedger) CanVote(ctx context.Context, userID uint, now time.Time) (*models.Eligibility, error) {
	return eligibility(ctx, l.votes, userID, now)
}

// CastVote records one free vote.
func (l *VotingLedger) CastVote(ctx context.Context, userID, candidateID uint, now time.Time) (*CastResult, error) {
	result, err := l.record(ctx, userID, candidateID, 1, models.VoteTypeFree, now)
	if err != nil {
		return nil, err
	}

	slog.Info("Free vote cast", "userID", userID, "candidateID", candidateID)
	l.afterWrite(ctx, events.TypeVoteCast, userID, candidateID, models.VoteTypeFree, result)
	return result, nil
}

// PurchaseVotes records quantity paid votes plus one bonus paid vote.
func (l *VotingLedger) PurchaseVotes(ctx context.Context, userID, candidateID uint, quantity int, now time.Time) (*CastResult, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	result, err := l.record(ctx, userID, candidateID, quantity+1, models.VoteTypePaid, now)
	if err != nil {
		return nil, err
	}

	slog.Info("Votes purchased", "userID", userID, "candidateID", candidateID, "quantity", quantity, "rows", len(result.Votes))
	l.afterWrite(ctx, events.TypeVotePurchased, userID, candidateID, models.VoteTypePaid, result)
	return result, nil
}

// record re-checks eligibility and inserts rows while holding the user's lock,
// so two requests of the same user cannot both pass the check.
func (l *VotingLedger) record(ctx context.Context, userID, candidateID uint, rows int, voteType string, now time.Time) (*CastResult, error) {
	var result *CastResult
	err := l.votes.WithUserLock(ctx, userID, func(tx *gormrepo.VoteRepository) error {
		exists, err := tx.CandidateExists(ctx, candidateID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrCandidateNotFound
		}

		el, err := eligibility(ctx, tx, userID, now)
		if err != nil {
			return err
		}
		if !el.CanVote {
			return &DailyLimitError{NextVoteAt: *el.NextVote}
		}

		at := now.UTC()
		votes := make([]models.Vote, rows)
		for i := range votes {
			votes[i] = models.Vote{UserID: userID, CandidateID: candidateID, Type: voteType, CreatedAt: at}
		}
		if err := tx.CreateBatch(ctx, votes); err != nil {
			return err
		}

		tally, err := tx.TallyFor(ctx, candidateID)
		if err != nil {
			return err
		}

		result = &CastResult{Votes: votes, Tally: tally.CandidateTally, NextVoteAt: NextVoteAt(now)}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, gormrepo.ErrUserNotFound):
			return nil, ErrUserNotFound
		case errors.Is(err, gormrepo.ErrCandidateNotFound):
			return nil, ErrCandidateNotFound
		case errors.Is(err, ErrCandidateNotFound), errors.Is(err, ErrDailyLimitExceeded):
			return nil, err
		}
		return nil, fmt.Errorf("failed to record vote: %w", err)
	}
	return result, nil
}

func (l *VotingLedger) afterWrite(ctx context.Context, kind string, userID, candidateID uint, voteType string, result *CastResult) {
	l.InvalidateResults(ctx)

	counts := result.Tally.Counts()
	events.PublishQuietly(ctx, l.publisher, events.Event{
		Type:        kind,
		UserID:      userID,
		CandidateID: candidateID,
		VoteType:    voteType,
		Rows:        len(result.Votes),
		Counts:      &counts,
		OccurredAt:  result.Votes[0].CreatedAt,
	})
}

// ComputeResults returns every candidate's tally ordered by total votes.
func (l *VotingLedger) ComputeResults(ctx context.Context) ([]models.CandidateResult, error) {
	if l.cache != nil {
		cached, found, err := l.cache.GetResults(ctx)
		if err != nil {
			slog.Warn("Failed to read cached results", "error", err)
		} else if found {
			return cached, nil
		}
	}

	results, err := l.votes.Tallies(ctx)
	if err != nil {
		return nil, err
	}
	SortByTotal(results)

	if l.cache != nil && l.cacheTTL > 0 {
		if err := l.cache.SetResults(ctx, results, l.cacheTTL); err != nil {
			slog.Warn("Failed to cache results", "error", err)
		}
	}
	return results, nil
}

// SortByTotal orders results by total votes, highest first. Ties keep their
// current relative order.
func SortByTotal(results []models.CandidateResult) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].TotalVotes > results[j].TotalVotes
	})
}

func (l *VotingLedger) CandidateTally(ctx context.Context, candidateID uint) (*models.CandidateTally, error) {
	res, err := l.votes.TallyFor(ctx, candidateID)
	if err != nil {
		if errors.Is(err, gormrepo.ErrCandidateNotFound) {
			return nil, ErrCandidateNotFound
		}
		return nil, err
	}
	return &res.CandidateTally, nil
}

// VoteHistory lists the user's votes, most recent first.
func (l *VotingLedger) VoteHistory(ctx context.Context, userID uint) ([]models.VoteHistoryItem, error) {
	return l.votes.HistoryForUser(ctx, userID)
}

func (l *VotingLedger) ListVotes(ctx context.Context, filter models.VoteFilter) ([]models.AdminVoteItem, error) {
	return l.votes.List(ctx, filter)
}

// InvalidateResults drops the cached results board.
func (l *VotingLedger) InvalidateResults(ctx context.Context) {
	if l.cache == nil {
		return
	}
	if err := l.cache.InvalidateResults(ctx); err != nil {
		slog.Warn("Failed to invalidate cached results", "error", err)
	}
}
