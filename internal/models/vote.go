package models

import (
	"time"
)

// Vote kinds
const (
	VoteTypeFree = "free"
	VoteTypePaid = "paid"
)

// Vote is an append-only fact: one row per counted vote. A purchase produces
// several rows, so the one-per-day rule is not a uniqueness constraint.
type Vote struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"column:user_id;not null;index:idx_votes_user_created,priority:1" json:"user_id"`
	CandidateID uint      `gorm:"column:candidate_id;not null;index" json:"candidate_id"`
	Type        string    `gorm:"column:type;type:varchar(8);not null;index" json:"type"`
	CreatedAt   time.Time `gorm:"index:idx_votes_user_created,priority:2" json:"created_at"`
}

// TableName specifies the table name for Vote
func (Vote) TableName() string {
	return "votes"
}

func ValidVoteType(t string) bool {
	return t == VoteTypeFree || t == VoteTypePaid
}

// CandidateTally is the per-candidate aggregate shown on the results board.
type CandidateTally struct {
	CandidateID  uint  `json:"candidate_id"`
	FreeVotes    int64 `json:"free_votes"`
	PaidVotes    int64 `json:"paid_votes"`
	TotalVotes   int64 `json:"total_votes"`
	UniqueVoters int64 `json:"unique_voters"`
}

// CandidateResult pairs a candidate with its tally.
type CandidateResult struct {
	Candidate Candidate `json:"candidate"`
	CandidateTally
}

// VoteHistoryItem is a vote joined with its candidate's display name.
type VoteHistoryItem struct {
	ID            uint      `json:"id"`
	CandidateID   uint      `json:"candidate_id"`
	CandidateName string    `json:"candidate_name"`
	Type          string    `json:"type"`
	CreatedAt     time.Time `json:"created_at"`
}

// AdminVoteItem is a vote joined with its owner and candidate.
type AdminVoteItem struct {
	ID            uint      `json:"id"`
	UserID        uint      `json:"user_id"`
	UserEmail     string    `json:"user_email"`
	CandidateID   uint      `json:"candidate_id"`
	CandidateName string    `json:"candidate_name"`
	Type          string    `json:"type"`
	CreatedAt     time.Time `json:"created_at"`
}

// VoteFilter narrows the admin vote listing. Zero values mean "any".
type VoteFilter struct {
	UserID uint
	Type   string
}

// Eligibility is the answer to "may this user vote now".
type Eligibility struct {
	CanVote   bool
	NextVote  *time.Time
	TodayVote *VoteHistoryItem
}

/** -------------------- DTOs -------------------- */

// VoteRequest defines the input for casting a free vote
type VoteRequest struct {
	CandidateID uint `json:"candidate_id" binding:"required"`
}

// PurchaseVoteRequest defines the input for buying votes
type PurchaseVoteRequest struct {
	CandidateID uint `json:"candidate_id" binding:"required"`
	Quantity    int  `json:"quantity" binding:"max=1000"`
}

type VoteCounts struct {
	FreeVotes  int64 `json:"free_votes"`
	PaidVotes  int64 `json:"paid_votes"`
	TotalVotes int64 `json:"total_votes"`
}

type CastVoteResponse struct {
	Message           string     `json:"message"`
	Vote              Vote       `json:"vote"`
	DailyLimitReached bool       `json:"daily_limit_reached"`
	NextVoteDate      time.Time  `json:"next_vote_date"`
	UpdatedVoteCounts VoteCounts `json:"updated_vote_counts"`
}

type PurchaseVoteResponse struct {
	Message           string     `json:"message"`
	TotalVotes        int        `json:"total_votes"`
	Votes             []Vote     `json:"votes"`
	DailyLimitReached bool       `json:"daily_limit_reached"`
	NextVoteDate      time.Time  `json:"next_vote_date"`
	UpdatedVoteCounts VoteCounts `json:"updated_vote_counts"`
}

type TodayVote struct {
	CandidateName string    `json:"candidate_name"`
	VoteType      string    `json:"vote_type"`
	VotedAt       time.Time `json:"voted_at"`
}

type CanVoteResponse struct {
	CanVote      bool       `json:"can_vote"`
	NextVoteDate *time.Time `json:"next_vote_date"`
	TodayVote    *TodayVote `json:"today_vote"`
}

// DailyLimitResponse is returned when the daily vote was already used.
type DailyLimitResponse struct {
	Message      string    `json:"message"`
	Error        string    `json:"error"`
	NextVoteDate time.Time `json:"next_vote_date"`
}

func (t CandidateTally) Counts() VoteCounts {
	return VoteCounts{
		FreeVotes:  t.FreeVotes,
		PaidVotes:  t.PaidVotes,
		TotalVotes: t.TotalVotes,
	}
}
