package models

import (
	"time"
)

// Candidate is an entry on the roster voters choose from. Candidates are hard
// deleted together with their votes.
type Candidate struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"uniqueIndex;size:255;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Image       string    `gorm:"size:512" json:"image"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Votes []Vote `gorm:"foreignKey:CandidateID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for Candidate
func (Candidate) TableName() string {
	return "candidates"
}

/** -------------------- DTOs -------------------- */

type CreateCandidateRequest struct {
	Name        string `json:"name" form:"name" binding:"required,max=255"`
	Description string `json:"description" form:"description"`
	Image       string `json:"image" form:"image" binding:"omitempty,max=512"`
}

// UpdateCandidateRequest only touches the fields that are present.
type UpdateCandidateRequest struct {
	Name        *string `json:"name" form:"name" binding:"omitempty,min=1,max=255"`
	Description *string `json:"description" form:"description"`
	Image       *string `json:"image" form:"image" binding:"omitempty,max=512"`
}

type DeleteCandidateResponse struct {
	Message      string `json:"message"`
	RemovedVotes int64  `json:"removed_votes"`
}
