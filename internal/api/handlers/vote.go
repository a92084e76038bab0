package handlers

import (
	"net/http"
	"strconv"
	"time"

	"voting-service/internal/api/middleware"
	"voting-service/internal/models"
	"voting-service/internal/services"
	"voting-service/pkg/response"

	"github.com/gin-gonic/gin"
)

type VoteHandler struct {
	ledger *services.VotingLedger
	now    func() time.Time
}

// NewVoteHandler builds the handler; now defaults to the wall clock.
func NewVoteHandler(ledger *services.VotingLedger, now func() time.Time) *VoteHandler {
	if now == nil {
		now = time.Now
	}
	return &VoteHandler{ledger: ledger, now: now}
}

func (h *VoteHandler) identity(c *gin.Context) (*models.Identity, bool) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		response.Abort(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "")
	}
	return identity, ok
}

// CastVote godoc
// @Summary Cast the daily free vote
// @Description Records one free vote. Each user may cast or purchase once per UTC day.
// @Tags votes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.VoteRequest true "Candidate to vote for"
// @Success 200 {object} models.CastVoteResponse
// @Failure 400 {object} models.ErrorResponse "Invalid input data"
// @Failure 403 {object} models.DailyLimitResponse "Already voted today"
// @Failure 404 {object} models.ErrorResponse "Candidate not found"
// @Router /votes [post]
func (h *VoteHandler) CastVote(c *gin.Context) {
	identity, ok := h.identity(c)
	if !ok {
		return
	}

	var req models.VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	res, err := h.ledger.CastVote(c.Request.Context(), identity.UserID, req.CandidateID, h.now())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.CastVoteResponse{
		Message:           "Vote cast successfully! You have used your daily vote.",
		Vote:              res.Votes[0],
		DailyLimitReached: true,
		NextVoteDate:      res.NextVoteAt,
		UpdatedVoteCounts: res.Tally.Counts(),
	})
}

// PurchaseVotes godoc
// @Summary Purchase paid votes
// @Description Records quantity paid votes plus one bonus paid vote and uses the daily slot.
// @Tags votes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.PurchaseVoteRequest true "Candidate and quantity"
// @Success 200 {object} models.PurchaseVoteResponse
// @Failure 400 {object} models.ErrorResponse "Invalid input data"
// @Failure 403 {object} models.DailyLimitResponse "Already voted today"
// @Failure 404 {object} models.ErrorResponse "Candidate not found"
// @Failure 422 {object} models.ErrorResponse "Quantity must be at least 1"
// @Router /votes/purchase [post]
func (h *VoteHandler) PurchaseVotes(c *gin.Context) {
	identity, ok := h.identity(c)
	if !ok {
		return
	}

	var req models.PurchaseVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	res, err := h.ledger.PurchaseVotes(c.Request.Context(), identity.UserID, req.CandidateID, req.Quantity, h.now())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.PurchaseVoteResponse{
		Message:           "Paid votes purchased with bonus! You have used your daily vote.",
		TotalVotes:        len(res.Votes),
		Votes:             res.Votes,
		DailyLimitReached: true,
		NextVoteDate:      res.NextVoteAt,
		UpdatedVoteCounts: res.Tally.Counts(),
	})
}

// CanVote godoc
// @Summary Daily eligibility
// @Description Reports whether the caller may still vote today and what they voted for.
// @Tags votes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.CanVoteResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /votes/can-vote [get]
func (h *VoteHandler) CanVote(c *gin.Context) {
	identity, ok := h.identity(c)
	if !ok {
		return
	}

	el, err := h.ledger.CanVote(c.Request.Context(), identity.UserID, h.now())
	if err != nil {
		respondError(c, err)
		return
	}

	resp := models.CanVoteResponse{CanVote: el.CanVote, NextVoteDate: el.NextVote}
	if el.TodayVote != nil {
		resp.TodayVote = &models.TodayVote{
			CandidateName: el.TodayVote.CandidateName,
			VoteType:      el.TodayVote.Type,
			VotedAt:       el.TodayVote.CreatedAt,
		}
	}
	c.JSON(http.StatusOK, resp)
}

// History godoc
// @Summary Vote history
// @Description Lists the caller's votes, most recent first.
// @Tags votes
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.VoteHistoryItem
// @Failure 401 {object} models.ErrorResponse
// @Router /votes/history [get]
func (h *VoteHandler) History(c *gin.Context) {
	identity, ok := h.identity(c)
	if !ok {
		return
	}

	history, err := h.ledger.VoteHistory(c.Request.Context(), identity.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}

// AdminVotes godoc
// @Summary List all votes
// @Description Admin listing of every vote, optionally filtered by user or kind.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param user_id query int false "Only votes of this user"
// @Param type query string false "free or paid"
// @Success 200 {array} models.AdminVoteItem
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /admin/votes [get]
func (h *VoteHandler) AdminVotes(c *gin.Context) {
	var filter models.VoteFilter

	if raw := c.Query("user_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			response.Abort(c, http.StatusBadRequest, response.ErrCodeInvalidRequest, "user_id must be a positive integer")
			return
		}
		filter.UserID = uint(id)
	}
	if raw := c.Query("type"); raw != "" {
		if !models.ValidVoteType(raw) {
			response.Abort(c, http.StatusBadRequest, response.ErrCodeInvalidRequest, "type must be free or paid")
			return
		}
		filter.Type = raw
	}

	votes, err := h.ledger.ListVotes(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, votes)
}
