package handlers

import (
	"net/http"

	"voting-service/internal/services"

	"github.com/gin-gonic/gin"
)

type ResultHandler struct {
	ledger *services.VotingLedger
}

func NewResultHandler(ledger *services.VotingLedger) *ResultHandler {
	return &ResultHandler{ledger: ledger}
}

// Results godoc
// @Summary Results board
// @Description Every candidate with free, paid and total votes, highest total first.
// @Tags results
// @Produce json
// @Success 200 {array} models.CandidateResult
// @Router /results [get]
func (h *ResultHandler) Results(c *gin.Context) {
	results, err := h.ledger.ComputeResults(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}

// CandidateResult godoc
// @Summary Candidate tally
// @Tags results
// @Produce json
// @Param id path int true "Candidate ID"
// @Success 200 {object} models.CandidateTally
// @Failure 404 {object} models.ErrorResponse
// @Router /results/{id} [get]
func (h *ResultHandler) CandidateResult(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	tally, err := h.ledger.CandidateTally(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tally)
}
