package handlers

import (
	"fmt"
	"net/http"

	"voting-service/internal/models"
	"voting-service/internal/services"

	"github.com/gin-gonic/gin"
)

type CandidateHandler struct {
	candidateService *services.CandidateService
}

func NewCandidateHandler(candidateService *services.CandidateService) *CandidateHandler {
	return &CandidateHandler{candidateService: candidateService}
}

// List godoc
// @Summary List candidates
// @Tags candidates
// @Produce json
// @Success 200 {array} models.Candidate
// @Router /candidates [get]
func (h *CandidateHandler) List(c *gin.Context) {
	candidates, err := h.candidateService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, candidates)
}

// Get godoc
// @Summary Get a candidate
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Candidate ID"
// @Success 200 {object} models.Candidate
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/candidates/{id} [get]
func (h *CandidateHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	candidate, err := h.candidateService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, candidate)
}

// Create godoc
// @Summary Create a candidate
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateCandidateRequest true "Candidate data"
// @Success 201 {object} models.Candidate
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse "Name already taken"
// @Router /admin/candidates [post]
func (h *CandidateHandler) Create(c *gin.Context) {
	var req models.CreateCandidateRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, err)
		return
	}

	candidate, err := h.candidateService.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, candidate)
}

// Update godoc
// @Summary Update a candidate
// @Description Only the fields present in the body are changed.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Candidate ID"
// @Param request body models.UpdateCandidateRequest true "Fields to change"
// @Success 200 {object} models.Candidate
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /admin/candidates/{id} [put]
func (h *CandidateHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req models.UpdateCandidateRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, err)
		return
	}

	candidate, err := h.candidateService.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, candidate)
}

// Delete godoc
// @Summary Delete a candidate
// @Description Removes the candidate and every vote cast for it.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Candidate ID"
// @Success 200 {object} models.DeleteCandidateResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/candidates/{id} [delete]
func (h *CandidateHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	removed, err := h.candidateService.Delete(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.DeleteCandidateResponse{
		Message:      fmt.Sprintf("Candidate deleted together with %d votes", removed),
		RemovedVotes: removed,
	})
}

// UploadImage godoc
// @Summary Upload a candidate image
// @Description Accepts a jpeg, png or gif of at most 2MB in the "image" field.
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Candidate ID"
// @Param image formData file true "Image file"
// @Success 200 {object} models.Candidate
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Router /admin/candidates/{id}/image [post]
func (h *CandidateHandler) UploadImage(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		badRequest(c, err)
		return
	}

	candidate, err := h.candidateService.UploadImage(c.Request.Context(), id, file)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, candidate)
}
