package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vrindavan/society-portal/internal/domain"
	"vrindavan/society-portal/internal/repository"
	"vrindavan/society-portal/internal/service"
)

// SubmissionHandler holds the submission service dependency.
type SubmissionHandler struct {
	submissionService service.SubmissionService
}

// NewSubmissionHandler creates a new SubmissionHandler.
func NewSubmissionHandler(submissionService service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{submissionService: submissionService}
}

// --- Request/Response Structs ---

// CreateSubmissionRequest is shared by all three create endpoints; the route
// fixes the type, and exactly one variant block must be present for it.
type CreateSubmissionRequest struct {
	FlatNumber string                         `json:"flatNumber" binding:"required"`
	FullName   string                         `json:"fullName" binding:"required"`
	Email      string                         `json:"email" binding:"required,email"`
	Phone      string                         `json:"phone"`
	Documents  map[string]domain.DocumentMeta `json:"documents" binding:"required"`

	ShareCertificate *domain.ShareCertificateDetails `json:"shareCertificate,omitempty"`
	Nomination       *domain.NominationDetails       `json:"nomination,omitempty"`
	NOC              *domain.NOCDetails              `json:"noc,omitempty"`
}

type CreateSubmissionResponse struct {
	AcknowledgementNumber string `json:"acknowledgementNumber"`
}

type UpdateStatusRequest struct {
	Status  domain.Status `json:"status" binding:"required"`
	Remarks string        `json:"remarks"`
}

// --- Handler Methods ---

// Create godoc
// @Summary Create a submission of the route's type
// @Description Validates the payload and required documents, persists the record and returns the acknowledgement number.
// @Tags Submissions
// @Accept json
// @Produce json
// @Param submission body CreateSubmissionRequest true "Submission payload"
// @Success 201 {object} CreateSubmissionResponse "Submission accepted"
// @Failure 400 {object} gin.H "Invalid input (validation error)"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /{type} [post]
func (h *SubmissionHandler) Create(t domain.SubmissionType) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateSubmissionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
			return
		}

		sub, err := h.submissionService.Submit(c.Request.Context(), service.SubmissionInput{
			Type:             t,
			FlatNumber:       req.FlatNumber,
			FullName:         req.FullName,
			Email:            req.Email,
			Phone:            req.Phone,
			Documents:        req.Documents,
			ShareCertificate: req.ShareCertificate,
			Nomination:       req.Nomination,
			NOC:              req.NOC,
		})
		if err != nil {
			respondServiceError(c, err)
			return
		}

		c.JSON(http.StatusCreated, CreateSubmissionResponse{
			AcknowledgementNumber: sub.AcknowledgementNumber,
		})
	}
}

// Status godoc
// @Summary Look up a submission by acknowledgement number
// @Description Exact-match lookup; the acknowledgement number is the sole applicant-facing key.
// @Tags Submissions
// @Produce json
// @Param ackNo path string true "Acknowledgement number"
// @Success 200 {object} domain.Submission
// @Failure 404 {object} gin.H "Unknown acknowledgement number"
// @Router /{type}/status/{ackNo} [get]
func (h *SubmissionHandler) Status(t domain.SubmissionType) gin.HandlerFunc {
	return func(c *gin.Context) {
		sub, err := h.submissionService.GetByAcknowledgement(c.Request.Context(), t, c.Param("ackNo"))
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, sub)
	}
}

// List godoc
// @Summary List submissions of the route's type (admin)
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Param flatNumber query string false "Filter by flat number"
// @Success 200 {array} domain.Submission
// @Router /{type} [get]
func (h *SubmissionHandler) List(t domain.SubmissionType) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := repository.SubmissionFilter{
			Status:     domain.Status(c.Query("status")),
			FlatNumber: c.Query("flatNumber"),
		}

		subs, err := h.submissionService.List(c.Request.Context(), t, filter)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, subs)
	}
}

// Get godoc
// @Summary Get one submission by id (admin)
// @Produce json
// @Security BearerAuth
// @Param id path string true "Submission id"
// @Success 200 {object} domain.Submission
// @Failure 404 {object} gin.H "Unknown id"
// @Router /{type}/{id} [get]
func (h *SubmissionHandler) Get(t domain.SubmissionType) gin.HandlerFunc {
	return func(c *gin.Context) {
		sub, err := h.submissionService.GetByID(c.Request.Context(), t, c.Param("id"))
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, sub)
	}
}

// UpdateStatus godoc
// @Summary Overwrite a submission's status and remarks (admin)
// @Description No transition graph is enforced; any status may follow any other.
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Submission id"
// @Param update body UpdateStatusRequest true "New status"
// @Success 200 {object} domain.Submission
// @Failure 400 {object} gin.H "Invalid status"
// @Failure 404 {object} gin.H "Unknown id"
// @Router /{type}/{id} [put]
func (h *SubmissionHandler) UpdateStatus(t domain.SubmissionType) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
			return
		}

		sub, err := h.submissionService.UpdateStatus(c.Request.Context(), t, c.Param("id"), req.Status, req.Remarks)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, sub)
	}
}

// Delete godoc
// @Summary Delete a submission and release its stored documents (admin)
// @Produce json
// @Security BearerAuth
// @Param id path string true "Submission id"
// @Success 204 "Deleted"
// @Failure 404 {object} gin.H "Unknown id"
// @Router /{type}/{id} [delete]
func (h *SubmissionHandler) Delete(t domain.SubmissionType) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := h.submissionService.Delete(c.Request.Context(), t, c.Param("id")); err != nil {
			respondServiceError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
