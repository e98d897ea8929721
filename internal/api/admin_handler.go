package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"vrindavan/society-portal/internal/domain"
	"vrindavan/society-portal/internal/service"
)

// AdminHandler holds the admin service dependency.
type AdminHandler struct {
	adminService service.AdminService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(adminService service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// --- Request/Response Structs ---

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	AccessToken string `json:"accessToken"`
}

type ProfileResponse struct {
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}

type SendNotificationRequest struct {
	Type    domain.SubmissionType `json:"type" binding:"required"`
	Status  domain.Status         `json:"status"`
	Subject string                `json:"subject" binding:"required"`
	Message string                `json:"message" binding:"required"`
}

// --- Handler Methods ---

// Login godoc
// @Summary Authenticate the administrator
// @Description Verifies the credential and returns a bearer token for the admin routes.
// @Tags Admin
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Login credentials"
// @Success 200 {object} LoginResponse "Login successful"
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 401 {object} gin.H "Invalid username or password"
// @Router /admin/login [post]
func (h *AdminHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	token, err := h.adminService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, LoginResponse{AccessToken: token})
}

// Profile godoc
// @Summary Return the authenticated administrator's profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} ProfileResponse
// @Failure 401 {object} gin.H "Unauthorized"
// @Router /admin/profile [get]
func (h *AdminHandler) Profile(c *gin.Context) {
	username, err := getAdminUsernameFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify admin from token")
		return
	}

	admin, err := h.adminService.Profile(c.Request.Context(), username)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, ProfileResponse{
		Username:  admin.Username,
		CreatedAt: admin.CreatedAt,
	})
}

// Stats godoc
// @Summary Dashboard counts per submission type and status
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.DashboardStats
// @Router /admin/dashboard/stats [get]
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.adminService.Stats(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// SendNotification godoc
// @Summary Broadcast an email to applicants (admin)
// @Description Recipients are the applicant emails of the selected submission set. Returns sent/failed counts; failures are not retried.
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param notification body SendNotificationRequest true "Notification payload"
// @Success 200 {object} service.BroadcastResult
// @Failure 400 {object} gin.H "Invalid input"
// @Router /admin/send-notification [post]
func (h *AdminHandler) SendNotification(c *gin.Context) {
	var req SendNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	result, err := h.adminService.Broadcast(c.Request.Context(), service.BroadcastInput{
		Type:    req.Type,
		Status:  req.Status,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Export godoc
// @Summary Download all submissions of a type as an XLSX workbook (admin)
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Success 200 {file} binary
// @Router /admin/export/{type} [get]
func (h *AdminHandler) Export(t domain.SubmissionType) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, err := h.adminService.Export(c.Request.Context(), t)
		if err != nil {
			respondServiceError(c, err)
			return
		}

		fileName := fmt.Sprintf("%s-%s.xlsx", t, time.Now().UTC().Format("20060102"))
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, fileName))
		c.Data(http.StatusOK,
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
	}
}

// DocumentURL godoc
// @Summary Presigned review URL for one submission document (admin)
// @Produce json
// @Security BearerAuth
// @Param id path string true "Submission id"
// @Param docType path string true "Document-type label"
// @Success 200 {object} gin.H "{\"url\": ...}"
// @Failure 404 {object} gin.H "Unknown submission or document"
// @Router /{type}/{id}/documents/{docType}/url [get]
func (h *AdminHandler) DocumentURL(t domain.SubmissionType) gin.HandlerFunc {
	return func(c *gin.Context) {
		url, err := h.adminService.DocumentURL(c.Request.Context(), t, c.Param("id"), c.Param("docType"))
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"url": url})
	}
}
