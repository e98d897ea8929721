package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vrindavan/society-portal/internal/service"
)

// UploadHandler holds the upload service dependency.
type UploadHandler struct {
	uploadService service.UploadService
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(uploadService service.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

type DeleteUploadRequest struct {
	Key string `json:"key" binding:"required"`
}

// Upload godoc
// @Summary Upload one applicant document
// @Description Multipart upload of a single PDF/JPEG up to 2MB. Returns the document metadata the client embeds into the submission payload.
// @Tags Uploads
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Document file"
// @Param flatNumber formData string true "Applicant flat number"
// @Param fullName formData string true "Applicant full name"
// @Param documentType formData string true "Document-type label, e.g. identity-proof"
// @Success 201 {object} domain.DocumentMeta
// @Failure 400 {object} gin.H "Invalid input (size, type, missing context)"
// @Failure 502 {object} gin.H "Storage backend failure"
// @Router /upload [post]
func (h *UploadHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Could not read uploaded file")
		return
	}
	defer file.Close()

	meta, err := h.uploadService.Upload(c.Request.Context(), service.UploadInput{
		FileName:     fileHeader.Filename,
		ContentType:  fileHeader.Header.Get("Content-Type"),
		Size:         fileHeader.Size,
		Body:         file,
		FlatNumber:   c.PostForm("flatNumber"),
		FullName:     c.PostForm("fullName"),
		DocumentType: c.PostForm("documentType"),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, meta)
}

// Delete godoc
// @Summary Remove a stored file by key
// @Description Idempotent; deleting a key that no longer exists succeeds.
// @Tags Uploads
// @Accept json
// @Produce json
// @Param key body DeleteUploadRequest true "Storage key"
// @Success 204 "Deleted"
// @Failure 400 {object} gin.H "Missing key"
// @Failure 502 {object} gin.H "Storage backend failure"
// @Router /upload [delete]
func (h *UploadHandler) Delete(c *gin.Context) {
	var req DeleteUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	if err := h.uploadService.Delete(c.Request.Context(), req.Key); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
