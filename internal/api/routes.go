package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vrindavan/society-portal/internal/domain"
	"vrindavan/society-portal/internal/service"
)

// Route segments per submission type. Exports use the plural form.
var routeSegments = map[domain.SubmissionType]struct {
	base   string
	export string
}{
	domain.TypeShareCertificate: {base: "/share-certificate", export: "/share-certificates"},
	domain.TypeNomination:       {base: "/nomination", export: "/nominations"},
	domain.TypeNOCRequest:       {base: "/noc-request", export: "/noc-requests"},
}

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	submissionService service.SubmissionService,
	uploadService service.UploadService,
	adminService service.AdminService,
) {
	submissionHandler := NewSubmissionHandler(submissionService)
	uploadHandler := NewUploadHandler(uploadService)
	adminHandler := NewAdminHandler(adminService)

	adminAuth := AdminAuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		// --- Applicant routes (no auth) ---
		for _, t := range domain.AllSubmissionTypes {
			seg := routeSegments[t]
			apiV1.POST(seg.base, submissionHandler.Create(t))
			apiV1.GET(seg.base+"/status/:ackNo", submissionHandler.Status(t))
		}

		apiV1.POST("/upload", uploadHandler.Upload)
		apiV1.DELETE("/upload", uploadHandler.Delete)

		apiV1.POST("/admin/login", adminHandler.Login)

		// --- Admin-only submission CRUD ---
		for _, t := range domain.AllSubmissionTypes {
			seg := routeSegments[t]
			group := apiV1.Group(seg.base)
			group.Use(adminAuth)
			{
				group.GET("", submissionHandler.List(t))
				group.GET("/:id", submissionHandler.Get(t))
				group.PUT("/:id", submissionHandler.UpdateStatus(t))
				group.DELETE("/:id", submissionHandler.Delete(t))
				group.GET("/:id/documents/:docType/url", adminHandler.DocumentURL(t))
			}
		}

		// --- Admin dashboard, export, notifications ---
		adminGroup := apiV1.Group("/admin")
		adminGroup.Use(adminAuth)
		{
			adminGroup.GET("/profile", adminHandler.Profile)
			adminGroup.GET("/dashboard/stats", adminHandler.Stats)
			adminGroup.POST("/send-notification", adminHandler.SendNotification)
			for _, t := range domain.AllSubmissionTypes {
				adminGroup.GET("/export"+routeSegments[t].export, adminHandler.Export(t))
			}
		}
	}
}
