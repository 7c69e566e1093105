package routes

import (
	"net/http"
	"time"

	"adamosign/handlers"
	"adamosign/middleware"
	"adamosign/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes registers account endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.POST("/register", handlers.RegisterUserHandler)
		api.POST("/login", handlers.AuthenticateUserHandler)

		// Protected routes (Require Authentication)
		api.Use(middleware.JWTAuthUserMiddleware())
		api.GET("/me", handlers.GetCurrentUserHandler)
		api.DELETE("/revoke", handlers.RevokeUserAuthTokenHandler)
	}
}

// RegisterWizardRoutes registers the document composition wizard endpoints.
func RegisterWizardRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/wizard")
	{
		api.Use(middleware.JWTAuthUserMiddleware())
		api.POST("/session", hb.Wizard.StartSessionHandler)
		api.GET("/session/:sessionID", hb.Wizard.GetSessionHandler)
		api.PUT("/session/:sessionID/step", hb.Wizard.GoToStepHandler)
		api.POST("/session/:sessionID/complete", hb.Wizard.CompleteStepHandler)
		api.POST("/session/:sessionID/file", hb.Wizard.UploadFileHandler)
		api.POST("/session/:sessionID/signatures", hb.Wizard.AddSignatureHandler)
		api.PUT("/session/:sessionID/signatures/:signatureID", hb.Wizard.MoveSignatureHandler)
		api.DELETE("/session/:sessionID/signatures/:signatureID", hb.Wizard.DeleteSignatureHandler)
		api.PUT("/session/:sessionID/participants", hb.Wizard.SetParticipantsHandler)
		api.DELETE("/session/:sessionID", hb.Wizard.CancelSessionHandler)
	}
}

// RegisterDocumentRoutes registers owner-facing document endpoints.
func RegisterDocumentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/documents")
	{
		api.Use(middleware.JWTAuthUserMiddleware())
		api.POST("", hb.Document.SubmitDocumentHandler)
		api.GET("", hb.Document.ListDocumentsHandler)
		api.GET("/id/:documentId", hb.Document.GetDocumentHandler)
		api.GET("/id/:documentId/file", hb.Document.GetDocumentFileHandler)
		api.DELETE("/id/:documentId", hb.Document.DeleteDraftHandler)
	}
}

// RegisterGuestRoutes registers the token-authenticated guest signer
// endpoints. These carry no account auth; the guest token is the credential.
func RegisterGuestRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/api/documents/sign/:token", hb.Guest.ExchangeTokenHandler)
	r.POST("/api/documents/:documentId/signer/:signerId", hb.Guest.SignerActionHandler)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "health": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterUserRoutes(r, hb)
	RegisterWizardRoutes(r, hb)
	RegisterDocumentRoutes(r, hb)
	RegisterGuestRoutes(r, hb)
	RegisterHealthRoute(r)
}
