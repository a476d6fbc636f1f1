package http

import "github.com/gin-gonic/gin"

// Register mounts the developer self-service routes. The group must already
// require an authenticated caller.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/onboarding/options", h.GetOptions)
	rg.POST("/onboarding", h.SubmitOnboarding)
	rg.POST("/screenshots", h.UploadScreenshots)
	rg.GET("/profile", h.GetProfile)
}
