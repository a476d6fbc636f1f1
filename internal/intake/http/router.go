package http

import "github.com/gin-gonic/gin"

// RegisterPublic mounts the anonymous intake routes. limit guards every
// write and may be nil.
func (h *Handler) RegisterPublic(rg *gin.RouterGroup, limit gin.HandlerFunc) {
	writes := []gin.HandlerFunc{}
	if limit != nil {
		writes = append(writes, limit)
	}
	with := func(hf gin.HandlerFunc) []gin.HandlerFunc {
		return append(append([]gin.HandlerFunc{}, writes...), hf)
	}

	rg.POST("/intake/projects", with(h.SubmitProject)...)

	rg.GET("/careers/jobs", h.ListJobs)
	rg.GET("/careers/jobs/:id", h.GetJob)
	rg.POST("/careers/jobs/:id/applications", with(h.SubmitApplication)...)
	rg.POST("/careers/resumes", with(h.UploadResume)...)

	rg.POST("/chat/inquiries", with(h.SubmitChat)...)
}

func (h *Handler) RegisterAdmin(rg *gin.RouterGroup) {
	rg.GET("/chat-inquiries", h.ListChatInquiries)
	rg.PATCH("/chat-inquiries/:id", h.SetInquiryRead)
}
