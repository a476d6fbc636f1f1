package http

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterAdmin(rg *gin.RouterGroup) {
	rg.GET("/overview", h.Overview)
	rg.GET("/developers", h.ListDevelopers)
	rg.GET("/developers/:id/assignments", h.ListDeveloperAssignments)
	rg.GET("/projects", h.ListProjects)
	rg.GET("/job-applications", h.ListJobApplications)
	rg.GET("/assignments", h.ListAssignments)
}

func (h *Handler) RegisterDeveloper(rg *gin.RouterGroup) {
	rg.GET("/dashboard", h.MyDashboard)
	rg.GET("/projects", h.ListProjects)
}
