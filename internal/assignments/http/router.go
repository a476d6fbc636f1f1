package http

import "github.com/gin-gonic/gin"

// RegisterAdmin mounts the developer review and assignment routes for admins.
func (h *Handler) RegisterAdmin(rg *gin.RouterGroup) {
	rg.GET("/developers/assignable", h.ListAssignable)
	rg.PATCH("/developers/:id/status", h.SetDeveloperStatus)
	rg.PATCH("/developers/:id/availability", h.SetDeveloperAvailability)
	rg.POST("/assignments", h.Assign)
	rg.PATCH("/assignments/:id", h.UpdateAssignmentStatus)
}

// RegisterDeveloper mounts the routes a developer uses on their own work.
func (h *Handler) RegisterDeveloper(rg *gin.RouterGroup) {
	rg.PATCH("/assignments/:id", h.UpdateAssignmentStatus)
}
