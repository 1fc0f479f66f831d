package handlers

import (
	"github.com/aidanlogic/aidanlogic/internal/utils"
	"github.com/aidanlogic/aidanlogic/internal/version"

	"github.com/gin-gonic/gin"
)

// HealthHandler answers liveness and build-info probes. The service has no
// backing store, so being able to answer is the whole check.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Check(c *gin.Context) {
	utils.HandleMessage(c, "Health check OK")
}

func (h *HealthHandler) Version(c *gin.Context) {
	utils.HandleSuccess(c, version.GetBuildInfo())
}
