package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/mwinzi/freshmart-api/internal/presentation/http/dto/response"
	"github.com/mwinzi/freshmart-api/pkg/artifact"
)

// ArtifactHandler serves previewable artifacts by token
type ArtifactHandler struct {
	store *artifact.Store
}

// NewArtifactHandler creates a new artifact handler
func NewArtifactHandler(store *artifact.Store) *ArtifactHandler {
	return &ArtifactHandler{store: store}
}

// Get handles GET /api/v1/artifacts/:token. Tokens are single-owner
// and expire when the owner regenerates or tears down, so a stale
// token is simply a 404.
func (h *ArtifactHandler) Get(c *gin.Context) {
	handle, ok := h.store.Get(c.Param("token"))
	if !ok {
		response.NotFound(c, "Artifact not found")
		return
	}
	c.Data(200, handle.ContentType, handle.Data)
}
