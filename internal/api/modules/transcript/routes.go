package transcript_module

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Register routes for the transcript module
func RegisterRoutes(g *gin.RouterGroup, service *TranscriptService, maxUploadBytes int64) {
	controller := NewController(service)

	g.POST("/process-audio", limitBody(maxUploadBytes), controller.ProcessAudio) // Ingest an audio recording and its transcript
	g.POST("/query", controller.Query)                                          // Ask a question against all transcripts
}

// limitBody caps the size of request bodies. A non-positive limit disables the cap.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBytes > 0 {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}
