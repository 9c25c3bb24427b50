package server

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// routes builds the gin router.
func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	api := r.Group("/api")
	api.GET("/config", s.getConfig)
	api.GET("/mesh", s.getMesh)
	api.GET("/frame", s.getFrame)

	r.GET("/ws", s.handleWebSocket)
	return r
}

func (s *Server) getConfig(c *gin.Context) {
	c.JSON(http.StatusOK, s.cfg)
}

func (s *Server) getMesh(c *gin.Context) {
	c.JSON(http.StatusOK, s.mesh)
}

// getFrame answers GET /api/frame?t=<ms> with the FrameUpdate at t.
func (s *Server) getFrame(c *gin.Context) {
	raw, ok := c.GetQuery("t")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter t is required"})
		return
	}
	t, err := parseTimestamp(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, s.driver.Advance(t))
}

// parseTimestamp accepts finite, non-negative millisecond values.
func parseTimestamp(raw string) (float64, error) {
	t, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid timestamp %q", raw)
	}
	return t, checkTimestamp(t)
}

func checkTimestamp(t float64) error {
	if math.IsNaN(t) || math.IsInf(t, 0) {
		return fmt.Errorf("timestamp must be finite")
	}
	if t < 0 {
		return fmt.Errorf("timestamp must be >= 0, got %v", t)
	}
	return nil
}
