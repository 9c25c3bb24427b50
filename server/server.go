// package server exposes the helicoid to a browser renderer: a gin HTTP API for configuration, mesh and
// single frames, and a WebSocket that answers client timestamps with frame updates and carries
// server-clock broadcasts.
package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/Carmen-Shannon/helicoid-go/common"
	"github.com/Carmen-Shannon/helicoid-go/engine/animation"
	"github.com/Carmen-Shannon/helicoid-go/engine/config"
	"github.com/Carmen-Shannon/helicoid-go/engine/mesh"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Server serves one tessellated helicoid and its animation driver.
type Server struct {
	cfg    config.Config
	driver *animation.Driver
	mesh   MeshPayload
	router *gin.Engine

	upgrader     websocket.Upgrader
	pingInterval time.Duration

	sessionsMu sync.RWMutex
	sessions   map[string]*session
}

// New creates a Server for a tessellated mesh and the driver animating it. When the driver animates
// bodies, a sphere of cfg.SphereRadius is tessellated for them.
//
// Parameters:
//   - cfg: the active configuration, served at /api/config
//   - m: the tessellated helicoid
//   - driver: the animation driver frames are computed with
//   - options: functional options for the server
//
// Returns:
//   - *Server: the server
//   - error: a *config.ConfigurationError for missing inputs or an invalid body sphere
func New(cfg config.Config, m *mesh.Mesh, driver *animation.Driver, options ...ServerBuilderOption) (*Server, error) {
	if m == nil {
		return nil, config.NewConfigurationError("mesh", nil, "a tessellated mesh is required")
	}
	if driver == nil {
		return nil, config.NewConfigurationError("driver", nil, "an animation driver is required")
	}

	var body *mesh.Mesh
	if driver.BodyCount() > 0 {
		var err error
		body, err = mesh.Sphere(cfg.SphereRadius, mesh.DefaultSphereSegments, mesh.DefaultSphereRings)
		if err != nil {
			return nil, err
		}
	}

	s := &Server{
		cfg:    cfg,
		driver: driver,
		mesh:   newMeshPayload(m, body, cfg.SphereRadius),
		upgrader: websocket.Upgrader{
			CheckOrigin:     func(r *http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		pingInterval: 30 * time.Second,
		sessions:     make(map[string]*session),
	}
	for _, opt := range options {
		opt(s)
	}
	s.router = s.routes()
	return s, nil
}

// Handler returns the HTTP handler of the server.
//
// Returns:
//   - http.Handler: the gin router
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on cfg.ListenAddr (":8080" if empty) until ctx is cancelled, then shuts down
// gracefully and closes all sessions.
//
// Parameters:
//   - ctx: context whose cancellation stops the server
//
// Returns:
//   - error: the listener error, or nil after a clean shutdown
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:    common.Coalesce(s.cfg.ListenAddr, config.DefaultListenAddr),
		Handler: s.router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[Server] listening on %s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	s.closeSessions()
	if lErr := <-errCh; lErr != nil && !errors.Is(lErr, http.ErrServerClosed) {
		return lErr
	}
	return err
}

// Broadcast sends a frame update to every connected session. Sessions whose write fails are closed and
// dropped.
//
// Parameters:
//   - u: the frame update to send
//
// Returns:
//   - int: the number of sessions the update was delivered to
func (s *Server) Broadcast(u animation.FrameUpdate) int {
	msg := FrameMessage{Type: MessageFrame, Frame: u}

	s.sessionsMu.RLock()
	var failed []*session
	delivered := 0
	for _, sess := range s.sessions {
		if err := sess.writeJSON(msg); err != nil {
			failed = append(failed, sess)
			continue
		}
		delivered++
	}
	s.sessionsMu.RUnlock()

	for _, sess := range failed {
		log.Printf("[Server] dropping session %s after failed broadcast", sess.id)
		s.removeSession(sess)
	}
	return delivered
}

// SessionCount returns the number of connected sessions.
func (s *Server) SessionCount() int {
	s.sessionsMu.RLock()
	defer s.sessionsMu.RUnlock()
	return len(s.sessions)
}

func (s *Server) addSession(sess *session) {
	s.sessionsMu.Lock()
	s.sessions[sess.id] = sess
	s.sessionsMu.Unlock()
}

func (s *Server) removeSession(sess *session) {
	s.sessionsMu.Lock()
	delete(s.sessions, sess.id)
	s.sessionsMu.Unlock()
	sess.close()
}

func (s *Server) closeSessions() {
	s.sessionsMu.Lock()
	sessions := s.sessions
	s.sessions = make(map[string]*session)
	s.sessionsMu.Unlock()
	for _, sess := range sessions {
		sess.close()
	}
}
