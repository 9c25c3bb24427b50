package server

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// session is one WebSocket client. Writes are serialized by mu; the read loop owns lastTime.
type session struct {
	id     string
	conn   *websocket.Conn
	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc
	once   sync.Once

	hasTime  bool
	lastTime float64
}

func (sess *session) writeJSON(v any) error {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.conn.WriteJSON(v)
}

func (sess *session) close() {
	sess.once.Do(func() {
		sess.cancel()
		_ = sess.conn.Close()
	})
}

// handleWebSocket upgrades the request, sends hello and mesh, then answers tick messages until the client
// disconnects.
func (s *Server) handleWebSocket(c *gin.Context) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[Server] websocket upgrade failed: %v", err)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	sess := &session{
		id:     uuid.New().String(),
		conn:   conn,
		ctx:    ctx,
		cancel: cancel,
	}

	if err := sess.writeJSON(HelloMessage{Type: MessageHello, Session: sess.id}); err != nil {
		sess.close()
		return
	}
	meshMsg := s.mesh
	meshMsg.Type = MessageMesh
	if err := sess.writeJSON(meshMsg); err != nil {
		sess.close()
		return
	}

	s.addSession(sess)
	log.Printf("[Server] session %s connected (%d active)", sess.id, s.SessionCount())
	defer func() {
		s.removeSession(sess)
		log.Printf("[Server] session %s closed", sess.id)
	}()

	go s.keepAlive(sess)

	for {
		var msg TickMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				log.Printf("[Server] session %s read error: %v", sess.id, err)
			}
			return
		}
		if err := sess.writeJSON(s.reply(sess, msg)); err != nil {
			return
		}
	}
}

// reply computes the response to one client message.
func (s *Server) reply(sess *session, msg TickMessage) any {
	if msg.Type != MessageTick {
		return ErrorMessage{Type: MessageError, Error: fmt.Sprintf("unknown message type %q", msg.Type)}
	}
	if msg.TimeMs == nil {
		return ErrorMessage{Type: MessageError, Error: "timeMs is required"}
	}
	t := *msg.TimeMs
	if err := checkTimestamp(t); err != nil {
		return ErrorMessage{Type: MessageError, Error: err.Error()}
	}
	if sess.hasTime && t < sess.lastTime {
		return ErrorMessage{Type: MessageError, Error: fmt.Sprintf("timestamp went backwards: %v after %v", t, sess.lastTime)}
	}
	sess.hasTime = true
	sess.lastTime = t
	return FrameMessage{Type: MessageFrame, Frame: s.driver.Advance(t)}
}

// keepAlive pings the client until the session ends; a failed ping closes the session.
func (s *Server) keepAlive(sess *session) {
	ticker := time.NewTicker(s.pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-sess.ctx.Done():
			return
		case <-ticker.C:
			sess.mu.Lock()
			err := sess.conn.WriteMessage(websocket.PingMessage, nil)
			sess.mu.Unlock()
			if err != nil {
				log.Printf("[Server] session %s ping failed: %v", sess.id, err)
				sess.close()
				return
			}
		}
	}
}
