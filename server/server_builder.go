package server

import "time"

// ServerBuilderOption is a functional option for configuring a Server.
type ServerBuilderOption func(*Server)

// WithPingInterval sets how often idle sessions are pinged. Values <= 0 keep the default of 30 seconds.
//
// Parameters:
//   - d: the ping interval
//
// Returns:
//   - ServerBuilderOption: option function to apply
func WithPingInterval(d time.Duration) ServerBuilderOption {
	return func(s *Server) {
		if d > 0 {
			s.pingInterval = d
		}
	}
}
