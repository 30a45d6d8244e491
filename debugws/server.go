// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: debugws/server.go
// Summary: A loopback-only WebSocket endpoint that streams the render
// manager's state transitions, blur-vector frames, and input-viewport
// rectangles as newline-delimited JSON, for an external visual debugger.
// Read-only: nothing received from a connected client is ever fed back into
// the engine.

package debugws

import (
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/go-json-experiment/json"
	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"

	"github.com/android-808/hildon-desktop/engine"
	"github.com/android-808/hildon-desktop/internal/rlog"
)

// Frame is one newline-delimited JSON record pushed to every connected
// client. Kind distinguishes which payload field is populated.
type Frame struct {
	Kind      string              `json:"kind"`
	Time      time.Time           `json:"time"`
	State     *StatePayload       `json:"state,omitempty"`
	Rotation  *RotationPayload    `json:"rotation,omitempty"`
	Blur      *engine.BlurSnapshot `json:"blur,omitempty"`
	Viewport  []engine.Rect       `json:"viewport,omitempty"`
}

// StatePayload mirrors engine.StatePayload in a stable wire shape.
type StatePayload struct {
	State    string `json:"state"`
	Previous string `json:"previous"`
}

// RotationPayload mirrors engine.RotationPayload in a stable wire shape.
type RotationPayload struct {
	Degrees int `json:"degrees"`
}

// Server accepts loopback WebSocket connections and fans out every engine
// event broadcast to the render manager's dispatcher, plus a periodic blur
// and viewport snapshot, to all of them.
type Server struct {
	rm       *engine.RenderManager
	listener net.Listener

	mu      sync.Mutex
	clients map[net.Conn]struct{}

	stop chan struct{}
}

// Listen binds to a loopback-only address (127.0.0.1:<port>, or an
// OS-assigned port when addr's port is "0") and returns a Server ready to
// Serve. Binding to loopback only is deliberate: this is an inspection
// surface, never meant to be reachable off-box.
func Listen(addr string) (*Server, error) {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, err
	}
	if ip := net.ParseIP(host); host != "localhost" && (ip == nil || !ip.IsLoopback()) {
		return nil, fmt.Errorf("debugws: %s is not a loopback address", addr)
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	return &Server{
		listener: ln,
		clients:  make(map[net.Conn]struct{}),
		stop:     make(chan struct{}),
	}, nil
}

// Addr returns the bound listener address, useful when Listen was given
// port 0.
func (s *Server) Addr() net.Addr { return s.listener.Addr() }

// Attach subscribes the server to rm's event dispatcher so every state
// change, rotation, and transition-complete signal is relayed to connected
// clients as it happens.
func (s *Server) Attach(rm *engine.RenderManager) {
	s.rm = rm
	d := rm.Dispatcher()
	d.Subscribe(engine.EventStateChanged, engine.ListenerFunc(s.onStateChanged))
	d.Subscribe(engine.EventRotated, engine.ListenerFunc(s.onRotated))
	d.Subscribe(engine.EventTransitionComplete, engine.ListenerFunc(s.onTransitionComplete))
}

func (s *Server) onStateChanged(e engine.Event) {
	p, ok := e.Payload.(engine.StatePayload)
	if !ok {
		return
	}
	s.broadcast(Frame{
		Kind:  "state",
		Time:  time.Now(),
		State: &StatePayload{State: p.State.String(), Previous: p.Previous.String()},
	})
}

func (s *Server) onRotated(e engine.Event) {
	p, ok := e.Payload.(engine.RotationPayload)
	if !ok {
		return
	}
	s.broadcast(Frame{
		Kind:     "rotated",
		Time:     time.Now(),
		Rotation: &RotationPayload{Degrees: int(p.Rotation)},
	})
}

func (s *Server) onTransitionComplete(engine.Event) {
	blur := s.rm.BlurSnapshot()
	s.broadcast(Frame{Kind: "transition-complete", Time: time.Now(), Blur: &blur})
}

// StreamFrames starts a ticker that pushes a blur/viewport snapshot every
// interval, whether or not the blur timeline is in flight, so a connected
// debugger can chart the animation curve without the engine itself ever
// depending on the debug surface. Each snapshot is taken on the render
// manager's own loop through Post.
func (s *Server) StreamFrames(interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-s.stop:
				return
			case <-ticker.C:
				if s.rm == nil {
					continue
				}
				s.rm.Post(func() {
					blur := s.rm.BlurSnapshot()
					s.broadcast(Frame{
						Kind:     "tick",
						Time:     time.Now(),
						Blur:     &blur,
						Viewport: s.rm.CurrentViewport(),
					})
				})
			}
		}
	}()
}

// Serve accepts connections until Close is called. Each accepted connection
// is upgraded to a WebSocket and registered as a broadcast target; its read
// loop exists only to notice disconnects (any frame received from the
// client is discarded, never interpreted).
func (s *Server) Serve() error {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.stop:
				return nil
			default:
				return err
			}
		}
		go s.handleConn(conn)
	}
}

func (s *Server) handleConn(conn net.Conn) {
	if _, err := ws.Upgrade(conn); err != nil {
		rlog.Warnf("debugws: upgrade failed: %v", err)
		conn.Close()
		return
	}

	s.mu.Lock()
	s.clients[conn] = struct{}{}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.clients, conn)
		s.mu.Unlock()
		conn.Close()
	}()

	for {
		if _, _, err := wsutil.ReadClientData(conn); err != nil {
			return
		}
	}
}

func (s *Server) broadcast(f Frame) {
	data, err := json.Marshal(f)
	if err != nil {
		rlog.Warnf("debugws: marshal frame: %v", err)
		return
	}
	data = append(data, '\n')

	s.mu.Lock()
	targets := make([]net.Conn, 0, len(s.clients))
	for c := range s.clients {
		targets = append(targets, c)
	}
	s.mu.Unlock()

	for _, c := range targets {
		if err := wsutil.WriteServerMessage(c, ws.OpText, data); err != nil {
			rlog.Debugf("debugws: write to client failed, dropping: %v", err)
			s.mu.Lock()
			delete(s.clients, c)
			s.mu.Unlock()
			c.Close()
		}
	}
}

// Close stops accepting connections and drops every connected client.
func (s *Server) Close() error {
	close(s.stop)
	err := s.listener.Close()

	s.mu.Lock()
	for c := range s.clients {
		c.Close()
	}
	s.clients = make(map[net.Conn]struct{})
	s.mu.Unlock()

	return err
}
