package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"os"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/strandwm/strand/internal/layout"
)

// Host is the daemon surface the IPC server talks to. Implementations
// serialize access to the layout engine themselves.
type Host interface {
	State() layout.State
	Status() StatusData
	Apply(ActionPayload) error
	ReloadConfig() error
}

// Server handles IPC requests from clients
type Server struct {
	socketPath   string
	listener     net.Listener
	host         Host
	log          *log.Logger
	shuttingDown bool
	shutdownMu   sync.Mutex

	subMu       sync.Mutex
	subscribers map[net.Conn]struct{}
}

// NewServer creates a new IPC server on socketPath. Any stale socket from a
// previous run is removed.
func NewServer(socketPath string, host Host, logger *log.Logger) *Server {
	os.Remove(socketPath)
	return &Server{
		socketPath:  socketPath,
		host:        host,
		log:         logger,
		subscribers: make(map[net.Conn]struct{}),
	}
}

// Start begins listening for IPC connections
func (s *Server) Start() error {
	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	s.listener = listener

	if err := os.Chmod(s.socketPath, 0600); err != nil {
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	s.log.Info("IPC server listening", "socket", s.socketPath)

	go s.acceptLoop()

	return nil
}

// acceptLoop accepts incoming connections
func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.shutdownMu.Lock()
			if s.shuttingDown {
				s.shutdownMu.Unlock()
				return
			}
			s.shutdownMu.Unlock()
			s.log.Error("IPC accept error", "error", err)
			continue
		}

		go s.handleConnection(conn)
	}
}

// handleConnection handles a single IPC connection
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	reader := bufio.NewReader(conn)

	// Read the request (expect JSON on a single line)
	data, err := reader.ReadBytes('\n')
	if err != nil && err != io.EOF {
		s.log.Error("IPC read error", "error", err)
		return
	}

	req, err := ParseRequest(data)
	if err != nil {
		s.sendError(conn, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	if req.Command == CommandSubscribe {
		s.handleSubscribe(conn, reader)
		return
	}

	resp := s.handleCommand(req)

	respData, err := resp.Marshal()
	if err != nil {
		s.log.Error("failed to marshal response", "error", err)
		return
	}

	respData = append(respData, '\n')
	if _, err := conn.Write(respData); err != nil {
		s.log.Error("failed to send response", "error", err)
	}
}

// handleCommand processes an IPC command and returns a response
func (s *Server) handleCommand(req *Request) *Response {
	switch req.Command {
	case CommandGetState:
		return s.handleGetState()
	case CommandGetStatus:
		return s.handleGetStatus()
	case CommandGetOutputs:
		return s.handleGetOutputs()
	case CommandAction:
		return s.handleAction(req.Payload)
	case CommandReload:
		return s.handleReload()
	default:
		return NewErrorResponse(fmt.Sprintf("Unknown command: %s", req.Command))
	}
}

// handleSubscribe turns the connection into a one-way event feed. The OK
// response is sent first; after that the server only writes events until the
// client hangs up.
func (s *Server) handleSubscribe(conn net.Conn, reader *bufio.Reader) {
	resp, _ := NewOKResponse(nil)
	data, _ := resp.Marshal()
	data = append(data, '\n')
	if _, err := conn.Write(data); err != nil {
		return
	}

	s.subMu.Lock()
	s.subscribers[conn] = struct{}{}
	s.subMu.Unlock()

	defer func() {
		s.subMu.Lock()
		delete(s.subscribers, conn)
		s.subMu.Unlock()
	}()

	// Block until the client disconnects. Subscribed clients do not send
	// further requests.
	for {
		if _, err := reader.ReadBytes('\n'); err != nil {
			return
		}
	}
}

// Broadcast pushes an event to every subscribed connection. Connections that
// fail to accept the write are dropped.
func (s *Server) Broadcast(ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	data = append(data, '\n')

	s.subMu.Lock()
	defer s.subMu.Unlock()
	for conn := range s.subscribers {
		if _, err := conn.Write(data); err != nil {
			delete(s.subscribers, conn)
			conn.Close()
		}
	}
}

func (s *Server) handleGetState() *Response {
	resp, err := NewOKResponse(s.host.State())
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return resp
}

func (s *Server) handleGetStatus() *Response {
	resp, _ := NewOKResponse(s.host.Status())
	return resp
}

func (s *Server) handleGetOutputs() *Response {
	resp, err := NewOKResponse(s.host.State().Outputs)
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return resp
}

func (s *Server) handleAction(payload json.RawMessage) *Response {
	var action ActionPayload
	if err := json.Unmarshal(payload, &action); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid action payload: %v", err))
	}
	if action.Action == "" {
		return NewErrorResponse("action is required")
	}

	s.log.Debug("IPC action", "action", action.Action)
	if err := s.host.Apply(action); err != nil {
		return NewErrorResponse(err.Error())
	}

	resp, _ := NewOKResponse(nil)
	return resp
}

func (s *Server) handleReload() *Response {
	s.log.Info("IPC: reloading config")
	if err := s.host.ReloadConfig(); err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to reload config: %v", err))
	}
	resp, _ := NewOKResponse(nil)
	return resp
}

// sendError sends an error response
func (s *Server) sendError(conn net.Conn, errMsg string) {
	resp := NewErrorResponse(errMsg)
	data, _ := resp.Marshal()
	data = append(data, '\n')
	conn.Write(data)
}

// Stop gracefully shuts down the IPC server
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	s.subMu.Lock()
	for conn := range s.subscribers {
		conn.Close()
	}
	s.subscribers = make(map[net.Conn]struct{})
	s.subMu.Unlock()

	if s.listener != nil {
		s.listener.Close()
	}
	os.Remove(s.socketPath)
}
