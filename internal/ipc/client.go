package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/strandwm/strand/internal/layout"
	"github.com/strandwm/strand/internal/runtimepath"
)

// Client handles IPC communication with the daemon
type Client struct {
	socketPath string
	timeout    time.Duration
}

// NewClient creates a new IPC client
func NewClient() *Client {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		// Keep constructor non-failing; sendRequest surfaces connection errors.
		socketPath = ""
	}

	return &Client{
		socketPath: socketPath,
		timeout:    5 * time.Second,
	}
}

// sendRequest sends a request and waits for a response
func (c *Client) sendRequest(req *Request) (*Response, error) {
	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to daemon: %w (is the daemon running?)", err)
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(c.timeout))

	reqData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	reqData = append(reqData, '\n')
	if _, err := conn.Write(reqData); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	reader := bufio.NewReader(conn)
	respData, err := reader.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var resp Response
	if err := json.Unmarshal(respData, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if resp.Status == "ERROR" {
		return nil, fmt.Errorf("daemon error: %s", resp.Error)
	}

	return &resp, nil
}

// GetState retrieves the full layout state snapshot.
func (c *Client) GetState() (*layout.State, error) {
	resp, err := c.sendRequest(&Request{Command: CommandGetState})
	if err != nil {
		return nil, err
	}

	var state layout.State
	if err := json.Unmarshal(resp.Data, &state); err != nil {
		return nil, fmt.Errorf("failed to parse state data: %w", err)
	}
	return &state, nil
}

// GetOutputs retrieves just the per-output state.
func (c *Client) GetOutputs() ([]layout.OutputState, error) {
	resp, err := c.sendRequest(&Request{Command: CommandGetOutputs})
	if err != nil {
		return nil, err
	}

	var outputs []layout.OutputState
	if err := json.Unmarshal(resp.Data, &outputs); err != nil {
		return nil, fmt.Errorf("failed to parse output data: %w", err)
	}
	return outputs, nil
}

// GetStatus retrieves daemon status
func (c *Client) GetStatus() (*StatusData, error) {
	resp, err := c.sendRequest(&Request{Command: CommandGetStatus})
	if err != nil {
		return nil, err
	}

	var status StatusData
	if err := json.Unmarshal(resp.Data, &status); err != nil {
		return nil, fmt.Errorf("failed to parse status data: %w", err)
	}
	return &status, nil
}

// Action sends a named engine action to the daemon.
func (c *Client) Action(action ActionPayload) error {
	payload, err := json.Marshal(action)
	if err != nil {
		return fmt.Errorf("failed to marshal action payload: %w", err)
	}

	_, err = c.sendRequest(&Request{Command: CommandAction, Payload: payload})
	return err
}

// Reload sends a RELOAD command to the daemon
func (c *Client) Reload() error {
	_, err := c.sendRequest(&Request{Command: CommandReload})
	return err
}

// Ping checks if the daemon is responding
func (c *Client) Ping() error {
	_, err := c.GetStatus()
	return err
}

// Subscription is a live event feed from the daemon. Close it to stop the
// feed; Events is closed when the connection drops.
type Subscription struct {
	conn   net.Conn
	Events <-chan Event
}

// Close tears down the subscription connection.
func (s *Subscription) Close() error {
	return s.conn.Close()
}

// Subscribe opens a long-lived connection and streams change events over it.
func (c *Client) Subscribe() (*Subscription, error) {
	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to daemon: %w (is the daemon running?)", err)
	}

	conn.SetDeadline(time.Now().Add(c.timeout))

	reqData, err := json.Marshal(&Request{Command: CommandSubscribe})
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}
	reqData = append(reqData, '\n')
	if _, err := conn.Write(reqData); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	reader := bufio.NewReader(conn)
	respData, err := reader.ReadBytes('\n')
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var resp Response
	if err := json.Unmarshal(respData, &resp); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if resp.Status == "ERROR" {
		conn.Close()
		return nil, fmt.Errorf("daemon error: %s", resp.Error)
	}

	// Events arrive whenever the layout changes, which may be never.
	conn.SetDeadline(time.Time{})

	events := make(chan Event, 16)
	go func() {
		defer close(events)
		for {
			line, err := reader.ReadBytes('\n')
			if err != nil {
				return
			}
			var ev Event
			if err := json.Unmarshal(line, &ev); err != nil {
				continue
			}
			events <- ev
		}
	}()

	return &Subscription{conn: conn, Events: events}, nil
}
