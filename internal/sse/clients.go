// Package sse fans workspace events out to open Server-Sent Events streams.
package sse

import (
	"sync"

	"github.com/debemdeboas/notice-desk/internal/model"
)

// Event names understood by the page.
const (
	EventHistory = "history"
)

type Client struct {
	Msg       chan string
	Workspace model.WorkspaceID
}

func NewClient(ws model.WorkspaceID) *Client {
	return &Client{Msg: make(chan string, 4), Workspace: ws}
}

type SSEClients struct {
	clients map[*Client]bool
	mu      sync.RWMutex
}

func NewSSEClients() *SSEClients {
	return &SSEClients{
		clients: make(map[*Client]bool),
	}
}

func (s *SSEClients) Add(client *Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients[client] = true
}

func (s *SSEClients) Delete(client *Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.clients[client] {
		delete(s.clients, client)
		close(client.Msg)
	}
}

func (s *SSEClients) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// Broadcast sends msg to every stream of the workspace. Slow clients miss
// the message instead of blocking the sender.
func (s *SSEClients) Broadcast(ws model.WorkspaceID, msg string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for client := range s.clients {
		if client.Workspace == ws {
			select {
			case client.Msg <- msg:
			default:
			}
		}
	}
}
