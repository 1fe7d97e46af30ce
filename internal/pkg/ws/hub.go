package ws

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

type Hub struct {
	// 每个分析任务可以有多个订阅连接（多标签页、重连等场景）
	clients map[string]map[*Client]struct{}
	mu      sync.RWMutex
}

type Client struct {
	AnalysisID string
	Conn       *websocket.Conn
	mu         sync.Mutex // 写锁，防止并发写入
}

type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]map[*Client]struct{}),
	}
}

func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.clients[client.AnalysisID] == nil {
		h.clients[client.AnalysisID] = make(map[*Client]struct{})
	}
	h.clients[client.AnalysisID][client] = struct{}{}

	log.Printf("Subscriber connected for analysis %s, conns: %d", client.AnalysisID, len(h.clients[client.AnalysisID]))
}

func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conns, ok := h.clients[client.AnalysisID]; ok {
		delete(conns, client)
		if len(conns) == 0 {
			delete(h.clients, client.AnalysisID)
		}
	}
	log.Printf("Subscriber disconnected for analysis %s", client.AnalysisID)
}

// Broadcast 向订阅了该分析任务的所有连接发送消息
func (h *Hub) Broadcast(analysisID string, msg *Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	h.mu.RLock()
	conns, ok := h.clients[analysisID]
	if !ok {
		h.mu.RUnlock()
		return nil
	}
	// 复制一份引用，避免长时间持锁
	clients := make([]*Client, 0, len(conns))
	for c := range conns {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		c.mu.Lock()
		err := c.Conn.WriteMessage(websocket.TextMessage, data)
		c.mu.Unlock()
		if err != nil {
			log.Printf("Broadcast write error for analysis %s: %v", analysisID, err)
		}
	}
	return nil
}

// HasSubscribers 检查是否有订阅连接
func (h *Hub) HasSubscribers(analysisID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	conns, ok := h.clients[analysisID]
	return ok && len(conns) > 0
}

// ConnectionCount 获取在线连接数
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	total := 0
	for _, conns := range h.clients {
		total += len(conns)
	}
	return total
}
