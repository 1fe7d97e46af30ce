package progress

import (
	"log"

	"github.com/qs3c/respvision_go_server/internal/model/dto"
	"github.com/qs3c/respvision_go_server/internal/pkg/ws"
)

// Publisher 将任务进度推送给 WebSocket 订阅者。
// hub 为 nil 时所有推送都静默丢弃，方便测试与纯轮询部署。
type Publisher struct {
	hub *ws.Hub
}

func NewPublisher(hub *ws.Hub) *Publisher {
	return &Publisher{hub: hub}
}

// Publish 发布一帧进度
func (p *Publisher) Publish(event *dto.ProgressEvent) {
	if p == nil || p.hub == nil {
		return
	}

	msg := &ws.Message{
		Type: "analysis_progress",
		Data: event,
	}
	if err := p.hub.Broadcast(event.AnalysisID, msg); err != nil {
		log.Printf("Failed to broadcast progress for analysis %s: %v", event.AnalysisID, err)
	}
}
