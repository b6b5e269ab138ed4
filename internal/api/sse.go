package api

import (
	"encoding/json"

	"github.com/gin-gonic/gin"
	"github.com/pokerjest/animateRenamer/internal/event"
	log "github.com/sirupsen/logrus"
)

// SSEHandler 处理 Server-Sent Events 连接
func (s *Server) SSEHandler(c *gin.Context) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	clientChan := make(chan event.Event, 32)

	// 非阻塞发送，避免慢客户端阻塞总线
	bridge := func(e event.Event) {
		select {
		case clientChan <- e:
		default:
			log.Debugf("SSE: client queue full, dropping %s", e.Type)
		}
	}

	subIDs := make(map[event.EventType]string, len(event.AllTypes))
	for _, t := range event.AllTypes {
		subIDs[t] = s.Bus.Subscribe(t, bridge)
	}
	defer func() {
		for t, id := range subIDs {
			s.Bus.Unsubscribe(t, id)
		}
		log.Debug("SSE: client disconnected")
	}()

	c.SSEvent("message", "connected")
	c.Writer.Flush()

	ctx := c.Request.Context()
	for {
		select {
		case evt := <-clientChan:
			data, err := json.Marshal(evt.Payload)
			if err != nil {
				log.Warnf("SSE: failed to marshal %s: %v", evt.Type, err)
				continue
			}
			// 事件名即为 Topic
			c.SSEvent(string(evt.Type), string(data))
			c.Writer.Flush()
		case <-ctx.Done():
			return
		}
	}
}
