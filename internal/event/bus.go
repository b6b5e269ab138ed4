package event

import (
	"sync"

	"github.com/google/uuid"
)

// EventType 定义事件类型
type EventType string

const (
	// 目录与重命名
	EventDirectoryChanged EventType = "directory_changed"
	EventReload           EventType = "reload"
	EventPreview          EventType = "preview"

	// 扫描任务
	EventScanProgress  EventType = "scan_progress"
	EventScanComplete  EventType = "scan_complete"
	EventScanCancelled EventType = "scan_cancelled"
)

// AllTypes lists every event type the server publishes.
var AllTypes = []EventType{
	EventDirectoryChanged, EventReload, EventPreview,
	EventScanProgress, EventScanComplete, EventScanCancelled,
}

// Event 代表一个系统事件
type Event struct {
	Type    EventType   `json:"type"`
	Payload interface{} `json:"payload"`
}

// Handler 处理事件的函数签名
type Handler func(event Event)

// Bus 事件总线接口
type Bus interface {
	Subscribe(topic EventType, handler Handler) string // 返回 Subscription ID
	Unsubscribe(topic EventType, subID string)
	Publish(topic EventType, payload interface{})
}

// subscriber 按发布顺序逐个投递事件: one drain goroutine at a time, so a
// handler never sees two events concurrently or out of order.
type subscriber struct {
	id      string
	handler Handler

	mu      sync.Mutex
	queue   []Event
	running bool
	closed  bool
}

func (s *subscriber) deliver(evt Event) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.queue = append(s.queue, evt)
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.mu.Unlock()
	go s.drain()
}

func (s *subscriber) drain() {
	for {
		s.mu.Lock()
		if s.closed || len(s.queue) == 0 {
			s.queue = nil
			s.running = false
			s.mu.Unlock()
			return
		}
		evt := s.queue[0]
		s.queue = s.queue[1:]
		s.mu.Unlock()

		s.handler(evt)
	}
}

func (s *subscriber) close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}

// InMemoryBus 简单的内存事件总线实现
type InMemoryBus struct {
	mu       sync.RWMutex
	handlers map[EventType][]*subscriber
}

func NewInMemoryBus() *InMemoryBus {
	return &InMemoryBus{
		handlers: make(map[EventType][]*subscriber),
	}
}

func (b *InMemoryBus) Subscribe(topic EventType, handler Handler) string {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := uuid.New().String()
	b.handlers[topic] = append(b.handlers[topic], &subscriber{id: id, handler: handler})
	return id
}

func (b *InMemoryBus) Unsubscribe(topic EventType, subID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	entries := b.handlers[topic]
	for i, e := range entries {
		if e.id == subID {
			e.close()
			// copy so a concurrent Publish keeps its own snapshot
			next := make([]*subscriber, 0, len(entries)-1)
			next = append(next, entries[:i]...)
			b.handlers[topic] = append(next, entries[i+1:]...)
			break
		}
	}
}

// Publish 不阻塞发布者. Each subscriber receives events in the order they
// were published.
func (b *InMemoryBus) Publish(topic EventType, payload interface{}) {
	b.mu.RLock()
	entries := b.handlers[topic]
	b.mu.RUnlock()

	evt := Event{Type: topic, Payload: payload}
	for _, e := range entries {
		e.deliver(evt)
	}
}

// Publish sends to bus when it is non-nil.
func Publish(bus Bus, topic EventType, payload interface{}) {
	if bus != nil {
		bus.Publish(topic, payload)
	}
}
