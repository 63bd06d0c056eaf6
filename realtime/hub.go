package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"slices"
	"sync"

	"github.com/Xushengqwer/go-common/core"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Xushengqwer/comment_service/models/vo"
)

// EventCommentApproved 推送给客户端的事件类型
const EventCommentApproved = "comment.approved"

// LiveEvent 推送帧的结构
type LiveEvent struct {
	Type string        `json:"type"`
	Data *vo.CommentVO `json:"data"`
}

type postMessage struct {
	postID  uint64
	payload []byte
}

// Hub 按帖子分组管理实时连接，把新公开的评论推送给正在浏览该帖子的读者。
// 所有连接表的修改都在 Run 的循环中完成。
type Hub struct {
	clients    map[uint64]map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan postMessage
	done       chan struct{}
	upgrader   websocket.Upgrader
	logger     *core.ZapLogger

	mu      sync.RWMutex
	running bool
}

// NewHub allowOrigins 为空或包含 "*" 时接受任意来源
func NewHub(allowOrigins []string, logger *core.ZapLogger) *Hub {
	h := &Hub{
		clients:    make(map[uint64]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan postMessage, 256),
		done:       make(chan struct{}),
		logger:     logger,
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" || len(allowOrigins) == 0 || slices.Contains(allowOrigins, "*") {
				return true
			}
			return slices.Contains(allowOrigins, origin)
		},
	}
	return h
}

// Run 处理注册、注销与广播，直到 ctx 结束；结束时关闭所有连接。
func (h *Hub) Run(ctx context.Context) {
	h.mu.Lock()
	h.running = true
	h.mu.Unlock()
	h.logger.Info("评论实时推送 Hub 已启动")

	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			h.running = false
			h.mu.Unlock()
			close(h.done)
			for _, set := range h.clients {
				for c := range set {
					close(c.send)
				}
			}
			h.clients = make(map[uint64]map[*Client]struct{})
			h.logger.Info("评论实时推送 Hub 已停止")
			return

		case c := <-h.register:
			set, ok := h.clients[c.postID]
			if !ok {
				set = make(map[*Client]struct{})
				h.clients[c.postID] = set
			}
			set[c] = struct{}{}
			h.logger.Debug("实时连接已注册", zap.Uint64("postID", c.postID), zap.Int("connections", len(set)))

		case c := <-h.unregister:
			if set, ok := h.clients[c.postID]; ok {
				if _, exists := set[c]; exists {
					delete(set, c)
					close(c.send)
					if len(set) == 0 {
						delete(h.clients, c.postID)
					}
				}
			}

		case msg := <-h.broadcast:
			for c := range h.clients[msg.postID] {
				select {
				case c.send <- msg.payload:
				default:
					// 客户端消费过慢，断开它
					delete(h.clients[msg.postID], c)
					close(c.send)
					h.logger.Warn("实时连接发送缓冲已满，已断开", zap.Uint64("postID", msg.postID))
				}
			}
			if len(h.clients[msg.postID]) == 0 {
				delete(h.clients, msg.postID)
			}
		}
	}
}

// BroadcastApproved 推送一条新公开的评论。Hub 未运行或队列已满时丢弃。
func (h *Hub) BroadcastApproved(comment *vo.CommentVO) {
	if comment == nil {
		return
	}
	h.mu.RLock()
	running := h.running
	h.mu.RUnlock()
	if !running {
		return
	}

	// 推送给公开读者，去掉私有字段
	public := *comment
	public.AuthorEmail, public.AuthorIP, public.UserAgent = "", "", ""
	payload, err := json.Marshal(LiveEvent{Type: EventCommentApproved, Data: &public})
	if err != nil {
		h.logger.Error("序列化实时评论事件失败", zap.Error(err), zap.Uint64("commentID", comment.ID))
		return
	}
	select {
	case h.broadcast <- postMessage{postID: comment.PostID, payload: payload}:
	default:
		h.logger.Warn("实时推送队列已满，丢弃事件", zap.Uint64("commentID", comment.ID))
	}
}

// Serve 把 HTTP 请求升级为 websocket，并订阅 postID 的评论推送
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, postID uint64) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	c := &Client{hub: h, postID: postID, conn: conn, send: make(chan []byte, sendBufferSize)}
	select {
	case h.register <- c:
	case <-h.done:
		_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
		conn.Close()
		return nil
	}

	go c.writePump()
	go c.readPump()
	return nil
}
