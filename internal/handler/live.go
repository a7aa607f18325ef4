package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/osse101/QuestPlanner_Go/internal/logger"
	"github.com/osse101/QuestPlanner_Go/internal/metrics"
	"github.com/osse101/QuestPlanner_Go/internal/planner"
)

// Live session message types
const (
	LiveMsgReady   = "ready"
	LiveMsgProject = "project"
	LiveMsgReport  = "report"
	LiveMsgError   = "error"
)

// Live session limits
const (
	liveWriteWait      = 10 * time.Second
	livePongWait       = 60 * time.Second
	livePingPeriod     = (livePongWait * 9) / 10
	liveMaxMessageSize = 64 * 1024
	liveSendBuffer     = 16
)

// Live session error messages
const (
	ErrMsgLiveUnknownType = "Unknown message type"
)

// LiveEnvelope frames every message on a live session. Seq is chosen by the client
// and echoed on the reply so responses can be matched to requests.
type LiveEnvelope struct {
	Type string          `json:"type"`
	Seq  int64           `json:"seq,omitempty"`
	Data json.RawMessage `json:"data,omitempty"`
}

// LiveError is the data of an error envelope
type LiveError struct {
	Status int    `json:"status"`
	Error  string `json:"error"`
}

// LiveReady is the data of the greeting envelope
type LiveReady struct {
	SessionID string `json:"session_id"`
}

// LiveHandler recomputes projections as a client edits its inputs over a websocket.
// A new request supersedes any request still in flight on the same session.
type LiveHandler struct {
	svc      planner.Service
	upgrader websocket.Upgrader
}

// NewLiveHandler creates a live handler. An empty origin list accepts any origin.
func NewLiveHandler(svc planner.Service, allowedOrigins []string) *LiveHandler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[strings.TrimRight(strings.TrimSpace(o), "/")] = true
	}

	return &LiveHandler{
		svc: svc,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				return originAllowed(r, allowed)
			},
		},
	}
}

// originAllowed accepts non-browser clients, same-host pages and listed origins
func originAllowed(r *http.Request, allowed map[string]bool) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || len(allowed) == 0 {
		return true
	}
	if allowed[origin] {
		return true
	}
	u, err := url.Parse(origin)
	return err == nil && strings.EqualFold(u.Host, r.Host)
}

// ServeHTTP upgrades the connection and runs the session until the client leaves
// @Summary Live projection session
// @Description Websocket. Send {"type":"project","seq":1,"data":{...ProjectionRequest}}; each request is answered with a "report" or "error" envelope carrying the same seq. Requests superseded by a newer one are not answered.
// @Tags projection
// @Router /api/v1/projection/live [get]
func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error
		log.Warn("Live session upgrade failed", "error", err)
		return
	}

	s := &liveSession{
		id:   uuid.NewString(),
		conn: conn,
		svc:  h.svc,
		send: make(chan []byte, liveSendBuffer),
	}

	ctx, cancel := context.WithCancel(logger.WithLogger(r.Context(), log.With(logger.AttrKeySessionID, s.id)))
	defer cancel()

	metrics.LiveSessionsActive.Inc()
	defer metrics.LiveSessionsActive.Dec()
	log.Info("Live session opened", logger.AttrKeySessionID, s.id)

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		s.writeLoop()
	}()

	s.enqueue(LiveMsgReady, 0, LiveReady{SessionID: s.id})
	s.readLoop(ctx)

	cancel()
	s.inflight.Wait()
	close(s.send)
	<-writerDone

	log.Info("Live session closed", logger.AttrKeySessionID, s.id)
}

type liveSession struct {
	id   string
	conn *websocket.Conn
	svc  planner.Service
	send chan []byte

	mu         sync.Mutex
	generation uint64
	inflight   sync.WaitGroup
}

func (s *liveSession) readLoop(ctx context.Context) {
	log := logger.FromContext(ctx)

	s.conn.SetReadLimit(liveMaxMessageSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(livePongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(livePongWait))
	})

	cancelPrev := context.CancelFunc(func() {})
	defer func() { cancelPrev() }()

	for {
		var env LiveEnvelope
		if err := s.conn.ReadJSON(&env); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("Live session read failed", "error", err)
			}
			return
		}

		if env.Type != LiveMsgProject {
			s.enqueueError(env.Seq, http.StatusBadRequest, ErrMsgLiveUnknownType)
			continue
		}

		var req planner.ProjectionRequest
		if err := json.Unmarshal(env.Data, &req); err != nil {
			s.enqueueError(env.Seq, http.StatusBadRequest, ErrMsgInvalidRequest)
			continue
		}
		if err := GetValidator().ValidateStruct(req); err != nil {
			s.enqueueError(env.Seq, http.StatusBadRequest, ErrMsgInvalidRequestSummary)
			continue
		}

		// Bump the generation before cancelling so the superseded request
		// sees it is stale once its context ends.
		s.mu.Lock()
		s.generation++
		gen := s.generation
		s.mu.Unlock()

		cancelPrev()
		var reqCtx context.Context
		reqCtx, cancelPrev = context.WithCancel(ctx)

		s.inflight.Add(1)
		go s.project(reqCtx, gen, env.Seq, req)
	}
}

func (s *liveSession) project(ctx context.Context, gen uint64, seq int64, req planner.ProjectionRequest) {
	defer s.inflight.Done()

	report, err := s.svc.Project(ctx, req)

	// The generation check and the enqueue share the lock so a superseded
	// reply can never overtake the reply to a newer request.
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		metrics.LiveMessagesTotal.WithLabelValues(metrics.ResultSuperseded).Inc()
		return
	}
	if err != nil {
		status, msg := mapServiceErrorToUserMessage(err)
		logger.FromContext(ctx).Debug("Live projection failed", "seq", seq, "error", err)
		s.enqueueError(seq, status, msg)
		return
	}

	metrics.LiveMessagesTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	s.enqueue(LiveMsgReport, seq, report)
}

func (s *liveSession) enqueueError(seq int64, status int, message string) {
	metrics.LiveMessagesTotal.WithLabelValues(metrics.ResultError).Inc()
	s.enqueue(LiveMsgError, seq, LiveError{Status: status, Error: message})
}

// enqueue never blocks; a client that stops reading loses messages
func (s *liveSession) enqueue(msgType string, seq int64, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	out, err := json.Marshal(LiveEnvelope{Type: msgType, Seq: seq, Data: data})
	if err != nil {
		return
	}

	select {
	case s.send <- out:
	default:
	}
}

func (s *liveSession) writeLoop() {
	ticker := time.NewTicker(livePingPeriod)
	defer func() {
		ticker.Stop()
		_ = s.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-s.send:
			_ = s.conn.SetWriteDeadline(time.Now().Add(liveWriteWait))
			if !ok {
				_ = s.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := s.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}

		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(liveWriteWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
