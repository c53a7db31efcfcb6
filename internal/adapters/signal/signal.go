package signal

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/Rooms/internal/app"
	"github.com/dkeye/Rooms/internal/core"
	"github.com/dkeye/Rooms/internal/domain"
)

var (
	ErrBackpressure = errors.New("backpressure")
	ErrConnClosed   = errors.New("connection closed")
)

type Options struct {
	ReadLimit       int64
	PingPeriod      time.Duration
	WriteTimeout    time.Duration
	SendBuffer      int
	UsernameTimeout time.Duration
}

func (o Options) withDefaults() Options {
	if o.ReadLimit <= 0 {
		o.ReadLimit = 32768
	}
	if o.PingPeriod <= 0 {
		o.PingPeriod = 54 * time.Second
	}
	if o.WriteTimeout <= 0 {
		o.WriteTimeout = 5 * time.Second
	}
	if o.SendBuffer <= 0 {
		o.SendBuffer = 32
	}
	if o.UsernameTimeout <= 0 {
		o.UsernameTimeout = 2 * time.Second
	}
	return o
}

func (o Options) pongWait() time.Duration {
	return o.PingPeriod * 10 / 9
}

type SignalWSController struct {
	Orch  *app.Orchestrator
	Names core.UsernameSource
	Opts  Options
}

func NewSignalWSController(orch *app.Orchestrator, names core.UsernameSource, opts Options) *SignalWSController {
	return &SignalWSController{
		Orch:  orch,
		Names: names,
		Opts:  opts.withDefaults(),
	}
}

// WsSignalConn is the send side handed to the room core. Frames are queued
// and written by the write pump.
type WsSignalConn struct {
	conn *websocket.Conn
	send chan core.Frame

	mu     sync.RWMutex
	closed bool
}

func NewWsSignalConn(ws *websocket.Conn, buffer int) *WsSignalConn {
	return &WsSignalConn{
		conn: ws,
		send: make(chan core.Frame, buffer),
	}
}

func (c *WsSignalConn) TrySend(f core.Frame) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrConnClosed
	}
	select {
	case c.send <- f:
	default:
		return ErrBackpressure
	}
	return nil
}

func (c *WsSignalConn) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
	if c.conn != nil {
		_ = c.conn.Close()
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleSignal upgrades the request and runs the session until the
// connection closes. Opening joins the room, closing leaves it.
func (ctl *SignalWSController) HandleSignal(ctx context.Context, c *gin.Context) {
	roomID := domain.RoomID(c.Param("id"))
	if !ctl.Orch.Rooms.DoesRoomExist(roomID) {
		log.Info().Str("module", "signal").Str("room", string(roomID)).Msg("connect to unknown room")
		c.Status(http.StatusNotFound)
		return
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("ws upgrade")
		return
	}
	ws.SetReadLimit(ctl.Opts.ReadLimit)
	conn := NewWsSignalConn(ws, ctl.Opts.SendBuffer)

	nameCtx, cancelName := context.WithTimeout(c.Request.Context(), ctl.Opts.UsernameTimeout)
	p, err := core.BuildParticipant(nameCtx, c.Request.RemoteAddr, conn, ctl.Names)
	cancelName()
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Str("origin", c.Request.RemoteAddr).Msg("build participant")
		conn.Close()
		return
	}
	logger := log.With().Str("module", "signal").Str("user", string(p.ID())).Str("room", string(roomID)).Logger()
	logger.Info().Str("origin", p.Address.String()).Str("username", p.User.Username).Msg("new WS connection")

	sessCtx, cancel := context.WithCancel(ctx)
	go ctl.writePump(sessCtx, p, conn)

	if err := ctl.Orch.OnOpen(roomID, p, cancel); err != nil {
		logger.Warn().Err(err).Msg("join on open")
		closeWithReason(ws, err, ctl.Opts.WriteTimeout)
		cancel()
		conn.Close()
		return
	}
	go ctl.readPump(sessCtx, cancel, p, conn)
}

func closeWithReason(ws *websocket.Conn, err error, timeout time.Duration) {
	code, reason := websocket.CloseInternalServerErr, "internal error"
	switch {
	case errors.Is(err, core.ErrRoomFull):
		code, reason = websocket.ClosePolicyViolation, core.ErrRoomFull.Error()
	case errors.Is(err, core.ErrRoomNotFound):
		code, reason = websocket.ClosePolicyViolation, core.ErrRoomNotFound.Error()
	}
	msg := websocket.FormatCloseMessage(code, reason)
	_ = ws.WriteControl(websocket.CloseMessage, msg, time.Now().Add(timeout))
}
