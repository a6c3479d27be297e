package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	fp "failure_predictor"
	"failure_predictor/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Send/receive timing configuration and message size limits.
const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 1 << 12 // 4 KB, one reading per message
	inboxSize  = 8

	wsTypePrediction = "prediction"
	wsTypeError      = "error"
)

// Envelope used for WebSocket messages.
type wsEnvelope struct {
	Type  string      `json:"type"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

// Upgrader for HTTP -> WebSocket. Browsers may only connect from the page's own host.
var upgrader = websocket.Upgrader{
	CheckOrigin: sameOrigin,
}

// sameOrigin accepts clients that send no Origin (non-browser) and browsers
// whose Origin host matches the request host.
func sameOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Host, r.Host)
}

// @Summary      Live scoring
// @Description  Upgrades to a WebSocket. Every text message is one PredictRequest; every reply is a prediction or error envelope.
// @Tags         prediction
// @Router       /ws [get]
func (h *Handler) wsConnect(c *gin.Context) {
	log := h.requestLog(c)
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Errorw("ws_upgrade_failed", "err", err)
		return
	}
	defer func() { _ = conn.Close() }()

	conn.SetReadLimit(maxMsgSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	// The reader owns conn reads; this goroutine owns every write.
	inbox := make(chan []byte, inboxSize)
	done := make(chan struct{})
	stop := make(chan struct{})
	defer close(stop)
	go startReader(conn, log, inbox, done, stop)

	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	ctx := c.Request.Context()
	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Infow("ws_ping_failed", "err", err)
				return
			}
		case msg := <-inbox:
			if err := h.writeEnvelope(conn, h.score(c, msg)); err != nil {
				log.Infow("ws_write_failed", "err", err)
				return
			}
		}
	}
}

// startReader drains incoming messages into inbox until the peer goes away or stop closes.
func startReader(conn *websocket.Conn, log *logger.Logger, inbox chan<- []byte, done chan<- struct{}, stop <-chan struct{}) {
	defer close(done)
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			log.Infow("ws_read_closed", "err", err)
			return
		}
		select {
		case inbox <- msg:
		case <-stop:
			return
		}
	}
}

// score turns one message into a reply envelope. Validation failures become
// error envelopes and keep the connection open.
func (h *Handler) score(c *gin.Context, msg []byte) wsEnvelope {
	var req PredictRequest
	if err := json.Unmarshal(msg, &req); err != nil {
		return wsEnvelope{Type: wsTypeError, Error: fp.InvalidInputPrefix + err.Error()}
	}
	reading, err := req.reading()
	if err != nil {
		if ve, ok := fp.AsValidationError(err); ok {
			return wsEnvelope{Type: wsTypeError, Error: ve.Message()}
		}
		return wsEnvelope{Type: wsTypeError, Error: errPredict}
	}
	res, err := h.services.Inference.Predict(c.Request.Context(), reading)
	if err != nil {
		h.logError(c, "ws_prediction_failed", err)
		return wsEnvelope{Type: wsTypeError, Error: errPredict}
	}
	return wsEnvelope{Type: wsTypePrediction, Data: res}
}

func (h *Handler) writeEnvelope(conn *websocket.Conn, env wsEnvelope) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(env)
}
