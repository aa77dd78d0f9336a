package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"ea-coach-service/internal/app"
	"ea-coach-service/internal/mentor"
)

const writeWait = 10 * time.Second

type WSHandler struct {
	exams    *app.ExamService
	mentor   *mentor.Service
	logger   *zap.Logger
	upgrader websocket.Upgrader
}

func NewWSHandler(exams *app.ExamService, mentorSvc *mentor.Service, logger *zap.Logger) *WSHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WSHandler{
		exams:  exams,
		mentor: mentorSvc,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type outboundMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

func errorMessage(msg string) outboundMessage {
	return outboundMessage{Type: "error", Payload: errorPayload{Message: msg}}
}

// ServeExam streams snapshots of one exam session and accepts commands:
//
//	{"type":"command","payload":{"type":"select_answer","question":0,"option":2}}
func (h *WSHandler) ServeExam(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	updates, cancel, err := h.exams.Subscribe(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	defer cancel()

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("ws upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	serveStream(conn, h.logger, updates, "snapshot", func(in inboundMessage, send func(outboundMessage)) {
		if in.Type != "command" {
			send(errorMessage("unsupported message type"))
			return
		}
		var cmd app.Command
		if err := json.Unmarshal(in.Payload, &cmd); err != nil {
			send(errorMessage("invalid command payload"))
			return
		}
		// The resulting snapshot reaches the client through the subscription.
		if _, err := h.exams.Apply(r.Context(), id, cmd); err != nil {
			send(errorMessage(err.Error()))
		}
	})
}

// ServeMentor streams conversation updates and accepts "send" and "cancel".
func (h *WSHandler) ServeMentor(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	updates, cancel, err := h.mentor.Subscribe(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	defer cancel()

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("ws upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	serveStream(conn, h.logger, updates, "update", func(in inboundMessage, send func(outboundMessage)) {
		switch in.Type {
		case "send":
			var payload textRequest
			if err := json.Unmarshal(in.Payload, &payload); err != nil {
				send(errorMessage("invalid send payload"))
				return
			}
			if _, err := h.mentor.Send(r.Context(), id, payload.Text); err != nil {
				send(errorMessage(err.Error()))
			}
		case "cancel":
			if _, err := h.mentor.Cancel(r.Context(), id); err != nil {
				send(errorMessage(err.Error()))
			}
		default:
			send(errorMessage("unsupported message type"))
		}
	})
}

// serveStream forwards updates to the client and hands inbound messages to
// handle until the client goes away. All writes go through a single writer
// goroutine.
func serveStream[T any](conn *websocket.Conn, logger *zap.Logger, updates <-chan T, updateType string, handle func(inboundMessage, func(outboundMessage))) {
	sendCh := make(chan outboundMessage, 16)
	closeSignals := make(chan struct{})
	writerDone := make(chan struct{})
	updatesDone := make(chan struct{})

	// Streams are long-lived; drop the deadlines inherited from the HTTP server.
	_ = conn.SetReadDeadline(time.Time{})

	send := func(msg outboundMessage) {
		select {
		case sendCh <- msg:
		case <-writerDone:
		}
	}

	go func() {
		defer close(writerDone)
		for msg := range sendCh {
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(msg); err != nil {
				logger.Debug("ws write error", zap.Error(err))
				// Unblock the read loop.
				_ = conn.Close()
				return
			}
		}
	}()

	go func() {
		defer close(updatesDone)
		for {
			select {
			case update, ok := <-updates:
				if !ok {
					send(outboundMessage{Type: "closed", Payload: nil})
					return
				}
				select {
				case sendCh <- outboundMessage{Type: updateType, Payload: update}:
				case <-closeSignals:
					return
				case <-writerDone:
					return
				}
			case <-closeSignals:
				return
			}
		}
	}()

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		handle(inbound, send)
	}

	close(closeSignals)
	<-updatesDone
	close(sendCh)
	<-writerDone
}
