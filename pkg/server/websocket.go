package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/c9s/chartdesk/pkg/annotation"
	"github.com/c9s/chartdesk/pkg/metrics"
	"github.com/c9s/chartdesk/pkg/session"
	"github.com/c9s/chartdesk/pkg/types"
)

const (
	wsReadTimeout  = 90 * time.Second
	wsPingInterval = 45 * time.Second
	wsWriteTimeout = 10 * time.Second
	wsBufferSize   = 64
)

var wsUpgrader = websocket.Upgrader{
	CheckOrigin:       func(*http.Request) bool { return true },
	EnableCompression: true,
}

type InputType string

const (
	InputPointerDown  InputType = "pointerDown"
	InputPointerMove  InputType = "pointerMove"
	InputPointerUp    InputType = "pointerUp"
	InputPointerLeave InputType = "pointerLeave"
	InputKeyDown      InputType = "keyDown"
	InputSetTool      InputType = "setTool"
	InputToggleTool   InputType = "toggleTool"
	InputCaptureKey   InputType = "captureKey"
	InputCaptureBlur  InputType = "captureBlur"
	InputReset        InputType = "reset"
	InputResize       InputType = "resize"
)

// InputMessage is a pointer, keyboard or tool event sent by the client.
type InputMessage struct {
	Type    InputType `json:"type"`
	X       float64   `json:"x,omitempty"`
	Y       float64   `json:"y,omitempty"`
	Key     string    `json:"key,omitempty"`
	Content string    `json:"content,omitempty"`
	Tool    string    `json:"tool,omitempty"`
	Width   float64   `json:"width,omitempty"`
	Height  float64   `json:"height,omitempty"`
}

// OutputMessage is either a state snapshot or a presenter event.
type OutputMessage struct {
	Type  string                      `json:"type"`
	State *session.AnnotationSnapshot `json:"state,omitempty"`
	Event *session.Event              `json:"event,omitempty"`
	Error string                      `json:"error,omitempty"`
}

// ApplyInput feeds one client event into the annotation engine.
func ApplyInput(e *annotation.Engine, msg InputMessage) error {
	p := types.NewPoint(msg.X, msg.Y)

	switch msg.Type {
	case InputPointerDown:
		e.PointerDown(p)
	case InputPointerMove:
		e.PointerMove(p)
	case InputPointerUp:
		e.PointerUp(p)
	case InputPointerLeave:
		e.PointerLeave(p)
	case InputKeyDown:
		e.KeyDown(msg.Key)
	case InputCaptureKey:
		e.CaptureKey(msg.Key, msg.Content)
	case InputCaptureBlur:
		e.CaptureBlur(msg.Content)
	case InputReset:
		e.Reset()

	case InputSetTool, InputToggleTool:
		tool, err := annotation.ParseToolMode(msg.Tool)
		if err != nil {
			return err
		}

		if msg.Type == InputSetTool {
			e.SetTool(tool)
		} else {
			e.ToggleTool(tool)
		}

	case InputResize:
		if msg.Width <= 0 || msg.Height <= 0 {
			return fmt.Errorf("invalid surface size %gx%g", msg.Width, msg.Height)
		}
		e.SetSize(msg.Width, msg.Height)

	default:
		return fmt.Errorf("unsupported input type %q", msg.Type)
	}

	return nil
}

// serveAnnotationEvents upgrades to a websocket that applies client input to the session's
// annotation engine. Every input is answered with a state snapshot, presenter events are
// forwarded as they happen.
func (s *Server) serveAnnotationEvents(c *gin.Context) {
	sess := currentSession(c)

	conn, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.WithError(err).Warn("websocket upgrade failed")
		return
	}
	defer conn.Close()

	metrics.WebsocketClientsMetrics.Inc()
	defer metrics.WebsocketClientsMetrics.Dec()

	events, unsubscribe := sess.Events().Subscribe(wsBufferSize)
	defer unsubscribe()

	out := make(chan OutputMessage, wsBufferSize)
	done := make(chan struct{})
	defer close(done)

	// writer
	go func() {
		ping := time.NewTicker(wsPingInterval)
		defer ping.Stop()

		for {
			select {
			case msg := <-out:
				_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
				if err := conn.WriteJSON(msg); err != nil {
					log.WithError(err).Debug("websocket write failed")
					return
				}

			case ev, ok := <-events:
				if !ok {
					return
				}

				_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
				if err := conn.WriteJSON(OutputMessage{Type: "event", Event: &ev}); err != nil {
					log.WithError(err).Debug("websocket write failed")
					return
				}

			case <-ping.C:
				_ = conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteTimeout))

			case <-done:
				return
			}
		}
	}()

	snap := sess.Snapshot()
	out <- OutputMessage{Type: "state", State: &snap}

	// reader
	_ = conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
	})

	for {
		var msg InputMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.WithError(err).Warnf("session %s websocket closed", sess.ID)
			}
			return
		}

		snap, err := sess.AnnotateSnapshot(func(e *annotation.Engine) error {
			return ApplyInput(e, msg)
		})

		reply := OutputMessage{Type: "state", State: &snap}
		if err != nil {
			reply.Error = err.Error()
		}

		select {
		case out <- reply:
		default:
			log.Warnf("session %s websocket is not keeping up, dropping state reply", sess.ID)
		}
	}
}
