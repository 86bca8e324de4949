package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Faultbox/morphfolio/internal/blob"
)

// maxFrameDelta caps dt after a stall so springs do not jump.
const maxFrameDelta = 100 * time.Millisecond

// initMessage is sent once when a stream opens.
type initMessage struct {
	Type        string  `json:"type"`
	Vertices    int     `json:"vertices"`
	FPS         int     `json:"fps"`
	Interactive bool    `json:"interactive"`
	Scale       float32 `json:"scale"`
}

// frameMessage carries one animated frame.
type frameMessage struct {
	Type        string    `json:"type"`
	Time        float32   `json:"time"`
	Positions   []float32 `json:"positions"`
	FloatOffset float64   `json:"floatOffset"`
	RotationY   float64   `json:"rotationY"`
	Scale       float32   `json:"scale"`
	Hovered     bool      `json:"hovered"`
}

// clientMessage is a pointer event from the browser.
type clientMessage struct {
	Hovered *bool `json:"hovered,omitempty"`
	Click   bool  `json:"click,omitempty"`
}

type streamRegistry struct {
	mu     sync.Mutex
	active int
	wg     sync.WaitGroup
}

func newStreamRegistry() *streamRegistry {
	return &streamRegistry{}
}

func (r *streamRegistry) add() {
	r.mu.Lock()
	r.active++
	r.mu.Unlock()
	r.wg.Add(1)
}

func (r *streamRegistry) done() {
	r.mu.Lock()
	r.active--
	r.mu.Unlock()
	r.wg.Done()
}

func (r *streamRegistry) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}

func (r *streamRegistry) wait() {
	r.wg.Wait()
}

// handleBlobStream upgrades to a websocket and streams frames of a blob
// owned by this connection until the client goes away or the server stops.
func (s *Server) handleBlobStream(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	s.streams.add()
	defer s.streams.done()

	log := s.log.With(zap.String("remote", r.RemoteAddr))
	opts := s.cfg.Blob
	opts.OnClick = func() { log.Info("blob clicked") }

	b, err := blob.New(opts)
	if err != nil {
		log.Error("creating blob", zap.Error(err))
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "blob unavailable"))
		conn.Close()
		return
	}
	b.Mount()
	defer b.Unmount()

	ctx, cancel := context.WithCancel(r.Context())
	inputs := make(chan clientMessage, 8)

	var reader sync.WaitGroup
	reader.Add(1)
	go func() {
		defer reader.Done()
		defer cancel()
		s.readClient(ctx, conn, inputs, log)
	}()

	log.Debug("stream opened")
	err = s.streamFrames(ctx, conn, b, inputs)

	cancel()
	conn.Close()
	reader.Wait()

	if err != nil && !errors.Is(err, context.Canceled) {
		log.Debug("stream closed", zap.Error(err))
		return
	}
	log.Debug("stream closed")
}

func (s *Server) readClient(ctx context.Context, conn *websocket.Conn, inputs chan<- clientMessage, log *zap.Logger) {
	conn.SetReadLimit(1024)
	for {
		var msg clientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug("stream read", zap.Error(err))
			}
			return
		}
		select {
		case inputs <- msg:
		case <-ctx.Done():
			return
		}
	}
}

func (s *Server) streamFrames(ctx context.Context, conn *websocket.Conn, b *blob.Blob, inputs <-chan clientMessage) error {
	opts := b.Options()
	if err := s.write(conn, initMessage{
		Type:        "init",
		Vertices:    len(b.Deformer().Rest()),
		FPS:         s.cfg.StreamFPS,
		Interactive: opts.Interactive,
		Scale:       opts.Scale,
	}); err != nil {
		return err
	}

	ticker := time.NewTicker(time.Second / time.Duration(s.cfg.StreamFPS))
	defer ticker.Stop()

	msg := frameMessage{Type: "frame"}
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, ""),
				time.Now().Add(s.cfg.StreamWriteTimeout))
			return ctx.Err()

		case in := <-inputs:
			applyClientMessage(b, in)

		case now := <-ticker.C:
			dt := now.Sub(last)
			last = now
			if dt > maxFrameDelta {
				dt = maxFrameDelta
			}

			f := b.Frame(float32(dt.Seconds()))
			fillFrame(&msg, b, f)
			if err := s.write(conn, msg); err != nil {
				return err
			}
		}
	}
}

func (s *Server) write(conn *websocket.Conn, v any) error {
	if err := conn.SetWriteDeadline(time.Now().Add(s.cfg.StreamWriteTimeout)); err != nil {
		return err
	}
	return conn.WriteJSON(v)
}

func applyClientMessage(b *blob.Blob, in clientMessage) {
	if in.Hovered != nil {
		if *in.Hovered {
			b.PointerEnter()
		} else {
			b.PointerLeave()
		}
	}
	if in.Click {
		b.Click()
	}
}

// fillFrame copies the blob state into msg, reusing its position buffer.
func fillFrame(msg *frameMessage, b *blob.Blob, f blob.Frame) {
	pos := b.Deformer().Positions()
	if cap(msg.Positions) < len(pos)*3 {
		msg.Positions = make([]float32, len(pos)*3)
	}
	msg.Positions = msg.Positions[:len(pos)*3]
	for i, p := range pos {
		msg.Positions[i*3] = p[0]
		msg.Positions[i*3+1] = p[1]
		msg.Positions[i*3+2] = p[2]
	}

	msg.Time = f.Elapsed
	msg.FloatOffset = f.Values.FloatOffset
	msg.RotationY = f.Values.RotationY
	msg.Scale = b.Options().Scale * float32(f.Values.Scale)
	msg.Hovered = b.Hovered()
}
