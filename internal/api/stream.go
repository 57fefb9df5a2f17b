package api

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/muurk/devicepanel/internal/logging"
)

const (
	// streamPath is the console's device event endpoint
	streamPath = "/devices/events"

	// handshakeTimeout bounds the websocket dial
	handshakeTimeout = 10 * time.Second

	// reconnectDelay is the initial delay before reconnecting a dropped stream
	reconnectDelay = 2 * time.Second

	// maxReconnectDelay caps the reconnect backoff
	maxReconnectDelay = 60 * time.Second

	// eventBuffer is the size of the delivery channel. The panel only uses
	// events as refetch triggers, so dropping under backpressure is safe.
	eventBuffer = 16
)

// Stream subscribes to the console's device-change events over a websocket.
// Events are delivered on the Events channel until the context passed to Run
// is cancelled or Close is called.
type Stream struct {
	url   string
	token string

	events    chan DeviceEvent
	done      chan struct{}
	closeOnce sync.Once
}

// NewStream creates a device event stream for the given console.
// baseURL is the HTTP API base URL; the websocket scheme is derived from it.
func NewStream(baseURL, accessToken string) *Stream {
	wsURL := strings.TrimRight(baseURL, "/") + streamPath
	if strings.HasPrefix(wsURL, "https://") {
		wsURL = "wss://" + strings.TrimPrefix(wsURL, "https://")
	} else if strings.HasPrefix(wsURL, "http://") {
		wsURL = "ws://" + strings.TrimPrefix(wsURL, "http://")
	}

	return &Stream{
		url:    wsURL,
		token:  accessToken,
		events: make(chan DeviceEvent, eventBuffer),
		done:   make(chan struct{}),
	}
}

// Events returns the channel on which device events are delivered.
// The channel is closed when the stream shuts down.
func (s *Stream) Events() <-chan DeviceEvent {
	return s.events
}

// Run connects to the event endpoint and delivers events until the context
// is cancelled or Close is called. Dropped connections are re-dialed with
// exponential backoff. Run blocks; call it from its own goroutine.
func (s *Stream) Run(ctx context.Context) {
	defer close(s.events)

	delay := reconnectDelay

	for {
		if s.stopped(ctx) {
			return
		}

		conn, err := s.dial(ctx)
		if err != nil {
			logging.Warn("Event stream dial failed", zap.String("url", s.url), zap.Error(err))

			select {
			case <-ctx.Done():
				return
			case <-s.done:
				return
			case <-time.After(delay):
			}

			delay *= 2
			if delay > maxReconnectDelay {
				delay = maxReconnectDelay
			}
			continue
		}

		// Successful connection resets the backoff
		delay = reconnectDelay
		s.readLoop(ctx, conn)
		_ = conn.Close()
	}
}

// Close shuts the stream down. Safe to call multiple times.
func (s *Stream) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
	})
}

func (s *Stream) stopped(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	case <-s.done:
		return true
	default:
		return false
	}
}

func (s *Stream) dial(ctx context.Context) (*websocket.Conn, error) {
	dialer := websocket.Dialer{HandshakeTimeout: handshakeTimeout}

	header := http.Header{}
	header.Set("Authorization", "Bearer "+s.token)

	conn, resp, err := dialer.DialContext(ctx, s.url, header)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	return conn, err
}

// readLoop reads events from one connection until it drops or the stream stops.
func (s *Stream) readLoop(ctx context.Context, conn *websocket.Conn) {
	// Unblock ReadJSON when the stream is shut down
	go func() {
		select {
		case <-ctx.Done():
		case <-s.done:
		}
		_ = conn.Close()
	}()

	for {
		var event DeviceEvent
		if err := conn.ReadJSON(&event); err != nil {
			if !s.stopped(ctx) {
				logging.Debug("Event stream read ended", zap.Error(err))
			}
			return
		}

		logging.LogStreamEvent(event.Event, event.MACID)

		select {
		case s.events <- event:
		default:
			// Receiver is behind; the event only triggers a refetch, so
			// dropping it loses nothing once a refetch is already queued.
		}
	}
}
