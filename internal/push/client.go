package push

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const (
	pingInterval = 15 * time.Second
	pongWait     = 40 * time.Second
	writeWait    = 5 * time.Second
)

// State is a connection state change of the push channel.
type State struct {
	Connected bool
	Err       error // why we disconnected, nil on connect
}

// Client keeps a websocket open to the server's event stream and reconnects
// with exponential backoff when it drops.
type Client struct {
	url    string
	dialer *websocket.Dialer
	events chan Event
	states chan State

	newBackoff func() backoff.BackOff
}

func NewClient(rawURL string) *Client {
	return &Client{
		url:    rawURL,
		dialer: websocket.DefaultDialer,
		events: make(chan Event),
		states: make(chan State, 1),
		newBackoff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 500 * time.Millisecond
			b.MaxInterval = 30 * time.Second
			b.MaxElapsedTime = 0 // retry forever
			return b
		},
	}
}

// DeriveURL turns the api base url into the event stream url
func DeriveURL(apiBase string) (string, error) {
	u, err := url.Parse(strings.TrimRight(apiBase, "/"))
	if err != nil {
		return "", err
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("cannot derive push url from %q", apiBase)
	}
	u.Path += "/api/events"
	return u.String(), nil
}

func (c *Client) Events() <-chan Event {
	return c.events
}

func (c *Client) States() <-chan State {
	return c.states
}

// Run blocks until ctx is done. Both channels are closed on return.
func (c *Client) Run(ctx context.Context) error {
	defer close(c.events)
	defer close(c.states)

	b := c.newBackoff()
	for {
		conn, _, err := c.dialer.DialContext(ctx, c.url, nil)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			wait := b.NextBackOff()
			logrus.WithFields(logrus.Fields{
				"url":   c.url,
				"retry": wait,
			}).WithError(err).Warn("push: dial failed")
			c.setState(ctx, State{Connected: false, Err: err})
			if wait == backoff.Stop {
				return fmt.Errorf("push: giving up: %w", err)
			}
			if !sleep(ctx, wait) {
				return ctx.Err()
			}
			continue
		}

		b.Reset()
		logrus.WithField("url", c.url).Info("push: connected")
		c.setState(ctx, State{Connected: true})

		err = c.serve(ctx, conn)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		logrus.WithError(err).Warn("push: connection lost")
		c.setState(ctx, State{Connected: false, Err: err})
	}
}

// serve pumps one connection until it breaks
func (c *Client) serve(ctx context.Context, conn *websocket.Conn) error {
	g, gctx := errgroup.WithContext(ctx)

	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	// reader
	g.Go(func() error {
		for {
			_, frame, err := conn.ReadMessage()
			if err != nil {
				return err
			}
			ev, err := Decode(frame)
			if err != nil {
				logrus.WithError(err).Debug("push: dropping frame")
				continue
			}
			select {
			case c.events <- ev:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
	})

	// keepalive
	g.Go(func() error {
		t := time.NewTicker(pingInterval)
		defer t.Stop()
		for {
			select {
			case <-t.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
					return err
				}
			case <-gctx.Done():
				return gctx.Err()
			}
		}
	})

	// unblock the reader once anything above gives up
	g.Go(func() error {
		<-gctx.Done()
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
		return conn.Close()
	})

	err := g.Wait()
	if errors.Is(err, context.Canceled) && ctx.Err() == nil {
		err = errors.New("connection closed")
	}
	return err
}

// latest state wins; a stale undelivered state is replaced
func (c *Client) setState(ctx context.Context, s State) {
	for {
		select {
		case c.states <- s:
			return
		case <-ctx.Done():
			return
		default:
		}
		select {
		case <-c.states:
		default:
		}
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}
