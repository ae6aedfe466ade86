package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rustyeddy/pricedash/dashboard"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBuffer     = 16
)

// LiveRequest is one UI interaction: a navigation selection and, on the
// products page, the selected metric.
type LiveRequest struct {
	Page   string `json:"page"`
	Metric string `json:"metric,omitempty"`
}

// LiveResponse carries the view rebuilt for a request, or why it could not
// be built.
type LiveResponse struct {
	Page   string `json:"page"`
	Metric string `json:"metric,omitempty"`
	Status int    `json:"status"`
	View   any    `json:"view,omitempty"`
	Error  string `json:"error,omitempty"`
}

type liveClient struct {
	conn *websocket.Conn
	send chan []byte
}

func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Error("websocket upgrade: %v", err)
		return
	}

	c := &liveClient{conn: conn, send: make(chan []byte, sendBuffer)}
	s.log.Debug("live client connected from %s", r.RemoteAddr)

	done := make(chan struct{})
	go func() {
		c.writePump()
		close(done)
	}()
	s.readPump(c)
	<-done
	s.log.Debug("live client %s disconnected", r.RemoteAddr)
}

// readPump answers every request in order. It owns c.send and closes it
// when the peer goes away.
func (s *Server) readPump(c *liveClient) {
	defer close(c.send)

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var req LiveRequest
		if err := c.conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Error("live read: %v", err)
			}
			return
		}

		b, err := json.Marshal(s.liveView(req))
		if err != nil {
			s.log.Error("live encode: %v", err)
			return
		}
		c.send <- b
	}
}

func (s *Server) liveView(req LiveRequest) LiveResponse {
	resp := LiveResponse{Page: req.Page, Metric: req.Metric, Status: http.StatusOK}

	page, err := dashboard.ParsePage(req.Page)
	if err == nil {
		resp.View, err = s.dash.View(page, req.Metric)
	}
	if err != nil {
		resp.View = nil
		resp.Status = statusFor(err)
		resp.Error = err.Error()
	}
	return resp
}

func (c *liveClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				c.abort()
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.abort()
				return
			}
		}
	}
}

// abort closes the connection so readPump fails, then drains send until
// readPump closes it.
func (c *liveClient) abort() {
	c.conn.Close()
	for range c.send {
	}
}
