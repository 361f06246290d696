package parserlib_test_harness

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	clog "github.com/vilterp/parsec/pkg/log"
)

// connection parses every message a websocket client sends, answering each
// with a ParseResponse, in order.
type connection struct {
	clientConn *websocket.Conn
	id         int
	server     *Server
	context    context.Context
}

// wsResponse pairs a response with the id of the request it answers.
// Error is set when the request itself was bad, as opposed to the input
// failing to parse.
type wsResponse struct {
	RequestID string
	Response  *ParseResponse `json:",omitempty"`
	Error     string         `json:",omitempty"`
}

func newConnection(wsConn *websocket.Conn, s *Server, ID int) *connection {
	return &connection{
		clientConn: wsConn,
		id:         ID,
		server:     s,
		context:    clog.WithContext(s.ctx, clog.ConnIDKey, ID),
	}
}

func (conn *connection) Ctx() context.Context {
	return conn.context
}

func (conn *connection) handleRequests() {
	clog.Println(conn, "initiated from", conn.clientConn.RemoteAddr())
	defer conn.server.removeConnection(conn)
	for {
		_, message, readErr := conn.clientConn.ReadMessage()
		if readErr != nil {
			clog.Println(conn, "terminated:", readErr)
			return
		}
		resp := conn.handleMessage(message)
		if err := conn.clientConn.WriteJSON(resp); err != nil {
			clog.Println(conn, "error writing to socket:", err)
			return
		}
	}
}

func (conn *connection) handleMessage(message []byte) *wsResponse {
	requestID := uuid.New().String()
	l := clog.FromContext(clog.WithContext(conn.context, clog.RequestIDKey, requestID))

	var req ParseRequest
	if err := json.Unmarshal(message, &req); err != nil {
		err = &badRequest{Err: err}
		clog.Println(l, err)
		return &wsResponse{RequestID: requestID, Error: err.Error()}
	}
	resp, err := conn.server.parse(l, &req)
	if err != nil {
		clog.Println(l, err)
		return &wsResponse{RequestID: requestID, Error: err.Error()}
	}
	return &wsResponse{RequestID: requestID, Response: resp}
}

func (conn *connection) close() {
	if err := conn.clientConn.Close(); err != nil {
		clog.Println(conn, "error closing socket:", err)
	}
}
