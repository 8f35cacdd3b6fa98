package fakebackend

import (
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
)

func (b *Backend) serveWS(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	b.WSConnects++
	ws := b.ws
	tok := r.URL.Query().Get("token")
	b.LastWSToken = tok
	b.mu.Unlock()

	if ws.RejectStatus != 0 {
		http.Error(w, http.StatusText(ws.RejectStatus), ws.RejectStatus)
		return
	}

	conn, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	if b.accountByToken(tok) == nil {
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "auth failed"))
		return
	}

	for _, f := range ws.Frames {
		if err := conn.WriteMessage(websocket.TextMessage, []byte(f)); err != nil {
			return
		}
	}

	switch {
	case ws.Drop:
		// Underlying connection closes without a close frame.
		_ = conn.NetConn().Close()
		return
	case ws.CloseCode != 0:
		_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(ws.CloseCode, ""))
		return
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if strings.TrimSpace(string(data)) == `{"type":"ping"}` {
			b.mu.Lock()
			b.WSPings++
			b.mu.Unlock()
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"pong"}`))
		}
	}
}
