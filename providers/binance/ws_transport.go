package binance

import (
	"context"
	"github.com/gorilla/websocket"
	"github.com/yahengsu/bullpen/interfaces"
	"net/http"
	"time"
)

// WsTransport dials kline streams with gorilla/websocket
type WsTransport struct {
	dialer *websocket.Dialer
}

func NewWsTransport() *WsTransport {
	return &WsTransport{
		dialer: &websocket.Dialer{
			Proxy:            http.ProxyFromEnvironment,
			HandshakeTimeout: 45 * time.Second,
		},
	}
}

func (t *WsTransport) Dial(ctx context.Context, url string) (interfaces.FeedConn, error) {
	conn, _, err := t.dialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, err
	}
	return conn, nil
}
