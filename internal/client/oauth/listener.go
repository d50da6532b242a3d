// Package oauth implements the client half of the redirect flow: a loopback
// HTTP listener that waits for the server to redirect back carrying a token.
package oauth

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"itemvault/internal/common"
)

// Listener is a one-shot callback endpoint on a loopback port.
type Listener struct {
	ln     net.Listener
	srv    *http.Server
	result chan string
}

// NewListener binds 127.0.0.1 on an ephemeral port and starts serving the
// callback endpoint. Call Wait to block for the token and shut down.
func NewListener() (*Listener, error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, fmt.Errorf("listen: %w", err)
	}

	l := &Listener{ln: ln, result: make(chan string, 1)}

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get(common.TokenQueryParam)
		if token == "" {
			http.Error(w, "missing token", http.StatusBadRequest)
			return
		}
		fmt.Fprintln(w, "Signed in. You can close this tab and return to the terminal.")
		select {
		case l.result <- token:
		default:
		}
	})

	l.srv = &http.Server{Handler: mux}
	go func() { _ = l.srv.Serve(ln) }()
	return l, nil
}

// RedirectURI is the address the server should send the browser back to.
func (l *Listener) RedirectURI() string {
	return fmt.Sprintf("http://%s/callback", l.ln.Addr().String())
}

// Wait blocks until a token arrives or ctx is done, then shuts the listener
// down. A redirect without a token leaves Wait blocked; cancel the context
// to give up.
func (l *Listener) Wait(ctx context.Context) (string, error) {
	defer l.Close()
	select {
	case token := <-l.result:
		return token, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Close shuts the listener down. Safe to call more than once.
func (l *Listener) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_ = l.srv.Shutdown(ctx)
}
