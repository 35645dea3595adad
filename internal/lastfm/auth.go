package lastfm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/exec"
	"runtime"
	"time"

	"github.com/gorilla/mux"
)

const (
	// DefaultCallbackAddr is where login listens for the authorization redirect.
	DefaultCallbackAddr = "localhost:9847"

	// AuthTimeout bounds how long login waits for the browser callback.
	AuthTimeout = 5 * time.Minute
)

// ErrAuthTimeout is returned when no callback arrives in time.
var ErrAuthTimeout = errors.New("timed out waiting for authorization")

const callbackPage = `<!DOCTYPE html>
<html>
<head><title>jamwaves - Last.fm</title></head>
<body style="font-family: sans-serif; text-align: center; padding: 50px;">
<h1>%s</h1>
<p>%s</p>
</body>
</html>`

// CallbackServer receives the token Last.fm appends to the callback URL
// once the user authorized the application.
type CallbackServer struct {
	srv    *http.Server
	ln     net.Listener
	tokens chan string
	done   chan struct{}
}

// ListenCallback starts the callback server on addr.
func ListenCallback(addr string) (*CallbackServer, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}

	s := &CallbackServer{
		ln:     ln,
		tokens: make(chan string, 1),
		done:   make(chan struct{}),
	}
	s.srv = &http.Server{
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		_ = s.srv.Serve(ln)
		close(s.done)
	}()
	return s, nil
}

func (s *CallbackServer) routes() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/callback", s.handleCallback).Methods(http.MethodGet)
	return r
}

func (s *CallbackServer) handleCallback(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if token != "" {
		fmt.Fprintf(w, callbackPage, "Authorization successful", "You can close this window and return to jamwaves.")
	} else {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprintf(w, callbackPage, "Authorization failed", "No token received. Please try again.")
	}

	select {
	case s.tokens <- token:
	default:
	}
}

// URL is the callback URL to hand to GetAuthURL.
func (s *CallbackServer) URL() string {
	return "http://" + s.ln.Addr().String() + "/callback"
}

// Wait blocks until the callback arrives, ctx is done or timeout elapses.
// An empty token with a nil error means the callback carried none.
func (s *CallbackServer) Wait(ctx context.Context, timeout time.Duration) (string, error) {
	return waitToken(ctx, s.tokens, timeout)
}

func waitToken(ctx context.Context, tokens <-chan string, timeout time.Duration) (string, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case token := <-tokens:
		return token, nil
	case <-timer.C:
		return "", ErrAuthTimeout
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Close stops the server and waits for it to exit.
func (s *CallbackServer) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	err := s.srv.Shutdown(ctx)
	<-s.done
	return err
}

// OpenBrowser opens url with the platform's default handler.
func OpenBrowser(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux", "freebsd", "openbsd":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
	return cmd.Start()
}
