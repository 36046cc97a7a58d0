// Package oauth provides the loopback redirect listener and browser launcher
// used by the authorisation flow.
package oauth

import (
	"context"
	"errors"
	"fmt"
	"html"
	"io"
	"net"
	"net/http"
	"os/exec"
	"runtime"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/custodia-labs/gwcli/internal/core/ports/driven"
	"github.com/custodia-labs/gwcli/internal/logger"
)

// Ensure CallbackServer implements the interface.
var _ driven.RedirectReceiver = (*CallbackServer)(nil)

// CallbackServer captures one OAuth redirect on a loopback port.
// Each Receive call binds the port, waits for exactly one request carrying
// a code or error parameter, and releases the port before returning.
type CallbackServer struct {
	port        int
	out         io.Writer
	openBrowser func(url string) error
	onListen    func(addr string)
}

// Option customises a CallbackServer.
type Option func(*CallbackServer)

// WithOutput sets where the authorisation URL is printed. Defaults to io.Discard.
func WithOutput(w io.Writer) Option {
	return func(s *CallbackServer) {
		s.out = w
	}
}

// WithBrowser replaces the function used to open the authorisation URL.
// A nil function disables opening a browser.
func WithBrowser(open func(url string) error) Option {
	return func(s *CallbackServer) {
		s.openBrowser = open
	}
}

// WithListenHook registers a function called with the bound address once the
// listener is accepting connections.
func WithListenHook(fn func(addr string)) Option {
	return func(s *CallbackServer) {
		s.onListen = fn
	}
}

// NewCallbackServer creates a callback server for port.
// Port 0 binds a random free port.
func NewCallbackServer(port int, opts ...Option) *CallbackServer {
	s := &CallbackServer{
		port:        port,
		out:         io.Discard,
		openBrowser: OpenBrowser,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListenerFactory returns a driven.ListenerFactory that builds callback
// servers with opts.
func ListenerFactory(opts ...Option) driven.ListenerFactory {
	return func(port int) driven.RedirectReceiver {
		return NewCallbackServer(port, opts...)
	}
}

// Port returns the configured port.
func (s *CallbackServer) Port() int {
	return s.port
}

// Receive opens authURL in the browser and blocks until the provider
// redirects back, ctx is done, or the server fails. The returned string is
// the full redirect URL.
func (s *CallbackServer) Receive(ctx context.Context, authURL string) (string, error) {
	addr := fmt.Sprintf("127.0.0.1:%d", s.port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	defer listener.Close()

	port := s.port
	if tcpAddr, ok := listener.Addr().(*net.TCPAddr); ok {
		port = tcpAddr.Port
	}

	redirects := make(chan string, 1)
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		s.handleRedirect(w, r, port, redirects)
	})

	server := &http.Server{
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	logger.Debug("redirect listener on %s", listener.Addr())
	if s.onListen != nil {
		s.onListen(listener.Addr().String())
	}

	fmt.Fprintf(s.out, "Opening your browser to authorise gwcli. If it does not open, visit:\n\n  %s\n\n", authURL)
	if s.openBrowser != nil {
		if err := s.openBrowser(authURL); err != nil {
			logger.Warn("open browser: %v", err)
		}
	}

	select {
	case redirect := <-redirects:
		return redirect, nil
	case err := <-serveErr:
		return "", fmt.Errorf("redirect listener: %w", err)
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// handleRedirect answers the provider redirect. Requests with neither a
// code nor an error parameter get 404 and do not complete the wait.
func (s *CallbackServer) handleRedirect(w http.ResponseWriter, r *http.Request, port int, redirects chan<- string) {
	query := r.URL.Query()
	code, errParam := query.Get("code"), query.Get("error")
	if code == "" && errParam == "" {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if errParam != "" {
		fmt.Fprint(w, resultHTML("Authorization denied", "gwcli did not receive access: "+errParam))
	} else {
		fmt.Fprint(w, resultHTML("Authorization successful!", "You can close this window and return to the terminal."))
	}

	redirect := fmt.Sprintf("http://localhost:%d%s", port, r.URL.RequestURI())
	select {
	case redirects <- redirect:
	default:
	}
}

func resultHTML(title, message string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <title>gwcli - Authorization</title>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            display: flex;
            justify-content: center;
            align-items: center;
            height: 100vh;
            margin: 0;
            background: #F8F9FA;
        }
        .container {
            text-align: center;
            background: white;
            padding: 48px 64px;
            border-radius: 12px;
            border: 1px solid #DADCE0;
        }
        h1 {
            color: #202124;
            margin: 0 0 8px 0;
            font-size: 24px;
        }
        p {
            color: #5F6368;
            margin: 0;
            font-size: 16px;
        }
    </style>
</head>
<body>
    <div class="container">
        <h1>%s</h1>
        <p>%s</p>
    </div>
</body>
</html>`, html.EscapeString(title), html.EscapeString(message))
}

// OpenBrowser opens the default browser to the given URL.
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
