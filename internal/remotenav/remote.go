// Package remotenav forwards navigation to an external UI shell over
// Socket.IO. The shell owns the real page stack; this side emits transition
// requests and reports the shell's answer through navigation.Result.
package remotenav

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"

	"github.com/vk/navgridgo/internal/navigation"
)

const (
	// DefaultEmitEvent carries transition requests to the shell.
	DefaultEmitEvent = "navigation"
	// DefaultResultEvent carries the shell's answer back.
	DefaultResultEvent = "navigation:result"
	// DefaultTimeout bounds one request round trip.
	DefaultTimeout = 10 * time.Second
)

// Config describes the remote shell connection.
type Config struct {
	URL       string
	Namespace string
	// EmitEvent and ResultEvent override the request/response event names.
	EmitEvent   string
	ResultEvent string
	// Timeout bounds each round trip, not the connection lifetime.
	Timeout            time.Duration
	InsecureSkipVerify bool
}

// normalize fills in the protocol defaults.
func (c Config) normalize() Config {
	if c.EmitEvent == "" {
		c.EmitEvent = DefaultEmitEvent
	}
	if c.ResultEvent == "" {
		c.ResultEvent = DefaultResultEvent
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	return c
}

// opResult safely passes one shell answer through the pending channel.
type opResult struct {
	payload any
	err     error
}

// Remote is a navigation.Navigator backed by a Socket.IO connection.
// Round trips are serialized; the binding layer already funnels execution
// through per-binding busy flags, so contention here is rare.
type Remote struct {
	cfg Config
	log *slog.Logger

	manager *socket.Manager
	io      *socket.Socket

	isConnected atomic.Bool

	// pendingMu guards the one-slot rendezvous the result listener writes to.
	pendingMu sync.Mutex
	pending   chan opResult

	// requestMu serializes round trips so answers cannot cross requests.
	requestMu sync.Mutex
}

var _ navigation.Navigator = (*Remote)(nil)

// Dial connects to the shell and blocks until the connection is up, the
// handshake fails, or ctx/Config.Timeout expires.
func Dial(ctx context.Context, cfg Config, logger *slog.Logger) (*Remote, error) {
	cfg = cfg.normalize()
	if logger == nil {
		logger = slog.Default()
	}

	parsedURL, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	opts := socket.DefaultOptions()
	opts.SetPath(parsedURL.Path)
	if cfg.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	r := &Remote{
		cfg: cfg,
		log: logger.With("navigator", "remote", "url", cfg.URL),
	}
	r.manager = socket.NewManager(baseURL, opts)
	r.io = r.manager.Socket(cfg.Namespace, opts)

	connected := make(chan opResult, 1)
	r.io.On(types.EventName("connect"), func(...any) {
		r.isConnected.Store(true)
		r.log.Info("Connected to remote shell", "namespace", cfg.Namespace, "sid", r.io.Id())
		connected <- opResult{}
	})
	r.io.On(types.EventName("connect_error"), func(errs ...any) {
		res := opResult{err: fmt.Errorf("connect to remote shell: %v", errs[0])}
		select {
		case connected <- res:
		default:
		}
		r.deliver(res)
	})
	r.io.On(types.EventName("disconnect"), func(...any) {
		r.isConnected.Store(false)
		r.log.Warn("Disconnected from remote shell")
	})
	r.io.On(types.EventName(cfg.ResultEvent), func(data ...any) {
		var payload any
		if len(data) > 0 {
			payload = data[0]
		}
		r.deliver(opResult{payload: payload})
	})

	r.io.Connect()

	select {
	case <-ctx.Done():
		r.Close()
		return nil, ctx.Err()
	case <-time.After(cfg.Timeout):
		r.Close()
		return nil, fmt.Errorf("timed out while waiting for initial connection")
	case res := <-connected:
		if res.err != nil {
			r.Close()
			return nil, res.err
		}
	}
	return r, nil
}

// Close disconnects from the shell.
func (r *Remote) Close() {
	r.log.Debug("Disconnecting from remote shell")
	r.io.Disconnect()
}

// Navigate forwards a transition request and waits for the shell's answer.
func (r *Remote) Navigate(ctx context.Context, target string, params navigation.Parameters) navigation.Result {
	return navigation.Failed(r.request(ctx, Payload("navigate", target, params)))
}

// Back asks the shell to leave its current page.
func (r *Remote) Back(ctx context.Context, params navigation.Parameters) navigation.Result {
	return navigation.Failed(r.request(ctx, Payload("back", "", params)))
}

func (r *Remote) request(ctx context.Context, payload map[string]any) error {
	r.requestMu.Lock()
	defer r.requestMu.Unlock()

	if !r.isConnected.Load() {
		return fmt.Errorf("remote shell not connected")
	}

	ch := make(chan opResult, 1)
	r.pendingMu.Lock()
	r.pending = ch
	r.pendingMu.Unlock()

	r.log.Debug("Emitting navigation request", "op", payload["op"], "target", payload["target"])
	r.io.Emit(r.cfg.EmitEvent, payload)

	select {
	case <-ctx.Done():
		r.clearPending()
		return ctx.Err()
	case <-time.After(r.cfg.Timeout):
		r.clearPending()
		return fmt.Errorf("timed out after %s waiting for %q from the remote shell", r.cfg.Timeout, r.cfg.ResultEvent)
	case res := <-ch:
		if res.err != nil {
			return res.err
		}
		return RefusalError(res.payload)
	}
}

// deliver hands one answer to the waiting request, if any. Stray answers
// with nobody waiting are dropped.
func (r *Remote) deliver(res opResult) {
	r.pendingMu.Lock()
	ch := r.pending
	r.pending = nil
	r.pendingMu.Unlock()
	if ch != nil {
		ch <- res
	}
}

func (r *Remote) clearPending() {
	r.pendingMu.Lock()
	r.pending = nil
	r.pendingMu.Unlock()
}

// Payload builds the wire form of one transition request. Back requests
// carry an empty target.
func Payload(op, target string, params navigation.Parameters) map[string]any {
	p := map[string]any{
		"op":     op,
		"params": map[string]any(params.Clone()),
	}
	if target != "" {
		p["target"] = target
	}
	return p
}

// RefusalError interprets a shell answer. Objects carrying a non-empty
// "error" attribute mean the shell refused the transition; anything else,
// including no payload at all, counts as success.
func RefusalError(payload any) error {
	obj, ok := payload.(map[string]any)
	if !ok {
		return nil
	}
	if msg, ok := obj["error"].(string); ok && msg != "" {
		return fmt.Errorf("remote shell: %s", msg)
	}
	return nil
}
