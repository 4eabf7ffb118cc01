// Package transport is a gnet-based demonstration server built on the
// reqline, headers, body, and buffer packages: parsing happens inline on
// the event-loop goroutine, while request handling is dispatched to a
// bounded ants worker pool so a slow handler never stalls I/O for other
// connections on the same event-loop shard.
package transport

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/panjf2000/ants/v2"
	gnet "github.com/panjf2000/gnet/v2"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/shapestone/zc-http1/astview"
	"github.com/shapestone/zc-http1/httperr"
)

const (
	defaultShutdownTimeout = 5 * time.Second
	defaultWorkerPoolSize  = 256
	defaultServerHeader    = "zc-http1"
)

// Handler handles one fully decoded request and produces a Response.
type Handler interface {
	Handle(req astview.Request) Response
}

// HandlerFunc adapts a plain function to Handler.
type HandlerFunc func(astview.Request) Response

// Handle implements Handler.
func (f HandlerFunc) Handle(req astview.Request) Response { return f(req) }

// Response is the wire-level shape of a handler's reply.
type Response struct {
	Status  int
	Headers [][2]string
	Body    []byte
}

// Config configures a Server. The zero value is not ready to use; build
// one with NewConfig.
type Config struct {
	Addr            string
	MaxHeaderBytes  int
	ShowErrorDetail bool
	ServerHeader    string
	ShutdownTimeout time.Duration
	ShutdownSignals []os.Signal
	WorkerPoolSize  int
	Multicore       bool
	AccessLogPath   string // empty disables file rotation; logs go to stderr
}

// NewConfig returns a Config with the same defaults the gnet-based demo
// examples in this codebase's lineage ship with.
func NewConfig(addr string) Config {
	return Config{
		Addr:            addr,
		MaxHeaderBytes:  defaultMaxHeaderBytes,
		ServerHeader:    defaultServerHeader,
		ShutdownTimeout: defaultShutdownTimeout,
		ShutdownSignals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
		WorkerPoolSize:  defaultWorkerPoolSize,
		Multicore:       true,
	}
}

// Server is a gnet.EventHandler driving the zero-copy parser over pooled
// per-connection buffers.
type Server struct {
	gnet.BuiltinEventEngine

	cfg     Config
	handler Handler
	log     *zap.Logger
	pool    *ants.Pool
	engine  gnet.Engine

	closeOnce sync.Once
}

// New builds a Server. The returned Server owns a worker pool sized by
// cfg.WorkerPoolSize and a zap logger writing to cfg.AccessLogPath (via a
// rotating lumberjack sink) or stderr if unset.
func New(cfg Config, handler Handler) (*Server, error) {
	if cfg.MaxHeaderBytes <= 0 {
		cfg.MaxHeaderBytes = defaultMaxHeaderBytes
	}
	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}
	if cfg.ServerHeader == "" {
		cfg.ServerHeader = defaultServerHeader
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	logger, err := newLogger(cfg.AccessLogPath)
	if err != nil {
		return nil, fmt.Errorf("transport: building logger: %w", err)
	}

	pool, err := ants.NewPool(cfg.WorkerPoolSize, ants.WithPreAlloc(false))
	if err != nil {
		return nil, fmt.Errorf("transport: building worker pool: %w", err)
	}

	return &Server{cfg: cfg, handler: handler, log: logger, pool: pool}, nil
}

// Run starts the gnet event loop and blocks until a configured shutdown
// signal arrives or ctx is cancelled, then stops the engine and releases
// the worker pool.
func (s *Server) Run(ctx context.Context) error {
	addr := ensureProtoAddr(s.cfg.Addr)

	var g errgroup.Group
	sigCtx, stop := signal.NotifyContext(ctx, s.cfg.ShutdownSignals...)
	defer stop()

	g.Go(func() error {
		return gnet.Run(s, addr, gnet.WithMulticore(s.cfg.Multicore))
	})

	g.Go(func() error {
		<-sigCtx.Done()
		return s.shutdown()
	})

	return g.Wait()
}

func (s *Server) shutdown() error {
	var errs error
	s.closeOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		errs = multierr.Append(errs, s.engine.Stop(ctx))
		s.pool.Release()
	})
	return errs
}

// OnBoot implements gnet.EventHandler.
func (s *Server) OnBoot(engine gnet.Engine) gnet.Action {
	s.engine = engine
	s.log.Info("listening", zap.String("addr", s.cfg.Addr))
	return gnet.None
}

// OnOpen implements gnet.EventHandler.
func (s *Server) OnOpen(c gnet.Conn) ([]byte, gnet.Action) {
	c.SetContext(newConnState())
	return nil, gnet.None
}

// OnClose implements gnet.EventHandler.
func (s *Server) OnClose(c gnet.Conn, err error) gnet.Action {
	if cs, ok := c.Context().(*connState); ok {
		cs.release()
	}
	if err != nil {
		s.log.Debug("connection closed", zap.Error(err))
	}
	return gnet.None
}

// OnTraffic implements gnet.EventHandler. Parsing runs inline here; the
// matching handler invocation and response write are dispatched to the
// worker pool so a slow handler never blocks this event-loop shard.
func (s *Server) OnTraffic(c gnet.Conn) gnet.Action {
	cs, ok := c.Context().(*connState)
	if !ok || cs == nil {
		cs = newConnState()
		c.SetContext(cs)
	}

	if n := c.InboundBuffered(); n > 0 {
		data, err := c.Next(n)
		if err != nil {
			s.writeErrorAsync(c, 500)
			return gnet.Close
		}
		cs.buf.Append(data)
	}

	for cs.buf.Len() > 0 {
		req, consumed, closeAfter, okReq, err := readRequest(cs.buf.Bytes(), s.cfg.MaxHeaderBytes, s.cfg.ShowErrorDetail)
		if err != nil {
			status := 400
			if reason, isParseErr := classify(err); isParseErr && reason == httperr.UnrecognizedHTTPVersion {
				status = 505
			}
			s.writeErrorAsync(c, status)
			return gnet.Close
		}
		if !okReq {
			break
		}

		cs.buf.Discard(consumed)
		cs.reqCount++
		cs.keepAlive = !closeAfter

		s.dispatch(c, cs, req, closeAfter)

		if closeAfter {
			return gnet.Close
		}
	}
	return gnet.None
}

// dispatch hands the handler invocation and response write to the worker
// pool. Conn.Write is only safe from the owning event-loop goroutine, so
// the worker uses AsyncWrite, which gnet queues back onto that goroutine.
func (s *Server) dispatch(c gnet.Conn, cs *connState, req astview.Request, closeAfter bool) {
	connID := cs.id
	submitErr := s.pool.Submit(func() {
		resp := s.handler.Handle(req)
		out := renderResponse(resp, closeAfter, s.cfg.ServerHeader)
		if err := c.AsyncWrite(out, nil); err != nil {
			s.log.Debug("write failed", zap.String("conn", connID), zap.Error(err))
		}
	})
	if submitErr != nil {
		s.log.Warn("worker pool saturated, handling inline", zap.String("conn", connID), zap.Error(submitErr))
		resp := s.handler.Handle(req)
		out := renderResponse(resp, closeAfter, s.cfg.ServerHeader)
		_, _ = c.Write(out)
	}
}

func (s *Server) writeErrorAsync(c gnet.Conn, status int) {
	resp := Response{Status: status, Body: []byte(statusText(status) + "\n")}
	out := renderResponse(resp, true, s.cfg.ServerHeader)
	_, _ = c.Write(out)
}

// ensureProtoAddr prefixes addr with gnet's default "tcp://" scheme unless
// it already names one.
func ensureProtoAddr(addr string) string {
	if !strings.Contains(addr, "://") {
		addr = "tcp://" + addr
	}
	return addr
}

func statusText(code int) string {
	if t := http.StatusText(code); t != "" {
		return t
	}
	return "Unknown Status"
}
