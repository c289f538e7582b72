// Package server exposes the tokenizer pipeline over HTTP.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/example/vocabtok/internal/config"
	"github.com/example/vocabtok/internal/segment"
	"github.com/example/vocabtok/internal/tokenizer"
)

// ParseLogLevel converts a case-insensitive level string to slog.Level.
// An empty string returns slog.LevelInfo. Unknown strings return an error.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q (want debug|info|warn|error)", s)
	}
}

// ---------------------------------------------------------------------------
// Functional options
// ---------------------------------------------------------------------------

type options struct {
	maxTextBytes    int
	workers         int
	workerWait      time.Duration
	defaultStrategy segment.Strategy
	sentinel        int
	logger          *slog.Logger
}

func defaultOptions() options {
	return options{
		maxTextBytes:    4096,
		workers:         2,
		workerWait:      10 * time.Second,
		defaultStrategy: segment.Characters,
		sentinel:        -1,
		logger:          slog.Default(),
	}
}

// Option configures the HTTP handler.
type Option func(*options)

// WithMaxTextBytes sets the maximum allowed text length in bytes for POST /tokenize.
func WithMaxTextBytes(n int) Option {
	return func(o *options) { o.maxTextBytes = n }
}

// WithWorkers sets the maximum number of concurrent tokenize requests.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// WithWorkerWait bounds how long a request may wait for a worker slot.
func WithWorkerWait(d time.Duration) Option {
	return func(o *options) { o.workerWait = d }
}

// WithDefaultStrategy sets the strategy used when a request names none.
func WithDefaultStrategy(s segment.Strategy) Option {
	return func(o *options) { o.defaultStrategy = s }
}

// WithSentinel sets the id emitted for out-of-vocabulary symbols.
func WithSentinel(id int) Option {
	return func(o *options) { o.sentinel = id }
}

// WithLogger sets the slog.Logger used for request logging.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// ---------------------------------------------------------------------------
// handler
// ---------------------------------------------------------------------------

// handler holds the dependencies needed to serve HTTP requests.
type handler struct {
	opts options
	sem  chan struct{} // semaphore for worker pool
	log  *slog.Logger
}

// NewHandler returns an http.Handler serving /health, /strategies, and
// POST /tokenize. Each tokenize request builds its own vocabulary; the
// handler holds no mutable tokenizer state.
func NewHandler(optFns ...Option) http.Handler {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	h := &handler{
		opts: opts,
		log:  opts.logger,
	}
	if opts.workers > 0 {
		h.sem = make(chan struct{}, opts.workers)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", h.handleHealth)
	mux.HandleFunc("/strategies", h.handleStrategies)
	mux.HandleFunc("/tokenize", h.handleTokenize)
	return mux
}

func buildVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func (h *handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildVersion(),
	})
}

func (h *handler) handleStrategies(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, segment.Strategies())
}

type tokenizeRequest struct {
	Text     string `json:"text"`
	Strategy string `json:"strategy"`
}

// VocabEntry is one symbol-to-id assignment in a tokenize response.
type VocabEntry struct {
	Symbol string `json:"symbol"`
	ID     int    `json:"id"`
}

type tokenizeResponse struct {
	Strategy   segment.Strategy `json:"strategy"`
	Symbols    []string         `json:"symbols"`
	Vocabulary []VocabEntry     `json:"vocabulary"`
	Tokens     []int            `json:"tokens"`
}

func (h *handler) handleTokenize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if r.Body == nil {
		writeError(w, http.StatusBadRequest, "request body is required")
		return
	}

	var req tokenizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "text field is required")
		return
	}

	if len(req.Text) > h.opts.maxTextBytes {
		writeError(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("text exceeds maximum size of %d bytes", h.opts.maxTextBytes))
		return
	}

	strategy := h.opts.defaultStrategy
	if req.Strategy != "" {
		parsed, err := segment.ParseStrategy(req.Strategy)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		strategy = parsed
	}

	// Acquire a worker slot, honouring cancellation and the wait bound.
	if h.sem != nil {
		waitCtx := r.Context()
		if h.opts.workerWait > 0 {
			var cancel context.CancelFunc
			waitCtx, cancel = context.WithTimeout(waitCtx, h.opts.workerWait)
			defer cancel()
		}
		select {
		case h.sem <- struct{}{}:
			// slot acquired
		case <-waitCtx.Done():
			writeError(w, http.StatusServiceUnavailable, "request cancelled while waiting for worker")
			return
		}
		defer func() { <-h.sem }()
	}

	start := time.Now()
	res := tokenizer.NewWithSentinel(strategy, h.opts.sentinel).Tokenize(req.Text)
	durationMS := time.Since(start).Milliseconds()

	h.log.InfoContext(r.Context(), "tokenize complete",
		slog.String("strategy", string(strategy)),
		slog.Int("text_len", len(req.Text)),
		slog.Int("symbols", len(res.Symbols)),
		slog.Int("distinct", res.Vocab.Len()),
		slog.Int64("duration_ms", durationMS),
	)

	entries := make([]VocabEntry, 0, res.Vocab.Len())
	for id, sym := range res.Vocab.Symbols() {
		entries = append(entries, VocabEntry{Symbol: sym, ID: id})
	}

	writeJSON(w, http.StatusOK, tokenizeResponse{
		Strategy:   strategy,
		Symbols:    res.Symbols,
		Vocabulary: entries,
		Tokens:     res.Tokens,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// ---------------------------------------------------------------------------
// Server — wires handler into net/http.Server with graceful shutdown
// ---------------------------------------------------------------------------

// Server wires the HTTP handler into a net/http.Server with graceful shutdown.
type Server struct {
	cfg             config.Config
	shutdownTimeout time.Duration
}

func New(cfg config.Config) *Server {
	return &Server{
		cfg:             cfg,
		shutdownTimeout: 30 * time.Second,
	}
}

// WithShutdownTimeout overrides the graceful-shutdown drain period.
func (s *Server) WithShutdownTimeout(d time.Duration) *Server {
	s.shutdownTimeout = d
	return s
}

func (s *Server) Start(ctx context.Context) error {
	if err := s.cfg.Validate(); err != nil {
		return err
	}

	h := NewHandler(
		WithWorkers(s.cfg.Server.Workers),
		WithMaxTextBytes(s.cfg.Server.MaxTextBytes),
		WithWorkerWait(time.Duration(s.cfg.Server.RequestTimeout)*time.Second),
		WithDefaultStrategy(s.cfg.Strategy()),
		WithSentinel(s.cfg.Tokenizer.Sentinel),
	)

	httpServer := &http.Server{
		Addr:              s.cfg.Server.ListenAddr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return fmt.Errorf("http listen: %w", err)
	}
}

// ProbeHTTP checks the /health endpoint of a running server.
func ProbeHTTP(addr string) error {
	resp, err := http.Get("http://" + addr + "/health") //nolint:noctx
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected health status: %s", resp.Status)
	}
	return nil
}
