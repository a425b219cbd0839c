package sandbox

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/ispapp/sandpad/internal/logger"
)

// DefaultClientURL is the ES module the preview page loads the execution
// client from.
const DefaultClientURL = "https://esm.sh/@codesandbox/sandpack-client@2"

//go:embed page.html
var pageHTML string

var pageTemplate = template.Must(template.New("preview").Parse(pageHTML))

const (
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
	writeWait  = 10 * time.Second
	maxMessage = 1 << 20
)

// ServerOptions configures the preview server.
type ServerOptions struct {
	// Addr is the listen address. Empty means 127.0.0.1 on a random port.
	Addr      string
	ClientURL string
	// Console receives console output relayed from the preview page.
	Console io.Writer
	Log     *logger.Logger
}

// Message is exchanged with the preview page over the websocket.
type Message struct {
	Type    string            `json:"type"`
	Version int               `json:"version,omitempty"`
	Setup   *Setup            `json:"setup,omitempty"`
	Method  string            `json:"method,omitempty"`
	Data    []json.RawMessage `json:"data,omitempty"`
	Status  string            `json:"status,omitempty"`
}

type peer struct {
	id   string
	conn *websocket.Conn
	send chan []byte
	done chan struct{}
	once sync.Once
}

func (p *peer) close() {
	p.once.Do(func() { close(p.done) })
}

// Server serves the preview page and pushes every dispatched setup to the
// connected pages. It implements Client.
type Server struct {
	opts     ServerOptions
	log      *logger.Logger
	router   *gin.Engine
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	peers   map[string]*peer
	setup   *Setup
	version int
	status  string

	consoleMu sync.Mutex

	listener   net.Listener
	httpServer *http.Server
}

var _ Client = (*Server)(nil)

// NewServer creates a preview server. Call Listen or Start to serve it.
func NewServer(opts ServerOptions) *Server {
	if opts.ClientURL == "" {
		opts.ClientURL = DefaultClientURL
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.SetHTMLTemplate(pageTemplate)

	s := &Server{
		opts:   opts,
		log:    opts.Log.With("preview"),
		router: router,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     sameHost,
		},
		peers: make(map[string]*peer),
	}
	router.Use(s.requestLogger())
	s.setupRoutes()
	return s
}

func sameHost(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	return strings.TrimPrefix(strings.TrimPrefix(origin, "http://"), "https://") == r.Host
}

func (s *Server) setupRoutes() {
	s.router.GET("/", s.handlePage)
	s.router.GET("/ws", s.handleWebSocket)
	s.router.GET("/health", s.handleHealth)

	api := s.router.Group("/api")
	{
		api.GET("/setup", s.handleGetSetup)
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.WithFields(map[string]any{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
		}).Debug("http request")
	}
}

// Handler returns the HTTP handler, for embedding or tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Listen binds the address and serves in the background.
func (s *Server) Listen() error {
	addr := s.opts.Addr
	if addr == "" {
		addr = "127.0.0.1:0"
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}

	s.mu.Lock()
	s.listener = ln
	s.httpServer = &http.Server{
		Handler:     s.router,
		ReadTimeout: 30 * time.Second,
		IdleTimeout: 120 * time.Second,
	}
	srv := s.httpServer
	s.mu.Unlock()

	s.log.WithFields(map[string]any{"address": ln.Addr().String()}).Info("preview server listening")
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error(err, "preview server stopped")
		}
	}()
	return nil
}

// Start serves until ctx is done, then shuts down.
func (s *Server) Start(ctx context.Context) error {
	if err := s.Listen(); err != nil {
		return err
	}
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.Shutdown(shutdownCtx)
}

// Shutdown closes every peer and stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	for id, p := range s.peers {
		p.close()
		_ = p.conn.Close()
		delete(s.peers, id)
	}
	srv := s.httpServer
	s.mu.Unlock()

	if srv == nil {
		return nil
	}
	s.log.Info("shutting down preview server")
	return srv.Shutdown(ctx)
}

// URL returns the preview page address, or "" before Listen.
func (s *Server) URL() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.listener == nil {
		return ""
	}
	return "http://" + s.listener.Addr().String() + "/"
}

// Dispatch validates setup, stores it and pushes it to every page.
func (s *Server) Dispatch(ctx context.Context, setup Setup) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := setup.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	s.version++
	s.setup = &setup
	msg, err := json.Marshal(Message{Type: "setup", Version: s.version, Setup: &setup})
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("failed to encode setup: %w", err)
	}
	peers := make([]*peer, 0, len(s.peers))
	for _, p := range s.peers {
		peers = append(peers, p)
	}
	version := s.version
	s.mu.Unlock()

	for _, p := range peers {
		s.enqueue(p, msg)
	}
	s.log.WithFields(map[string]any{"version": version, "files": len(setup.Project.Files), "peers": len(peers)}).Debug("setup dispatched")
	return nil
}

func (s *Server) enqueue(p *peer, msg []byte) {
	select {
	case p.send <- msg:
	default:
		s.log.WithFields(map[string]any{"peer": p.id}).Warn("peer send buffer full, dropping message")
	}
}

// Current returns the last dispatched setup.
func (s *Server) Current() (Setup, int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.setup == nil {
		return Setup{}, 0, false
	}
	return *s.setup, s.version, true
}

// Peers returns the number of connected preview pages.
func (s *Server) Peers() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.peers)
}

// Status returns the last bundler status reported by a page.
func (s *Server) Status() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

type pageData struct {
	Height    string
	ClientURL string
}

func (s *Server) handlePage(c *gin.Context) {
	height := "100%"
	if setup, _, ok := s.Current(); ok && setup.Options.Height != "" {
		height = setup.Options.Height
	}

	c.HTML(http.StatusOK, pageTemplate.Name(), pageData{Height: height, ClientURL: s.opts.ClientURL})
}

func (s *Server) handleHealth(c *gin.Context) {
	_, version, _ := s.Current()
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"peers":   s.Peers(),
		"version": version,
	})
}

func (s *Server) handleGetSetup(c *gin.Context) {
	setup, version, ok := s.Current()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no project dispatched yet"})
		return
	}
	c.Header("X-Setup-Version", fmt.Sprint(version))
	c.JSON(http.StatusOK, setup)
}

func (s *Server) handleWebSocket(c *gin.Context) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.log.Error(err, "websocket upgrade failed")
		return
	}

	p := &peer{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan []byte, 16),
		done: make(chan struct{}),
	}

	s.mu.Lock()
	s.peers[p.id] = p
	var initial []byte
	if s.setup != nil {
		initial, _ = json.Marshal(Message{Type: "setup", Version: s.version, Setup: s.setup})
	}
	s.mu.Unlock()

	s.log.WithFields(map[string]any{"peer": p.id}).Info("preview connected")
	if initial != nil {
		s.enqueue(p, initial)
	}

	go s.writePump(p)
	go s.readPump(p)
}

func (s *Server) readPump(p *peer) {
	defer func() {
		s.mu.Lock()
		delete(s.peers, p.id)
		s.mu.Unlock()
		p.close()
		_ = p.conn.Close()
		s.log.WithFields(map[string]any{"peer": p.id}).Info("preview disconnected")
	}()

	p.conn.SetReadLimit(maxMessage)
	_ = p.conn.SetReadDeadline(time.Now().Add(pongWait))
	p.conn.SetPongHandler(func(string) error {
		return p.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := p.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.WithFields(map[string]any{"peer": p.id}).Error(err, "websocket read error")
			}
			return
		}
		s.handleMessage(p, data)
	}
}

func (s *Server) writePump(p *peer) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = p.conn.Close()
	}()

	for {
		select {
		case msg := <-p.send:
			_ = p.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := p.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = p.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := p.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-p.done:
			return
		}
	}
}

func (s *Server) handleMessage(p *peer, data []byte) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		s.log.WithFields(map[string]any{"peer": p.id}).Warn("invalid message from preview")
		return
	}

	switch msg.Type {
	case "console":
		s.writeConsole(msg)
	case "status":
		s.mu.Lock()
		s.status = msg.Status
		s.mu.Unlock()
		s.log.WithFields(map[string]any{"peer": p.id, "status": msg.Status}).Debug("bundler status")
	case "error":
		s.writeConsole(Message{Method: "error", Data: msg.Data})
	default:
		s.log.WithFields(map[string]any{"peer": p.id, "type": msg.Type}).Debug("ignoring message")
	}
}

// SetConsole replaces the writer receiving relayed console output.
func (s *Server) SetConsole(w io.Writer) {
	s.consoleMu.Lock()
	s.opts.Console = w
	s.consoleMu.Unlock()
}

// writeConsole relays one console call as a terminal line.
func (s *Server) writeConsole(msg Message) {
	method := msg.Method
	if method == "" {
		method = "log"
	}

	s.consoleMu.Lock()
	defer s.consoleMu.Unlock()
	if s.opts.Console == nil {
		return
	}
	if _, err := fmt.Fprintf(s.opts.Console, "[%s] %s\r\n", method, FormatConsoleArgs(msg.Data)); err != nil {
		s.log.Error(err, "failed to write console output")
	}
}

// FormatConsoleArgs joins console arguments the way a browser console prints
// them: strings bare, everything else as JSON.
func FormatConsoleArgs(args []json.RawMessage) string {
	parts := make([]string, 0, len(args))
	for _, raw := range args {
		var str string
		if err := json.Unmarshal(raw, &str); err == nil {
			parts = append(parts, str)
			continue
		}
		parts = append(parts, string(raw))
	}
	return strings.Join(parts, " ")
}
