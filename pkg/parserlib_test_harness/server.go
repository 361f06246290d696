package parserlib_test_harness

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/pprof"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vilterp/parsec/pkg/config"
	"github.com/vilterp/parsec/pkg/corpus"
	clog "github.com/vilterp/parsec/pkg/log"
	"github.com/vilterp/parsec/pkg/parserlib"
)

const requestIDHeader = "X-Request-Id"

// Server exposes languages over HTTP and WebSocket for trying grammars out:
// grammar dumps, parsing with optional callstacks, and a corpus of saved
// sample inputs.
type Server struct {
	config    *config.Config
	languages map[string]*parserlib.Language
	grammars  map[string]*parserlib.SerializedGrammar
	corpus    *corpus.Store
	metrics   *metrics

	mu               sync.Mutex
	connections      map[int]*connection
	nextConnectionID int

	ctx        context.Context
	mux        *http.ServeMux
	httpServer *http.Server
}

// NewServer serves languages, keyed by Name. store may be nil, in which
// case the corpus endpoints respond 404.
func NewServer(cfg *config.Config, store *corpus.Store, languages ...*parserlib.Language) *Server {
	server := &Server{
		config:      cfg,
		languages:   make(map[string]*parserlib.Language),
		grammars:    make(map[string]*parserlib.SerializedGrammar),
		corpus:      store,
		connections: make(map[int]*connection),
		ctx:         context.Background(),
		mux:         http.NewServeMux(),
	}
	for _, l := range languages {
		server.languages[l.Name] = l
		server.grammars[l.Name] = l.Grammar.Serialize()
	}
	server.metrics = newMetrics(server)

	// Serve grammars and parses.
	server.mux.HandleFunc("/languages", server.withRequestID(server.handleLanguages))
	server.mux.HandleFunc("/grammar", server.withRequestID(server.handleGrammar))
	server.mux.HandleFunc("/parse", server.withRequestID(server.handleParse))

	// Serve the corpus.
	server.mux.HandleFunc("/corpus", server.withRequestID(server.handleCorpus))
	server.mux.HandleFunc("/corpus/run", server.withRequestID(server.handleCorpusRun))

	// Serve metrics.
	server.mux.Handle(
		"/metrics",
		promhttp.HandlerFor(server.metrics.registry, promhttp.HandlerOpts{}),
	)

	server.mux.HandleFunc("/debug/pprof/", pprof.Index)
	server.mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	server.mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	server.mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	server.mux.HandleFunc("/debug/pprof/trace", pprof.Trace)

	// Serve WebSocket endpoint for live parsing.
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     func(_ *http.Request) bool { return true },
	}
	server.mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		wsConn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			clog.Println(clog.Background, "upgrading to websocket:", err)
			return
		}
		conn := server.addConnection(wsConn)
		go conn.handleRequests()
	})

	server.httpServer = &http.Server{Addr: cfg.Addr(), Handler: server}
	return server
}

func (s *Server) Ctx() context.Context {
	return s.ctx
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) ListenAndServe() error {
	clog.Println(s, "serving HTTP at", "http://"+s.httpServer.Addr+"/")
	return s.httpServer.ListenAndServe()
}

func (s *Server) Close() error {
	s.mu.Lock()
	for _, conn := range s.connections {
		conn.close()
	}
	s.mu.Unlock()

	clog.Println(s, "closing http server...")
	if err := s.httpServer.Close(); err != nil {
		return err
	}
	if s.corpus != nil {
		clog.Println(s, "closing corpus...")
		if err := s.corpus.Close(); err != nil {
			return err
		}
	}
	clog.Println(s, "bye!")
	return nil
}

func (s *Server) addConnection(wsConn *websocket.Conn) *connection {
	s.mu.Lock()
	defer s.mu.Unlock()
	conn := newConnection(wsConn, s, s.nextConnectionID)
	s.connections[conn.id] = conn
	s.nextConnectionID++
	return conn
}

func (s *Server) removeConnection(conn *connection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.connections, conn.id)
}

func (s *Server) numConnections() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.connections)
}

// withRequestID tags the request's context (and response) with a fresh id
// and logs how long the handler took.
func (s *Server) withRequestID(handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.New().String()
		w.Header().Set(requestIDHeader, requestID)
		w.Header().Set("Access-Control-Allow-Origin", "*")
		r = r.WithContext(clog.WithContext(r.Context(), clog.RequestIDKey, requestID))

		handler(w, r)

		clog.Printf(clog.FromContext(r.Context()), "%s %s responded in %v", r.Method, r.URL.Path, time.Since(start))
	}
}

func (s *Server) language(name string) (*parserlib.Language, error) {
	l, ok := s.languages[name]
	if !ok {
		return nil, &noSuchLanguage{Name: name}
	}
	return l, nil
}

func (s *Server) languageNames() []string {
	names := make([]string, 0, len(s.languages))
	for name := range s.languages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *Server) handleLanguages(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, r, &methodNotAllowed{Method: r.Method})
		return
	}
	writeJSON(w, r, s.languageNames())
}

func (s *Server) handleGrammar(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, r, &methodNotAllowed{Method: r.Method})
		return
	}
	name := r.URL.Query().Get("language")
	if _, err := s.language(name); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, s.grammars[name])
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, r, &methodNotAllowed{Method: r.Method})
		return
	}
	var req ParseRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	resp, err := s.parse(clog.FromContext(r.Context()), &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, resp)
}

func writeJSON(w http.ResponseWriter, r *http.Request, value interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(value); err != nil {
		clog.Println(clog.FromContext(r.Context()), "err encoding json:", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	clog.Printf(clog.FromContext(r.Context()), "%s %s error: %v", r.Method, r.URL.Path, err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode(err))
	if encErr := json.NewEncoder(w).Encode(errorResponse{Error: err.Error()}); encErr != nil {
		clog.Println(clog.FromContext(r.Context()), "err encoding json:", encErr)
	}
}

func decodeBody(r *http.Request, value interface{}) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(value); err != nil {
		return &badRequest{Err: err}
	}
	return nil
}
