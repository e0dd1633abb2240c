package server

import (
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/app"
	"github.com/iov-one/lockbox/errors"
	"github.com/iov-one/lockbox/events"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	// SignerHeader carries the comma separated addresses of the signers
	// of a submitted transaction.
	SignerHeader = "X-Lockbox-Signer"
	// RequestIDHeader is set on every response.
	RequestIDHeader = "X-Request-Id"

	maxBodySize = 1 << 20
)

// Executor processes transactions and queries. It is implemented by
// app.Engine.
type Executor interface {
	Deliver(lockbox.Tx) (*lockbox.DeliverResult, error)
	Check(lockbox.Tx) (*lockbox.CheckResult, error)
	Query(path string, key []byte) (interface{}, error)
	ChainID() string
	LastCommit() lockbox.CommitID
}

var _ Executor = (*app.Engine)(nil)

// MsgDecoder returns a message of the type registered for a path. It is
// implemented by app.Router.
type MsgDecoder interface {
	DecodeMsg(path string, raw []byte) (lockbox.Msg, error)
}

// Server exposes an Executor over HTTP.
type Server struct {
	exec     Executor
	decoder  MsgDecoder
	hub      *events.Hub
	gatherer prometheus.Gatherer
	logger   log.Logger
	debug    bool
	router   *mux.Router
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l log.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithGatherer sets the source of the /metrics endpoint.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) { s.gatherer = g }
}

// WithDebug includes full error details in responses.
func WithDebug(debug bool) Option {
	return func(s *Server) { s.debug = debug }
}

// New returns a server. Events published to the hub are streamed to the
// websocket subscribers.
func New(exec Executor, decoder MsgDecoder, hub *events.Hub, opts ...Option) *Server {
	s := &Server{
		exec:     exec,
		decoder:  decoder,
		hub:      hub,
		gatherer: prometheus.DefaultGatherer,
		logger:   log.NewNopLogger(),
		router:   mux.NewRouter(),
	}
	for _, fn := range opts {
		fn(s)
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(s.requestID)
	s.router.HandleFunc("/tx/{path:.+}", s.handleDeliver).Methods("POST")
	s.router.HandleFunc("/check/{path:.+}", s.handleCheck).Methods("POST")
	s.router.HandleFunc("/query/{path:.+}/{key}", s.handleQuery).Methods("GET")
	s.router.HandleFunc("/status", s.handleStatus).Methods("GET")
	s.router.HandleFunc("/events", s.handleEvents).Methods("GET")
	s.router.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})).Methods("GET")
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.New().String()
		w.Header().Set(RequestIDHeader, id)
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request", "id", id, "method", r.Method, "url", r.URL.Path, "duration", time.Since(start))
	})
}

// TxResponse is returned for a delivered transaction.
type TxResponse struct {
	Data    string          `json:"data,omitempty"`
	Log     string          `json:"log,omitempty"`
	Events  []lockbox.Event `json:"events,omitempty"`
	Version int64           `json:"version"`
}

// ErrorResponse is returned for every failed request.
type ErrorResponse struct {
	Code      uint32 `json:"code"`
	Log       string `json:"log"`
	RequestID string `json:"request_id"`
}

// StatusResponse describes the state of the node.
type StatusResponse struct {
	ChainID string `json:"chain_id"`
	Version int64  `json:"version"`
	Hash    string `json:"hash"`
}

func (s *Server) handleDeliver(w http.ResponseWriter, r *http.Request) {
	tx, err := s.readTx(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := s.exec.Deliver(tx)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, TxResponse{
		Data:    hex.EncodeToString(res.Data),
		Log:     res.Log,
		Events:  res.Events,
		Version: s.exec.LastCommit().Version,
	})
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	tx, err := s.readTx(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := s.exec.Check(tx)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	key, err := parseKey(vars["key"])
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := s.exec.Query(vars["path"], key)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	commit := s.exec.LastCommit()
	s.writeJSON(w, http.StatusOK, StatusResponse{
		ChainID: s.exec.ChainID(),
		Version: commit.Version,
		Hash:    hex.EncodeToString(commit.Hash),
	})
}

// readTx decodes the message from the request body and the signers from
// the SignerHeader.
func (s *Server) readTx(r *http.Request) (*app.Tx, error) {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "read body: %s", err)
	}
	msg, err := s.decoder.DecodeMsg(mux.Vars(r)["path"], raw)
	if err != nil {
		return nil, err
	}
	signers, err := parseSigners(r.Header.Get(SignerHeader))
	if err != nil {
		return nil, err
	}
	return &app.Tx{Msg: msg, Signers: signers}, nil
}

func parseSigners(header string) ([]lockbox.Address, error) {
	var signers []lockbox.Address
	for _, enc := range strings.Split(header, ",") {
		enc = strings.TrimSpace(enc)
		if enc == "" {
			continue
		}
		addr, err := lockbox.ParseAddress(enc)
		if err != nil {
			return nil, errors.Wrap(err, "signer")
		}
		signers = append(signers, addr)
	}
	return signers, nil
}

// parseKey accepts a plain hex key or any prefixed address format.
func parseKey(enc string) ([]byte, error) {
	if strings.Contains(enc, ":") {
		return lockbox.ParseAddress(enc)
	}
	key, err := hex.DecodeString(enc)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, "key must be hex encoded")
	}
	return key, nil
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("cannot write response", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code, msg := errors.Info(err, s.debug)
	status := httpStatus(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "url", r.URL.Path, "err", err)
	}
	s.writeJSON(w, status, ErrorResponse{
		Code:      code,
		Log:       msg,
		RequestID: w.Header().Get(RequestIDHeader),
	})
}

// httpStatus maps the error taxonomy to an HTTP status code.
func httpStatus(err error) int {
	switch {
	case errors.ErrNotFound.Is(err):
		return http.StatusNotFound
	case errors.ErrUnauthorized.Is(err):
		return http.StatusForbidden
	case errors.ErrPaused.Is(err):
		return http.StatusServiceUnavailable
	case errors.ErrState.Is(err), errors.ErrDuplicate.Is(err), errors.ErrNotExpired.Is(err):
		return http.StatusConflict
	case errors.ErrAmount.Is(err), errors.ErrInsufficientAmount.Is(err), errors.ErrOverflow.Is(err),
		errors.ErrPreimage.Is(err), errors.ErrExpired.Is(err):
		return http.StatusUnprocessableEntity
	case errors.ErrMsg.Is(err), errors.ErrInput.Is(err), errors.ErrEmpty.Is(err),
		errors.ErrType.Is(err), errors.ErrModel.Is(err):
		return http.StatusBadRequest
	case errors.ErrTransfer.Is(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
