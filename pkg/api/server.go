// Package api exposes the ledger over HTTP. It is a thin rendering layer:
// every business rule lives in the ledger, and the handlers only decode
// requests, dispatch, and map ledger errors to status codes.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"bank-ledger/pkg/ledger"
	"bank-ledger/pkg/logging"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// ServerConfig holds configuration for the API server.
type ServerConfig struct {
	// Address to listen on (e.g., ":8080")
	Address string

	// ReadTimeout for HTTP requests
	ReadTimeout time.Duration

	// WriteTimeout for HTTP responses
	WriteTimeout time.Duration

	// MetricsHandler, when set, is mounted at /metrics.
	MetricsHandler http.Handler
}

// DefaultServerConfig returns a default configuration.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Address:      ":8080",
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
}

// Server serves the ledger's HTTP API.
type Server struct {
	ledger *ledger.Ledger
	logger *logging.Logger
	server *http.Server
	config ServerConfig
}

// NewServer creates an API server over the given ledger.
func NewServer(l *ledger.Ledger, config ServerConfig) *Server {
	s := &Server{
		ledger: l,
		logger: logging.Global().Named("api"),
		config: config,
	}

	r := mux.NewRouter()

	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	if config.MetricsHandler != nil {
		r.Handle("/metrics", config.MetricsHandler).Methods(http.MethodGet)
	}

	r.HandleFunc("/customers", s.handleCreateCustomer).Methods(http.MethodPost)
	r.HandleFunc("/customers", s.handleListCustomers).Methods(http.MethodGet)
	r.HandleFunc("/customers/{id}", s.handleGetCustomer).Methods(http.MethodGet)
	r.HandleFunc("/customers/{id}", s.handleUpdateCustomer).Methods(http.MethodPut)
	r.HandleFunc("/customers/{id}", s.handleDeleteCustomer).Methods(http.MethodDelete)
	r.HandleFunc("/customers/{id}/accounts", s.handleCustomerAccounts).Methods(http.MethodGet)

	r.HandleFunc("/accounts", s.handleCreateAccount).Methods(http.MethodPost)
	r.HandleFunc("/accounts", s.handleListAccounts).Methods(http.MethodGet)
	r.HandleFunc("/accounts/{id}", s.handleGetAccount).Methods(http.MethodGet)
	r.HandleFunc("/accounts/{id}", s.handleDeleteAccount).Methods(http.MethodDelete)
	r.HandleFunc("/accounts/{id}/deposit", s.handleDeposit).Methods(http.MethodPost)
	r.HandleFunc("/accounts/{id}/withdraw", s.handleWithdraw).Methods(http.MethodPost)
	r.HandleFunc("/accounts/{id}/interest", s.handleApplyInterest).Methods(http.MethodPost)
	r.HandleFunc("/accounts/{id}/interest-rate", s.handleSetInterestRate).Methods(http.MethodPut)
	r.HandleFunc("/accounts/{id}/statement", s.handleStatement).Methods(http.MethodGet)
	r.HandleFunc("/accounts/{id}/transactions", s.handleAccountTransactions).Methods(http.MethodGet)
	r.HandleFunc("/accounts/{id}/cards", s.handleAccountCards).Methods(http.MethodGet)
	r.HandleFunc("/accounts/{id}/cards", s.handleAddCard).Methods(http.MethodPost)

	r.HandleFunc("/transfers", s.handleTransfer).Methods(http.MethodPost)

	r.HandleFunc("/cards/{number}", s.handleRemoveCard).Methods(http.MethodDelete)
	r.HandleFunc("/cards/{number}/block", s.handleBlockCard).Methods(http.MethodPost)
	r.HandleFunc("/cards/{number}/unblock", s.handleUnblockCard).Methods(http.MethodPost)

	s.server = &http.Server{
		Addr:         config.Address,
		Handler:      r,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
	}

	return s
}

// Handler returns the server's HTTP handler, primarily for tests.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start starts the HTTP server in a goroutine.
func (s *Server) Start() {
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("api server error", zap.Error(err))
		}
	}()
	s.logger.Info("api server started", zap.String("address", s.config.Address))
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// handleHealth returns a simple health check.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
	})
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError maps a ledger error to an HTTP status and renders it.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	var status int
	switch {
	case ledger.IsNotFound(err):
		status = http.StatusNotFound
	case ledger.IsInsufficientFunds(err):
		status = http.StatusUnprocessableEntity
	case ledger.IsPreconditionViolation(err):
		status = http.StatusConflict
	case ledger.IsInvalidArgument(err):
		status = http.StatusBadRequest
	default:
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// badRequest renders a malformed-request response without a ledger error.
func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
}
