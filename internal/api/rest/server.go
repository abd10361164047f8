package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
)

// Server represents the REST API server
type Server struct {
	port    string
	server  *http.Server
	handler *Handler
}

// NewServer creates a new REST API server
func NewServer(port string, handler *Handler) *Server {
	router := mux.NewRouter()

	// Apply middleware
	router.Use(RecoveryMiddleware)
	router.Use(LoggingMiddleware)
	router.Use(CORSMiddleware)

	// Health check
	router.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	// API v1 routes
	api := router.PathPrefix("/api/v1").Subrouter()

	// Slate
	api.HandleFunc("/slate/today", handler.GetTodaysSlate).Methods("GET")
	api.HandleFunc("/slate/refresh", handler.RefreshSlate).Methods("POST")

	// Scoring catalog
	api.HandleFunc("/variables", handler.GetVariables).Methods("GET")
	api.HandleFunc("/variables/{id}", handler.GetVariable).Methods("GET")

	// History and accuracy
	api.HandleFunc("/history", handler.GetHistory).Methods("GET")
	api.HandleFunc("/history/range", handler.GetHistoryRange).Methods("GET")
	api.HandleFunc("/history/{gameID}", handler.GetGamePrediction).Methods("GET")
	api.HandleFunc("/accuracy", handler.GetAccuracy).Methods("GET")

	// Operations
	api.HandleFunc("/testdata", handler.LoadTestData).Methods("POST")
	api.HandleFunc("/diagnostics", handler.RunDiagnostics).Methods("GET")
	api.HandleFunc("/reconcile", handler.TriggerReconcile).Methods("POST")

	return &Server{
		port:    port,
		handler: handler,
		server: &http.Server{
			Addr:    fmt.Sprintf(":%s", port),
			Handler: router,
		},
	}
}

// Start starts the REST API server
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
