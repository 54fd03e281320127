package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"examforge/internal/service"
	"examforge/internal/transport/rest/handler"
	"examforge/internal/transport/rest/middleware"
	"examforge/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService   *service.AuthService
	DraftService  *service.DraftService
	UploadService *service.UploadService
	SubmitService *service.SubmissionService
	WSHub         *ws.Hub
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	draftHandler := handler.NewDraftHandler(c.DraftService)
	uploadHandler := handler.NewUploadHandler(c.UploadService)
	submitHandler := handler.NewSubmitHandler(c.SubmitService)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")

	// WebSocket route (token in query param)
	v1.HandleFunc("/ws/drafts/{draftId}", wsHandler.DraftWS).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Authoring routes (require admin auth)
	adminRoutes := v1.NewRoute().Subrouter()
	adminRoutes.Use(authMW.RequireAdmin)

	adminRoutes.HandleFunc("/drafts", draftHandler.Create).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/drafts/{draftId}", draftHandler.Get).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/drafts/{draftId}/parent", draftHandler.SetParent).Methods("PUT", "OPTIONS")
	adminRoutes.HandleFunc("/drafts/{draftId}/advance", draftHandler.Advance).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/drafts/{draftId}/retreat", draftHandler.Retreat).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/drafts/{draftId}/questions", draftHandler.AddQuestion).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/drafts/{draftId}/questions/{index}", draftHandler.UpdateQuestion).Methods("PUT", "OPTIONS")
	adminRoutes.HandleFunc("/drafts/{draftId}/questions/{index}", draftHandler.RemoveQuestion).Methods("DELETE", "OPTIONS")
	adminRoutes.HandleFunc("/drafts/{draftId}/questions/{index}/options", draftHandler.AddOption).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/drafts/{draftId}/questions/{index}/options/{option}", draftHandler.RemoveOption).Methods("DELETE", "OPTIONS")
	adminRoutes.HandleFunc("/drafts/{draftId}/assets/{slot}", uploadHandler.Upload).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/drafts/{draftId}/submit", submitHandler.Submit).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/drafts/{draftId}/outcome", submitHandler.GetOutcome).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/submissions", submitHandler.ListRecords).Methods("GET", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		allowedMethods := os.Getenv("CORS_ALLOWED_METHODS")
		if allowedMethods == "" {
			allowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
		}

		allowedHeaders := os.Getenv("CORS_ALLOWED_HEADERS")
		if allowedHeaders == "" {
			allowedHeaders = "Content-Type, Authorization"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
