package server

import (
	"net/http"

	"github.com/gorilla/mux"

	"task-management/internal/auth"
	"task-management/internal/services"
)

// Server exposes the user and task services over HTTP. Authentication,
// JSON codec and status mapping live here; all business rules live in
// the services.
type Server struct {
	users  services.UserService
	tasks  services.TaskService
	tokens *auth.TokenIssuer
	router *mux.Router
}

// New creates a Server with its routes registered.
func New(users services.UserService, tasks services.TaskService, tokens *auth.TokenIssuer) *Server {
	s := &Server{
		users:  users,
		tasks:  tasks,
		tokens: tokens,
		router: mux.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Use(requestLogging)

	api := s.router.PathPrefix("/api").Subrouter()

	// Public endpoints: no token required.
	api.HandleFunc("/auth/register", s.handleRegister).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", s.handleLogin).Methods(http.MethodPost)

	// Everything else requires a valid session token.
	authed := api.PathPrefix("").Subrouter()
	authed.Use(authMiddleware(s.tokens))

	authed.HandleFunc("/auth/change-password", s.handleChangePassword).Methods(http.MethodPost)
	authed.HandleFunc("/auth/me", s.handleMe).Methods(http.MethodGet)
	authed.HandleFunc("/auth/me", s.handleUpdateMe).Methods(http.MethodPut)
	authed.HandleFunc("/auth/{id:[0-9]+}", s.handleGetUser).Methods(http.MethodGet)

	authed.HandleFunc("/tasks", s.handleListTasks).Methods(http.MethodGet)
	authed.HandleFunc("/tasks/all", s.handleAllTasks).Methods(http.MethodGet)
	authed.HandleFunc("/tasks", s.handleCreateTask).Methods(http.MethodPost)
	authed.HandleFunc("/tasks/overdue", s.handleOverdueTasks).Methods(http.MethodGet)
	authed.HandleFunc("/tasks/status/{status}", s.handleTasksByStatus).Methods(http.MethodGet)
	authed.HandleFunc("/tasks/{id:[0-9]+}", s.handleGetTask).Methods(http.MethodGet)
	authed.HandleFunc("/tasks/{id:[0-9]+}", s.handleUpdateTask).Methods(http.MethodPut)
	authed.HandleFunc("/tasks/{id:[0-9]+}", s.handleDeleteTask).Methods(http.MethodDelete)
	authed.HandleFunc("/tasks/{id:[0-9]+}/complete", s.handleCompleteTask).Methods(http.MethodPost)
}

// Handler returns the root handler for use with an http.Server.
func (s *Server) Handler() http.Handler {
	return s.router
}
