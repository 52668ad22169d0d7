package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"fitness-tracker/internal/domain"
	"fitness-tracker/internal/usecase"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Server exposes the user and training use cases over REST. The handlers are
// thin: decode, delegate, map the error taxonomy to a status code.
type Server struct {
	userUC     usecase.UserUseCase
	trainingUC usecase.TrainingUseCase
	log        *zerolog.Logger
}

func NewServer(userUC usecase.UserUseCase, trainingUC usecase.TrainingUseCase, logger *zerolog.Logger) *Server {
	return &Server{
		userUC:     userUC,
		trainingUC: trainingUC,
		log:        logger,
	}
}

// Routes builds the router with the standard middleware chain.
func (s *Server) Routes() *chi.Mux {
	r := chi.NewRouter()
	r.Use(TraceID())
	r.Use(RequestLog(s.log))
	r.Use(Recover(s.log))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1/users", func(r chi.Router) {
		r.Get("/", s.handleListUsers)
		r.Post("/", s.handleCreateUser)
		r.Get("/simple", s.handleListUsersSimple)
		r.Get("/email", s.handleSearchUsersByEmail)
		r.Get("/older/{date}", s.handleUsersOlderThan)
		r.Get("/{id}", s.handleGetUser)
		r.Put("/{id}", s.handleUpdateUser)
		r.Delete("/{id}", s.handleDeleteUser)
	})

	r.Route("/api/v1/trainings", func(r chi.Router) {
		r.Get("/", s.handleListTrainings)
		r.Post("/", s.handleCreateTraining)
		r.Get("/user/{userId}", s.handleTrainingsByUser)
		r.Get("/finished/{after}", s.handleTrainingsEndedAfter)
		r.Get("/activityType", s.handleTrainingsByActivity)
		r.Get("/{id}", s.handleGetTraining)
		r.Put("/{id}", s.handleUpdateTraining)
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps domain errors onto HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrTrainingNotFound),
		errors.Is(err, domain.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, domain.ErrInvalidArgument):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
