package api

import (
	"encoding/json"
	"net/http"
	"time"

	"fitness-tracker/internal/domain/model"

	"github.com/go-chi/chi/v5"
)

type trainingPayload struct {
	ID           string      `json:"id"`
	User         userPayload `json:"user"`
	StartTime    time.Time   `json:"start_time"`
	EndTime      time.Time   `json:"end_time"`
	ActivityType string      `json:"activity_type"`
	Distance     float64     `json:"distance"`
	AverageSpeed float64     `json:"average_speed"`
}

func toTrainingPayload(t *model.Training) trainingPayload {
	return trainingPayload{
		ID:           t.ID,
		User:         toUserPayload(t.User),
		StartTime:    t.StartTime,
		EndTime:      t.EndTime,
		ActivityType: string(t.ActivityType),
		Distance:     t.Distance,
		AverageSpeed: t.AverageSpeed,
	}
}

func toTrainingPayloads(trainings []*model.Training) []trainingPayload {
	out := make([]trainingPayload, 0, len(trainings))
	for _, t := range trainings {
		out = append(out, toTrainingPayload(t))
	}
	return out
}

type trainingCreatePayload struct {
	UserID       string    `json:"user_id"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	ActivityType string    `json:"activity_type"`
	Distance     float64   `json:"distance"`
	AverageSpeed float64   `json:"average_speed"`
}

func (s *Server) handleCreateTraining(w http.ResponseWriter, r *http.Request) {
	var in trainingCreatePayload
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	activity, err := model.ParseActivityType(in.ActivityType)
	if err != nil {
		http.Error(w, "unknown activity type", http.StatusBadRequest)
		return
	}
	created, err := s.trainingUC.Save(r.Context(), model.TrainingDetails{
		UserID:       in.UserID,
		StartTime:    in.StartTime,
		EndTime:      in.EndTime,
		ActivityType: activity,
		Distance:     in.Distance,
		AverageSpeed: in.AverageSpeed,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTrainingPayload(created))
}

func (s *Server) handleGetTraining(w http.ResponseWriter, r *http.Request) {
	tr, err := s.trainingUC.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTrainingPayload(tr))
}

func (s *Server) handleListTrainings(w http.ResponseWriter, r *http.Request) {
	trainings, err := s.trainingUC.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTrainingPayloads(trainings))
}

func (s *Server) handleTrainingsByUser(w http.ResponseWriter, r *http.Request) {
	trainings, err := s.trainingUC.ListForUser(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTrainingPayloads(trainings))
}

// handleTrainingsEndedAfter accepts a date and returns trainings whose end
// time lies strictly after its midnight.
func (s *Server) handleTrainingsEndedAfter(w http.ResponseWriter, r *http.Request) {
	after, err := time.Parse(dateLayout, chi.URLParam(r, "after"))
	if err != nil {
		http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	trainings, err := s.trainingUC.EndedAfter(r.Context(), after)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTrainingPayloads(trainings))
}

func (s *Server) handleTrainingsByActivity(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("activityType")
	if raw == "" {
		http.Error(w, "activityType query parameter required", http.StatusBadRequest)
		return
	}
	activity, err := model.ParseActivityType(raw)
	if err != nil {
		http.Error(w, "unknown activity type", http.StatusBadRequest)
		return
	}
	trainings, err := s.trainingUC.ByActivityType(r.Context(), activity)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTrainingPayloads(trainings))
}

type trainingUpdatePayload struct {
	UserID       *string   `json:"user_id"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	ActivityType string    `json:"activity_type"`
	Distance     float64   `json:"distance"`
	AverageSpeed float64   `json:"average_speed"`
}

func (s *Server) handleUpdateTraining(w http.ResponseWriter, r *http.Request) {
	var in trainingUpdatePayload
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	activity, err := model.ParseActivityType(in.ActivityType)
	if err != nil {
		http.Error(w, "unknown activity type", http.StatusBadRequest)
		return
	}
	updated, err := s.trainingUC.Update(r.Context(), chi.URLParam(r, "id"), model.TrainingUpdate{
		UserID:       in.UserID,
		StartTime:    in.StartTime,
		EndTime:      in.EndTime,
		ActivityType: activity,
		Distance:     in.Distance,
		AverageSpeed: in.AverageSpeed,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTrainingPayload(updated))
}
