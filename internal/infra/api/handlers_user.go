package api

import (
	"encoding/json"
	"net/http"
	"time"

	"fitness-tracker/internal/domain/model"

	"github.com/go-chi/chi/v5"
)

const dateLayout = "2006-01-02"

type userPayload struct {
	ID        string `json:"id,omitempty"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Birthdate string `json:"birthdate"`
	Email     string `json:"email"`
}

type userSimplePayload struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func toUserPayload(u *model.User) userPayload {
	return userPayload{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Birthdate: u.Birthdate.Format(dateLayout),
		Email:     u.Email,
	}
}

func toUserPayloads(users []*model.User) []userPayload {
	out := make([]userPayload, 0, len(users))
	for _, u := range users {
		out = append(out, toUserPayload(u))
	}
	return out
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var in userPayload
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	birthdate, err := time.Parse(dateLayout, in.Birthdate)
	if err != nil {
		http.Error(w, "birthdate must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	// The ID is passed through on purpose; the use case rejects pre-set IDs.
	usr := &model.User{
		ID:        in.ID,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Birthdate: birthdate,
		Email:     in.Email,
	}
	created, err := s.userUC.Create(r.Context(), usr)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toUserPayload(created))
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	usr, err := s.userUC.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserPayload(usr))
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.userUC.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserPayloads(users))
}

func (s *Server) handleListUsersSimple(w http.ResponseWriter, r *http.Request) {
	users, err := s.userUC.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]userSimplePayload, 0, len(users))
	for _, u := range users {
		out = append(out, userSimplePayload{ID: u.ID, FirstName: u.FirstName, LastName: u.LastName})
	}
	writeJSON(w, http.StatusOK, out)
}

type userEmailPayload struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// handleSearchUsersByEmail matches a case-insensitive substring of the email
// and returns an id+email projection.
func (s *Server) handleSearchUsersByEmail(w http.ResponseWriter, r *http.Request) {
	part := r.URL.Query().Get("email")
	if part == "" {
		http.Error(w, "email query parameter required", http.StatusBadRequest)
		return
	}
	users, err := s.userUC.SearchByEmail(r.Context(), part)
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]userEmailPayload, 0, len(users))
	for _, u := range users {
		out = append(out, userEmailPayload{ID: u.ID, Email: u.Email})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleUsersOlderThan(w http.ResponseWriter, r *http.Request) {
	cutoff, err := time.Parse(dateLayout, chi.URLParam(r, "date"))
	if err != nil {
		http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	users, err := s.userUC.OlderThan(r.Context(), cutoff)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserPayloads(users))
}

type userUpdatePayload struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Birthdate *string `json:"birthdate"`
	Email     *string `json:"email"`
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	var in userUpdatePayload
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	upd := model.UserUpdate{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
	}
	if in.Birthdate != nil {
		birthdate, err := time.Parse(dateLayout, *in.Birthdate)
		if err != nil {
			http.Error(w, "birthdate must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		upd.Birthdate = &birthdate
	}
	updated, err := s.userUC.Update(r.Context(), chi.URLParam(r, "id"), upd)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserPayload(updated))
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := s.userUC.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
