package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/ujjwalpandey922/meeting-schedular/pkg/models"
)

const stateCookie = "oauth_state"

// Shown to the user on gateway or unexpected failures, the cause is logged
// for operators only.
var errCreateFailed = errors.New("failed to create/schedule meeting, please try again")

func (s *Server) versionHandler(w http.ResponseWriter, _ *http.Request) {
	_, err := fmt.Fprintf(w, "%s\n", s.version)
	if err != nil {
		s.log.Warnf("err during writing to connection: %v", err)
	}
}

func (s *Server) loginHandler(w http.ResponseWriter, r *http.Request) {
	if !s.auth.Configured() {
		s.writeResponse(w, http.StatusUnauthorized, models.ErrUnauthenticated)
		return
	}
	url, state := s.auth.LoginURL()
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    state,
		Path:     "/",
		HttpOnly: true,
		MaxAge:   300,
	})
	http.Redirect(w, r, url, http.StatusFound)
}

func (s *Server) callbackHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	cookie, err := r.Cookie(stateCookie)
	if err != nil || cookie.Value == "" || cookie.Value != r.URL.Query().Get("state") {
		s.writeResponse(w, http.StatusUnauthorized, models.ErrUnauthenticated)
		return
	}
	code := r.URL.Query().Get("code")
	if code == "" {
		s.writeResponse(w, http.StatusUnauthorized, models.ErrUnauthenticated)
		return
	}
	email, accessToken, err := s.auth.Exchange(ctx, code)
	if err != nil {
		s.log.Warnf("err during exchanging code: %v", err)
		s.writeResponse(w, http.StatusUnauthorized, models.ErrUnauthenticated)
		return
	}
	token, err := s.auth.IssueToken(email, accessToken)
	if err != nil {
		s.log.Warnf("err during issuing token: %v", err)
		s.writeResponse(w, http.StatusInternalServerError, errors.New("failed to sign in, please try again"))
		return
	}
	s.writeResponse(w, http.StatusOK, models.TokenResponse{Token: token})
}

func (s *Server) createInstantMeetingHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	meeting, err := s.app.CreateInstantMeeting(ctx, s.getClaims(ctx))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeResponse(w, http.StatusCreated, meeting)
}

func (s *Server) createScheduledMeetingHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req models.ScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.log.Debugf("err during decoding schedule request: %v", err)
		s.writeResponse(w, http.StatusBadRequest, models.ErrInvalidInput)
		return
	}
	meeting, err := s.app.CreateScheduledMeeting(ctx, s.getClaims(ctx), req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeResponse(w, http.StatusCreated, meeting)
}

func (s *Server) listMeetingsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	meetings, err := s.app.ListMeetings(ctx, s.getClaims(ctx))
	if err != nil {
		s.writeError(w, err)
		return
	}
	if meetings == nil {
		meetings = []models.Meeting{}
	}
	s.writeResponse(w, http.StatusOK, meetings)
}

func (s *Server) createEventHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req models.EventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.log.Debugf("err during decoding event request: %v", err)
		s.writeResponse(w, http.StatusBadRequest, models.ErrInvalidInput)
		return
	}
	resp, err := s.app.CreateCalendarEvent(ctx, s.getClaims(ctx), req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeResponse(w, http.StatusOK, resp)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrUnauthenticated):
		s.writeResponse(w, http.StatusUnauthorized, models.ErrUnauthenticated)
	case errors.Is(err, models.ErrInvalidInput):
		s.writeResponse(w, http.StatusBadRequest, models.ErrInvalidInput)
	case errors.Is(err, models.ErrPastSchedule):
		s.writeResponse(w, http.StatusBadRequest, models.ErrPastSchedule)
	case errors.Is(err, models.ErrActionInFlight):
		s.writeResponse(w, http.StatusConflict, models.ErrActionInFlight)
	default:
		s.log.Warnf("err during creating meeting: %v", err)
		s.writeResponse(w, http.StatusInternalServerError, errCreateFailed)
	}
}

func (s *Server) writeResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if x, ok := data.(error); ok {
		if err := json.NewEncoder(w).Encode(ErrorResponse{Error: x.Error()}); err != nil {
			s.log.Warnf("err during encoding error: %v", err)
		}
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Warnf("err during encoding response: %v", err)
	}
}

type ErrorResponse struct {
	Error string `json:"error"`
}
