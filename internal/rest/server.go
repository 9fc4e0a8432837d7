package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/ujjwalpandey922/meeting-schedular/pkg/models"
)

const shutdownWait = 5 * time.Second

type App interface {
	CreateInstantMeeting(ctx context.Context, identity *models.Claims) (models.Meeting, error)
	CreateScheduledMeeting(ctx context.Context, identity *models.Claims, req models.ScheduleRequest) (models.Meeting, error)
	ListMeetings(ctx context.Context, identity *models.Claims) ([]models.Meeting, error)
	CreateCalendarEvent(ctx context.Context, identity *models.Claims, req models.EventRequest) (models.EventResponse, error)
}

type Auth interface {
	Configured() bool
	LoginURL() (string, string)
	Exchange(ctx context.Context, code string) (string, string, error)
	IssueToken(email, accessToken string) (string, error)
	ParseToken(accessToken string) (*models.Claims, error)
}

type Server struct {
	log     *logrus.Entry
	app     App
	auth    Auth
	address string
	version string

	limiters *userLimiters
}

func NewServer(log *logrus.Logger, app App, auth Auth, address, version string) *Server {
	s := Server{
		log:      log.WithField("component", "rest"),
		app:      app,
		auth:     auth,
		address:  address,
		version:  version,
		limiters: newUserLimiters(rate.Limit(2), 120),
	}
	return &s
}

func (s *Server) routes() *chi.Mux {
	r := chi.NewRouter()
	r.Get("/version", s.versionHandler)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/auth/google/login", s.loginHandler)
	r.Get("/auth/google/callback", s.callbackHandler)
	r.Route("/api", func(r chi.Router) {
		r.Route("/v1", func(r chi.Router) {
			r.Use(s.jwtAuth)
			r.Use(s.rateLimit)
			r.Post("/meetings/instant", s.createInstantMeetingHandler)
			r.Post("/meetings/scheduled", s.createScheduledMeetingHandler)
			r.Get("/meetings", s.listMeetingsHandler)
			r.Post("/calendar/events", s.createEventHandler)
		})
	})
	return r
}

func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.address,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownWait)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			s.log.Warnf("err during shutdown: %v", err)
		}
	}()
	s.log.Infof("listening on %s", s.address)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
