package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ujjwalpandey922/meeting-schedular/pkg/meetcode"
	"github.com/ujjwalpandey922/meeting-schedular/pkg/memstore"
	"github.com/ujjwalpandey922/meeting-schedular/pkg/metrics"
	"github.com/ujjwalpandey922/meeting-schedular/pkg/models"
	"github.com/ujjwalpandey922/meeting-schedular/pkg/timeguard"
)

const (
	defaultDuration = 60 * time.Minute
	meetLinkBase    = "https://meet.google.com/"

	actionInstant   = "instant"
	actionScheduled = "scheduled"
)

type Gateway interface {
	CreateEvent(ctx context.Context, accessToken, title string, start time.Time, duration time.Duration) (string, error)
}

type Notifier interface {
	Notify(ctx context.Context, message, user string) error
}

type ScheduleService struct {
	log      *logrus.Entry
	stores   *memstore.SessionStores
	gateway  Gateway
	notifier Notifier
	loc      *time.Location
	now      func() time.Time

	mu       sync.Mutex
	inFlight map[string]struct{}
}

func NewScheduleService(log *logrus.Logger, stores *memstore.SessionStores, gateway Gateway, notifier Notifier, loc *time.Location) *ScheduleService {
	s := ScheduleService{
		log:      log.WithField("component", "service"),
		stores:   stores,
		gateway:  gateway,
		notifier: notifier,
		loc:      loc,
		now:      time.Now,
		inFlight: make(map[string]struct{}),
	}
	return &s
}

// CreateInstantMeeting creates a calendar event starting now and records the
// resulting meeting for the caller.
func (s *ScheduleService) CreateInstantMeeting(ctx context.Context, identity *models.Claims) (models.Meeting, error) {
	if identity == nil || identity.AccessToken == "" {
		metrics.MeetingsRejected.WithLabelValues("unauthenticated").Inc()
		return models.Meeting{}, models.ErrUnauthenticated
	}
	if !s.acquire(identity.Email, actionInstant) {
		return models.Meeting{}, models.ErrActionInFlight
	}
	defer s.release(identity.Email, actionInstant)

	start := s.now().In(s.loc)
	meeting, err := s.createMeeting(ctx, identity, models.TitleInstant, start, true)
	if err != nil {
		return models.Meeting{}, fmt.Errorf("err creating instant meeting: %w", err)
	}
	return meeting, nil
}

// CreateScheduledMeeting validates the submitted date and time of day,
// rejects incomplete or past submissions before any gateway call, and
// otherwise proceeds as the instant path does.
func (s *ScheduleService) CreateScheduledMeeting(ctx context.Context, identity *models.Claims, req models.ScheduleRequest) (models.Meeting, error) {
	if identity == nil || identity.AccessToken == "" {
		metrics.MeetingsRejected.WithLabelValues("unauthenticated").Inc()
		return models.Meeting{}, models.ErrUnauthenticated
	}
	if req.Date == "" || req.Time == "" {
		metrics.MeetingsRejected.WithLabelValues("invalid_input").Inc()
		return models.Meeting{}, models.ErrInvalidInput
	}
	start, err := timeguard.Combine(req.Date, req.Time, s.loc)
	if err != nil {
		metrics.MeetingsRejected.WithLabelValues("invalid_input").Inc()
		return models.Meeting{}, fmt.Errorf("%w: %v", models.ErrInvalidInput, err)
	}
	// Strictly future only, a start equal to now is rejected too.
	if !start.After(s.now()) {
		metrics.MeetingsRejected.WithLabelValues("past_schedule").Inc()
		return models.Meeting{}, models.ErrPastSchedule
	}
	if !s.acquire(identity.Email, actionScheduled) {
		return models.Meeting{}, models.ErrActionInFlight
	}
	defer s.release(identity.Email, actionScheduled)

	meeting, err := s.createMeeting(ctx, identity, models.TitleScheduled, start, false)
	if err != nil {
		return models.Meeting{}, fmt.Errorf("err creating scheduled meeting: %w", err)
	}
	return meeting, nil
}

// ListMeetings returns the caller's meetings in insertion order.
func (s *ScheduleService) ListMeetings(_ context.Context, identity *models.Claims) ([]models.Meeting, error) {
	if identity == nil || identity.AccessToken == "" {
		return nil, models.ErrUnauthenticated
	}
	return s.stores.For(identity.Email).List(), nil
}

// CreateCalendarEvent creates a calendar event without recording a meeting.
// Duration is in minutes, defaulting to 60.
func (s *ScheduleService) CreateCalendarEvent(ctx context.Context, identity *models.Claims, req models.EventRequest) (models.EventResponse, error) {
	if identity == nil || identity.AccessToken == "" {
		return models.EventResponse{}, models.ErrUnauthenticated
	}
	if req.Title == "" || req.StartTime.IsZero() {
		return models.EventResponse{}, fmt.Errorf("%w: title and startTime are required", models.ErrInvalidInput)
	}
	duration := defaultDuration
	if req.Duration > 0 {
		duration = time.Duration(req.Duration) * time.Minute
	}
	link, err := s.gateway.CreateEvent(ctx, identity.AccessToken, req.Title, req.StartTime, duration)
	if err != nil {
		return models.EventResponse{}, fmt.Errorf("err creating calendar event: %w", err)
	}
	if link == "" {
		link = meetLinkBase + meetcode.Generate()
	}
	return models.EventResponse{MeetLink: link}, nil
}

func (s *ScheduleService) createMeeting(ctx context.Context, identity *models.Claims, title string, start time.Time, isInstant bool) (models.Meeting, error) {
	link, err := s.gateway.CreateEvent(ctx, identity.AccessToken, title, start, defaultDuration)
	if err != nil {
		return models.Meeting{}, err
	}
	// With a gateway link the id does not need to be a joinable code, a
	// timestamp-based one suffices. When the gateway signals no link, a
	// generated code serves as both the id and the placeholder link.
	id := meetcode.Fallback()
	if link == "" {
		code := meetcode.Generate()
		link = meetLinkBase + code
		id = code
	}
	meeting := models.Meeting{
		ID:        id,
		Title:     title,
		StartTime: start,
		MeetLink:  link,
		IsInstant: isInstant,
	}
	s.stores.For(identity.Email).Append(meeting)
	kind := actionScheduled
	if isInstant {
		kind = actionInstant
	}
	metrics.MeetingsCreated.WithLabelValues(kind).Inc()
	s.log.Debugf("created %s meeting %s for %s", kind, meeting.ID, identity.Email)
	msg := fmt.Sprintf("%s created for %s: %s", title, start.Format(time.RFC3339), link)
	if err = s.notifier.Notify(ctx, msg, identity.Email); err != nil {
		s.log.Errorf("err notifying user: %v", err)
	}
	return meeting, nil
}

// acquire takes the per-user busy flag for one action kind. There is no
// cross-action exclusion, both paths may be mid-flight at once.
func (s *ScheduleService) acquire(email, action string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := email + "/" + action
	if _, busy := s.inFlight[key]; busy {
		return false
	}
	s.inFlight[key] = struct{}{}
	return true
}

func (s *ScheduleService) release(email, action string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, email+"/"+action)
}
