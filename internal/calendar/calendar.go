package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/ujjwalpandey922/meeting-schedular/pkg/metrics"
	"github.com/ujjwalpandey922/meeting-schedular/pkg/models"
)

const calendarID = "primary"

type Calendar struct {
	log *logrus.Entry
	loc *time.Location
}

func New(log *logrus.Logger, loc *time.Location) *Calendar {
	return &Calendar{
		log: log.WithField("component", "calendar"),
		loc: loc,
	}
}

// CreateEvent inserts an event spanning [start, start+duration) into the
// caller's primary calendar, requesting a Meet conference and update
// notifications for all attendees. A single attempt is made, no retry.
// Returns the joinable link, or "" when Google created the event without one.
func (c *Calendar) CreateEvent(ctx context.Context, accessToken, title string, start time.Time, duration time.Duration) (string, error) {
	if accessToken == "" {
		return "", models.ErrUnauthenticated
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})
	srv, err := calendar.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		metrics.GatewayErrCount.WithLabelValues("CreateEvent").Inc()
		return "", fmt.Errorf("%w: err creating calendar client: %v", models.ErrGatewayFailure, err)
	}

	event := &calendar.Event{
		Summary: title,
		Start: &calendar.EventDateTime{
			DateTime: start.In(c.loc).Format(time.RFC3339),
			TimeZone: c.loc.String(),
		},
		End: &calendar.EventDateTime{
			DateTime: start.Add(duration).In(c.loc).Format(time.RFC3339),
			TimeZone: c.loc.String(),
		},
		ConferenceData: &calendar.ConferenceData{
			CreateRequest: &calendar.CreateConferenceRequest{
				RequestId: uuid.New().String(),
				ConferenceSolutionKey: &calendar.ConferenceSolutionKey{
					Type: "hangoutsMeet",
				},
			},
		},
	}

	started := time.Now()
	created, err := srv.Events.Insert(calendarID, event).
		ConferenceDataVersion(1).
		SendUpdates("all").
		Context(ctx).
		Do()
	metrics.GatewayDuration.WithLabelValues("CreateEvent").Observe(time.Since(started).Seconds())
	if err != nil {
		metrics.GatewayErrCount.WithLabelValues("CreateEvent").Inc()
		c.log.Warnf("err inserting event %q: %v", title, err)
		return "", fmt.Errorf("%w: err inserting event: %v", models.ErrGatewayFailure, err)
	}
	c.log.Debugf("created event %s starting %s", created.Id, start.Format(time.RFC3339))
	return meetLink(created), nil
}

// meetLink extracts the joinable link from the created event, preferring the
// hangout link and falling back to the video entry point.
func meetLink(event *calendar.Event) string {
	if event.HangoutLink != "" {
		return event.HangoutLink
	}
	if event.ConferenceData == nil {
		return ""
	}
	for _, entry := range event.ConferenceData.EntryPoints {
		if entry.EntryPointType == "video" && entry.Uri != "" {
			return entry.Uri
		}
	}
	return ""
}
