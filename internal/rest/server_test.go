package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/ujjwalpandey922/meeting-schedular/pkg/logger"
	"github.com/ujjwalpandey922/meeting-schedular/pkg/memstore"
	"github.com/ujjwalpandey922/meeting-schedular/pkg/models"
	"github.com/ujjwalpandey922/meeting-schedular/pkg/notifier"
	"github.com/ujjwalpandey922/meeting-schedular/pkg/service"
)

const (
	version   = "test"
	goodToken = "good-token"
)

type stubGateway struct {
	calls int
	link  string
	err   error
}

func (g *stubGateway) CreateEvent(_ context.Context, _, _ string, _ time.Time, _ time.Duration) (string, error) {
	g.calls++
	return g.link, g.err
}

type stubAuth struct{}

func (a *stubAuth) Configured() bool { return true }

func (a *stubAuth) LoginURL() (string, string) {
	return "https://accounts.google.test/auth?state=s", "s"
}

func (a *stubAuth) Exchange(_ context.Context, code string) (string, string, error) {
	if code != "good-code" {
		return "", "", models.ErrUnauthenticated
	}
	return "alice@example.com", "ya29.token", nil
}

func (a *stubAuth) IssueToken(_, _ string) (string, error) { return goodToken, nil }

func (a *stubAuth) ParseToken(token string) (*models.Claims, error) {
	if token != goodToken {
		return nil, models.ErrUnauthenticated
	}
	return &models.Claims{Email: "alice@example.com", AccessToken: "ya29.token"}, nil
}

type ServerTestSuite struct {
	suite.Suite
	gateway *stubGateway
	stores  *memstore.SessionStores
	server  *httptest.Server
}

func (s *ServerTestSuite) SetupTest() {
	log := logger.New()
	s.gateway = &stubGateway{link: "https://example.test/abc"}
	s.stores = memstore.NewSessionStores()
	app := service.NewScheduleService(log, s.stores, s.gateway, notifier.New(log), time.UTC)
	handler := NewServer(log, app, &stubAuth{}, ":0", version)
	s.server = httptest.NewServer(handler.routes())
}

func (s *ServerTestSuite) TearDownTest() {
	s.server.Close()
}

func (s *ServerTestSuite) sendRequest(method, url, token string, body, dest interface{}) *http.Response {
	s.T().Helper()
	ctx := context.Background()
	reqBody, err := json.Marshal(body)
	s.Require().NoError(err)
	req, err := http.NewRequestWithContext(ctx, method, s.server.URL+url, bytes.NewReader(reqBody))
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	defer func() {
		err = resp.Body.Close()
		s.Require().NoError(err)
	}()
	if dest != nil {
		err = json.NewDecoder(resp.Body).Decode(dest)
		s.Require().NoError(err)
	}
	return resp
}

func (s *ServerTestSuite) TestVersion() {
	resp, err := http.Get(s.server.URL + "/version")
	s.Require().NoError(err)
	defer func() {
		s.Require().NoError(resp.Body.Close())
	}()
	s.Require().Equal(http.StatusOK, resp.StatusCode)
}

func (s *ServerTestSuite) TestUnauthenticated() {
	var respError ErrorResponse

	resp := s.sendRequest(http.MethodPost, "/api/v1/meetings/instant", "", nil, &respError)
	s.Require().Equal(http.StatusUnauthorized, resp.StatusCode)
	s.Require().Equal(models.ErrUnauthenticated.Error(), respError.Error)

	resp = s.sendRequest(http.MethodPost, "/api/v1/meetings/instant", "bad-token", nil, &respError)
	s.Require().Equal(http.StatusUnauthorized, resp.StatusCode)

	s.Require().Equal(0, s.gateway.calls)
}

func (s *ServerTestSuite) TestCreateInstantMeeting() {
	var meeting models.Meeting
	resp := s.sendRequest(http.MethodPost, "/api/v1/meetings/instant", goodToken, nil, &meeting)
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	s.Require().True(meeting.IsInstant)
	s.Require().Equal(models.TitleInstant, meeting.Title)
	s.Require().Equal("https://example.test/abc", meeting.MeetLink)
	s.Require().Equal(1, s.stores.For("alice@example.com").Len())

	var second models.Meeting
	resp = s.sendRequest(http.MethodPost, "/api/v1/meetings/instant", goodToken, nil, &second)
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	s.Require().Equal(2, s.stores.For("alice@example.com").Len())
	s.Require().NotEqual(meeting.ID, second.ID)
}

func (s *ServerTestSuite) TestCreateScheduledMeeting() {
	req := models.ScheduleRequest{Date: "2100-01-02", Time: "10:00"}
	var meeting models.Meeting
	resp := s.sendRequest(http.MethodPost, "/api/v1/meetings/scheduled", goodToken, req, &meeting)
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	s.Require().False(meeting.IsInstant)
	s.Require().Equal(models.TitleScheduled, meeting.Title)
	s.Require().Equal(time.Date(2100, 1, 2, 10, 0, 0, 0, time.UTC), meeting.StartTime.UTC())
}

func (s *ServerTestSuite) TestScheduledMeetingRejections() {
	var respError ErrorResponse

	resp := s.sendRequest(http.MethodPost, "/api/v1/meetings/scheduled", goodToken, models.ScheduleRequest{Date: "2100-01-02"}, &respError)
	s.Require().Equal(http.StatusBadRequest, resp.StatusCode)
	s.Require().Equal(models.ErrInvalidInput.Error(), respError.Error)

	resp = s.sendRequest(http.MethodPost, "/api/v1/meetings/scheduled", goodToken, models.ScheduleRequest{Date: "2000-01-02", Time: "10:00"}, &respError)
	s.Require().Equal(http.StatusBadRequest, resp.StatusCode)
	s.Require().Equal(models.ErrPastSchedule.Error(), respError.Error)

	s.Require().Equal(0, s.gateway.calls)
	s.Require().Equal(0, s.stores.For("alice@example.com").Len())
}

func (s *ServerTestSuite) TestMalformedBody() {
	for _, url := range []string{"/api/v1/meetings/scheduled", "/api/v1/calendar/events"} {
		req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, s.server.URL+url, bytes.NewReader([]byte(`{"date":`)))
		s.Require().NoError(err)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+goodToken)
		resp, err := http.DefaultClient.Do(req)
		s.Require().NoError(err)
		var respError ErrorResponse
		s.Require().NoError(json.NewDecoder(resp.Body).Decode(&respError))
		s.Require().NoError(resp.Body.Close())
		s.Require().Equal(http.StatusBadRequest, resp.StatusCode)
		// The sentinel message only, never the decoder's error text.
		s.Require().Equal(models.ErrInvalidInput.Error(), respError.Error)
	}
	s.Require().Equal(0, s.gateway.calls)
}

func (s *ServerTestSuite) TestGatewayFailure() {
	s.gateway.err = models.ErrGatewayFailure

	var respError ErrorResponse
	resp := s.sendRequest(http.MethodPost, "/api/v1/meetings/instant", goodToken, nil, &respError)
	s.Require().Equal(http.StatusInternalServerError, resp.StatusCode)
	// Generic message only, the cause stays in the logs.
	s.Require().Equal(errCreateFailed.Error(), respError.Error)
	s.Require().Equal(0, s.stores.For("alice@example.com").Len())
}

func (s *ServerTestSuite) TestListMeetings() {
	var meetings []models.Meeting
	resp := s.sendRequest(http.MethodGet, "/api/v1/meetings", goodToken, nil, &meetings)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.Require().Empty(meetings)

	s.sendRequest(http.MethodPost, "/api/v1/meetings/instant", goodToken, nil, nil)

	resp = s.sendRequest(http.MethodGet, "/api/v1/meetings", goodToken, nil, &meetings)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.Require().Len(meetings, 1)
	s.Require().True(meetings[0].IsInstant)
}

func (s *ServerTestSuite) TestCreateCalendarEvent() {
	req := models.EventRequest{Title: "Standup", StartTime: time.Date(2100, 1, 2, 10, 0, 0, 0, time.UTC)}
	var resp models.EventResponse
	httpResp := s.sendRequest(http.MethodPost, "/api/v1/calendar/events", goodToken, req, &resp)
	s.Require().Equal(http.StatusOK, httpResp.StatusCode)
	s.Require().Equal("https://example.test/abc", resp.MeetLink)
	s.Require().Equal(0, s.stores.For("alice@example.com").Len())
}

func TestServerTestSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}
