package cloud

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/gymtrack/internal/gymtrack/analytics"
	"github.com/2beens/gymtrack/internal/gymtrack/model"
	"github.com/2beens/gymtrack/internal/telemetry/tracing"
)

const DefaultTimeout = 15 * time.Second

var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
)

// StatusError is returned for any non-2xx answer of the server.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server responded %d: %s", e.StatusCode, e.Message)
}

func (e *StatusError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusUnauthorized:
		return ErrUnauthorized
	}
	return nil
}

type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type SyncResult struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	RoutinesCount int    `json:"routinesCount"`
	WorkoutsCount int    `json:"workoutsCount"`
}

// Client talks to the gymtrack HTTP API on behalf of one signed in user.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient returns a client with a traced transport when httpClient is nil.
func NewClient(baseURL, token string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   DefaultTimeout,
		}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: httpClient,
	}
}

func (c *Client) WithToken(token string) *Client {
	clone := *c
	clone.token = token
	return &clone
}

func (c *Client) Register(ctx context.Context, email, password, name string) (*Session, error) {
	session := &Session{}
	body := map[string]string{"email": email, "password": password, "name": name}
	if err := c.do(ctx, http.MethodPost, "/auth/register", body, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	session := &Session{}
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
}

func (c *Client) Me(ctx context.Context) (*User, error) {
	user := &User{}
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (c *Client) Routines(ctx context.Context) ([]model.Routine, error) {
	var routines []model.Routine
	if err := c.do(ctx, http.MethodGet, "/routines", nil, &routines); err != nil {
		return nil, err
	}
	return routines, nil
}

func (c *Client) Routine(ctx context.Context, id string) (*model.Routine, error) {
	routine := &model.Routine{}
	if err := c.do(ctx, http.MethodGet, "/routines/"+url.PathEscape(id), nil, routine); err != nil {
		return nil, err
	}
	return routine, nil
}

func (c *Client) CreateRoutine(ctx context.Context, routine model.Routine) (*model.Routine, error) {
	created := &model.Routine{}
	if err := c.do(ctx, http.MethodPost, "/routines", routine, created); err != nil {
		return nil, err
	}
	return created, nil
}

func (c *Client) UpdateRoutine(ctx context.Context, routine model.Routine) (*model.Routine, error) {
	updated := &model.Routine{}
	if err := c.do(ctx, http.MethodPut, "/routines/"+url.PathEscape(routine.ID), routine, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (c *Client) DeleteRoutine(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/routines/"+url.PathEscape(id), nil, nil)
}

func (c *Client) Workouts(ctx context.Context) ([]model.WorkoutSummary, error) {
	var summaries []model.WorkoutSummary
	if err := c.do(ctx, http.MethodGet, "/workouts", nil, &summaries); err != nil {
		return nil, err
	}
	return summaries, nil
}

func (c *Client) Workout(ctx context.Context, id string) (*model.WorkoutLog, error) {
	workout := &model.WorkoutLog{}
	if err := c.do(ctx, http.MethodGet, "/workouts/"+url.PathEscape(id), nil, workout); err != nil {
		return nil, err
	}
	return workout, nil
}

func (c *Client) SaveWorkout(ctx context.Context, workout model.WorkoutLog) (*model.WorkoutLog, error) {
	saved := &model.WorkoutLog{}
	if err := c.do(ctx, http.MethodPost, "/workouts", workout, saved); err != nil {
		return nil, err
	}
	return saved, nil
}

func (c *Client) Stats(ctx context.Context, timeRange analytics.TimeRange) (analytics.StatsReport, error) {
	var report analytics.StatsReport
	query := url.Values{"timeRange": {string(timeRange)}}
	err := c.do(ctx, http.MethodGet, "/analytics/stats?"+query.Encode(), nil, &report)
	return report, err
}

func (c *Client) ExerciseHistory(ctx context.Context, exerciseName string, timeRange analytics.TimeRange) (analytics.ExerciseHistoryReport, error) {
	var report analytics.ExerciseHistoryReport
	query := url.Values{"timeRange": {string(timeRange)}}
	path := "/analytics/exercise/" + escapePathSegment(exerciseName) + "?" + query.Encode()
	err := c.do(ctx, http.MethodGet, path, nil, &report)
	return report, err
}

// escapePathSegment also escapes the dots of "." and "..", which routers would
// otherwise clean out of the path.
func escapePathSegment(s string) string {
	if s == "." || s == ".." {
		return strings.Repeat("%2E", len(s))
	}
	return url.PathEscape(s)
}

func (c *Client) Streak(ctx context.Context, weeklyGoal int) (analytics.StreakReport, error) {
	var report analytics.StreakReport
	if err := analytics.ValidateWeeklyGoal(weeklyGoal); err != nil {
		return report, err
	}
	query := url.Values{"weeklyGoal": {strconv.Itoa(weeklyGoal)}}
	err := c.do(ctx, http.MethodGet, "/analytics/streak?"+query.Encode(), nil, &report)
	return report, err
}

// Export downloads everything the user has on the server.
func (c *Client) Export(ctx context.Context) (*model.SyncBundle, error) {
	bundle := &model.SyncBundle{}
	if err := c.do(ctx, http.MethodGet, "/sync/download", nil, bundle); err != nil {
		return nil, err
	}
	return bundle, nil
}

// Import uploads the bundle. The server assigns new ids to every record.
func (c *Client) Import(ctx context.Context, bundle model.SyncBundle) error {
	_, err := c.Upload(ctx, bundle)
	return err
}

func (c *Client) Upload(ctx context.Context, bundle model.SyncBundle) (*SyncResult, error) {
	if bundle.Routines == nil {
		bundle.Routines = []model.Routine{}
	}
	if bundle.Workouts == nil {
		bundle.Workouts = []model.WorkoutLog{}
	}
	result := &SyncResult{}
	if err := c.do(ctx, http.MethodPost, "/sync/upload", bundle, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) Clear(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/sync/clear", nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "cloud.client.request")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(
		attribute.String("http.method", method),
		attribute.String("http.path", path),
	)

	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	log.Debugf("cloud request: %s %s", method, path)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(respBytes)),
		}
	}

	if out == nil || len(respBytes) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBytes, out); err != nil {
		return fmt.Errorf("unmarshal response of %s %s: %w", method, path, err)
	}
	return nil
}
