// Package caldav implements remindkit.Store against a CalDAV server.
// Apple's reminders live on the same iCloud CalDAV endpoint as its
// calendars, as VTODO components inside calendar collections.
package caldav

import (
	"context"
	"fmt"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/emersion/go-webdav/caldav"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/namuan/remindkit"
)

const (
	// Apple iCloud CalDAV endpoint
	DefaultICloudURL = "https://caldav.icloud.com"

	defaultTimeout = 30 * time.Second
)

// Client is a CalDAV-backed reminders store. It implements remindkit.Store.
type Client struct {
	baseURL    string
	username   string
	password   string
	calendarID string // optional: default calendar collection path
	timeout    time.Duration
	log        *zap.Logger
	client     *caldav.Client
}

// Option configures a Client.
type Option func(*Client)

// WithCalendar sets the calendar collection used as the default for new
// reminders.
func WithCalendar(id string) Option {
	return func(c *Client) { c.calendarID = id }
}

// WithTimeout sets the HTTP timeout for store calls.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithLogger sets a logger for request-level debug output.
func WithLogger(log *zap.Logger) Option {
	return func(c *Client) { c.log = log }
}

// NewClient creates a CalDAV reminders store. An empty baseURL targets
// iCloud.
func NewClient(baseURL, username, password string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultICloudURL
	}
	c := &Client{
		baseURL:  baseURL,
		username: username,
		password: password,
		timeout:  defaultTimeout,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// IsConfigured returns true if the client has credentials
func (c *Client) IsConfigured() bool {
	return c.username != "" && c.password != ""
}

// connect establishes connection to the CalDAV server
func (c *Client) connect() (*caldav.Client, error) {
	if c.client != nil {
		return c.client, nil
	}

	httpClient := &http.Client{
		Transport: &basicAuthTransport{
			username: c.username,
			password: c.password,
		},
		Timeout: c.timeout,
	}

	client, err := caldav.NewClient(httpClient, c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to CalDAV: %w", err)
	}

	c.client = client
	return client, nil
}

// basicAuthTransport adds Basic Auth to HTTP requests
type basicAuthTransport struct {
	username string
	password string
}

func (t *basicAuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.SetBasicAuth(t.username, t.password)
	return http.DefaultTransport.RoundTrip(req)
}

// Calendars returns every collection that can hold reminders.
func (c *Client) Calendars(ctx context.Context) ([]remindkit.Calendar, error) {
	client, err := c.connect()
	if err != nil {
		return nil, err
	}

	principal, err := client.FindCurrentUserPrincipal(ctx)
	if err != nil {
		return nil, fmt.Errorf("find principal: %w", err)
	}

	homeSet, err := client.FindCalendarHomeSet(ctx, principal)
	if err != nil {
		return nil, fmt.Errorf("find home set: %w", err)
	}

	cals, err := client.FindCalendars(ctx, homeSet)
	if err != nil {
		return nil, fmt.Errorf("find calendars: %w", err)
	}

	var result []remindkit.Calendar
	for _, cal := range cals {
		if !supportsTodos(cal) {
			continue
		}
		result = append(result, remindkit.Calendar{
			ID:        cal.Path,
			Name:      cal.Name,
			IsDefault: cal.Path == c.calendarID,
		})
	}

	c.log.Debug("discovered calendars", zap.Int("count", len(result)))
	return result, nil
}

// supportsTodos reports whether the collection accepts VTODO components.
// Servers that do not advertise a component set are kept.
func supportsTodos(cal caldav.Calendar) bool {
	if len(cal.SupportedComponentSet) == 0 {
		return true
	}
	for _, comp := range cal.SupportedComponentSet {
		if comp == "VTODO" {
			return true
		}
	}
	return false
}

// DefaultCalendar returns the configured collection, or the first
// discovered one.
func (c *Client) DefaultCalendar(ctx context.Context) (remindkit.Calendar, error) {
	calendars, err := c.Calendars(ctx)
	if err != nil {
		return remindkit.Calendar{}, err
	}

	if c.calendarID != "" {
		for _, cal := range calendars {
			if cal.ID == c.calendarID {
				return cal, nil
			}
		}
		return remindkit.Calendar{}, fmt.Errorf("configured calendar %q: %w", c.calendarID, remindkit.ErrNotFound)
	}

	if len(calendars) == 0 {
		return remindkit.Calendar{}, remindkit.ErrNoDefaultCalendar
	}
	cal := calendars[0]
	cal.IsDefault = true
	return cal, nil
}

// Reminders returns the reminders in calendarID, or in every calendar when
// calendarID is empty.
func (c *Client) Reminders(ctx context.Context, calendarID string) ([]remindkit.Reminder, error) {
	client, err := c.connect()
	if err != nil {
		return nil, err
	}

	var paths []string
	if calendarID != "" {
		paths = []string{calendarID}
	} else {
		calendars, err := c.Calendars(ctx)
		if err != nil {
			return nil, err
		}
		for _, cal := range calendars {
			paths = append(paths, cal.ID)
		}
	}

	var reminders []remindkit.Reminder
	for _, calPath := range paths {
		objects, err := client.QueryCalendar(ctx, calPath, todoQuery())
		if err != nil {
			return nil, fmt.Errorf("query calendar %s: %w", calPath, err)
		}
		for _, obj := range objects {
			r, err := parseTodo(obj.Data)
			if err != nil {
				continue // skip objects without a usable VTODO
			}
			r.CalendarID = calPath
			reminders = append(reminders, r)
		}
	}

	return reminders, nil
}

// Reminder returns a single reminder by its UID.
func (c *Client) Reminder(ctx context.Context, id string) (remindkit.Reminder, error) {
	obj, calPath, err := c.locate(ctx, id)
	if err != nil {
		return remindkit.Reminder{}, err
	}

	r, err := parseTodo(obj.Data)
	if err != nil {
		return remindkit.Reminder{}, fmt.Errorf("parse reminder %s: %w", id, err)
	}
	r.CalendarID = calPath
	return r, nil
}

// CreateReminder stores a new VTODO in the given calendar collection.
func (c *Client) CreateReminder(ctx context.Context, calendarID string, r remindkit.Reminder) (remindkit.Reminder, error) {
	client, err := c.connect()
	if err != nil {
		return remindkit.Reminder{}, err
	}

	if calendarID == "" {
		cal, err := c.DefaultCalendar(ctx)
		if err != nil {
			return remindkit.Reminder{}, err
		}
		calendarID = cal.ID
	}

	now := time.Now().UTC()
	r.ID = uuid.NewString()
	r.CreatedAt = now
	r.ModifiedAt = now
	r.CalendarID = calendarID

	cal, err := todoToICS(&r)
	if err != nil {
		return remindkit.Reminder{}, fmt.Errorf("encode reminder: %w", err)
	}

	objPath := objectPath(calendarID, r.ID)
	if _, err := client.PutCalendarObject(ctx, objPath, cal); err != nil {
		return remindkit.Reminder{}, fmt.Errorf("create reminder: %w", err)
	}

	c.log.Debug("created reminder", zap.String("uid", r.ID), zap.String("calendar", calendarID))
	return r, nil
}

// UpdateReminder replaces the stored VTODO. For CalDAV an update is a PUT
// at the object's existing path.
func (c *Client) UpdateReminder(ctx context.Context, r remindkit.Reminder) (remindkit.Reminder, error) {
	client, err := c.connect()
	if err != nil {
		return remindkit.Reminder{}, err
	}

	obj, calPath, err := c.locate(ctx, r.ID)
	if err != nil {
		return remindkit.Reminder{}, err
	}

	r.CalendarID = calPath
	r.ModifiedAt = time.Now().UTC()
	if r.CreatedAt.IsZero() {
		if existing, err := parseTodo(obj.Data); err == nil {
			r.CreatedAt = existing.CreatedAt
		}
	}

	cal, err := todoToICS(&r)
	if err != nil {
		return remindkit.Reminder{}, fmt.Errorf("encode reminder: %w", err)
	}

	if _, err := client.PutCalendarObject(ctx, obj.Path, cal); err != nil {
		return remindkit.Reminder{}, fmt.Errorf("update reminder: %w", err)
	}

	c.log.Debug("updated reminder", zap.String("uid", r.ID))
	return r, nil
}

// DeleteReminder removes a reminder by its UID.
func (c *Client) DeleteReminder(ctx context.Context, id string) error {
	client, err := c.connect()
	if err != nil {
		return err
	}

	obj, _, err := c.locate(ctx, id)
	if err != nil {
		return err
	}

	if err := client.RemoveAll(ctx, obj.Path); err != nil {
		return fmt.Errorf("delete reminder: %w", err)
	}

	c.log.Debug("deleted reminder", zap.String("uid", id))
	return nil
}

// locate finds the calendar object holding the VTODO with the given UID.
// The store is queried every time; nothing is cached between calls.
func (c *Client) locate(ctx context.Context, id string) (*caldav.CalendarObject, string, error) {
	client, err := c.connect()
	if err != nil {
		return nil, "", err
	}

	calendars, err := c.Calendars(ctx)
	if err != nil {
		return nil, "", err
	}

	query := uidQuery(id)
	for _, cal := range calendars {
		objects, err := client.QueryCalendar(ctx, cal.ID, query)
		if err != nil {
			return nil, "", fmt.Errorf("query calendar %s: %w", cal.ID, err)
		}
		if len(objects) > 0 {
			obj := objects[0]
			return &obj, cal.ID, nil
		}
	}

	return nil, "", fmt.Errorf("reminder %q: %w", id, remindkit.ErrNotFound)
}

// todoQuery matches every VTODO in a collection.
func todoQuery() *caldav.CalendarQuery {
	return &caldav.CalendarQuery{
		CompFilter: caldav.CompFilter{
			Name: "VCALENDAR",
			Comps: []caldav.CompFilter{
				{Name: "VTODO"},
			},
		},
	}
}

// uidQuery matches the VTODO with the given UID.
func uidQuery(uid string) *caldav.CalendarQuery {
	return &caldav.CalendarQuery{
		CompFilter: caldav.CompFilter{
			Name: "VCALENDAR",
			Comps: []caldav.CompFilter{
				{
					Name: "VTODO",
					Props: []caldav.PropFilter{
						{
							Name:      "UID",
							TextMatch: &caldav.TextMatch{Text: uid},
						},
					},
				},
			},
		},
	}
}

// objectPath builds the resource path for a new reminder object.
func objectPath(calendarPath, uid string) string {
	if !strings.HasSuffix(calendarPath, "/") {
		calendarPath += "/"
	}
	return calendarPath + path.Base(uid) + ".ics"
}
