package esfeedtest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/kyuff/esfeed"
	"github.com/kyuff/esfeed/internal/uuid"
)

const (
	mediaTypeEvents = "application/vnd.eventstore.events+json"
	mediaTypeJSON   = "application/json"
)

type Option func(*Server)

// WithPageSize sets the number of events on a page. Default is 20.
func WithPageSize(size int) Option {
	return func(s *Server) {
		s.pageSize = max(size, 1)
	}
}

// Server is an in-memory origin serving streams over HTTP.
type Server struct {
	server   *httptest.Server
	pageSize int

	mux      sync.RWMutex
	streams  map[string]*table
	requests []string
	failures map[string][]int
}

// NewServer starts a Server. It must be closed.
func NewServer(opts ...Option) *Server {
	s := &Server{
		pageSize: 20,
		streams:  make(map[string]*table),
		failures: make(map[string][]int),
	}
	for _, opt := range opts {
		opt(s)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /streams/{stream}", s.handleHead)
	mux.HandleFunc("GET /streams/{stream}/{start}/forward/{count}", s.handlePage)
	mux.HandleFunc("GET /streams/{stream}/{number}", s.handleEvent)
	mux.HandleFunc("POST /streams/{stream}", s.handleAppend)

	s.server = httptest.NewServer(s.record(mux))
	return s
}

// URL is the base URL to give to esfeed.NewClient.
func (s *Server) URL() string {
	return s.server.URL
}

// Client returns an http.Client wired to the Server.
func (s *Server) Client() *http.Client {
	return s.server.Client()
}

func (s *Server) Close() {
	s.server.Close()
}

// Append adds events to the stream directly, creating the stream if needed.
// Events without an id get one.
func (s *Server) Append(stream string, events ...esfeed.NewEvent) error {
	batch := make([]appendEvent, 0, len(events))
	for _, event := range events {
		data, err := json.Marshal(event.Data)
		if err != nil {
			return err
		}

		id := event.EventID
		if id == "" {
			id = uuid.V7()
		}

		batch = append(batch, appendEvent{EventID: id, EventType: event.EventType, Data: data})
	}

	s.mux.Lock()
	defer s.mux.Unlock()
	return s.tableFor(stream).append(batch, time.Now())
}

// Events returns the events of the stream in the order they were appended.
func (s *Server) Events(stream string) []esfeed.NewEvent {
	s.mux.RLock()
	defer s.mux.RUnlock()

	t, ok := s.streams[stream]
	if !ok {
		return nil
	}

	events := make([]esfeed.NewEvent, 0, len(t.rows))
	for _, row := range t.rows {
		events = append(events, esfeed.NewEvent{
			EventID:   row.EventID,
			EventType: row.EventType,
			Data:      row.Data,
		})
	}

	return events
}

// Requests returns the method and path of every request served, in order.
func (s *Server) Requests() []string {
	s.mux.RLock()
	defer s.mux.RUnlock()

	return append([]string(nil), s.requests...)
}

// FailNext makes the next requests for path answer with the statuses, one per request.
func (s *Server) FailNext(path string, statuses ...int) {
	s.mux.Lock()
	defer s.mux.Unlock()

	s.failures[path] = append(s.failures[path], statuses...)
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mux.Lock()
		s.requests = append(s.requests, r.Method+" "+r.URL.Path)
		var status int
		if queued := s.failures[r.URL.Path]; len(queued) > 0 {
			status, s.failures[r.URL.Path] = queued[0], queued[1:]
		}
		s.mux.Unlock()

		if status != 0 {
			http.Error(w, http.StatusText(status), status)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// tableFor must be called with the write lock held.
func (s *Server) tableFor(stream string) *table {
	t, ok := s.streams[stream]
	if !ok {
		t = newTable()
		s.streams[stream] = t
	}

	return t
}

func (s *Server) handleHead(w http.ResponseWriter, r *http.Request) {
	stream := r.PathValue("stream")

	s.mux.RLock()
	defer s.mux.RUnlock()

	t, ok := s.streams[stream]
	if !ok {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	start := (len(t.rows) / s.pageSize) * s.pageSize
	s.writePage(w, stream, t, start, s.pageSize, true)
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	stream := r.PathValue("stream")
	start, err := strconv.Atoi(r.PathValue("start"))
	if err != nil || start < 0 {
		http.Error(w, "invalid start", http.StatusBadRequest)
		return
	}
	count, err := strconv.Atoi(r.PathValue("count"))
	if err != nil || count < 1 {
		http.Error(w, "invalid count", http.StatusBadRequest)
		return
	}

	s.mux.RLock()
	defer s.mux.RUnlock()

	t, ok := s.streams[stream]
	if !ok {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	s.writePage(w, stream, t, start, count, false)
}

func (s *Server) handleEvent(w http.ResponseWriter, r *http.Request) {
	stream := r.PathValue("stream")
	number, err := strconv.ParseInt(r.PathValue("number"), 10, 64)
	if err != nil {
		http.Error(w, "invalid event number", http.StatusBadRequest)
		return
	}

	s.mux.RLock()
	defer s.mux.RUnlock()

	t, ok := s.streams[stream]
	if !ok {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	row, ok := t.row(number)
	if !ok {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	writeJSON(w, mediaTypeJSON, eventBody{
		EventID:     row.EventID,
		EventType:   row.EventType,
		EventNumber: row.EventNumber,
		Data:        row.Data,
	})
}

func (s *Server) handleAppend(w http.ResponseWriter, r *http.Request) {
	stream := r.PathValue("stream")
	if r.Header.Get("Content-Type") != mediaTypeEvents {
		http.Error(w, "Unsupported Media Type", http.StatusUnsupportedMediaType)
		return
	}

	var events []appendEvent
	if err := json.NewDecoder(r.Body).Decode(&events); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	s.mux.Lock()
	defer s.mux.Unlock()

	if err := s.tableFor(stream).append(events, time.Now()); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Location", s.headURI(stream))
	w.WriteHeader(http.StatusCreated)
}

// writePage must be called with the read lock held.
func (s *Server) writePage(w http.ResponseWriter, stream string, t *table, start, count int, head bool) {
	var (
		rows  = t.window(start, count)
		links = []esfeed.Link{
			{Relation: esfeed.RelSelf, URI: s.pageURI(stream, start, count)},
			{Relation: esfeed.RelFirst, URI: s.headURI(stream)},
		}
	)

	if start > 0 {
		links = append(links,
			esfeed.Link{Relation: esfeed.RelLast, URI: s.pageURI(stream, 0, count)},
			esfeed.Link{Relation: esfeed.RelNext, URI: s.pageURI(stream, max(start-count, 0), count)},
		)
	}

	if start+count <= len(t.rows) {
		links = append(links, esfeed.Link{Relation: esfeed.RelPrevious, URI: s.pageURI(stream, start+count, count)})
	}

	page := pageBody{
		Title:        fmt.Sprintf("Event stream '%s'", stream),
		ID:           s.headURI(stream),
		HeadOfStream: head || start+count > len(t.rows),
		Links:        links,
		Entries:      make([]entryBody, 0, len(rows)),
	}

	for i := len(rows) - 1; i >= 0; i-- {
		row := rows[i]
		uri := s.eventURI(stream, row.EventNumber)
		page.Entries = append(page.Entries, entryBody{
			ID:      uri,
			Title:   fmt.Sprintf("%d@%s", row.EventNumber, stream),
			Updated: row.Updated.UTC().Format(time.RFC3339Nano),
			Summary: row.EventType,
			Links: []esfeed.Link{
				{Relation: "edit", URI: uri},
				{Relation: esfeed.RelAlternate, URI: uri},
			},
		})
	}

	writeJSON(w, mediaTypeEvents, page)
}

func (s *Server) headURI(stream string) string {
	return s.server.URL + "/streams/" + url.PathEscape(stream)
}

func (s *Server) pageURI(stream string, start, count int) string {
	return fmt.Sprintf("%s/%d/forward/%d", s.headURI(stream), start, count)
}

func (s *Server) eventURI(stream string, number int64) string {
	return fmt.Sprintf("%s/%d", s.headURI(stream), number)
}

func writeJSON(w http.ResponseWriter, contentType string, v any) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(v)
}

type appendEvent struct {
	EventID   string          `json:"eventId"`
	EventType string          `json:"eventType"`
	Data      json.RawMessage `json:"data"`
}

type eventBody struct {
	EventID     string          `json:"eventId"`
	EventType   string          `json:"eventType"`
	EventNumber int64           `json:"eventNumber"`
	Data        json.RawMessage `json:"data"`
}

type entryBody struct {
	ID      string        `json:"id"`
	Title   string        `json:"title"`
	Updated string        `json:"updated"`
	Summary string        `json:"summary"`
	Links   []esfeed.Link `json:"links"`
}

type pageBody struct {
	Title        string        `json:"title"`
	ID           string        `json:"id"`
	HeadOfStream bool          `json:"headOfStream"`
	Links        []esfeed.Link `json:"links"`
	Entries      []entryBody   `json:"entries"`
}
