package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/spigell/ats-questionnaire/internal/manatal"
	"github.com/spigell/ats-questionnaire/internal/storage"
)

type fakeATS struct {
	calls      atomic.Int32
	creates    atomic.Int32
	status     int
	existingID int
	mu         sync.Mutex
	patched    map[string]interface{}
}

func (f *fakeATS) patchedFields() map[string]interface{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.patched
}

func newTestServer(t *testing.T, ats *fakeATS) (http.Handler, *storage.FileStore) {
	t.Helper()

	store := storage.NewFileStore(t.TempDir())
	return newTestServerWithStore(t, ats, store), store
}

func newTestServerWithStore(t *testing.T, ats *fakeATS, store storage.Store) http.Handler {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ats.calls.Add(1)

		if ats.status >= http.StatusBadRequest {
			w.WriteHeader(ats.status)
			_, _ = w.Write([]byte(`{"detail": "Not found."}`))
			return
		}

		switch r.Method {
		case http.MethodGet:
			results := []map[string]interface{}{}
			if ats.existingID > 0 && r.URL.Query().Get("email") != "" {
				results = append(results, map[string]interface{}{"id": ats.existingID})
			}
			_ = json.NewEncoder(w).Encode(map[string]interface{}{"count": len(results), "results": results})
		case http.MethodPost:
			ats.creates.Add(1)
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"id": 321, "full_name": "Jane Doe"}`))
		case http.MethodPatch:
			var body struct {
				CustomFields map[string]interface{} `json:"custom_fields"`
			}
			_ = json.NewDecoder(r.Body).Decode(&body)
			ats.mu.Lock()
			ats.patched = body.CustomFields
			ats.mu.Unlock()
			_ = json.NewEncoder(w).Encode(map[string]interface{}{"id": 321, "custom_fields": body.CustomFields})
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))
	t.Cleanup(srv.Close)

	client := manatal.New(zaptest.NewLogger(t), "token")
	client.APIURL = srv.URL

	server, err := NewServer(client, store, zaptest.NewLogger(t))
	require.NoError(t, err)

	return server.Router()
}

func postForm(handler http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func get(handler http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestSubmitInvalidCandidateID(t *testing.T) {
	tests := []struct {
		name string
		form url.Values
	}{
		{name: "absent", form: url.Values{"q1": {"5"}}},
		{name: "zero", form: url.Values{"candidate_id": {"0"}, "q1": {"5"}}},
		{name: "negative", form: url.Values{"candidate_id": {"-4"}}},
		{name: "not a number", form: url.Values{"candidate_id": {"abc"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ats := &fakeATS{}
			handler, _ := newTestServer(t, ats)

			rec := postForm(handler, "/submit", tt.form)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.JSONEq(t, `{"error": "Invalid candidate ID"}`, rec.Body.String())
			assert.Zero(t, ats.calls.Load())
		})
	}
}

func TestSubmitUpdatesCandidateAndSavesResponses(t *testing.T) {
	ats := &fakeATS{}
	handler, store := newTestServer(t, ats)

	form := url.Values{
		"candidate_id": {"321"},
		"q1":           {"5"}, "q6": {"4"}, "q11": {"5"}, "q16": {"5"},
		"q2":      {"abc"},
		"comment": {"7"},
	}

	rec := postForm(handler, "/submit", form)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "4.75")
	assert.Equal(t, int32(1), ats.calls.Load())
	patched := ats.patchedFields()
	assert.Equal(t, "4.75", patched["personality_openness"])
	assert.Equal(t, "3.00", patched["personality_extraversion"])
	assert.Equal(t, true, patched["quiz_completed"])

	data, err := os.ReadFile(store.Path(321))
	require.NoError(t, err)

	var saved map[string]int
	require.NoError(t, json.Unmarshal(data, &saved))
	assert.Equal(t, map[string]int{"q1": 5, "q6": 4, "q11": 5, "q16": 5}, saved)
}

func TestSubmitATSFailure(t *testing.T) {
	ats := &fakeATS{status: http.StatusNotFound}
	handler, store := newTestServer(t, ats)

	rec := postForm(handler, "/submit", url.Values{"candidate_id": {"9"}, "q1": {"3"}})

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "404 Not Found")
	assert.Equal(t, int32(1), ats.calls.Load())

	_, err := os.Stat(store.Path(9))
	assert.True(t, os.IsNotExist(err))
}

func TestCreateCandidateRedirects(t *testing.T) {
	ats := &fakeATS{}
	handler, _ := newTestServer(t, ats)

	rec := postForm(handler, "/create_candidate", url.Values{"full_name": {"Jane Doe"}, "email": {"jane@example.com"}})

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/questionnaire?candidate_id=321", rec.Header().Get("Location"))
	// lookup by email, then create
	assert.Equal(t, int32(2), ats.calls.Load())
	assert.Equal(t, int32(1), ats.creates.Load())
}

func TestCreateCandidateReusesExisting(t *testing.T) {
	ats := &fakeATS{existingID: 99}
	handler, _ := newTestServer(t, ats)

	rec := postForm(handler, "/create_candidate", url.Values{"full_name": {"Jane Doe"}, "email": {"jane@example.com"}})

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/questionnaire?candidate_id=99", rec.Header().Get("Location"))
	assert.Zero(t, ats.creates.Load())
}

func TestCreateCandidateWithoutEmailSkipsLookup(t *testing.T) {
	ats := &fakeATS{existingID: 99}
	handler, _ := newTestServer(t, ats)

	rec := postForm(handler, "/create_candidate", url.Values{"full_name": {"Jane Doe"}})

	assert.Equal(t, "/questionnaire?candidate_id=321", rec.Header().Get("Location"))
	assert.Equal(t, int32(1), ats.calls.Load())
}

func TestCreateCandidateFailure(t *testing.T) {
	ats := &fakeATS{status: http.StatusBadRequest}
	handler, _ := newTestServer(t, ats)

	rec := postForm(handler, "/create_candidate", url.Values{"full_name": {"Jane"}})

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "Something went wrong")
}

func TestPages(t *testing.T) {
	handler, _ := newTestServer(t, &fakeATS{})

	rec := get(handler, "/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `href="/create_candidate"`)

	rec = get(handler, "/create_candidate")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `name="full_name"`)

	rec = get(handler, "/questionnaire?candidate_id=55")
	body := rec.Body.String()
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, body, `name="candidate_id" value="55"`)
	assert.Contains(t, body, "I am the life of the party.")
	assert.Contains(t, body, `name="q20" value="5"`)
	assert.Equal(t, 100, strings.Count(body, `type="radio"`))
}

func TestHealthAndMetrics(t *testing.T) {
	handler, _ := newTestServer(t, &fakeATS{})

	rec := get(handler, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "healthy"}`, rec.Body.String())

	rec = get(handler, "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestHealthReportsUnreachableStore(t *testing.T) {
	mr := miniredis.RunT(t)
	store := storage.NewRedisStore(&storage.RedisConfig{Address: mr.Addr()})
	t.Cleanup(func() { _ = store.Close() })

	handler := newTestServerWithStore(t, &fakeATS{}, store)

	rec := get(handler, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)

	mr.Close()

	rec = get(handler, "/healthz")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "unhealthy")
}

func TestWebhook(t *testing.T) {
	handler, _ := newTestServer(t, &fakeATS{})

	rec := get(handler, "/webhook/manatal")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message": "Manatal webhook endpoint is active"}`, rec.Body.String())

	events := []string{
		`{"event_type": "candidate.created", "candidate_id": 12}`,
		`{"event_type": "candidate.resume.uploaded", "candidate_id": "12", "data": {"file": "cv.pdf"}}`,
		`{"event_type": "candidate.deleted"}`,
	}
	for _, body := range events {
		req := httptest.NewRequest(http.MethodPost, "/webhook/manatal", strings.NewReader(body))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code, body)
		assert.JSONEq(t, `{"success": true}`, rec.Body.String(), body)
	}

	req := httptest.NewRequest(http.MethodPost, "/webhook/manatal", strings.NewReader("not json"))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCandidateIDString(t *testing.T) {
	assert.Equal(t, "", candidateIDString(nil))
	assert.Equal(t, "12", candidateIDString(float64(12)))
	assert.Equal(t, "abc", candidateIDString("abc"))
}

func TestRequestID(t *testing.T) {
	handler, _ := newTestServer(t, &fakeATS{})

	rec := get(handler, "/healthz")
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "fixed-id")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, "fixed-id", rec.Header().Get(requestIDHeader))
}

func TestMethodNotAllowed(t *testing.T) {
	handler, _ := newTestServer(t, &fakeATS{})

	rec := get(handler, "/submit")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestParseCandidateID(t *testing.T) {
	tests := map[string]struct {
		id int
		ok bool
	}{
		"12":  {12, true},
		" 7 ": {7, true},
		"0":   {0, false},
		"":    {0, false},
		"1.5": {0, false},
		"-1":  {0, false},
		"9x":  {0, false},
	}

	for raw, want := range tests {
		id, ok := parseCandidateID(raw)
		assert.Equal(t, want.ok, ok, raw)
		assert.Equal(t, want.id, id, raw)
	}
}
