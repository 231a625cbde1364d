package webserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	aicore "github.com/stake-plus/expertdesk/src/ai/core"
	"github.com/stake-plus/expertdesk/src/config"
	"github.com/stake-plus/expertdesk/src/consult"
	"github.com/stake-plus/expertdesk/src/events"
	"github.com/stake-plus/expertdesk/src/persona"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClient struct {
	mu    sync.Mutex
	reply string
	err   error
	calls int
	last  []aicore.Message
}

func (s *stubClient) Complete(ctx context.Context, messages []aicore.Message, opts aicore.Options) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.last = messages
	return s.reply, s.err
}

func (s *stubClient) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type recordingPublisher struct {
	ch chan events.Consultation
}

func (r *recordingPublisher) Publish(ctx context.Context, ev events.Consultation) error {
	r.ch <- ev
	return nil
}

func newTestEngine(t *testing.T, stub *stubClient, pub events.Publisher) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc, err := consult.NewService(persona.New(), stub)
	require.NoError(t, err)
	return New(config.WebConfig{AllowedOrigins: []string{"http://localhost:8501"}}, svc, pub)
}

func postForm(engine *gin.Engine, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/consult", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func postJSON(engine *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/v1/consult", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestPage_RendersSelectorAndSidebar(t *testing.T) {
	engine := newTestEngine(t, &stubClient{}, nil)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/?persona=health", nil))
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	for _, p := range persona.New().All() {
		assert.Contains(t, body, `value="`+p.ID+`"`)
		assert.Contains(t, body, p.Caution)
	}
	assert.Contains(t, body, `value="`+persona.Health+`" data-description=`)
	assert.Contains(t, body, "（診断・治療の代替ではありません）")
	assert.Contains(t, body, appTitle)
	assert.Contains(t, body, loadingText)
}

func TestSubmitForm_BlankQuestionWarnsWithoutProviderCall(t *testing.T) {
	stub := &stubClient{reply: "should not be used"}
	engine := newTestEngine(t, stub, nil)

	w := postForm(engine, url.Values{"persona": {persona.Programming}, "question": {"   "}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), consult.EmptyQuestionWarning)
	assert.NotContains(t, w.Body.String(), successBanner)
	assert.Equal(t, 0, stub.callCount())
}

func TestSubmitForm_SuccessEscapesAnswer(t *testing.T) {
	stub := &stubClient{reply: "Use open().\n<script>alert(1)</script>"}
	engine := newTestEngine(t, stub, nil)

	w := postForm(engine, url.Values{"persona": {persona.Programming}, "question": {"How do I read a file?"}})
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, successBanner)
	assert.Contains(t, body, "Use open().<br")
	assert.NotContains(t, body, "<script>alert(1)</script>")
	assert.Contains(t, body, "&lt;script&gt;")
	assert.Equal(t, 1, stub.callCount())
	assert.Equal(t, "How do I read a file?", stub.last[1].Content)
}

func TestSubmitForm_FailureShownWithPrefix(t *testing.T) {
	stub := &stubClient{err: errors.New("rate limit")}
	engine := newTestEngine(t, stub, nil)

	w := postForm(engine, url.Values{"persona": {"business"}, "question": {"Pricing?"}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), consult.ErrorPrefix+"rate limit")
	assert.NotContains(t, w.Body.String(), successBanner)
}

func TestSubmitForm_UnknownPersona(t *testing.T) {
	stub := &stubClient{}
	engine := newTestEngine(t, stub, nil)

	w := postForm(engine, url.Values{"persona": {"chef"}, "question": {"Dinner?"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), unknownPersonaWarning)
	assert.Equal(t, 0, stub.callCount())
}

func TestConsultJSON(t *testing.T) {
	cases := []struct {
		name       string
		stub       *stubClient
		body       string
		wantStatus int
		wantCalls  int
		check      func(t *testing.T, payload map[string]any)
	}{
		{
			name:       "success verbatim",
			stub:       &stubClient{reply: "Use open()."},
			body:       `{"persona":"プログラミング専門家","question":"How do I read a file?"}`,
			wantStatus: http.StatusOK,
			wantCalls:  1,
			check: func(t *testing.T, payload map[string]any) {
				assert.Equal(t, true, payload["ok"])
				assert.Equal(t, "Use open().", payload["answer"])
			},
		},
		{
			name:       "provider failure",
			stub:       &stubClient{err: errors.New("quota: rate limit")},
			body:       `{"persona":"education","question":"How to study?"}`,
			wantStatus: http.StatusOK,
			wantCalls:  1,
			check: func(t *testing.T, payload map[string]any) {
				assert.Equal(t, false, payload["ok"])
				assert.Equal(t, persona.Education, payload["persona"])
				assert.Contains(t, payload["error"], consult.ErrorPrefix)
				assert.Contains(t, payload["error"], "rate limit")
			},
		},
		{
			name:       "blank question",
			stub:       &stubClient{},
			body:       `{"persona":"health","question":" \n "}`,
			wantStatus: http.StatusBadRequest,
			check: func(t *testing.T, payload map[string]any) {
				assert.Equal(t, consult.EmptyQuestionWarning, payload["warning"])
			},
		},
		{
			name:       "unknown persona",
			stub:       &stubClient{},
			body:       `{"persona":"chef","question":"Dinner?"}`,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "missing persona",
			stub:       &stubClient{},
			body:       `{"question":"Dinner?"}`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			engine := newTestEngine(t, tc.stub, nil)
			w := postJSON(engine, tc.body)
			require.Equal(t, tc.wantStatus, w.Code, w.Body.String())
			assert.Equal(t, tc.wantCalls, tc.stub.callCount())

			if tc.check != nil {
				var payload map[string]any
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
				tc.check(t, payload)
			}
		})
	}
}

func TestConsultJSON_PublishesEvent(t *testing.T) {
	pub := &recordingPublisher{ch: make(chan events.Consultation, 1)}
	engine := newTestEngine(t, &stubClient{reply: "ok"}, pub)

	w := postJSON(engine, `{"persona":"business","question":"Hiring plan?"}`)
	require.Equal(t, http.StatusOK, w.Code)

	select {
	case ev := <-pub.ch:
		assert.Equal(t, "api", ev.Channel)
		assert.Equal(t, "business", ev.Persona)
		assert.Equal(t, "success", ev.Outcome)
	case <-time.After(2 * time.Second):
		t.Fatal("no consultation event published")
	}
}

func TestListPersonas(t *testing.T) {
	engine := newTestEngine(t, &stubClient{}, nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/personas", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var payload struct {
		Personas []personaJSON `json:"personas"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	require.Len(t, payload.Personas, 4)
	assert.Equal(t, persona.Programming, payload.Personas[0].ID)
	assert.Equal(t, "education", payload.Personas[3].Alias)
}

func TestHealth(t *testing.T) {
	engine := newTestEngine(t, &stubClient{}, nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "gpt-3.5-turbo")
}

func TestCORSConfig(t *testing.T) {
	_, ok := corsConfig(nil)
	assert.False(t, ok)

	_, ok = corsConfig([]string{"localhost:3000"})
	assert.False(t, ok, "scheme-less origins are dropped")

	cfg, ok := corsConfig([]string{"https://app.example/", "ftp://x"})
	require.True(t, ok)
	assert.Equal(t, []string{"https://app.example"}, cfg.AllowOrigins)

	cfg, ok = corsConfig([]string{"https://app.example", "*"})
	require.True(t, ok)
	assert.True(t, cfg.AllowAllOrigins)
	assert.Empty(t, cfg.AllowOrigins)
}
