package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/goliatone/go-admin-shell/internal/config"
	"github.com/goliatone/go-admin-shell/internal/server"
	"github.com/goliatone/go-admin-shell/pkg/forms"
	"github.com/goliatone/go-admin-shell/pkg/render"
	"github.com/goliatone/go-admin-shell/pkg/renderers/jsonapi"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fixture struct {
	handler   http.Handler
	logs      *observer.ObservedLogs
	submitted []forms.Submission
}

func newFixture(t *testing.T, handler forms.Handler) *fixture {
	t.Helper()
	return newFixtureWith(t, config.Default(), handler)
}

func newFixtureWith(t *testing.T, cfg config.Config, handler forms.Handler) *fixture {
	t.Helper()
	f := &fixture{}
	if handler == nil {
		handler = func(_ context.Context, submission forms.Submission) error {
			f.submitted = append(f.submitted, submission)
			return nil
		}
	}

	cfg.Forms.Document = "testdata/contact.yaml"
	registry, err := server.BuildForms(context.Background(), cfg.Forms, forms.WithHandler(handler))
	require.NoError(t, err)

	core, logs := observer.New(zapcore.DebugLevel)
	srv, err := server.New(cfg.Server, registry,
		server.WithLogger(zap.New(core)),
		server.WithIDGenerator(func() string { return "req-1" }),
	)
	require.NoError(t, err)
	f.handler = srv.Handler()
	f.logs = logs
	return f
}

func (f *fixture) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func postForm(target string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) jsonapi.Response {
	t.Helper()
	var body jsonapi.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestRootRedirectsToDashboard(t *testing.T) {
	f := newFixture(t, nil)
	rec := f.do(t, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/dashboard", rec.Header().Get("Location"))
}

func TestDashboardDefaultsToExpanded(t *testing.T) {
	f := newFixture(t, nil)
	rec := f.do(t, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	require.Equal(t, "req-1", rec.Header().Get(server.RequestIDHeader))
	body := rec.Body.String()
	require.Contains(t, body, `data-expanded="true"`)
	require.Contains(t, body, `name="_token" value="req-1"`)
}

func TestToggleRoundTripsHiddenField(t *testing.T) {
	f := newFixture(t, nil)

	rec := f.do(t, postForm("/sidebar/toggle", url.Values{
		render.ExpandedField: {"true"},
		render.FragmentField: {"1"},
	}))
	require.Equal(t, http.StatusOK, rec.Code)
	collapsed := rec.Body.String()
	require.Contains(t, collapsed, `data-expanded="false"`)
	require.Contains(t, collapsed, `name="expanded" value="false"`)
	require.NotContains(t, collapsed, "<!DOCTYPE html>")

	rec = f.do(t, postForm("/sidebar/toggle", url.Values{render.ExpandedField: {"false"}}))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "<!DOCTYPE html>")
	require.Contains(t, rec.Body.String(), `data-expanded="true"`)
}

func TestToggleNegotiatesJSON(t *testing.T) {
	f := newFixture(t, nil)
	req := postForm("/sidebar/toggle", url.Values{render.ExpandedField: {"true"}, render.FragmentField: {""}})
	req.Header.Set("Accept", "application/json")
	rec := f.do(t, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeResponse(t, rec)
	require.Equal(t, "sidebar", body.Kind)
	require.NotNil(t, body.Sidebar)
	require.False(t, body.Sidebar.Expanded)
}

func TestLoginReportsFieldErrors(t *testing.T) {
	f := newFixture(t, nil)
	req := postForm("/login", url.Values{"mobile": {"12ab"}, "passcode": {"abc"}})
	req.Header.Set("Accept", "application/json")
	rec := f.do(t, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := decodeResponse(t, rec)
	require.False(t, body.Valid)
	require.Equal(t, map[string]string{
		"mobile":   "Mobile number must be at least 10 digits",
		"passcode": "Passcode must be at least 6 characters",
	}, body.Errors)
	require.Empty(t, f.submitted)
}

func TestLoginSubmitsValidData(t *testing.T) {
	f := newFixture(t, nil)
	req := postForm("/login", url.Values{"mobile": {"0123456789"}, "passcode": {"secret1"}})
	req.Header.Set("Accept", "application/json")
	rec := f.do(t, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeResponse(t, rec)
	require.True(t, body.Valid)
	require.True(t, body.Submitted)
	require.Equal(t, map[string]any{"mobile": "0123456789"}, body.Data)

	require.Len(t, f.submitted, 1)
	require.Equal(t, forms.LoginData{Mobile: "0123456789", Passcode: "secret1"}, forms.DecodeLogin(f.submitted[0].Values))
}

func TestHandlerErrorsBecomeFormMessages(t *testing.T) {
	f := newFixture(t, func(context.Context, forms.Submission) error {
		return render.UserError{Message: "Mobile number already registered"}
	})
	rec := f.do(t, postForm("/login", url.Values{"mobile": {"0123456789"}, "passcode": {"secret1"}}))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.Contains(t, rec.Body.String(), "Mobile number already registered")
	require.Equal(t, 1, f.logs.FilterMessage("completion handler failed").Len())
}

func multipartRequest(t *testing.T, fields map[string][]string, file *upload) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for name, values := range fields {
		for _, value := range values {
			require.NoError(t, w.WriteField(name, value))
		}
	}
	if file != nil {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", `form-data; name="image"; filename="`+file.name+`"`)
		header.Set("Content-Type", file.contentType)
		part, err := w.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(file.data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/form", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Accept", "application/json")
	return req
}

type upload struct {
	name        string
	contentType string
	data        []byte
}

func TestGenericFormMultipart(t *testing.T) {
	f := newFixture(t, nil)
	fields := map[string][]string{
		"name":         {"Ada"},
		"email":        {"ada@example.com"},
		"gender":       {"female"},
		"technologies": {"Js", "Python"},
	}

	rec := f.do(t, multipartRequest(t, fields, &upload{name: "notes.txt", contentType: "text/plain", data: []byte("hi")}))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.Equal(t, map[string]string{"image": "File must be an image"}, decodeResponse(t, rec).Errors)

	rec = f.do(t, multipartRequest(t, fields, &upload{name: "a.png", contentType: "image/png", data: []byte("png")}))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, f.submitted, 1)
	got := forms.DecodeGeneric(f.submitted[0].Values)
	require.Equal(t, "a.png", got.Image.Name)
	require.Equal(t, int64(3), got.Image.Size)
	require.Equal(t, []string{"Js", "Python"}, got.Technologies)

	rec = f.do(t, multipartRequest(t, fields, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Nil(t, forms.DecodeGeneric(f.submitted[1].Values).Image)
}

func TestOversizedImageStillValidatesEveryField(t *testing.T) {
	f := newFixture(t, nil)
	fields := map[string][]string{
		"name":         {""},
		"email":        {"bad"},
		"gender":       {"female"},
		"technologies": {"Js"},
	}
	image := &upload{name: "big.png", contentType: "image/png", data: make([]byte, 6*1024*1024)}

	rec := f.do(t, multipartRequest(t, fields, image))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.Equal(t, map[string]string{
		"name":  "Name is required",
		"email": "Invalid email address",
		"image": "Image must be less than 5MB",
	}, decodeResponse(t, rec).Errors)
	require.Empty(t, f.submitted)
}

func TestUploadPastBodyLimitIsReportedOnTheImage(t *testing.T) {
	cfg := config.Default()
	cfg.Server.MaxUploadBytes = forms.MaxImageBytes + 64<<10
	f := newFixtureWith(t, cfg, nil)
	fields := map[string][]string{
		"name":         {"Ada"},
		"email":        {"bad"},
		"gender":       {"female"},
		"technologies": {"Js"},
	}
	image := &upload{name: "huge.png", contentType: "image/png", data: make([]byte, forms.MaxImageBytes+1<<20)}

	rec := f.do(t, multipartRequest(t, fields, image))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.Equal(t, map[string]string{
		"email": "Invalid email address",
		"image": "Image must be less than 5MB",
	}, decodeResponse(t, rec).Errors)
}

func TestJSONNumbersAreText(t *testing.T) {
	f := newFixture(t, nil)
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"mobile":1234567890,"passcode":123456}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	rec := f.do(t, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, f.submitted, 1)
	require.Equal(t, forms.LoginData{Mobile: "1234567890", Passcode: "123456"}, forms.DecodeLogin(f.submitted[0].Values))
}

func TestGenericFormRequiresTechnology(t *testing.T) {
	f := newFixture(t, nil)
	req := httptest.NewRequest(http.MethodPost, "/form", strings.NewReader(`{"name":"Ada","email":"ada@example.com","gender":"male"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	rec := f.do(t, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.Equal(t, map[string]string{"technologies": "At least one technology must be selected"}, decodeResponse(t, rec).Errors)
}

func TestDocumentForms(t *testing.T) {
	f := newFixture(t, nil)

	rec := f.do(t, httptest.NewRequest(http.MethodGet, "/forms/contact", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `action="/forms/contact"`)
	require.Contains(t, rec.Body.String(), `>Send</button>`)

	req := postForm("/forms/contact", url.Values{"email": {"x"}, "message": {"hey"}})
	req.Header.Set("Accept", "application/json")
	rec = f.do(t, req)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.Equal(t, map[string]string{
		"email":   "Invalid email address",
		"message": "Message is too short",
	}, decodeResponse(t, rec).Errors)

	require.Equal(t, http.StatusNotFound, f.do(t, httptest.NewRequest(http.MethodGet, "/forms/missing", nil)).Code)
	require.Equal(t, http.StatusNotFound, f.do(t, httptest.NewRequest(http.MethodGet, "/forms/login", nil)).Code)
}

func TestAssetsAndHealth(t *testing.T) {
	f := newFixture(t, nil)

	rec := f.do(t, httptest.NewRequest(http.MethodGet, "/assets/adminshell.css", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "text/css")

	rec = f.do(t, httptest.NewRequest(http.MethodGet, "/svg/SidebarDashboardIcon.svg", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	entries := f.logs.FilterMessage("http request").All()
	require.Len(t, entries, 3)
	require.Equal(t, "/healthz", entries[2].ContextMap()["path"])
}

func TestIncomingRequestIDIsKept(t *testing.T) {
	f := newFixture(t, nil)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(server.RequestIDHeader, "upstream-7")
	rec := f.do(t, req)
	require.Equal(t, "upstream-7", rec.Header().Get(server.RequestIDHeader))
}

func TestNewRequiresBuiltInForms(t *testing.T) {
	_, err := server.New(config.Default().Server, forms.NewRegistry())
	require.Error(t, err)
	_, err = server.New(config.Default().Server, nil)
	require.Error(t, err)
}

func TestServeStopsOnCancel(t *testing.T) {
	registry, err := server.BuildForms(context.Background(), config.Default().Forms)
	require.NoError(t, err)
	cfg := config.Default().Server
	cfg.ShutdownTimeout = time.Second
	srv, err := server.New(cfg, registry)
	require.NoError(t, err)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, listener) }()

	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}
	require.Eventually(t, func() bool {
		resp, err := client.Get("http://" + listener.Addr().String() + "/healthz")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
}
