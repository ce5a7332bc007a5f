package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"StockSight/internal/domain/models"
	"StockSight/internal/repository"
	"StockSight/internal/service/ratelimit"
	"StockSight/internal/services/analytics"
	"StockSight/internal/services/chart"
	"StockSight/internal/usecase"
	"StockSight/pkg/cache"
	xhttp "StockSight/pkg/http"
	applogger "StockSight/pkg/logger"
	"StockSight/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

type memSource struct {
	data  map[string][]models.PriceBar
	calls int
}

func (s *memSource) FetchDaily(_ context.Context, symbol string, _, _ time.Time) ([]models.PriceBar, error) {
	s.calls++
	return s.data[symbol], nil
}

func bars(n int) []models.PriceBar {
	out := make([]models.PriceBar, n)
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	for i := range out {
		c := 180 + float64(i)
		out[i] = models.PriceBar{Date: start.AddDate(0, 0, i), Open: c - 0.5, High: c + 1, Low: c - 1, Close: c, Volume: 1234567}
	}
	return out
}

type testServer struct {
	e   *echo.Echo
	src *memSource
}

func newTestServer(t *testing.T, limiter *ratelimit.Limiter) *testServer {
	t.Helper()
	logger := applogger.NewNop()
	src := &memSource{data: map[string][]models.PriceBar{"AAPL": bars(30)}}
	rec := metrics.New(prometheus.NewRegistry())

	dash := usecase.NewDashboard(
		usecase.NewDataFetcher(src, rec, logger),
		analytics.NewLinearPredictor(),
		analytics.NewWindowTrend(5),
		analytics.NewCloseSummarizer(),
		chart.NewRenderer(chart.WithSize(400, 300)),
		repository.NoopEventPublisher{},
		rec,
		logger,
	)

	mc := cache.NewMemoryCache()
	t.Cleanup(func() { _ = mc.Close() })
	sessions := repository.NewCacheSessionStore(mc, time.Minute)

	renderer, err := NewRenderer()
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}

	h := NewDashboardHandler(logger, dash, sessions, limiter, Options{
		Symbols:    []string{"AAPL", "MDB"},
		Background: "data:image/png;base64,AAAA",
		Cookie:     CookieConfig{Name: "stocksight_session", TTL: time.Minute},
	})

	e := echo.New()
	e.Renderer = renderer
	h.RegisterRoutes(e)
	return &testServer{e: e, src: src}
}

func (s *testServer) do(req *http.Request, cookies []*http.Cookie) *httptest.ResponseRecorder {
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func postForm(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return req
}

func postJSON(path, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func TestPageIssuesSessionCookie(t *testing.T) {
	s := newTestServer(t, nil)
	rec := s.do(httptest.NewRequest(http.MethodGet, "/", nil), nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != "stocksight_session" || cookies[0].Value == "" {
		t.Fatalf("expected session cookie, got %v", cookies)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "STOCK PRICE PREDICTION") || !strings.Contains(body, `value="MDB"`) {
		t.Fatalf("page missing header or candidates")
	}
	if strings.Contains(body, "Predicted Prices") {
		t.Fatalf("idle session must render no results")
	}
}

func TestSubmitThenSwitchModes(t *testing.T) {
	s := newTestServer(t, nil)

	form := url.Values{"symbols": {"AAPL", "ZZZZ"}, "start": {"2024-01-01"}, "end": {"2024-02-15"}, "mode": {"prediction"}}
	rec := s.do(postForm("/submit", form), nil)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/?mode=prediction" {
		t.Fatalf("unexpected location %q", loc)
	}
	cookies := rec.Result().Cookies()
	if s.src.calls != 2 {
		t.Fatalf("expected 2 fetches, got %d", s.src.calls)
	}

	rec = s.do(httptest.NewRequest(http.MethodGet, "/?mode=prediction", nil), cookies)
	body := rec.Body.String()
	if !strings.Contains(body, "Predicted Prices - AAPL") {
		t.Fatalf("missing prediction block")
	}
	if strings.Contains(body, "Predicted Prices - ZZZZ") {
		t.Fatalf("skipped symbol must not render")
	}
	if !strings.Contains(body, "No data available for ZZZZ.") {
		t.Fatalf("missing empty-data warning")
	}
	if !strings.Contains(body, "The predicted price is higher.") || !strings.Contains(body, "Current Price: $209.00") {
		t.Fatalf("missing direction or current price")
	}
	if !strings.Contains(body, "1,234,567") {
		t.Fatalf("volume should be grouped")
	}

	rec = s.do(httptest.NewRequest(http.MethodGet, "/?mode=graphs", nil), cookies)
	body = rec.Body.String()
	if !strings.Contains(body, "AAPL Prices") || !strings.Contains(body, "data:image/png;base64,") {
		t.Fatalf("missing chart block")
	}
	if !strings.Contains(body, "Yesterday&#39;s Open Price: $208.50") && !strings.Contains(body, "Yesterday's Open Price: $208.50") {
		t.Fatalf("missing open callout")
	}
	if strings.Contains(body, "No data available for ZZZZ.") {
		t.Fatalf("notices are shown once")
	}

	rec = s.do(httptest.NewRequest(http.MethodGet, "/?mode=analysis", nil), cookies)
	if !strings.Contains(rec.Body.String(), "Statistical Analysis") || !strings.Contains(rec.Body.String(), "<th>Metric</th>") || !strings.Contains(rec.Body.String(), "Standard Deviation") {
		t.Fatalf("missing analysis block")
	}
	if s.src.calls != 2 {
		t.Fatalf("mode switches must not refetch, got %d fetches", s.src.calls)
	}
}

func TestSubmitWithoutSymbolsWarns(t *testing.T) {
	s := newTestServer(t, nil)
	rec := s.do(postForm("/submit", url.Values{"start": {"2024-01-01"}, "end": {"2024-02-01"}}), nil)
	cookies := rec.Result().Cookies()

	rec = s.do(httptest.NewRequest(http.MethodGet, "/", nil), cookies)
	if !strings.Contains(rec.Body.String(), usecase.SubmitGuardMessage) {
		t.Fatalf("expected guard warning")
	}
	if s.src.calls != 0 {
		t.Fatalf("guard must prevent fetches")
	}
}

func TestAPIDashboard(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(postJSON("/api/dashboard", `{"symbols":["aapl"],"start":"2024-01-01","end":"2024-02-15","mode":"analysis"}`), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Status int                  `json:"status"`
		Data   models.DashboardView `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Data.Mode != models.ModeAnalysis || len(resp.Data.Analyses) != 1 || resp.Data.Analyses[0].Symbol != "AAPL" {
		t.Fatalf("unexpected view %+v", resp.Data)
	}
	cookies := rec.Result().Cookies()

	rec = s.do(httptest.NewRequest(http.MethodGet, "/api/dashboard?mode=prediction", nil), cookies)
	resp.Data = models.DashboardView{}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Data.Predictions) != 1 || resp.Data.Predictions[0].Result.Direction != models.DirectionUp {
		t.Fatalf("unexpected predictions %+v", resp.Data.Predictions)
	}
}

func TestAPIRejectsUnknownMode(t *testing.T) {
	s := newTestServer(t, nil)
	rec := s.do(httptest.NewRequest(http.MethodGet, "/api/dashboard?mode=candles", nil), nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var resp struct {
		Data []xhttp.ValidationError `json:"data"`
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if len(resp.Data) != 1 || resp.Data[0].Code != "ERR_ONEOF" {
		t.Fatalf("unexpected validation errors %+v", resp.Data)
	}
}

func TestAPISubmitRateLimited(t *testing.T) {
	s := newTestServer(t, ratelimit.New(1, 0))
	body := `{"symbols":["AAPL"],"start":"2024-01-01","end":"2024-02-15"}`

	if rec := s.do(postJSON("/api/dashboard", body), nil); rec.Code != http.StatusOK {
		t.Fatalf("first submit should pass, got %d", rec.Code)
	}
	if rec := s.do(postJSON("/api/dashboard", body), nil); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second submit should be limited, got %d", rec.Code)
	}
	if s.src.calls != 1 {
		t.Fatalf("limited submit must not fetch, got %d", s.src.calls)
	}
}

func TestAPISymbols(t *testing.T) {
	s := newTestServer(t, nil)
	rec := s.do(httptest.NewRequest(http.MethodGet, "/api/symbols", nil), nil)
	if !strings.Contains(rec.Body.String(), `"data":["AAPL","MDB"]`) {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestFormatters(t *testing.T) {
	cases := []struct{ got, want string }{
		{formatPrice(189.954), "$189.95"},
		{formatPrice(0.005), "$0.01"},
		{formatNumber(1.5), "1.500000"},
		{formatVolume(9876543), "9,876,543"},
	}
	for _, c := range cases {
		if c.got != c.want {
			t.Errorf("got %q want %q", c.got, c.want)
		}
	}
}
