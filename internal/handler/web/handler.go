package web

import (
	"embed"
	"net/http"
	"net/url"
	"time"

	"StockSight/internal/domain/models"
	drepo "StockSight/internal/domain/repository"
	"StockSight/internal/service/ratelimit"
	"StockSight/internal/usecase"
	xhttp "StockSight/pkg/http"
	applogger "StockSight/pkg/logger"
	"StockSight/pkg/util"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templateFS embed.FS

// RateLimitedMessage is shown when a client submits faster than allowed.
const RateLimitedMessage = "Too many requests. Please wait a moment before submitting again."

// NewRenderer parses the embedded page templates.
func NewRenderer() (*xhttp.TemplateRenderer, error) {
	return xhttp.NewTemplateRenderer(templateFS, "templates/*.html", templateFuncs())
}

// Options carries the handler's static inputs.
type Options struct {
	Symbols    []string
	Background string // data URI
	Cookie     CookieConfig
}

// DashboardHandler serves the HTML dashboard and its JSON twin.
type DashboardHandler struct {
	logger    *applogger.Logger
	dashboard *usecase.Dashboard
	sessions  drepo.SessionStore
	limiter   *ratelimit.Limiter // nil disables limiting
	opts      Options
}

func NewDashboardHandler(
	logger *applogger.Logger,
	dashboard *usecase.Dashboard,
	sessions drepo.SessionStore,
	limiter *ratelimit.Limiter,
	opts Options,
) *DashboardHandler {
	return &DashboardHandler{
		logger:    logger,
		dashboard: dashboard,
		sessions:  sessions,
		limiter:   limiter,
		opts:      opts,
	}
}

func (h *DashboardHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Page)
	e.POST("/submit", h.Submit)

	g := e.Group("/api")
	g.GET("/symbols", h.Symbols)
	g.GET("/dashboard", h.View)
	g.POST("/dashboard", h.SubmitJSON)
}

// Page renders the dashboard for the cookie session in the requested mode.
func (h *DashboardHandler) Page(c echo.Context) error {
	req := &models.ViewRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	ctx := c.Request().Context()
	sess, err := h.load(c)
	if err != nil {
		return xhttp.AppErrorResponse(c, err)
	}
	if req.Mode != "" {
		h.dashboard.SelectMode(ctx, sess, models.DisplayMode(req.Mode))
	}

	view := h.dashboard.Render(ctx, sess)
	if err := h.save(c, sess); err != nil {
		return xhttp.AppErrorResponse(c, err)
	}

	c.Response().Header().Set(echo.HeaderCacheControl, "no-store")
	return c.Render(http.StatusOK, "dashboard.html", h.page(sess, view))
}

// Submit handles the form post and redirects back to the page.
func (h *DashboardHandler) Submit(c echo.Context) error {
	req := &models.SubmitRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	sess, err := h.load(c)
	if err != nil {
		return xhttp.AppErrorResponse(c, err)
	}

	if h.allow(c) {
		h.dashboard.Submit(c.Request().Context(), sess, submitInput(req))
	} else {
		sess.Notices = append(sess.Notices, models.Warning(RateLimitedMessage))
	}

	if err := h.save(c, sess); err != nil {
		return xhttp.AppErrorResponse(c, err)
	}
	return c.Redirect(http.StatusSeeOther, "/?mode="+url.QueryEscape(string(sess.Mode)))
}

// Symbols returns the candidate list for the picker.
func (h *DashboardHandler) Symbols(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.opts.Symbols)
}

// View returns the current session's view as JSON.
func (h *DashboardHandler) View(c echo.Context) error {
	req := &models.ViewRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	ctx := c.Request().Context()
	sess, err := h.load(c)
	if err != nil {
		return xhttp.AppErrorResponse(c, err)
	}
	if req.Mode != "" {
		h.dashboard.SelectMode(ctx, sess, models.DisplayMode(req.Mode))
	}

	view := h.dashboard.Render(ctx, sess)
	if err := h.save(c, sess); err != nil {
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, view)
}

// SubmitJSON runs a submit from a JSON body and returns the resulting view.
func (h *DashboardHandler) SubmitJSON(c echo.Context) error {
	req := &models.SubmitRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if !h.allow(c) {
		return xhttp.AppErrorResponse(c, xhttp.TooManyRequestsError(RateLimitedMessage))
	}

	ctx := c.Request().Context()
	sess, err := h.load(c)
	if err != nil {
		return xhttp.AppErrorResponse(c, err)
	}

	h.dashboard.Submit(ctx, sess, submitInput(req))
	view := h.dashboard.Render(ctx, sess)
	if err := h.save(c, sess); err != nil {
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, view)
}

func submitInput(req *models.SubmitRequest) usecase.SubmitInput {
	return usecase.SubmitInput{
		Symbols: req.Symbols,
		Start:   req.Start,
		End:     req.End,
		Mode:    models.DisplayMode(req.Mode),
	}
}

func (h *DashboardHandler) allow(c echo.Context) bool {
	if h.limiter == nil {
		return true
	}
	if h.limiter.Allow(ratelimit.ByRealIP(c)) {
		return true
	}
	h.logger.Warn("submit rate limited", applogger.String("remote", c.RealIP()))
	return false
}

func (h *DashboardHandler) load(c echo.Context) (*models.Session, error) {
	id := h.opts.Cookie.sessionID(c)
	sess, err := h.sessions.Load(c.Request().Context(), id)
	if err != nil {
		h.logger.Error("load session failed", applogger.String("session", id), applogger.Error(err))
		return nil, xhttp.InternalError("session unavailable").WithError(err)
	}
	return sess, nil
}

func (h *DashboardHandler) save(c echo.Context, sess *models.Session) error {
	sess.UpdatedAt = time.Now().UTC()
	if err := h.sessions.Save(c.Request().Context(), sess); err != nil {
		h.logger.Error("save session failed", applogger.String("session", sess.ID), applogger.Error(err))
		return xhttp.InternalError("session unavailable").WithError(err)
	}
	return nil
}

type modeOption struct {
	Value    models.DisplayMode
	Label    string
	Selected bool
}

type pageData struct {
	Background string
	Candidates []string
	Selected   map[string]bool
	Start      string
	End        string
	Modes      []modeOption
	View       models.DashboardView
}

func (h *DashboardHandler) page(sess *models.Session, view models.DashboardView) pageData {
	p := pageData{
		Background: h.opts.Background,
		Candidates: h.opts.Symbols,
		Selected:   make(map[string]bool, len(sess.Symbols)),
		View:       view,
	}
	for _, s := range sess.Symbols {
		p.Selected[s] = true
	}
	// Symbols typed outside the candidate list stay visible in the picker.
	for _, s := range sess.Symbols {
		if !contains(p.Candidates, s) {
			p.Candidates = append(append([]string(nil), p.Candidates...), s)
		}
	}
	if sess.Range.IsComplete() {
		p.Start = sess.Range.Start.Format(util.DateLayout)
		p.End = sess.Range.End.Format(util.DateLayout)
	}
	for _, m := range models.DisplayModes {
		p.Modes = append(p.Modes, modeOption{Value: m, Label: m.Label(), Selected: m == sess.Mode})
	}
	return p
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
