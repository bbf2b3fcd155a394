package http

import (
	"crypto/subtle"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"election-tracker-backend/internal/common/logger"
	"election-tracker-backend/internal/common/middleware"
	dashboardservice "election-tracker-backend/internal/features/dashboard/service"
	rostermodels "election-tracker-backend/internal/features/roster/models"
	rosterservice "election-tracker-backend/internal/features/roster/service"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

const sessionTTL = 24 * time.Hour

type Credentials struct {
	User          string
	Pass          string
	SessionSecret string
}

type DashboardHandler struct {
	service *dashboardservice.Service
	creds   Credentials
	started time.Time
}

func NewDashboardHandler(service *dashboardservice.Service, creds Credentials) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		creds:   creds,
		started: time.Now(),
	}
}

// Templates parses the embedded page set; the router installs it once.
func Templates() *template.Template {
	return template.Must(template.ParseFS(templatesFS, "templates/*.tmpl"))
}

func (h *DashboardHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", h.health)
	router.GET("/login", h.loginPage)
	router.POST("/login", h.login)
	router.GET("/logout", h.logout)

	pages := router.Group("/", middleware.RequireSession(h.creds.SessionSecret))
	{
		pages.GET("", h.index)
		pages.GET("/setup-help", h.setupHelp)
		pages.GET("/supervisors/:userId", h.supervisorDetail)

		pages.POST("/delegates/add", h.addDelegate)
		pages.POST("/delegates/delete", h.deleteDelegate)
		pages.POST("/supervisors/add", h.addSupervisor)
		pages.POST("/supervisors/delete", h.deleteSupervisor)
		pages.POST("/settings/save", h.saveSetting)

		pages.GET("/export/votes.csv", h.exportVotes)
		pages.GET("/export/supervisor/:userId", h.exportSupervisor)
	}
}

func (h *DashboardHandler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"ok":     true,
		"uptime": int(time.Since(h.started).Seconds()),
	})
}

func (h *DashboardHandler) loginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.tmpl", gin.H{"Error": c.Query("error")})
}

func (h *DashboardHandler) login(c *gin.Context) {
	user := c.PostForm("user")
	pass := c.PostForm("pass")

	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(h.creds.User)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(pass), []byte(h.creds.Pass)) == 1
	if !userOK || !passOK {
		c.HTML(http.StatusUnauthorized, "login.tmpl", gin.H{"Error": "Invalid username or password"})
		return
	}

	token, err := middleware.IssueSession(h.creds.SessionSecret, sessionTTL)
	if err != nil {
		logger.Error().Err(err).Msg("issuing session token failed")
		c.HTML(http.StatusInternalServerError, "login.tmpl", gin.H{"Error": "Could not start a session"})
		return
	}
	c.SetCookie(middleware.SessionCookie, token, int(sessionTTL.Seconds()), "/", "", false, true)
	c.Redirect(http.StatusFound, "/")
}

func (h *DashboardHandler) logout(c *gin.Context) {
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/login")
}

// index renders fail-soft: a spreadsheet outage shows the page shell with an
// error banner instead of a 500.
func (h *DashboardHandler) index(c *gin.Context) {
	center := c.Query("center")
	supervisor := c.Query("supervisor")

	view, err := h.service.Overview(c.Request.Context(), center, supervisor)
	if err != nil {
		logger.Error().Err(err).Msg("loading dashboard overview failed")
		c.HTML(http.StatusOK, "index.tmpl", gin.H{
			"LoadError": true,
			"Center":    center,
		})
		return
	}

	c.HTML(http.StatusOK, "index.tmpl", gin.H{
		"View":        view,
		"Flash":       flashMessage(c.Query("success")),
		"Problem":     problemMessage(c.Query("error")),
		"EnvBotToken": os.Getenv("TELEGRAM_BOT_TOKEN") != "",
		"EnvSheetID":  os.Getenv("GOOGLE_SHEETS_SPREADSHEET_ID") != "",
	})
}

func (h *DashboardHandler) setupHelp(c *gin.Context) {
	c.HTML(http.StatusOK, "setup_help.tmpl", nil)
}

func (h *DashboardHandler) supervisorDetail(c *gin.Context) {
	userID := strings.TrimSuffix(c.Param("userId"), ".csv")

	view, err := h.service.SupervisorDetail(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, rosterservice.ErrSupervisorNotFound) {
			c.String(http.StatusNotFound, "supervisor not found")
			return
		}
		logger.Error().Err(err).Str("user_id", userID).Msg("loading supervisor detail failed")
		c.String(http.StatusBadGateway, "data store unavailable")
		return
	}
	c.HTML(http.StatusOK, "supervisor.tmpl", gin.H{"View": view})
}

func (h *DashboardHandler) addDelegate(c *gin.Context) {
	d := rostermodels.Delegate{
		UserID:       strings.TrimSpace(c.PostForm("userId")),
		Name:         strings.TrimSpace(c.PostForm("name")),
		Center:       strings.TrimSpace(c.PostForm("center")),
		Village:      strings.TrimSpace(c.PostForm("village")),
		SupervisorID: strings.TrimSpace(c.PostForm("supervisorId")),
	}
	err := h.service.Roster().AddDelegate(c.Request.Context(), d)
	switch {
	case err == nil:
		c.Redirect(http.StatusFound, "/?success=delegate_added")
	case errors.Is(err, rosterservice.ErrMissingFields):
		c.Redirect(http.StatusFound, "/?error=missing_fields")
	case errors.Is(err, rosterservice.ErrDelegateExists):
		c.Redirect(http.StatusFound, "/?error=delegate_exists")
	default:
		logger.Error().Err(err).Str("user_id", d.UserID).Msg("adding delegate failed")
		c.Redirect(http.StatusFound, "/?error=add_failed")
	}
}

func (h *DashboardHandler) deleteDelegate(c *gin.Context) {
	userID := strings.TrimSpace(c.PostForm("userId"))
	if err := h.service.Roster().DeleteDelegate(c.Request.Context(), userID); err != nil {
		logger.Error().Err(err).Str("user_id", userID).Msg("deleting delegate failed")
	}
	c.Redirect(http.StatusFound, "/")
}

func (h *DashboardHandler) addSupervisor(c *gin.Context) {
	s := rostermodels.Supervisor{
		UserID: strings.TrimSpace(c.PostForm("userId")),
		Name:   strings.TrimSpace(c.PostForm("name")),
		Center: strings.TrimSpace(c.PostForm("center")),
	}
	err := h.service.Roster().AddSupervisor(c.Request.Context(), s)
	switch {
	case err == nil:
		c.Redirect(http.StatusFound, "/?success=supervisor_added")
	case errors.Is(err, rosterservice.ErrMissingFields):
		c.Redirect(http.StatusFound, "/?error=missing_fields")
	case errors.Is(err, rosterservice.ErrSupervisorExists):
		c.Redirect(http.StatusFound, "/?error=supervisor_exists")
	default:
		logger.Error().Err(err).Str("user_id", s.UserID).Msg("adding supervisor failed")
		c.Redirect(http.StatusFound, "/?error=add_failed")
	}
}

func (h *DashboardHandler) deleteSupervisor(c *gin.Context) {
	userID := strings.TrimSpace(c.PostForm("userId"))
	if err := h.service.Roster().DeleteSupervisor(c.Request.Context(), userID); err != nil {
		logger.Error().Err(err).Str("user_id", userID).Msg("deleting supervisor failed")
	}
	c.Redirect(http.StatusFound, "/")
}

func (h *DashboardHandler) saveSetting(c *gin.Context) {
	key := strings.TrimSpace(c.PostForm("key"))
	value := strings.TrimSpace(c.PostForm("value"))
	if key == "" {
		c.Redirect(http.StatusFound, "/?error=missing_fields")
		return
	}
	if err := h.service.SaveSetting(c.Request.Context(), key, value); err != nil {
		logger.Error().Err(err).Str("key", key).Msg("saving setting failed")
		c.Redirect(http.StatusFound, "/?error=add_failed")
		return
	}
	c.Redirect(http.StatusFound, "/?success=setting_saved")
}

func (h *DashboardHandler) exportVotes(c *gin.Context) {
	body, err := h.service.VotesCSV(c.Request.Context(), c.Query("center"), c.Query("supervisor"))
	if err != nil {
		logger.Error().Err(err).Msg("exporting votes failed")
		c.String(http.StatusBadGateway, "data store unavailable")
		return
	}
	writeCSV(c, "votes.csv", body)
}

// exportSupervisor accepts both /export/supervisor/123 and .../123.csv; the
// suffix is cosmetic.
func (h *DashboardHandler) exportSupervisor(c *gin.Context) {
	userID := strings.TrimSuffix(c.Param("userId"), ".csv")

	body, err := h.service.SupervisorVotesCSV(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, rosterservice.ErrSupervisorNotFound) {
			c.String(http.StatusNotFound, "supervisor not found")
			return
		}
		logger.Error().Err(err).Str("user_id", userID).Msg("exporting supervisor votes failed")
		c.String(http.StatusBadGateway, "data store unavailable")
		return
	}
	writeCSV(c, "supervisor_"+userID+".csv", body)
}

func writeCSV(c *gin.Context, filename string, body []byte) {
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", body)
}

func flashMessage(flag string) string {
	switch flag {
	case "delegate_added":
		return "Delegate added."
	case "supervisor_added":
		return "Supervisor added."
	case "setting_saved":
		return "Setting saved."
	}
	return ""
}

func problemMessage(flag string) string {
	switch flag {
	case "missing_fields":
		return "All required fields must be filled in."
	case "delegate_exists":
		return "A delegate with that user ID already exists."
	case "supervisor_exists":
		return "A supervisor with that user ID already exists."
	case "add_failed":
		return "The change could not be saved. Check the data store connection."
	}
	return ""
}
