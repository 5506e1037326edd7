package daemon

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/theirongolddev/wattboard/internal/energy"
	"github.com/theirongolddev/wattboard/internal/ledger"
	"github.com/theirongolddev/wattboard/internal/session"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

var errInvalidPayload = errors.New("invalid payload")

type householdRequest struct {
	Name      string `json:"name"`
	Age       int    `json:"age"`
	City      string `json:"city"`
	Area      string `json:"area"`
	HouseType string `json:"house_type"`
}

type estimateRequest struct {
	Size       int      `json:"size"`
	Appliances []string `json:"appliances"`
}

type estimateResponse struct {
	KWh        float64            `json:"kwh"`
	BaseKWh    float64            `json:"base_kwh"`
	Appliances []energy.Appliance `json:"appliances"`
}

type createSessionRequest struct {
	Size      int              `json:"size"`
	Household householdRequest `json:"household"`
}

type sizeRequest struct {
	Size int `json:"size"`
}

type draftRequest struct {
	Appliances []string `json:"appliances"`
}

type toggleRequest struct {
	Appliance string `json:"appliance"`
}

type saveValueRequest struct {
	KWh *float64 `json:"kwh"`
}

type dayResponse struct {
	Day     ledger.Day     `json:"day"`
	KWh     float64        `json:"kwh"`
	Metrics ledger.Metrics `json:"metrics"`
}

type chartsResponse struct {
	Bars   []ledger.DaySlot `json:"bars"`
	Shares []ledger.Share   `json:"shares"`
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errInvalidPayload):
		c.JSON(http.StatusBadRequest, apiError{Code: "INVALID_PAYLOAD", Message: err.Error()})
	case errors.Is(err, energy.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, apiError{Code: "INVALID_INPUT", Message: err.Error()})
	case errors.Is(err, session.ErrNotFound):
		c.JSON(http.StatusNotFound, apiError{Code: "SESSION_NOT_FOUND", Message: "session not found"})
	case errors.Is(err, session.ErrFull):
		c.JSON(http.StatusServiceUnavailable, apiError{Code: "TOO_MANY_SESSIONS", Message: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, apiError{Code: "INTERNAL_ERROR", Message: "an internal error occurred"})
	}
}

func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		writeError(c, errInvalidPayload)
		return false
	}
	return true
}

func (s *Service) lookup(c *gin.Context) (*session.Session, bool) {
	sess, err := s.registry.Get(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return nil, false
	}
	return sess, true
}

func parseDayParam(c *gin.Context) (ledger.Day, bool) {
	day, err := ledger.ParseDay(c.Param("day"))
	if err != nil {
		writeError(c, err)
		return 0, false
	}
	return day, true
}

func (s *Service) handleHealth(c *gin.Context) {
	c.String(http.StatusOK, "ok\n")
}

func (s *Service) handleStatus(c *gin.Context) {
	c.JSON(http.StatusOK, s.snapshotStatus())
}

func (s *Service) handleEvents(c *gin.Context) {
	var after int64
	if raw := c.Query("after"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(c, errInvalidPayload)
			return
		}
		after = n
	}
	c.JSON(http.StatusOK, s.eventsSince(after))
}

func (s *Service) handleStream(c *gin.Context) {
	ch := make(chan Event, 16)
	id := s.addSubscriber(ch)
	defer s.removeSubscriber(id)

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	// Announce the current status first so clients can render immediately.
	c.SSEvent("status", s.snapshotStatus())
	c.Writer.Flush()

	keepalive := time.NewTicker(30 * time.Second)
	defer keepalive.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case ev := <-ch:
			c.SSEvent(ev.Type, ev)
			return true
		case <-keepalive.C:
			_, _ = w.Write([]byte(": keepalive\n\n"))
			return true
		}
	})
}

func (s *Service) handleEstimate(c *gin.Context) {
	var req estimateRequest
	if !bindJSON(c, &req) {
		return
	}
	size, err := energy.ParseSize(req.Size)
	if err != nil {
		writeError(c, err)
		return
	}
	set, err := energy.ParseAppliances(req.Appliances)
	if err != nil {
		writeError(c, err)
		return
	}
	kwh, err := energy.EstimateDailyEnergy(size, set)
	if err != nil {
		writeError(c, err)
		return
	}
	base, _ := energy.BaseLoad(size)
	list := set.List()
	if list == nil {
		list = []energy.Appliance{}
	}
	c.JSON(http.StatusOK, estimateResponse{KWh: kwh, BaseKWh: energy.Round2(base), Appliances: list})
}

func (s *Service) handleListSessions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"sessions": s.registry.IDs()})
}

func (s *Service) handleCreateSession(c *gin.Context) {
	var req createSessionRequest
	if !bindJSON(c, &req) {
		return
	}
	size, err := energy.ParseSize(req.Size)
	if err != nil {
		writeError(c, err)
		return
	}
	sess, err := s.registry.Create(size, session.Household(req.Household))
	if err != nil {
		writeError(c, err)
		return
	}
	s.record(EventSessionCreated, sess.ID, sess, "", 0)
	c.JSON(http.StatusCreated, sess.Snapshot())
}

func (s *Service) handleGetSession(c *gin.Context) {
	sess, ok := s.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, sess.Snapshot())
}

func (s *Service) handleDeleteSession(c *gin.Context) {
	sess, ok := s.lookup(c)
	if !ok {
		return
	}
	if err := s.registry.Delete(sess.ID); err != nil {
		writeError(c, err)
		return
	}
	s.record(EventSessionDeleted, sess.ID, nil, "", 0)
	c.Status(http.StatusNoContent)
}

func (s *Service) handleSetSize(c *gin.Context) {
	sess, ok := s.lookup(c)
	if !ok {
		return
	}
	var req sizeRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := sess.SetSize(energy.DwellingSize(req.Size)); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess.Snapshot())
}

func (s *Service) handleSetHousehold(c *gin.Context) {
	sess, ok := s.lookup(c)
	if !ok {
		return
	}
	var req householdRequest
	if !bindJSON(c, &req) {
		return
	}
	sess.SetHousehold(session.Household(req))
	c.JSON(http.StatusOK, sess.Snapshot())
}

func (s *Service) handleSetDraft(c *gin.Context) {
	sess, ok := s.lookup(c)
	if !ok {
		return
	}
	day, ok := parseDayParam(c)
	if !ok {
		return
	}
	var req draftRequest
	if !bindJSON(c, &req) {
		return
	}
	set, err := energy.ParseAppliances(req.Appliances)
	if err != nil {
		writeError(c, err)
		return
	}
	if err := sess.SetDraft(day, set); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess.Snapshot().Days[day])
}

func (s *Service) handleToggle(c *gin.Context) {
	sess, ok := s.lookup(c)
	if !ok {
		return
	}
	day, ok := parseDayParam(c)
	if !ok {
		return
	}
	var req toggleRequest
	if !bindJSON(c, &req) {
		return
	}
	a, err := energy.ParseAppliance(req.Appliance)
	if err != nil {
		writeError(c, err)
		return
	}
	if _, err := sess.Toggle(day, a); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess.Snapshot().Days[day])
}

func (s *Service) handleCommit(c *gin.Context) {
	sess, ok := s.lookup(c)
	if !ok {
		return
	}
	day, ok := parseDayParam(c)
	if !ok {
		return
	}
	kwh, err := sess.Commit(day)
	if err != nil {
		writeError(c, err)
		return
	}
	s.record(EventDaySaved, sess.ID, sess, day.String(), kwh)
	c.JSON(http.StatusOK, dayResponse{Day: day, KWh: kwh, Metrics: sess.Metrics()})
}

func (s *Service) handleSaveValue(c *gin.Context) {
	sess, ok := s.lookup(c)
	if !ok {
		return
	}
	day, ok := parseDayParam(c)
	if !ok {
		return
	}
	var req saveValueRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.KWh == nil {
		writeError(c, errInvalidPayload)
		return
	}
	if err := sess.SaveValue(day, *req.KWh); err != nil {
		writeError(c, err)
		return
	}
	s.record(EventDaySaved, sess.ID, sess, day.String(), *req.KWh)
	c.JSON(http.StatusOK, dayResponse{Day: day, KWh: *req.KWh, Metrics: sess.Metrics()})
}

func (s *Service) handleReset(c *gin.Context) {
	sess, ok := s.lookup(c)
	if !ok {
		return
	}
	sess.Reset()
	s.record(EventLedgerReset, sess.ID, sess, "", 0)
	c.JSON(http.StatusOK, sess.Metrics())
}

func (s *Service) handleMetrics(c *gin.Context) {
	sess, ok := s.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, sess.Metrics())
}

func (s *Service) handleCharts(c *gin.Context) {
	sess, ok := s.lookup(c)
	if !ok {
		return
	}
	week := sess.Ledger()
	shares := week.Shares()
	if shares == nil {
		shares = []ledger.Share{}
	}
	c.JSON(http.StatusOK, chartsResponse{Bars: week.Bars(), Shares: shares})
}
