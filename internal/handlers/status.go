package handlers

import (
	"encoding/json"
	"net/http"

	"gridsense/internal/grid"

	"github.com/gin-gonic/gin"
)

// Common response constants to avoid magic strings and typos.
const (
	statusOK = "ok"

	downloadFilename = "model_output.json"

	errLoadStatus = "failed to load status"
	errAssess     = "failed to assess grid"
	errEvaluate   = "failed to evaluate snapshot"
)

// EvaluateRequest is a complete sensor snapshot. Every field is required.
type EvaluateRequest struct {
	Temperature       *int     `json:"temperature" binding:"required" example:"95"`
	Humidity          *int     `json:"humidity" binding:"required" example:"90"`
	ComponentAgeScore *int     `json:"component_age_score" binding:"required" example:"85"`
	LoadPercentage    *int     `json:"load_percentage" binding:"required" example:"95"`
	FaultSignal       *int     `json:"fault_signal" binding:"required" example:"1"`
	CurrentTopology   *string  `json:"current_topology" binding:"required" example:"Normal-A/B"`
	RenewableInput    *int     `json:"renewable_input" binding:"required" example:"900"`
	WeatherScore      *float64 `json:"weather_score" binding:"required" example:"0.7"`
}

func (r EvaluateRequest) snapshot() grid.SensorSnapshot {
	return grid.SensorSnapshot{
		Temperature:       *r.Temperature,
		Humidity:          *r.Humidity,
		ComponentAgeScore: *r.ComponentAgeScore,
		LoadPercentage:    *r.LoadPercentage,
		FaultSignal:       *r.FaultSignal,
		CurrentTopology:   grid.Topology(*r.CurrentTopology),
		RenewableInput:    *r.RenewableInput,
		WeatherScore:      *r.WeatherScore,
	}
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Latest status report
// @Description  Most recent decision record. Assesses the current snapshot if nothing is stored yet.
// @Tags         status
// @Produce      json
// @Success      200  {object}  models.StatusReport
// @Failure      500  {object}  map[string]string
// @Router       /status [get]
func (h *Handler) getStatus(c *gin.Context) {
	e, err := h.services.Assessment.Latest(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errLoadStatus, "status_load_failed", err)
		return
	}
	c.JSON(http.StatusOK, e.Report)
}

// @Summary      Download status report
// @Description  Same record as /status, served as model_output.json.
// @Tags         status
// @Produce      json
// @Success      200  {file}    file
// @Failure      500  {object}  map[string]string
// @Router       /status/download [get]
func (h *Handler) downloadStatus(c *gin.Context) {
	e, err := h.services.Assessment.Latest(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errLoadStatus, "status_download_failed", err)
		return
	}
	b, err := json.MarshalIndent(e.Report, "", "    ")
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errLoadStatus, "status_encode_failed", err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+downloadFilename+`"`)
	c.Data(http.StatusOK, "application/json", b)
}

// @Summary      Prometheus metrics
// @Description  Evaluation counters, last stress index and publish failures in text exposition format.
// @Tags         system
// @Produce      plain
// @Success      200  {string}  string
// @Router       /metrics [get]
func (h *Handler) metrics(c *gin.Context) {
	h.opts.Metrics.ServeHTTP(c.Writer, c.Request)
}

// @Summary      Assess current snapshot
// @Description  Evaluates the current signals, stores the report and publishes it.
// @Tags         assessment
// @Produce      json
// @Success      200  {object}  models.ReportEntry
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/assess [post]
// @Security     BearerAuth
func (h *Handler) assess(c *gin.Context) {
	e, err := h.services.Assessment.Assess(c.Request.Context())
	if err != nil {
		h.respondServiceError(c, err, errAssess, "assess_failed")
		return
	}
	c.JSON(http.StatusOK, e)
}

// @Summary      Evaluate a snapshot
// @Description  Stateless evaluation of a caller-supplied snapshot. Nothing is stored.
// @Tags         assessment
// @Accept       json
// @Produce      json
// @Param        body  body      EvaluateRequest  true  "Sensor snapshot"
// @Success      200   {object}  models.StatusReport
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/v1/evaluate [post]
// @Security     BearerAuth
func (h *Handler) evaluate(c *gin.Context) {
	var req EvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	rep, err := h.services.Assessment.Evaluate(c.Request.Context(), req.snapshot())
	if err != nil {
		h.respondServiceError(c, err, errEvaluate, "evaluate_failed")
		return
	}
	c.JSON(http.StatusOK, rep)
}
