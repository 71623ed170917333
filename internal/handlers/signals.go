package handlers

import (
	"errors"
	"io"
	"net/http"

	"gridsense/internal/grid"
	"gridsense/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errLoadSignals      = "failed to load signals"
	errRandomizeSignals = "failed to randomize signals"
	errOverrideSignals  = "failed to override signals"
)

// SignalPatchRequest overrides individual readings. Omitted fields keep
// their current value.
type SignalPatchRequest struct {
	Temperature       *int     `json:"temperature,omitempty" example:"95"`
	Humidity          *int     `json:"humidity,omitempty"`
	ComponentAgeScore *int     `json:"component_age_score,omitempty"`
	LoadPercentage    *int     `json:"load_percentage,omitempty"`
	FaultSignal       *int     `json:"fault_signal,omitempty"`
	CurrentTopology   *string  `json:"current_topology,omitempty" example:"Rerouted-B/A"`
	RenewableInput    *int     `json:"renewable_input,omitempty"`
	WeatherScore      *float64 `json:"weather_score,omitempty"`
}

func (r SignalPatchRequest) patch() service.SignalPatch {
	p := service.SignalPatch{
		Temperature:       r.Temperature,
		Humidity:          r.Humidity,
		ComponentAgeScore: r.ComponentAgeScore,
		LoadPercentage:    r.LoadPercentage,
		FaultSignal:       r.FaultSignal,
		RenewableInput:    r.RenewableInput,
		WeatherScore:      r.WeatherScore,
	}
	if r.CurrentTopology != nil {
		t := grid.Topology(*r.CurrentTopology)
		p.CurrentTopology = &t
	}
	return p
}

// RandomizeRequest selects the generator regime. An empty body means nominal.
type RandomizeRequest struct {
	Critical bool `json:"critical" example:"true"`
}

// @Summary      Current signals
// @Tags         signals
// @Produce      json
// @Success      200  {object}  grid.SensorSnapshot
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/signals [get]
// @Security     BearerAuth
func (h *Handler) getSignals(c *gin.Context) {
	s, err := h.services.Signals.Current(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errLoadSignals, "signals_load_failed", err)
		return
	}
	c.JSON(http.StatusOK, s)
}

// @Summary      Override signals
// @Description  Out-of-range values are rejected with 400 and nothing is stored.
// @Tags         signals
// @Accept       json
// @Produce      json
// @Param        body  body      SignalPatchRequest  true  "Fields to override"
// @Success      200   {object}  grid.SensorSnapshot
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/signals [patch]
// @Security     BearerAuth
func (h *Handler) overrideSignals(c *gin.Context) {
	var req SignalPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	s, err := h.services.Signals.Override(c.Request.Context(), req.patch())
	if err != nil {
		h.respondServiceError(c, err, errOverrideSignals, "signals_override_failed", "user_id", c.GetInt(userCtxKey))
		return
	}
	c.JSON(http.StatusOK, s)
}

// @Summary      Randomize signals
// @Tags         signals
// @Accept       json
// @Produce      json
// @Param        body  body      RandomizeRequest  false  "Regime"
// @Success      200   {object}  grid.SensorSnapshot
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/signals/random [post]
// @Security     BearerAuth
func (h *Handler) randomizeSignals(c *gin.Context) {
	var req RandomizeRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	s, err := h.services.Signals.Randomize(c.Request.Context(), req.Critical)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errRandomizeSignals, "signals_randomize_failed", err)
		return
	}
	c.JSON(http.StatusOK, s)
}
