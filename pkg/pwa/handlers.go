package pwa

import (
	"net/http"

	"github.com/shashiranjanraj/storefront/pkg/bind"
	"github.com/shashiranjanraj/storefront/pkg/logger"
	"github.com/shashiranjanraj/storefront/pkg/metrics"
	"github.com/shashiranjanraj/storefront/pkg/response"
)

// Event is the body the registration script posts to EventsPath.
type Event struct {
	WorkerState   string `json:"workerState"   validate:"required,in=installing|installed|activating|activated|redundant"`
	HadController bool   `json:"hadController"`
	Version       string `json:"version"       validate:"max=64"`
}

// HandleEvent records a worker lifecycle report. Installed workers are
// classified and counted; every other lifecycle state is acknowledged and
// ignored.
func (a *Assets) HandleEvent(w http.ResponseWriter, r *http.Request) {
	var evt Event
	errs, err := bind.JSON(w, r, &evt)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	state, ok := Classify(evt.WorkerState, evt.HadController)
	if !ok {
		response.Accepted(w, "ignored")
		return
	}

	metrics.PWAEvents.WithLabelValues(string(state)).Inc()
	logger.WithCtx(r.Context()).Info("pwa: worker installed",
		"state", state,
		"client_version", evt.Version,
		"current_version", a.version,
	)
	if a.OnInstalled != nil {
		a.OnInstalled(r.Context(), state, evt.Version)
	}
	response.Success(w, map[string]interface{}{
		"state":   state,
		"current": evt.Version == "" || evt.Version == a.version,
	})
}

// HandleVersion reports the asset cache currently served.
func (a *Assets) HandleVersion(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, map[string]string{
		"version":   a.version,
		"cacheName": a.cacheName,
	})
}
