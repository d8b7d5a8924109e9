// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/cpmech/gorheo/mdl/rheology"
	"github.com/cpmech/gosl/chk"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Monitor holds metrics of a run on a private registry
//  Note: Step and Reload accept a nil receiver and then do nothing
type Monitor struct {
	Registry *prometheus.Registry

	recomputes *prometheus.CounterVec   // number of evaluations
	duration   *prometheus.HistogramVec // wall time of each evaluation
	simTime    *prometheus.GaugeVec     // simulation time of last evaluation
	nuMin      *prometheus.GaugeVec     // minimum viscosity over cells
	nuMax      *prometheus.GaugeVec     // maximum viscosity over cells
	active     *prometheus.GaugeVec     // number of cells with active diagnostics
	reloads    *prometheus.CounterVec   // reconfigurations by status
}

// NewMonitor allocates all collectors
func NewMonitor() (o *Monitor) {
	o = &Monitor{Registry: prometheus.NewRegistry()}
	f := promauto.With(o.Registry)
	o.recomputes = f.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gorheo",
		Subsystem: "model",
		Name:      "recomputes_total",
		Help:      "Total number of viscosity evaluations",
	}, []string{"model", "field"})
	o.duration = f.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "gorheo",
		Subsystem: "model",
		Name:      "recompute_seconds",
		Help:      "Wall time of viscosity evaluations in seconds",
		Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 12),
	}, []string{"model", "field"})
	o.simTime = f.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "gorheo",
		Subsystem: "model",
		Name:      "time",
		Help:      "Simulation time of the last evaluation",
	}, []string{"model", "field"})
	o.nuMin = f.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "gorheo",
		Subsystem: "field",
		Name:      "viscosity_min",
		Help:      "Minimum kinematic viscosity over cells [m²/s]",
	}, []string{"model", "field"})
	o.nuMax = f.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "gorheo",
		Subsystem: "field",
		Name:      "viscosity_max",
		Help:      "Maximum kinematic viscosity over cells [m²/s]",
	}, []string{"model", "field"})
	o.active = f.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "gorheo",
		Subsystem: "field",
		Name:      "active_cells",
		Help:      "Number of cells with phase above the diagnostic threshold",
	}, []string{"model", "field"})
	o.reloads = f.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gorheo",
		Subsystem: "model",
		Name:      "reconfigurations_total",
		Help:      "Total number of reconfigurations by status",
	}, []string{"model", "status"})
	return
}

// Step records one evaluation of a model at time t taking elapsed wall time
func (o *Monitor) Step(mdl rheology.Model, t float64, elapsed time.Duration) {
	if o == nil {
		return
	}
	lbl := prometheus.Labels{"model": mdl.Type(), "field": mdl.Name()}
	o.recomputes.With(lbl).Inc()
	o.duration.With(lbl).Observe(elapsed.Seconds())
	o.simTime.With(lbl).Set(t)
	nu := mdl.Viscosity()
	o.nuMin.With(lbl).Set(nu.Min())
	o.nuMax.With(lbl).Set(nu.Max())
	if d, ok := mdl.(rheology.Diagnosed); ok {
		o.active.With(lbl).Set(d.ActiveCells())
	}
}

// Reload records a reconfiguration attempt
func (o *Monitor) Reload(mdl rheology.Model, ok bool) {
	if o == nil {
		return
	}
	status := "success"
	if !ok {
		status = "error"
	}
	o.reloads.WithLabelValues(mdl.Type(), status).Inc()
}

// Handler returns the HTTP handler exposing all metrics
func (o *Monitor) Handler() http.Handler {
	return promhttp.HandlerFor(o.Registry, promhttp.HandlerOpts{})
}

// Serve exposes metrics at addr/metrics until ctx is cancelled
func (o *Monitor) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", o.Handler())
	server := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		server.Shutdown(shutdown)
	}()
	err := server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return chk.Err("cannot serve metrics at %q: %v", addr, err)
	}
	return nil
}
