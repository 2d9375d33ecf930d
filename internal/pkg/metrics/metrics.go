package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Recorder holds the Prometheus collectors for the hold subsystem.
// A single instance is provided through DI and shared by commands.
type Recorder struct {
	HoldsCreated         prometheus.Counter
	HoldConflicts        prometheus.Counter
	HoldsCancelled       prometheus.Counter
	HoldsRenewed         prometheus.Counter
	HoldsExpired         prometheus.Counter
	AllocationRejections prometheus.Counter
	SweepRuns            prometheus.Counter
}

func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		HoldsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "slabstock_holds_created_total",
			Help: "Number of holds successfully created.",
		}),
		HoldConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "slabstock_hold_conflicts_total",
			Help: "Number of hold create attempts rejected because an active hold existed.",
		}),
		HoldsCancelled: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "slabstock_holds_cancelled_total",
			Help: "Number of holds cancelled manually.",
		}),
		HoldsRenewed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "slabstock_holds_renewed_total",
			Help: "Number of hold renewals.",
		}),
		HoldsExpired: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "slabstock_holds_expired_total",
			Help: "Number of holds transitioned to expired by the sweep.",
		}),
		AllocationRejections: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "slabstock_allocation_rejections_total",
			Help: "Number of outbound bindings rejected by the hold guard.",
		}),
		SweepRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "slabstock_sweep_runs_total",
			Help: "Number of expiry sweep executions.",
		}),
	}
	reg.MustRegister(
		r.HoldsCreated,
		r.HoldConflicts,
		r.HoldsCancelled,
		r.HoldsRenewed,
		r.HoldsExpired,
		r.AllocationRejections,
		r.SweepRuns,
	)
	return r
}

// NewNopRecorder returns a Recorder backed by a throwaway registry, for tests.
func NewNopRecorder() *Recorder {
	return NewRecorder(prometheus.NewRegistry())
}
