package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "movement_wallet"

// Metrics counts flow outcomes and tracks operations currently awaiting a
// wallet, the custodial API or the network.
type Metrics struct {
	connectProbes  *prometheus.CounterVec
	walletsCreated prometheus.Counter
	signatures     *prometheus.CounterVec
	submissions    *prometheus.CounterVec
	confirmations  *prometheus.CounterVec
	inFlight       *prometheus.GaugeVec
}

// New registers the metrics on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	connectProbesOpts := prometheus.CounterOpts{
		Name:      "connect_probes_total",
		Namespace: namespace,
		Help:      "outcomes of network-hint connect attempts",
	}
	walletsCreatedOpts := prometheus.CounterOpts{
		Name:      "custodial_wallets_created_total",
		Namespace: namespace,
		Help:      "number of custodial wallets created",
	}
	signaturesOpts := prometheus.CounterOpts{
		Name:      "signatures_total",
		Namespace: namespace,
		Help:      "signature requests by signer and result",
	}
	submissionsOpts := prometheus.CounterOpts{
		Name:      "transactions_submitted_total",
		Namespace: namespace,
		Help:      "transfer submissions by signer and result",
	}
	confirmationsOpts := prometheus.CounterOpts{
		Name:      "transaction_confirmations_total",
		Namespace: namespace,
		Help:      "confirmation waits by result",
	}
	inFlightOpts := prometheus.GaugeOpts{
		Name:      "operations_in_flight",
		Namespace: namespace,
		Help:      "operations currently waiting on an external party",
	}

	return &Metrics{
		connectProbes:  factory.NewCounterVec(connectProbesOpts, []string{"outcome"}),
		walletsCreated: factory.NewCounter(walletsCreatedOpts),
		signatures:     factory.NewCounterVec(signaturesOpts, []string{"signer", "result"}),
		submissions:    factory.NewCounterVec(submissionsOpts, []string{"signer", "result"}),
		confirmations:  factory.NewCounterVec(confirmationsOpts, []string{"result"}),
		inFlight:       factory.NewGaugeVec(inFlightOpts, []string{"operation"}),
	}
}

// Noop returns metrics registered on a private registry.
func Noop() *Metrics {
	return New(prometheus.NewRegistry())
}

func (m *Metrics) ConnectProbe(outcome string) {
	m.connectProbes.WithLabelValues(outcome).Inc()
}

func (m *Metrics) WalletCreated() {
	m.walletsCreated.Inc()
}

func (m *Metrics) Signature(signer string, ok bool) {
	m.signatures.WithLabelValues(signer, result(ok)).Inc()
}

func (m *Metrics) Submission(signer string, ok bool) {
	m.submissions.WithLabelValues(signer, result(ok)).Inc()
}

func (m *Metrics) Confirmation(ok bool) {
	if ok {
		m.confirmations.WithLabelValues("confirmed").Inc()
		return
	}
	m.confirmations.WithLabelValues("timeout").Inc()
}

// Track marks operation as in flight and returns the function that clears it.
// Use it as `defer m.Track("transfer")()`.
func (m *Metrics) Track(operation string) func() {
	g := m.inFlight.WithLabelValues(operation)
	g.Inc()
	return g.Dec
}

func result(ok bool) string {
	if ok {
		return "success"
	}
	return "failure"
}
