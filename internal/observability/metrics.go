package observability

import "github.com/prometheus/client_golang/prometheus"

// PortalMetrics exposes counters for prospect-facing onboarding flows.
// A nil *PortalMetrics records nothing.
type PortalMetrics struct {
	onboardingSaves   *prometheus.CounterVec
	uploads           *prometheus.CounterVec
	consentDownloads  *prometheus.CounterVec
	wizardTransitions *prometheus.CounterVec
}

func NewPortalMetrics(reg prometheus.Registerer) *PortalMetrics {
	m := &PortalMetrics{
		onboardingSaves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "itp",
			Subsystem: "onboarding",
			Name:      "saves_total",
			Help:      "Onboarding saves by channel and outcome",
		}, []string{"channel", "submit", "status"}),
		uploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "itp",
			Subsystem: "onboarding",
			Name:      "document_uploads_total",
			Help:      "Document uploads by type and outcome",
		}, []string{"document_type", "status"}),
		consentDownloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "itp",
			Subsystem: "onboarding",
			Name:      "consent_downloads_total",
			Help:      "Generated consent template downloads",
		}, []string{"template", "status"}),
		wizardTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "itp",
			Subsystem: "wizard",
			Name:      "transitions_total",
			Help:      "Wizard form actions by outcome",
		}, []string{"action", "status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.onboardingSaves, m.uploads, m.consentDownloads, m.wizardTransitions)
	return m
}

func (m *PortalMetrics) ObserveSave(channel string, submit bool, err error) {
	if m == nil {
		return
	}
	m.onboardingSaves.WithLabelValues(channel, boolLabel(submit), statusLabel(err)).Inc()
}

func (m *PortalMetrics) ObserveUpload(documentType string, err error) {
	if m == nil {
		return
	}
	m.uploads.WithLabelValues(documentType, statusLabel(err)).Inc()
}

func (m *PortalMetrics) ObserveConsentDownload(template string, err error) {
	if m == nil {
		return
	}
	m.consentDownloads.WithLabelValues(template, statusLabel(err)).Inc()
}

func (m *PortalMetrics) ObserveWizardTransition(action string, err error) {
	if m == nil {
		return
	}
	m.wizardTransitions.WithLabelValues(action, statusLabel(err)).Inc()
}

func statusLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func boolLabel(v bool) string {
	if v {
		return "true"
	}
	return "false"
}
