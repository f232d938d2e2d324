package core

// MetricsRecorder counts business events. Implementations must be safe for
// concurrent use.
type MetricsRecorder interface {
	// OrderPlaced counts a checkout attempt by outcome
	OrderPlaced(outcome string)
	// DepositRecorded counts a credited deposit
	DepositRecorded()
	// CommissionPaid counts a paid referral commission
	CommissionPaid()
	// ProviderFailure counts a failed upstream call by action
	ProviderFailure(action string)
	// SetDispatchQueueDepth reports the dispatch backlog size
	SetDispatchQueueDepth(depth int)
}

// NoopMetrics discards all events. Used in tests and as the fallback when
// no recorder is configured.
type NoopMetrics struct{}

func (NoopMetrics) OrderPlaced(string)        {}
func (NoopMetrics) DepositRecorded()          {}
func (NoopMetrics) CommissionPaid()           {}
func (NoopMetrics) ProviderFailure(string)    {}
func (NoopMetrics) SetDispatchQueueDepth(int) {}
