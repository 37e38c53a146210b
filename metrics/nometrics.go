package metrics

// NilMetricsEngine implements the MetricsEngine interface with no-op methods,
// used when metrics are disabled or in tests that don't assert on them.
type NilMetricsEngine struct{}

func (me *NilMetricsEngine) RecordAlert(category AlertCategory) {
}

func (me *NilMetricsEngine) RecordAccountConfigError(account string) {
}
