package metrics

// AlertCategory identifies the operator alert channel a config failure is
// reported on.
type AlertCategory string

const (
	AlertGeneral AlertCategory = "general"
)

func AlertCategories() []AlertCategory {
	return []AlertCategory{
		AlertGeneral,
	}
}

// MetricsEngine is a generic interface to record privacy engine metrics into
// the desired backend.
type MetricsEngine interface {
	RecordAlert(category AlertCategory)
	RecordAccountConfigError(account string)
}
