package metrics

import (
	"fmt"
	"sync"

	gometrics "github.com/rcrowley/go-metrics"
)

// Metrics is the go-metrics backed implementation of MetricsEngine.
type Metrics struct {
	MetricsRegistry          gometrics.Registry
	AlertMeters              map[AlertCategory]gometrics.Meter
	AccountConfigErrorMeter  gometrics.Meter
	accountConfigErrorMeters map[string]gometrics.Meter
	accountMetersRWMutex     sync.RWMutex
}

// NewMetrics initializes the meters eagerly so the registry exposes a stable
// set of metric names from startup.
func NewMetrics(registry gometrics.Registry) *Metrics {
	m := &Metrics{
		MetricsRegistry:          registry,
		AlertMeters:              make(map[AlertCategory]gometrics.Meter, len(AlertCategories())),
		AccountConfigErrorMeter:  gometrics.GetOrRegisterMeter("account.config_errors", registry),
		accountConfigErrorMeters: make(map[string]gometrics.Meter),
	}

	for _, category := range AlertCategories() {
		m.AlertMeters[category] = gometrics.GetOrRegisterMeter(fmt.Sprintf("alerts.%s", category), registry)
	}

	return m
}

func (m *Metrics) RecordAlert(category AlertCategory) {
	if meter, ok := m.AlertMeters[category]; ok {
		meter.Mark(1)
		return
	}
	m.AlertMeters[AlertGeneral].Mark(1)
}

func (m *Metrics) RecordAccountConfigError(account string) {
	m.AccountConfigErrorMeter.Mark(1)

	if account == "" {
		return
	}

	m.accountMetersRWMutex.RLock()
	meter, ok := m.accountConfigErrorMeters[account]
	m.accountMetersRWMutex.RUnlock()

	if !ok {
		m.accountMetersRWMutex.Lock()
		meter, ok = m.accountConfigErrorMeters[account]
		if !ok {
			meter = gometrics.GetOrRegisterMeter(fmt.Sprintf("account.%s.config_errors", account), m.MetricsRegistry)
			m.accountConfigErrorMeters[account] = meter
		}
		m.accountMetersRWMutex.Unlock()
	}

	meter.Mark(1)
}
