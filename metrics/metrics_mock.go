package metrics

import (
	"github.com/stretchr/testify/mock"
)

// MetricsEngineMock is mock for the MetricsEngine interface
type MetricsEngineMock struct {
	mock.Mock
}

// RecordAlert mock
func (me *MetricsEngineMock) RecordAlert(category AlertCategory) {
	me.Called(category)
}

// RecordAccountConfigError mock
func (me *MetricsEngineMock) RecordAccountConfigError(account string) {
	me.Called(account)
}
