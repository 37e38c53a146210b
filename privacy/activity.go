package privacy

import (
	"fmt"
	"strings"
)

// Activity defines server actions which can be controlled directly by the
// publisher or via privacy policies.
type Activity int

const (
	ActivitySyncUser Activity = iota + 1
	ActivityFetchBids
	ActivityEnrichUserFPD
	ActivityReportAnalytics
	ActivityTransmitUserFPD
	ActivityTransmitPreciseGeo
	ActivityTransmitUniqueRequestIDs
	ActivityTransmitTIDs
)

func Activities() []Activity {
	return []Activity{
		ActivitySyncUser,
		ActivityFetchBids,
		ActivityEnrichUserFPD,
		ActivityReportAnalytics,
		ActivityTransmitUserFPD,
		ActivityTransmitPreciseGeo,
		ActivityTransmitUniqueRequestIDs,
		ActivityTransmitTIDs,
	}
}

func (a Activity) String() string {
	switch a {
	case ActivitySyncUser:
		return "syncUser"
	case ActivityFetchBids:
		return "fetchBids"
	case ActivityEnrichUserFPD:
		return "enrichUfpd"
	case ActivityReportAnalytics:
		return "reportAnalytics"
	case ActivityTransmitUserFPD:
		return "transmitUfpd"
	case ActivityTransmitPreciseGeo:
		return "transmitPreciseGeo"
	case ActivityTransmitUniqueRequestIDs:
		return "transmitUniqueRequestIds"
	case ActivityTransmitTIDs:
		return "transmitTid"
	}

	return ""
}

// ParseActivity resolves the configuration string form of an activity.
func ParseActivity(v string) (Activity, error) {
	for _, activity := range Activities() {
		if strings.EqualFold(v, activity.String()) {
			return activity, nil
		}
	}

	return 0, fmt.Errorf("unable to parse activity: %s", v)
}
