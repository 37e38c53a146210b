package privacy

import (
	"fmt"
	"strings"
)

const (
	ComponentTypeBidder       = "bidder"
	ComponentTypeAnalytics    = "analytics"
	ComponentTypeRealTimeData = "rtd"
	ComponentTypeGeneral      = "general"
)

// Component identifies the entity an activity targets, such as a bidder or an
// analytics adapter.
type Component struct {
	Type string
	Name string
}

// ParseComponent parses the "type.name" configuration form. A bare name
// defaults to the bidder type.
func ParseComponent(v string) (Component, error) {
	split := strings.Split(v, ".")

	switch len(split) {
	case 2:
		return Component{Type: split[0], Name: split[1]}, nil
	case 1:
		return Component{Type: ComponentTypeBidder, Name: split[0]}, nil
	default:
		return Component{}, fmt.Errorf("unable to parse component: %s", v)
	}
}

// Matches is permissive on wildcards: an empty type or name on either side,
// or the "*" name, matches anything.
func (c Component) Matches(target Component) bool {
	return c.matchesType(target.Type) && c.matchesName(target.Name)
}

func (c Component) matchesType(t string) bool {
	return c.Type == "" || t == "" || strings.EqualFold(c.Type, t)
}

func (c Component) matchesName(n string) bool {
	return c.Name == "" || c.Name == "*" || strings.EqualFold(c.Name, n)
}
