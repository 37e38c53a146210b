package privacy

import (
	"strings"
)

func resultFromAllow(allow bool) ActivityResult {
	if allow {
		return ActivityAllow
	}
	return ActivityDeny
}

// ComponentRule returns its configured result when the targeted component
// matches the configured type and name clauses, abstaining otherwise.
type ComponentRule struct {
	result        ActivityResult
	componentName []Component
	componentType []string
}

func NewComponentRule(allow bool, componentNames []Component, componentTypes []string) ComponentRule {
	return ComponentRule{
		result:        resultFromAllow(allow),
		componentName: componentNames,
		componentType: componentTypes,
	}
}

func (r ComponentRule) Evaluate(payload ActivityCallPayload) ActivityResult {
	if matched := evaluateComponentName(payload.Component, r.componentName); !matched {
		return ActivityAbstain
	}

	if matched := evaluateComponentType(payload.Component, r.componentType); !matched {
		return ActivityAbstain
	}

	return r.result
}

func evaluateComponentName(target Component, componentNames []Component) bool {
	// no clauses are considered a match
	if len(componentNames) == 0 {
		return true
	}

	// if there are clauses, at least one needs to match
	for _, n := range componentNames {
		if n.Matches(target) {
			return true
		}
	}

	return false
}

func evaluateComponentType(target Component, componentTypes []string) bool {
	// no clauses are considered a match
	if len(componentTypes) == 0 {
		return true
	}

	// if there are clauses, at least one needs to match
	for _, s := range componentTypes {
		if strings.EqualFold(s, target.Type) {
			return true
		}
	}

	return false
}

// geoCode is a parsed "COUNTRY" or "COUNTRY.REGION" geography filter.
type geoCode struct {
	country string
	region  string
}

// parseGeoCodes splits each entry on the first dot. A trailing empty region is
// treated as country-only and blank entries are dropped.
func parseGeoCodes(geos []string) []geoCode {
	var codes []geoCode

	for _, geo := range geos {
		if geo == "" {
			continue
		}

		split := strings.SplitN(geo, ".", 2)
		code := geoCode{country: split[0]}
		if len(split) == 2 {
			code.region = split[1]
		}
		if code.country == "" {
			continue
		}

		codes = append(codes, code)
	}

	return codes
}

func (g geoCode) matches(country, region string) bool {
	if !strings.EqualFold(g.country, country) {
		return false
	}

	return g.region == "" || strings.EqualFold(g.region, region)
}

// GeoRule returns its configured result when the call's geography matches,
// abstaining otherwise. A section-id filter on the condition is resolved
// against the request's consent scope at build time; a mismatch makes the rule
// abstain regardless of geography.
type GeoRule struct {
	result      ActivityResult
	sidsMatched bool
	geoCodes    []geoCode
}

func NewGeoRule(allow bool, sidsMatched bool, geos []string) GeoRule {
	return GeoRule{
		result:      resultFromAllow(allow),
		sidsMatched: sidsMatched,
		geoCodes:    parseGeoCodes(geos),
	}
}

func (r GeoRule) Evaluate(payload ActivityCallPayload) ActivityResult {
	if !r.sidsMatched {
		return ActivityAbstain
	}

	// no clauses are considered a match
	if len(r.geoCodes) == 0 {
		return r.result
	}

	for _, code := range r.geoCodes {
		if code.matches(payload.Country, payload.Region) {
			return r.result
		}
	}

	return ActivityAbstain
}

// GpcRule compares the configured expected Global Privacy Control value
// against the call's flag. A call without the flag never matches.
type GpcRule struct {
	result ActivityResult
	gpc    bool
}

func NewGpcRule(allow bool, gpc bool) GpcRule {
	return GpcRule{
		result: resultFromAllow(allow),
		gpc:    gpc,
	}
}

func (r GpcRule) Evaluate(payload ActivityCallPayload) ActivityResult {
	if payload.Gpc != nil && *payload.Gpc == r.gpc {
		return r.result
	}

	return ActivityAbstain
}

// GppSidRule matches purely on the section-id intersection resolved at build
// time.
type GppSidRule struct {
	result      ActivityResult
	sidsMatched bool
}

func NewGppSidRule(allow bool, sidsMatched bool) GppSidRule {
	return GppSidRule{
		result:      resultFromAllow(allow),
		sidsMatched: sidsMatched,
	}
}

func (r GppSidRule) Evaluate(payload ActivityCallPayload) ActivityResult {
	if r.sidsMatched {
		return r.result
	}

	return ActivityAbstain
}
