package privacy

// ActivityResult is the tri-state outcome of evaluating a single rule.
// ActivityAbstain means the rule has no opinion and defers to the rest of the
// plan, ultimately to the configured default.
type ActivityResult int

const (
	ActivityAbstain ActivityResult = iota
	ActivityAllow
	ActivityDeny
)

func (r ActivityResult) String() string {
	switch r {
	case ActivityAllow:
		return "allow"
	case ActivityDeny:
		return "deny"
	}

	return "abstain"
}
