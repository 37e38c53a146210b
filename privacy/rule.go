package privacy

// Rule is a single activity gating decision. Rules are immutable once built
// and hold no per-call state, so a built rule tree is safe to share across
// goroutines.
type Rule interface {
	Evaluate(payload ActivityCallPayload) ActivityResult
}

// AndRule combines child rules with most-restrictive-wins semantics: any deny
// wins, otherwise any allow wins, otherwise the combination abstains. An empty
// AndRule abstains.
type AndRule struct {
	rules []Rule
}

func NewAndRule(rules ...Rule) AndRule {
	return AndRule{rules: rules}
}

func (r AndRule) Evaluate(payload ActivityCallPayload) ActivityResult {
	result := ActivityAbstain

	for _, rule := range r.rules {
		switch rule.Evaluate(payload) {
		case ActivityDeny:
			// deny cannot be overridden by a later allow
			return ActivityDeny
		case ActivityAllow:
			result = ActivityAllow
		}
	}

	return result
}
