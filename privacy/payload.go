package privacy

// ActivityCallPayload carries the per-call facts rules evaluate against: the
// targeted component plus optional geo and Global Privacy Control signals.
// It is created once per auction call and is read-only to the engine.
type ActivityCallPayload struct {
	Component Component
	Country   string
	Region    string
	Gpc       *bool
}
