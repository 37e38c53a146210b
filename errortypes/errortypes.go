package errortypes

// AccountConfig should be used when an account supplied configuration which
// cannot be applied, such as a malformed privacy expression. These errors are
// actionable for the account operator, not the host, and are reported through
// the metrics alert channel by the code that detects them.
type AccountConfig struct {
	Message string
}

func (err *AccountConfig) Error() string {
	return err.Message
}

func (err *AccountConfig) Code() int {
	return AccountConfigErrorCode
}

func (err *AccountConfig) Severity() Severity {
	return SeverityFatal
}

// InternalError should be used to flag a bug in the caller's wiring, such as a
// rule configuration routed to a creator of a different kind. It is never
// caused by request or account data.
type InternalError struct {
	Message string
}

func (err *InternalError) Error() string {
	return err.Message
}

func (err *InternalError) Code() int {
	return InternalErrorCode
}

func (err *InternalError) Severity() Severity {
	return SeverityFatal
}

// Warning should be used for non-fatal errors which should be returned with
// the response but do not stop processing.
type Warning struct {
	Message     string
	WarningCode int
}

func (err *Warning) Error() string {
	return err.Message
}

func (err *Warning) Code() int {
	return err.WarningCode
}

func (err *Warning) Severity() Severity {
	return SeverityWarning
}
