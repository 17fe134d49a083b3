package session

// Status is the trust state of the session credential
type Status int

const (
	StatusInitializing    Status = iota // credential not read yet
	StatusVerifying                     // stored credential awaiting verification
	StatusAuthenticated                 // credential present and verified
	StatusUnauthenticated               // no usable credential
)

func (s Status) String() string {
	switch s {
	case StatusInitializing:
		return "initializing"
	case StatusVerifying:
		return "verifying"
	case StatusAuthenticated:
		return "authenticated"
	case StatusUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// Loading reports whether the session has not settled yet. The UI shows a
// spinner instead of the login screen or the app while loading.
func (s Status) Loading() bool {
	return s == StatusInitializing || s == StatusVerifying
}
