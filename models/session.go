package models

// AuthState is the position of the session in its lifecycle.
type AuthState int

const (
	// StateRestoring is the initial state, held until the persisted session
	// has been read back from the device store.
	StateRestoring AuthState = iota
	// StateUnauthenticated means no usable token is held.
	StateUnauthenticated
	// StateAuthenticated means both a token and a user profile are held.
	StateAuthenticated
)

// String implements fmt.Stringer.
func (s AuthState) String() string {
	switch s {
	case StateRestoring:
		return "restoring"
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Session is an immutable snapshot of the process-wide authentication state.
// User is non-nil only when Token is non-empty.
type Session struct {
	Token     string
	User      *User
	IsLoading bool
}

// State derives the lifecycle state from the snapshot.
func (s Session) State() AuthState {
	switch {
	case s.IsLoading:
		return StateRestoring
	case s.Token != "" && s.User != nil:
		return StateAuthenticated
	default:
		return StateUnauthenticated
	}
}

// HasToken reports whether the snapshot holds a token. Use State to tell a
// complete session from a token without a user.
func (s Session) HasToken() bool {
	return s.Token != ""
}
