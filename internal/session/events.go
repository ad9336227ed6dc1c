package session

import "github.com/MKhiriev/go-clinic-client/models"

// Reason says which transition produced an Event.
type Reason string

const (
	ReasonRestored       Reason = "restored"
	ReasonLogin          Reason = "login"
	ReasonLogout         Reason = "logout"
	ReasonUnauthorized   Reason = "unauthorized"
	ReasonProfileUpdated Reason = "profile_updated"
)

// Event is delivered to subscribers after the session changed. Session is
// the snapshot right after the change.
type Event struct {
	Session models.Session
	State   models.AuthState
	Reason  Reason
}

func newEvent(s models.Session, reason Reason) Event {
	return Event{Session: s, State: s.State(), Reason: reason}
}
