package dashboard

import (
	"fmt"

	"github.com/nfrund/userdash/internal/domain"
)

// Phase is the discriminant renderers switch on.
type Phase int

const (
	// PhaseResetting is published once per subject change, with every slot absent.
	PhaseResetting Phase = iota
	// PhaseLoading means both fetches are in flight.
	PhaseLoading
	// PhasePartiallyLoaded means exactly one slot is present.
	PhasePartiallyLoaded
	// PhaseLoaded means both slots are present.
	PhaseLoaded
	// PhaseFailed means a fetch failed. It overrides whatever the slots hold.
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseResetting:
		return "resetting"
	case PhaseLoading:
		return "loading"
	case PhasePartiallyLoaded:
		return "partially_loaded"
	case PhaseLoaded:
		return "loaded"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// MarshalText renders the phase by name in JSON payloads.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText parses a phase name produced by MarshalText.
func (p *Phase) UnmarshalText(text []byte) error {
	for candidate := PhaseResetting; candidate <= PhaseFailed; candidate++ {
		if candidate.String() == string(text) {
			*p = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown phase %q", text)
}

// Terminal reports whether no further transition happens without a new subject.
func (p Phase) Terminal() bool {
	return p == PhaseLoaded || p == PhaseFailed
}

// User-visible messages placed in the error slot.
const (
	ProfileErrorMessage    = "Failed to load user profile"
	ActivitiesErrorMessage = "Failed to load user activities"
)

// ViewState is the controller-owned triple (profile, activities, error)
// together with the subject it belongs to.
type ViewState struct {
	Subject    string `json:"subject"`
	Generation uint64 `json:"generation"`
	Phase      Phase  `json:"phase"`

	// Profile is nil while absent.
	Profile *domain.UserProfile `json:"profile,omitempty"`

	// Activities is only meaningful when ActivitiesLoaded is true; a loaded
	// list may be empty.
	Activities       []domain.UserActivity `json:"activities,omitempty"`
	ActivitiesLoaded bool                  `json:"activitiesLoaded"`

	// Error is empty while absent.
	Error string `json:"error,omitempty"`
}

// HasProfile reports whether the profile slot is present.
func (s ViewState) HasProfile() bool { return s.Profile != nil }

// HasActivities reports whether the activities slot is present.
func (s ViewState) HasActivities() bool { return s.ActivitiesLoaded }

// HasError reports whether the error slot is present.
func (s ViewState) HasError() bool { return s.Error != "" }

// clone returns a copy that shares no mutable memory with s.
func (s ViewState) clone() ViewState {
	out := s
	if s.Profile != nil {
		p := *s.Profile
		out.Profile = &p
	}
	if s.Activities != nil {
		out.Activities = make([]domain.UserActivity, len(s.Activities))
		copy(out.Activities, s.Activities)
	}
	return out
}

// reset clears every slot for a new subject.
func (s *ViewState) reset(subject string, generation uint64) {
	*s = ViewState{
		Subject:    subject,
		Generation: generation,
		Phase:      PhaseResetting,
	}
}

func (s *ViewState) setProfile(p *domain.UserProfile) {
	s.Profile = p
	s.settle()
}

func (s *ViewState) setActivities(as []domain.UserActivity) {
	if as == nil {
		as = []domain.UserActivity{}
	}
	s.Activities = as
	s.ActivitiesLoaded = true
	s.settle()
}

// setError records msg; the last failure wins.
func (s *ViewState) setError(msg string) {
	s.Error = msg
	s.Phase = PhaseFailed
}

// settle derives the phase from slot presence. A failed state stays failed
// even if a sibling fetch completes afterwards.
func (s *ViewState) settle() {
	if s.HasError() {
		s.Phase = PhaseFailed
		return
	}
	switch {
	case s.HasProfile() && s.HasActivities():
		s.Phase = PhaseLoaded
	case s.HasProfile() || s.HasActivities():
		s.Phase = PhasePartiallyLoaded
	default:
		s.Phase = PhaseLoading
	}
}
