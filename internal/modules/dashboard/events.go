package dashboard

import (
	dash "github.com/nfrund/userdash/internal/dashboard"
	"github.com/nfrund/userdash/internal/pubsub"
)

// StateChanged announces that a page instance's view state moved.
type StateChanged struct {
	PageID     string     `json:"pageId"`
	Subject    string     `json:"subject"`
	Generation uint64     `json:"generation"`
	Phase      dash.Phase `json:"phase"`
}

// StateTopic is the pub/sub topic for one page instance.
func StateTopic(pageID string) string {
	return "dashboard." + pageID + ".state"
}

// StateChangedEvent returns the typed event for one page instance.
func StateChangedEvent(pageID string) pubsub.Event[StateChanged] {
	return pubsub.NewEvent[StateChanged](StateTopic(pageID))
}
