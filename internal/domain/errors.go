package domain

import (
	"errors"
	"fmt"
)

// Resource names used in FetchFailure.
const (
	ResourceProfile    = "profile"
	ResourceActivities = "activities"
)

// Sentinel errors for the data access layer.
var (
	ErrMalformedResponse = errors.New("malformed upstream response")
	ErrDuplicateActivity = errors.New("duplicate activity id in upstream response")
)

// FetchFailure is returned when the upstream source answers with a
// non-success HTTP status.
type FetchFailure struct {
	Resource   string
	StatusCode int
}

func (e *FetchFailure) Error() string {
	return fmt.Sprintf("failed to fetch user %s: upstream status %d", e.Resource, e.StatusCode)
}

// IsNotFound reports whether err is a FetchFailure caused by a 404.
func IsNotFound(err error) bool {
	var ff *FetchFailure
	return errors.As(err, &ff) && ff.StatusCode == 404
}
