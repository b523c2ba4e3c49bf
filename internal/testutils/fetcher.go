package testutils

import (
	"context"
	"sync/atomic"

	"github.com/nfrund/userdash/internal/domain"
)

// LeanneProfile returns the profile JSONPlaceholder serves for user 1.
func LeanneProfile() *domain.UserProfile {
	return &domain.UserProfile{
		ID:       "1",
		Name:     "Leanne Graham",
		Username: "Bret",
		Email:    "Sincere@april.biz",
		Phone:    "1-770-736-8031 x56442",
		Website:  "hildegard.org",
		Avatar:   domain.AvatarPlaceholder,
		Address: domain.Address{
			Street:  "Kulas Light",
			Suite:   "Apt. 556",
			City:    "Gwenborough",
			Zipcode: "92998-3874",
		},
		Company: domain.Company{
			Name:        "Romaguera-Crona",
			CatchPhrase: "Multi-layered client-server neural-net",
			BS:          "harness real-time e-markets",
		},
	}
}

// SampleActivities returns two activities in upstream order.
func SampleActivities() []domain.UserActivity {
	return []domain.UserActivity{
		{ID: 1, Title: "first post", Content: "hello"},
		{ID: 2, Title: "second post", Content: "world"},
	}
}

// StubFetcher answers every subject with the same canned results.
type StubFetcher struct {
	Profile       *domain.UserProfile
	Activities    []domain.UserActivity
	ProfileErr    error
	ActivitiesErr error

	profileCalls    atomic.Int32
	activitiesCalls atomic.Int32
}

// NewStubFetcher returns a fetcher that succeeds with the Leanne fixtures.
func NewStubFetcher() *StubFetcher {
	return &StubFetcher{
		Profile:    LeanneProfile(),
		Activities: SampleActivities(),
	}
}

func (f *StubFetcher) FetchUserProfile(ctx context.Context, id string) (*domain.UserProfile, error) {
	f.profileCalls.Add(1)
	if f.ProfileErr != nil {
		return nil, f.ProfileErr
	}
	p := *f.Profile
	return &p, nil
}

func (f *StubFetcher) FetchUserActivities(ctx context.Context, id string) ([]domain.UserActivity, error) {
	f.activitiesCalls.Add(1)
	if f.ActivitiesErr != nil {
		return nil, f.ActivitiesErr
	}
	out := make([]domain.UserActivity, len(f.Activities))
	copy(out, f.Activities)
	return out, nil
}

// ProfileCalls reports how many profile fetches were issued.
func (f *StubFetcher) ProfileCalls() int { return int(f.profileCalls.Load()) }

// ActivitiesCalls reports how many activity fetches were issued.
func (f *StubFetcher) ActivitiesCalls() int { return int(f.activitiesCalls.Load()) }
