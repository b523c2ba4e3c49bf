package upstream

import (
	"context"
	"fmt"

	"github.com/google/go-querystring/query"

	"github.com/nfrund/userdash/internal/domain"
)

type postsQuery struct {
	UserID string `url:"userId"`
}

type rawPost struct {
	ID    *int   `json:"id" validate:"required"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// FetchUserActivities fetches GET /posts?userId={id} and maps every post
// into a UserActivity, preserving upstream order. An empty array yields an
// empty, non-nil slice.
func (c *Client) FetchUserActivities(ctx context.Context, id string) ([]domain.UserActivity, error) {
	values, err := query.Values(postsQuery{UserID: id})
	if err != nil {
		return nil, fmt.Errorf("encoding activities query: %w", err)
	}
	endpoint := c.baseURL + "/posts?" + values.Encode()

	var raw []rawPost
	if err := c.getJSON(ctx, domain.ResourceActivities, endpoint, &raw); err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: activities: expected an array", domain.ErrMalformedResponse)
	}
	return c.mapActivities(raw)
}

func (c *Client) mapActivities(raw []rawPost) ([]domain.UserActivity, error) {
	activities := make([]domain.UserActivity, 0, len(raw))
	seen := make(map[int]struct{}, len(raw))
	for i, post := range raw {
		if err := c.validate.Struct(post); err != nil {
			return nil, fmt.Errorf("%w: activities[%d]: %v", domain.ErrMalformedResponse, i, err)
		}
		if _, dup := seen[*post.ID]; dup {
			return nil, fmt.Errorf("%w: %d", domain.ErrDuplicateActivity, *post.ID)
		}
		seen[*post.ID] = struct{}{}

		activities = append(activities, domain.UserActivity{
			ID:      *post.ID,
			Title:   post.Title,
			Content: post.Body,
		})
	}
	return activities, nil
}
