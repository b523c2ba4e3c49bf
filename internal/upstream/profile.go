package upstream

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/nfrund/userdash/internal/domain"
)

type rawUser struct {
	ID       *int64      `json:"id" validate:"required"`
	Name     string      `json:"name"`
	Username string      `json:"username"`
	Email    string      `json:"email"`
	Phone    string      `json:"phone"`
	Website  string      `json:"website"`
	Address  *rawAddress `json:"address" validate:"required"`
	Company  *rawCompany `json:"company" validate:"required"`
}

type rawAddress struct {
	Street  string `json:"street"`
	Suite   string `json:"suite"`
	City    string `json:"city"`
	Zipcode string `json:"zipcode"`
}

type rawCompany struct {
	Name        string `json:"name"`
	CatchPhrase string `json:"catchPhrase"`
	BS          string `json:"bs"`
}

// FetchUserProfile fetches GET /users/{id} and maps it into a UserProfile.
// The avatar is always the placeholder reference.
func (c *Client) FetchUserProfile(ctx context.Context, id string) (*domain.UserProfile, error) {
	endpoint := c.baseURL + "/users/" + url.PathEscape(id)

	var raw rawUser
	if err := c.getJSON(ctx, domain.ResourceProfile, endpoint, &raw); err != nil {
		return nil, err
	}
	if err := c.validate.Struct(raw); err != nil {
		return nil, fmt.Errorf("%w: profile: %v", domain.ErrMalformedResponse, err)
	}
	return mapProfile(raw), nil
}

func mapProfile(raw rawUser) *domain.UserProfile {
	return &domain.UserProfile{
		ID:       strconv.FormatInt(*raw.ID, 10),
		Name:     raw.Name,
		Username: raw.Username,
		Email:    raw.Email,
		Phone:    raw.Phone,
		Website:  raw.Website,
		Avatar:   domain.AvatarPlaceholder,
		Address: domain.Address{
			Street:  raw.Address.Street,
			Suite:   raw.Address.Suite,
			City:    raw.Address.City,
			Zipcode: raw.Address.Zipcode,
		},
		Company: domain.Company{
			Name:        raw.Company.Name,
			CatchPhrase: raw.Company.CatchPhrase,
			BS:          raw.Company.BS,
		},
	}
}
