package domain

// AvatarPlaceholder is the image reference used for every profile. The
// upstream source has no avatar field.
const AvatarPlaceholder = "/placeholder.svg?height=100&width=100"

// UserProfile is the view model for one person's public profile.
type UserProfile struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Phone    string  `json:"phone"`
	Website  string  `json:"website"`
	Avatar   string  `json:"avatar"`
	Address  Address `json:"address"`
	Company  Company `json:"company"`
}

// Address is the postal address attached to a profile.
type Address struct {
	Street  string `json:"street"`
	Suite   string `json:"suite"`
	City    string `json:"city"`
	Zipcode string `json:"zipcode"`
}

// Company describes the profile owner's employer.
type Company struct {
	Name        string `json:"name"`
	CatchPhrase string `json:"catchPhrase"`
	BS          string `json:"bs"`
}

// UserActivity is one post belonging to a user.
type UserActivity struct {
	ID      int    `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}
