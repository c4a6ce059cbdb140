package types

type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Password  string `json:"-"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// Identity is the authenticated principal attached to a session.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}
