package types

type Need struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	// Role ids this need applies to. Older rows may hold role names instead.
	Roles     []string `json:"roles"`
	CreatedAt string   `json:"createdAt,omitempty"`
	UpdatedAt string   `json:"updatedAt,omitempty"`
}

type NeedPatch struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	Icon        *string   `json:"icon"`
	Roles       *[]string `json:"roles"`
	UpdatedAt   *string   `json:"updatedAt"`
}
