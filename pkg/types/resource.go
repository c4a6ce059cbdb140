package types

const DefaultActionText = "View Resource"

// Known resource types. The set is open: any non-empty string is accepted.
const (
	ResourceTypeGuide       = "Guide"
	ResourceTypeTemplate    = "Template"
	ResourceTypeWorkshop    = "Workshop"
	ResourceTypeVideo       = "Video"
	ResourceTypeArticle     = "Article"
	ResourceTypeTool        = "Tool"
	ResourceTypeTraining    = "Training"
	ResourceTypePolicy      = "Policy"
	ResourceTypeInformation = "Information"
)

type Resource struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	URL          string   `json:"url"`
	Icon         string   `json:"icon"`
	Roles        []string `json:"roles"`
	Needs        []string `json:"needs"`
	Tags         []string `json:"tags"`
	Featured     bool     `json:"featured"`
	UpdatedAt    string   `json:"updatedAt"`
	ResourceType string   `json:"resourceType"`
	ActionText   string   `json:"actionText"`
}

// ResourcePatch carries a partial update. Nil fields are left untouched.
type ResourcePatch struct {
	Title        *string   `json:"title"`
	Description  *string   `json:"description"`
	URL          *string   `json:"url"`
	Icon         *string   `json:"icon"`
	Roles        *[]string `json:"roles"`
	Needs        *[]string `json:"needs"`
	Tags         *[]string `json:"tags"`
	Featured     *bool     `json:"featured"`
	UpdatedAt    *string   `json:"updatedAt"`
	ResourceType *string   `json:"resourceType"`
	ActionText   *string   `json:"actionText"`
}
