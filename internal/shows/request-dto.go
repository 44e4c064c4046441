package shows

type CreateShowRequest struct {
	Title       string   `json:"title" binding:"required,min=1,max=255"`
	Description string   `json:"description"`
	ThemeIDs    []string `json:"theme_ids"`
}

type UpdateShowRequest struct {
	Title       *string  `json:"title" binding:"omitempty,min=1,max=255"`
	Description *string  `json:"description"`
	ThemeIDs    []string `json:"theme_ids"`
}

// ShowFilters narrows the catalog listing. Title matches a substring,
// ThemeIDs is a comma separated list of theme UUIDs.
type ShowFilters struct {
	Title    string `form:"title"`
	ThemeIDs string `form:"themes"`
}
