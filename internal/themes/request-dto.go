package themes

type CreateThemeRequest struct {
	Name string `json:"name" binding:"required,min=1,max=255"`
}

type UpdateThemeRequest struct {
	Name string `json:"name" binding:"required,min=1,max=255"`
}
