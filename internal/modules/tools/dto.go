package tools

type CreateToolRequest struct {
	Name        string `json:"name" validate:"required" binding:"required"`
	Code        string `json:"code" validate:"required" binding:"required"`
	Description string `json:"description"`
	Category    string `json:"category" validate:"required" binding:"required"`
	Location    string `json:"location" validate:"required" binding:"required"`
	Status      string `json:"status"`
	ImageURL    string `json:"image_url"`
}

type UpdateToolRequest struct {
	Name        *string `json:"name"`
	Code        *string `json:"code"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Location    *string `json:"location"`
	Status      *string `json:"status"`
	ImageURL    *string `json:"image_url"`
}
