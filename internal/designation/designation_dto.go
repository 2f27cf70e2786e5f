package designation

type CreateDesignationRequest struct {
	Name  string `json:"name" binding:"required,max=255"`
	Level int    `json:"level" binding:"omitempty,min=1,max=20"`
}

type UpdateDesignationRequest struct {
	Name  string `json:"name" binding:"required,max=255"`
	Level int    `json:"level" binding:"omitempty,min=1,max=20"`
}

type DesignationResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Level     int    `json:"level"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}
