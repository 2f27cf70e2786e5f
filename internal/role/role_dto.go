package role

type CreateRoleRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"max=1000"`
}

type RoleResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	// Workflow is the leave-workflow role the name resolves to.
	Workflow  string `json:"workflow_role"`
	CreatedAt string `json:"created_at,omitempty"`
}
