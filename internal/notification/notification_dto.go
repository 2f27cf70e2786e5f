package notification

type NotificationResponse struct {
	ID        string  `json:"id"`
	Type      string  `json:"type"`
	Title     string  `json:"title"`
	Message   string  `json:"message"`
	LeaveID   *string `json:"leave_id,omitempty"`
	Read      bool    `json:"read"`
	ReadAt    *string `json:"read_at,omitempty"`
	CreatedAt string  `json:"created_at"`
}

type MarkAllReadResponse struct {
	Updated int64 `json:"updated"`
}
