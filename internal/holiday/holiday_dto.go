package holiday

type CreateHolidayRequest struct {
	Date   string `json:"date" binding:"required"`
	Reason string `json:"reason" binding:"required,max=255"`
}

type HolidayResponse struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	Reason    string `json:"reason"`
	CreatedBy string `json:"created_by,omitempty"`
}

type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

type ImportResponse struct {
	Imported int        `json:"imported"`
	Skipped  int        `json:"skipped"`
	Errors   []RowError `json:"errors"`
}
