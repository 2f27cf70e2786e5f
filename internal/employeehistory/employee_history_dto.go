package employeehistory

type RecordChangeRequest struct {
	ChangeType       string `json:"change_type" binding:"required,oneof=promotion transfer"`
	NewDepartmentID  string `json:"new_department_id" binding:"omitempty,uuid"`
	NewDesignationID string `json:"new_designation_id" binding:"omitempty,uuid"`
	EffectiveDate    string `json:"effective_date" binding:"required"`
	ChangeReason     string `json:"change_reason" binding:"omitempty,max=500"`
	Remarks          string `json:"remarks" binding:"omitempty,max=1000"`
}

type HistoryResponse struct {
	ID                 string `json:"id"`
	EmployeeID         string `json:"employee_id"`
	ChangeType         string `json:"change_type"`
	OldDepartmentID    string `json:"old_department_id,omitempty"`
	OldDepartmentName  string `json:"old_department_name,omitempty"`
	NewDepartmentID    string `json:"new_department_id,omitempty"`
	NewDepartmentName  string `json:"new_department_name,omitempty"`
	OldDesignationID   string `json:"old_designation_id,omitempty"`
	OldDesignationName string `json:"old_designation_name,omitempty"`
	NewDesignationID   string `json:"new_designation_id,omitempty"`
	NewDesignationName string `json:"new_designation_name,omitempty"`
	EffectiveDate      string `json:"effective_date"`
	ChangeReason       string `json:"change_reason,omitempty"`
	RecordedBy         string `json:"recorded_by,omitempty"`
	Remarks            string `json:"remarks,omitempty"`
}
