package leave_test

import (
	"testing"
	"time"

	"github.com/Thomas-Sunil/newhrms/internal/domain"
	"github.com/Thomas-Sunil/newhrms/internal/leave"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNextStatus(t *testing.T) {
	tests := []struct {
		name    string
		current leave.Status
		role    domain.Role
		action  leave.Action
		want    leave.Status
		wantErr error
	}{
		{"dept head approves pending", leave.StatusPending, domain.RoleDepartmentHead, leave.ActionApprove, leave.StatusDeptApproved, nil},
		{"dept head rejects pending", leave.StatusPending, domain.RoleDepartmentHead, leave.ActionReject, leave.StatusDeptRejected, nil},
		{"hr approves dept approved", leave.StatusDeptApproved, domain.RoleHRManager, leave.ActionApprove, leave.StatusApproved, nil},
		{"hr rejects dept approved", leave.StatusDeptApproved, domain.RoleHRManager, leave.ActionReject, leave.StatusRejected, nil},
		{"cxo approves dept approved", leave.StatusDeptApproved, domain.RoleCXO, leave.ActionApprove, leave.StatusApproved, nil},
		{"hr cannot act on pending", leave.StatusPending, domain.RoleHRManager, leave.ActionApprove, "", leave.ErrTransitionNotFound},
		{"dept head cannot act on dept approved", leave.StatusDeptApproved, domain.RoleDepartmentHead, leave.ActionApprove, "", leave.ErrTransitionNotFound},
		{"employee cannot act", leave.StatusPending, domain.RoleEmployee, leave.ActionApprove, "", leave.ErrTransitionNotFound},
		{"approved is terminal", leave.StatusApproved, domain.RoleCXO, leave.ActionReject, "", leave.ErrTransitionNotFound},
		{"rejected is terminal", leave.StatusRejected, domain.RoleHRManager, leave.ActionApprove, "", leave.ErrTransitionNotFound},
		{"dept rejected is terminal", leave.StatusDeptRejected, domain.RoleDepartmentHead, leave.ActionApprove, "", leave.ErrTransitionNotFound},
		{"unknown action", leave.StatusPending, domain.RoleDepartmentHead, leave.Action("escalate"), "", leave.ErrUnknownAction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := leave.NextStatus(tt.current, tt.role, tt.action)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInitialStatus(t *testing.T) {
	assert.Equal(t, leave.StatusPending, leave.InitialStatus(domain.RoleEmployee))
	assert.Equal(t, leave.StatusDeptApproved, leave.InitialStatus(domain.RoleDepartmentHead))
	assert.Equal(t, leave.StatusDeptApproved, leave.InitialStatus(domain.RoleHRManager))
	assert.Equal(t, leave.StatusDeptApproved, leave.InitialStatus(domain.RoleCXO))
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.False(t, leave.StatusPending.IsTerminal())
	assert.False(t, leave.StatusDeptApproved.IsTerminal())
	assert.True(t, leave.StatusApproved.IsTerminal())
	assert.True(t, leave.StatusRejected.IsTerminal())
	assert.True(t, leave.StatusDeptRejected.IsTerminal())
}

func TestParseAction(t *testing.T) {
	a, err := leave.ParseAction("approve")
	assert.NoError(t, err)
	assert.Equal(t, leave.ActionApprove, a)

	_, err = leave.ParseAction("APPROVE")
	assert.ErrorIs(t, err, leave.ErrUnknownAction)
}

func TestCanReview(t *testing.T) {
	engineering := uuid.New()
	sales := uuid.New()
	requester := uuid.New()

	deptHead := leave.Actor{EmployeeID: uuid.New(), Role: domain.RoleDepartmentHead, DepartmentID: &engineering, HeadOfDepartmentID: &engineering}
	otherHead := leave.Actor{EmployeeID: uuid.New(), Role: domain.RoleDepartmentHead, DepartmentID: &sales, HeadOfDepartmentID: &sales}
	hr := leave.Actor{EmployeeID: uuid.New(), Role: domain.RoleHRManager}
	cxo := leave.Actor{EmployeeID: uuid.New(), Role: domain.RoleCXO}
	employee := leave.Actor{EmployeeID: uuid.New(), Role: domain.RoleEmployee, DepartmentID: &engineering}

	pending := leave.LeaveRequest{EmployeeID: requester, DepartmentID: &engineering, Status: leave.StatusPending}
	deptApproved := leave.LeaveRequest{EmployeeID: requester, DepartmentID: &engineering, Status: leave.StatusDeptApproved}
	approved := leave.LeaveRequest{EmployeeID: requester, DepartmentID: &engineering, Status: leave.StatusApproved}

	t.Run("dept head of requester department reviews pending", func(t *testing.T) {
		assert.True(t, leave.CanReview(deptHead, pending))
	})
	t.Run("dept head outside the department is denied", func(t *testing.T) {
		assert.False(t, leave.CanReview(otherHead, pending))
	})
	t.Run("dept head with no department is denied", func(t *testing.T) {
		headless := leave.Actor{EmployeeID: uuid.New(), Role: domain.RoleDepartmentHead}
		assert.False(t, leave.CanReview(headless, pending))
	})
	t.Run("pending request without department waits", func(t *testing.T) {
		orphan := leave.LeaveRequest{EmployeeID: requester, Status: leave.StatusPending}
		assert.False(t, leave.CanReview(deptHead, orphan))
	})
	t.Run("hr cannot skip department stage", func(t *testing.T) {
		assert.False(t, leave.CanReview(hr, pending))
	})
	t.Run("hr and cxo review dept approved", func(t *testing.T) {
		assert.True(t, leave.CanReview(hr, deptApproved))
		assert.True(t, leave.CanReview(cxo, deptApproved))
	})
	t.Run("dept head cannot do hr stage", func(t *testing.T) {
		assert.False(t, leave.CanReview(deptHead, deptApproved))
	})
	t.Run("employee never reviews", func(t *testing.T) {
		assert.False(t, leave.CanReview(employee, pending))
	})
	t.Run("terminal request is not reviewable", func(t *testing.T) {
		assert.False(t, leave.CanReview(hr, approved))
	})
	t.Run("self review is denied", func(t *testing.T) {
		own := leave.LeaveRequest{EmployeeID: hr.EmployeeID, Status: leave.StatusDeptApproved}
		assert.False(t, leave.CanReview(hr, own))
	})
}

func TestTotalDays(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }

	n, err := leave.TotalDays(day(10), day(12))
	assert.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = leave.TotalDays(day(10), day(10))
	assert.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = leave.TotalDays(time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC))
	assert.NoError(t, err)
	assert.Equal(t, 3, n)

	_, err = leave.TotalDays(day(12), day(10))
	assert.ErrorIs(t, err, leave.ErrEndBeforeStart)
}

func TestVisibilityFor(t *testing.T) {
	engineering := uuid.New()
	sales := uuid.New()
	requester := uuid.New()

	engPending := leave.LeaveRequest{EmployeeID: requester, DepartmentID: &engineering, Status: leave.StatusPending}
	engApproved := leave.LeaveRequest{EmployeeID: requester, DepartmentID: &engineering, Status: leave.StatusApproved}
	engDeptApproved := leave.LeaveRequest{EmployeeID: requester, DepartmentID: &engineering, Status: leave.StatusDeptApproved}
	salesPending := leave.LeaveRequest{EmployeeID: uuid.New(), DepartmentID: &sales, Status: leave.StatusPending}

	t.Run("dept head sees department queue", func(t *testing.T) {
		head := leave.Actor{EmployeeID: uuid.New(), Role: domain.RoleDepartmentHead, HeadOfDepartmentID: &engineering}
		f := leave.VisibilityFor(head)
		assert.True(t, f.Allows(engPending))
		assert.True(t, f.Allows(engDeptApproved))
		assert.False(t, f.Allows(engApproved))
		assert.False(t, f.Allows(salesPending))
	})

	t.Run("hr sees from dept approved onward", func(t *testing.T) {
		f := leave.VisibilityFor(leave.Actor{EmployeeID: uuid.New(), Role: domain.RoleHRManager})
		assert.False(t, f.Allows(engPending))
		assert.True(t, f.Allows(engDeptApproved))
		assert.True(t, f.Allows(engApproved))
	})

	t.Run("cxo sees everything", func(t *testing.T) {
		f := leave.VisibilityFor(leave.Actor{EmployeeID: uuid.New(), Role: domain.RoleCXO})
		assert.True(t, f.Allows(engPending))
		assert.True(t, f.Allows(salesPending))
	})

	t.Run("employee sees own only", func(t *testing.T) {
		me := leave.Actor{EmployeeID: requester, Role: domain.RoleEmployee}
		f := leave.VisibilityFor(me)
		assert.True(t, f.Allows(engApproved))
		assert.False(t, f.Allows(salesPending))
	})

	t.Run("can view own request outside queue", func(t *testing.T) {
		hr := leave.Actor{EmployeeID: uuid.New(), Role: domain.RoleHRManager}
		own := leave.LeaveRequest{EmployeeID: hr.EmployeeID, Status: leave.StatusPending}
		assert.True(t, leave.CanView(hr, own))
		assert.False(t, leave.CanView(hr, engPending))
	})
}
