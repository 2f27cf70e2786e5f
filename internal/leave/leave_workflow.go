package leave

import (
	"errors"
	"math"
	"time"

	"github.com/Thomas-Sunil/newhrms/internal/domain"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending      Status = "pending"
	StatusDeptApproved Status = "dept_approved"
	StatusApproved     Status = "approved"
	StatusRejected     Status = "rejected"
	StatusDeptRejected Status = "dept_rejected"
)

// IsTerminal reports whether no further review can change the status.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusApproved, StatusRejected, StatusDeptRejected:
		return true
	}
	return false
}

// CountsAsLeave is true for statuses that mark the employee as away on the
// attendance calendar.
func (s Status) CountsAsLeave() bool {
	return s == StatusApproved || s == StatusDeptApproved
}

type Action string

const (
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
)

type Stage string

const (
	StageDepartment Stage = "department"
	StageHR         Stage = "hr"
)

// StageOf returns the review stage a request with status s is waiting on.
func StageOf(s Status) (Stage, bool) {
	switch s {
	case StatusPending:
		return StageDepartment, true
	case StatusDeptApproved:
		return StageHR, true
	}
	return "", false
}

var (
	ErrUnknownAction      = errors.New("unknown review action")
	ErrTransitionNotFound = errors.New("no transition for status and role")
	ErrEndBeforeStart     = errors.New("end date is before start date")
)

type transitionKey struct {
	from Status
	role domain.Role
}

var transitions = map[transitionKey]map[Action]Status{
	{StatusPending, domain.RoleDepartmentHead}: {
		ActionApprove: StatusDeptApproved,
		ActionReject:  StatusDeptRejected,
	},
	{StatusDeptApproved, domain.RoleHRManager}: {
		ActionApprove: StatusApproved,
		ActionReject:  StatusRejected,
	},
	{StatusDeptApproved, domain.RoleCXO}: {
		ActionApprove: StatusApproved,
		ActionReject:  StatusRejected,
	},
}

func ParseAction(v string) (Action, error) {
	switch Action(v) {
	case ActionApprove, ActionReject:
		return Action(v), nil
	}
	return "", ErrUnknownAction
}

// NextStatus looks up the status reached when role applies action to a request
// in current. Terminal statuses have no outgoing transitions.
func NextStatus(current Status, role domain.Role, action Action) (Status, error) {
	byAction, ok := transitions[transitionKey{current, role}]
	if !ok {
		return "", ErrTransitionNotFound
	}
	next, ok := byAction[action]
	if !ok {
		return "", ErrUnknownAction
	}
	return next, nil
}

// InitialStatus is the status a newly submitted request starts in. Requests
// from department heads and above skip the department stage.
func InitialStatus(requesterRole domain.Role) Status {
	if requesterRole.IsSenior() {
		return StatusDeptApproved
	}
	return StatusPending
}

// Actor is the reviewer or requester as resolved from the employees table.
type Actor struct {
	EmployeeID uuid.UUID
	Role       domain.Role
	// DepartmentID is the department the actor works in.
	DepartmentID *uuid.UUID
	// HeadOfDepartmentID is set when the actor is recorded as head of a department.
	HeadOfDepartmentID *uuid.UUID
}

func (a Actor) heads(departmentID *uuid.UUID) bool {
	return a.HeadOfDepartmentID != nil && departmentID != nil && *a.HeadOfDepartmentID == *departmentID
}

// CanReview decides whether actor may act on req in its current status.
func CanReview(actor Actor, req LeaveRequest) bool {
	if req.EmployeeID == actor.EmployeeID {
		return false
	}
	if _, ok := transitions[transitionKey{req.Status, actor.Role}]; !ok {
		return false
	}
	if req.Status == StatusPending {
		return actor.heads(req.DepartmentID)
	}
	return true
}

// TotalDays counts calendar days in [start, end], both ends inclusive.
func TotalDays(start, end time.Time) (int, error) {
	if end.Before(start) {
		return 0, ErrEndBeforeStart
	}
	days := math.Ceil(math.Abs(end.Sub(start).Hours()) / 24)
	return int(days) + 1, nil
}

// ListFilter narrows a listing to what an actor is allowed to see. Empty
// fields do not filter.
type ListFilter struct {
	EmployeeID   *uuid.UUID
	DepartmentID *uuid.UUID
	Statuses     []Status
}

func (f ListFilter) Allows(req LeaveRequest) bool {
	if f.EmployeeID != nil && req.EmployeeID != *f.EmployeeID {
		return false
	}
	if f.DepartmentID != nil && (req.DepartmentID == nil || *req.DepartmentID != *f.DepartmentID) {
		return false
	}
	if len(f.Statuses) == 0 {
		return true
	}
	for _, s := range f.Statuses {
		if s == req.Status {
			return true
		}
	}
	return false
}

func OwnRequests(actor Actor) ListFilter {
	id := actor.EmployeeID
	return ListFilter{EmployeeID: &id}
}

// VisibilityFor returns the review queue an actor sees.
func VisibilityFor(actor Actor) ListFilter {
	switch actor.Role {
	case domain.RoleCXO:
		return ListFilter{}
	case domain.RoleHRManager:
		return ListFilter{Statuses: []Status{StatusDeptApproved, StatusApproved, StatusRejected}}
	case domain.RoleDepartmentHead:
		if actor.HeadOfDepartmentID == nil {
			return OwnRequests(actor)
		}
		dept := *actor.HeadOfDepartmentID
		return ListFilter{
			DepartmentID: &dept,
			Statuses:     []Status{StatusPending, StatusDeptApproved, StatusDeptRejected},
		}
	}
	return OwnRequests(actor)
}

// CanView is VisibilityFor plus the actor's own requests.
func CanView(actor Actor, req LeaveRequest) bool {
	return req.EmployeeID == actor.EmployeeID || VisibilityFor(actor).Allows(req)
}
