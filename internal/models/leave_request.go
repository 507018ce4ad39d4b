package models

import (
	"time"
)

// Leave request status values. A request starts pending and is decided by an
// admin; approved and rejected represent finished decisions.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// LeaveRequest represents an employee's request for time off.
// EmployeeID is set from the authenticated identity at creation and never
// changes afterwards. Employee may be nil when the account was deleted after
// the request was filed.
type LeaveRequest struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	EmployeeID uint      `json:"employeeId" gorm:"index;not null"`
	Employee   *User     `json:"employee,omitempty" gorm:"foreignKey:EmployeeID"`
	StartDate  time.Time `json:"startDate" gorm:"not null"`
	EndDate    time.Time `json:"endDate" gorm:"not null"`
	Reason     string    `json:"reason" gorm:"not null"`
	Status     string    `json:"status" gorm:"default:'pending'"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
