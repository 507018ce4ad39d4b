package services

import (
	"errors"
	"time"

	"github.com/franciscosanchezn/gin-ferias-api/internal/models"
	"gorm.io/gorm"
)

// LeaveService enforces ownership and lifecycle rules on leave requests.
//
// Lifecycle: a request starts pending; an admin moves it to approved or
// rejected. Deletion is a separate action, not a state transition: the owner
// may delete only while pending, an admin may delete at any status.
type LeaveService interface {
	// Create files a new request owned by employeeID with status pending.
	// Returns ErrInvalidDateRange unless end is after start.
	Create(employeeID uint, start, end time.Time, reason string) (*models.LeaveRequest, error)
	// ListByEmployee returns the employee's requests, newest-created first.
	ListByEmployee(employeeID uint) ([]models.LeaveRequest, error)
	// ListAll returns every request in the system, newest-created first.
	ListAll() ([]models.LeaveRequest, error)
	// UpdateStatus sets the request's status to approved or rejected; any
	// other value returns ErrInvalidStatus.
	UpdateStatus(id uint, status string) (*models.LeaveRequest, error)
	// DeleteOwn removes the request if it belongs to employeeID and is still
	// pending. Returns ErrNotOwner or ErrNotPending otherwise.
	DeleteOwn(id, employeeID uint) error
	// DeleteAdmin removes the request regardless of owner or status and
	// returns the deleted record.
	DeleteAdmin(id uint) (*models.LeaveRequest, error)
}

type leaveService struct {
	db *gorm.DB
}

// NewLeaveService creates a new instance of LeaveService
func NewLeaveService(db *gorm.DB) LeaveService {
	return &leaveService{db: db}
}

func (s *leaveService) Create(employeeID uint, start, end time.Time, reason string) (*models.LeaveRequest, error) {
	if !end.After(start) {
		return nil, ErrInvalidDateRange
	}

	request := &models.LeaveRequest{
		EmployeeID: employeeID,
		StartDate:  start,
		EndDate:    end,
		Reason:     reason,
		Status:     models.StatusPending,
	}
	if err := s.db.Create(request).Error; err != nil {
		return nil, err
	}
	return s.getByID(request.ID)
}

func (s *leaveService) ListByEmployee(employeeID uint) ([]models.LeaveRequest, error) {
	requests := []models.LeaveRequest{}
	err := s.db.Preload("Employee").
		Where("employee_id = ?", employeeID).
		Order("created_at DESC, id DESC").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

func (s *leaveService) ListAll() ([]models.LeaveRequest, error) {
	requests := []models.LeaveRequest{}
	err := s.db.Preload("Employee").
		Order("created_at DESC, id DESC").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

func (s *leaveService) UpdateStatus(id uint, status string) (*models.LeaveRequest, error) {
	if status != models.StatusApproved && status != models.StatusRejected {
		return nil, ErrInvalidStatus
	}

	request, err := s.getByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(request).Update("status", status).Error; err != nil {
		return nil, err
	}
	return request, nil
}

func (s *leaveService) DeleteOwn(id, employeeID uint) error {
	request, err := s.getByID(id)
	if err != nil {
		return err
	}
	if request.EmployeeID != employeeID {
		return ErrNotOwner
	}
	if request.Status != models.StatusPending {
		return ErrNotPending
	}
	return s.db.Delete(&models.LeaveRequest{}, id).Error
}

func (s *leaveService) DeleteAdmin(id uint) (*models.LeaveRequest, error) {
	request, err := s.getByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.db.Delete(&models.LeaveRequest{}, id).Error; err != nil {
		return nil, err
	}
	return request, nil
}

func (s *leaveService) getByID(id uint) (*models.LeaveRequest, error) {
	var request models.LeaveRequest
	if err := s.db.Preload("Employee").First(&request, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLeaveNotFound
		}
		return nil, err
	}
	return &request, nil
}
