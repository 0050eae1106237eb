package leave

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/Falasefemi2/hr-portal/internal/access"
	"github.com/Falasefemi2/hr-portal/internal/department"
	"github.com/Falasefemi2/hr-portal/internal/events"
	"github.com/Falasefemi2/hr-portal/internal/identity"
	leaveerrors "github.com/Falasefemi2/hr-portal/internal/leave/errors"
	"github.com/Falasefemi2/hr-portal/internal/messaging/kafka"
	"github.com/Falasefemi2/hr-portal/internal/observability"
	"github.com/Falasefemi2/hr-portal/internal/overlap"
	"github.com/Falasefemi2/hr-portal/internal/shared/contextutil"
	"github.com/Falasefemi2/hr-portal/internal/shared/database"

	"go.uber.org/zap"
)

const (
	dateLayout    = "2006-01-02"
	maxTxAttempts = 3
)

// LeaveTypeLookup is the slice of the leave type repository the lifecycle needs.
type LeaveTypeLookup interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	ListAll(ctx context.Context, p identity.Principal) ([]LeaveResponse, error)
	ListMine(ctx context.Context, p identity.Principal) ([]LeaveResponse, error)
	ListPendingForHOD(ctx context.Context, p identity.Principal) ([]LeaveResponse, error)
	GetByID(ctx context.Context, p identity.Principal, id int64) (LeaveResponse, error)
	Create(ctx context.Context, p identity.Principal, req CreateLeaveRequest) (LeaveResponse, error)
	ApproveOrReject(ctx context.Context, p identity.Principal, id int64, req DecisionRequest) (LeaveResponse, error)
}

type Deps struct {
	DB         *sql.DB
	Repo       Repository
	Outbox     kafka.OutboxRepository
	Gate       access.Gate
	LeaveTypes LeaveTypeLookup
	Directory  department.Directory
	Gateway    identity.Gateway
	Metrics    *observability.Metrics
}

type service struct {
	db         *sql.DB
	repo       Repository
	outbox     kafka.OutboxRepository
	gate       access.Gate
	leaveTypes LeaveTypeLookup
	directory  department.Directory
	gateway    identity.Gateway
	metrics    *observability.Metrics
	logger     *zap.Logger
}

func NewService(deps Deps, logger ...*zap.Logger) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:         deps.DB,
		repo:       deps.Repo,
		outbox:     deps.Outbox,
		gate:       deps.Gate,
		leaveTypes: deps.LeaveTypes,
		directory:  deps.Directory,
		gateway:    deps.Gateway,
		metrics:    deps.Metrics,
		logger:     l,
	}
}

func (s *service) log(ctx context.Context) *zap.Logger {
	return contextutil.GetLogger(ctx, s.logger)
}

func (s *service) ListAll(ctx context.Context, p identity.Principal) ([]LeaveResponse, error) {
	if err := s.gate.Check(p, access.OpLeaveListAll); err != nil {
		return nil, err
	}

	leaves, err := s.repo.FindAll(ctx)
	if err != nil {
		s.log(ctx).Error("list leave requests failed", zap.Error(err))
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) ListMine(ctx context.Context, p identity.Principal) ([]LeaveResponse, error) {
	if err := s.gate.Check(p, access.OpLeaveListMine); err != nil {
		return nil, err
	}

	leaves, err := s.repo.FindByEmployee(ctx, p.Caller.EmployeeID)
	if err != nil {
		s.log(ctx).Error("list own leave requests failed", zap.Error(err))
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) ListPendingForHOD(ctx context.Context, p identity.Principal) ([]LeaveResponse, error) {
	if err := s.gate.Check(p, access.OpLeaveListPending); err != nil {
		return nil, err
	}

	dept, err := s.directory.DepartmentOfHOD(ctx, p.Caller)
	if err != nil {
		return nil, err
	}

	employees := s.directory.EmployeesOf(ctx, dept.ID, p.Token)
	leaves, err := s.repo.FindPendingByEmployees(ctx, employees)
	if err != nil {
		s.log(ctx).Error("list pending leave requests failed", zap.Int64("department_id", dept.ID), zap.Error(err))
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) GetByID(ctx context.Context, p identity.Principal, id int64) (LeaveResponse, error) {
	if err := s.gate.Check(p, access.OpLeaveGet); err != nil {
		return LeaveResponse{}, err
	}

	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return LeaveResponse{}, err
	}
	return mapToResponse(*l), nil
}

func (s *service) Create(ctx context.Context, p identity.Principal, req CreateLeaveRequest) (LeaveResponse, error) {
	if err := s.gate.Check(p, access.OpLeaveCreate); err != nil {
		return LeaveResponse{}, err
	}

	log := s.log(ctx)
	caller := p.Caller
	log.Debug("create leave requested",
		zap.String("employee_id", caller.EmployeeID),
		zap.Int64("leave_type_id", req.LeaveTypeID),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	startDate, endDate, err := parseRange(req.StartDate, req.EndDate)
	if err != nil {
		log.Warn("create leave validation failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	exists, err := s.leaveTypes.Exists(ctx, req.LeaveTypeID)
	if err != nil {
		log.Error("create leave type lookup failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if !exists {
		return LeaveResponse{}, leaveerrors.ErrLeaveTypeNotFound
	}

	if !caller.HasDepartment() {
		return LeaveResponse{}, leaveerrors.ErrNoDepartment
	}
	dept, err := s.directory.Department(ctx, *caller.DepartmentID)
	if err != nil {
		return LeaveResponse{}, err
	}

	employees := s.directory.EmployeesOf(ctx, dept.ID, p.Token)

	var created LeaveRequest
	err = s.inDepartmentTx(ctx, dept.ID, func(tx *sql.Tx, qtx Repository) error {
		err := s.ensureNoOverlap(ctx, qtx, overlap.Query{
			EmployeeIDs: employees,
			Start:       startDate,
			End:         endDate,
		}, leaveerrors.ErrLeaveOverlap)
		if err != nil {
			return err
		}

		l := LeaveRequest{
			EmployeeID:  caller.EmployeeID,
			LeaveTypeID: req.LeaveTypeID,
			StartDate:   startDate,
			EndDate:     endDate,
			Status:      StatusPending,
			Reason:      req.Reason,
		}
		if err := qtx.Create(ctx, &l); err != nil {
			return err
		}
		created = l
		return s.writeEvent(ctx, tx, events.LeaveRequested, dept.ID, l)
	})
	if err != nil {
		switch {
		case errors.Is(err, leaveerrors.ErrLeaveOverlap):
			s.metrics.LeaveConflict("create")
			log.Warn("create leave overlap detected",
				zap.Int64("department_id", dept.ID),
				zap.String("employee_id", caller.EmployeeID),
				zap.String("start_date", req.StartDate),
				zap.String("end_date", req.EndDate),
			)
		case errors.Is(err, leaveerrors.ErrConcurrentUpdate):
			log.Warn("create leave gave up after serialization failures", zap.Int64("department_id", dept.ID))
		default:
			log.Error("create leave persist failed", zap.Error(err))
		}
		return LeaveResponse{}, err
	}

	s.metrics.LeaveRequested(created.LeaveTypeID)
	log.Info("create leave success",
		zap.Int64("leave_id", created.ID),
		zap.Int64("department_id", dept.ID),
		zap.String("employee_id", caller.EmployeeID),
	)
	return mapToResponse(created), nil
}

func (s *service) ApproveOrReject(ctx context.Context, p identity.Principal, id int64, req DecisionRequest) (LeaveResponse, error) {
	if err := s.gate.Check(p, access.OpLeaveDecide); err != nil {
		return LeaveResponse{}, err
	}

	log := s.log(ctx)
	caller := p.Caller
	log.Debug("leave decision requested",
		zap.Int64("leave_id", id),
		zap.String("hod_employee_id", caller.EmployeeID),
		zap.String("action", req.Action),
	)

	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return LeaveResponse{}, err
	}
	if !current.IsPending() {
		log.Warn("leave decision on non pending request", zap.Int64("leave_id", id), zap.String("status", current.Status))
		return LeaveResponse{}, leaveerrors.ErrNotPending
	}

	owner := s.gateway.UserByEmployeeID(ctx, current.EmployeeID, p.Token)
	if !owner.HasDepartment() {
		return LeaveResponse{}, leaveerrors.ErrOwnerDepartmentUnknown
	}
	dept, err := s.directory.Department(ctx, *owner.DepartmentID)
	if err != nil {
		return LeaveResponse{}, err
	}
	if !dept.IsHOD(caller.EmployeeID) {
		log.Warn("leave decision by non hod",
			zap.Int64("leave_id", id),
			zap.Int64("department_id", dept.ID),
			zap.String("employee_id", caller.EmployeeID),
		)
		return LeaveResponse{}, leaveerrors.ErrNotDepartmentHOD
	}

	action := strings.ToLower(strings.TrimSpace(req.Action))
	var employees []string
	switch action {
	case ActionApprove:
		employees = s.directory.EmployeesOf(ctx, dept.ID, p.Token)
	case ActionReject:
	default:
		return LeaveResponse{}, leaveerrors.ErrInvalidAction
	}

	var decided LeaveRequest
	err = s.inDepartmentTx(ctx, dept.ID, func(tx *sql.Tx, qtx Repository) error {
		l, err := qtx.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if !l.IsPending() {
			return leaveerrors.ErrNotPending
		}

		decider := caller.EmployeeID
		eventType := events.LeaveRejected
		if action == ActionApprove {
			err = s.ensureNoOverlap(ctx, qtx, overlap.Query{
				EmployeeIDs: employees,
				Start:       l.StartDate,
				End:         l.EndDate,
				ExcludeID:   l.ID,
			}, leaveerrors.ErrApproveOverlap)
			if err != nil {
				return err
			}
			l.Status = StatusApproved
			eventType = events.LeaveApproved
		} else {
			l.Status = StatusRejected
			l.RejectionReason = req.RejectionReason
		}
		l.ApprovedBy = &decider
		l.UpdatedAt = time.Now().UTC()

		if err := qtx.Update(ctx, l); err != nil {
			return err
		}
		decided = *l
		return s.writeEvent(ctx, tx, eventType, dept.ID, *l)
	})
	if err != nil {
		switch {
		case errors.Is(err, leaveerrors.ErrApproveOverlap):
			s.metrics.LeaveConflict("approve")
			log.Warn("leave approval overlap detected", zap.Int64("leave_id", id), zap.Int64("department_id", dept.ID))
		case errors.Is(err, leaveerrors.ErrNotPending),
			errors.Is(err, leaveerrors.ErrLeaveNotFound),
			errors.Is(err, leaveerrors.ErrConcurrentUpdate):
			log.Warn("leave decision lost a race", zap.Int64("leave_id", id), zap.Error(err))
		default:
			log.Error("leave decision persist failed", zap.Int64("leave_id", id), zap.Error(err))
		}
		return LeaveResponse{}, err
	}

	s.metrics.LeaveDecided(decided.Status)
	log.Info("leave decision success",
		zap.Int64("leave_id", id),
		zap.String("status", decided.Status),
		zap.String("hod_employee_id", caller.EmployeeID),
	)
	return mapToResponse(decided), nil
}

// inDepartmentTx runs fn in a serializable transaction holding the advisory
// lock of departmentID. The snapshot predates the lock, so a serialization
// failure reruns fn on a fresh snapshot; fn must be safe to rerun.
func (s *service) inDepartmentTx(ctx context.Context, departmentID int64, fn func(tx *sql.Tx, qtx Repository) error) error {
	for attempt := 1; attempt <= maxTxAttempts; attempt++ {
		err := s.runDepartmentTx(ctx, departmentID, fn)
		if !database.IsSerializationFailure(err) {
			return err
		}
		s.log(ctx).Warn("department transaction serialization failure",
			zap.Int64("department_id", departmentID),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
	return leaveerrors.ErrConcurrentUpdate
}

func (s *service) runDepartmentTx(ctx context.Context, departmentID int64, fn func(tx *sql.Tx, qtx Repository) error) error {
	tx, err := s.db.BeginTx(ctx, database.SerializableTx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.LockDepartment(ctx, departmentID); err != nil {
		return err
	}
	if err := fn(tx, qtx); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *service) ensureNoOverlap(ctx context.Context, qtx Repository, q overlap.Query, conflict error) error {
	found, err := qtx.FindOverlapping(ctx, q)
	if err != nil {
		return err
	}
	if len(found) > 0 {
		return conflict
	}
	return nil
}

func (s *service) writeEvent(ctx context.Context, tx *sql.Tx, eventType string, departmentID int64, l LeaveRequest) error {
	payload := events.LeaveLifecycleEvent{
		EventType:       eventType,
		LeaveRequestID:  l.ID,
		EmployeeID:      l.EmployeeID,
		LeaveTypeID:     l.LeaveTypeID,
		DepartmentID:    departmentID,
		StartDate:       l.StartDate.Format(dateLayout),
		EndDate:         l.EndDate.Format(dateLayout),
		Status:          l.Status,
		DecidedBy:       l.ApprovedBy,
		RejectionReason: l.RejectionReason,
		RequestID:       contextutil.GetRequestID(ctx),
		OccurredAt:      time.Now().UTC(),
	}

	event, err := kafka.NewOutboxEvent(
		payload.RequestID,
		events.LeaveRequestAggregate,
		strconv.FormatInt(l.ID, 10),
		eventType,
		events.LeaveLifecycleTopic,
		payload,
	)
	if err != nil {
		return err
	}
	return s.outbox.WithTx(tx).Create(ctx, event)
}

func parseRange(start, end string) (time.Time, time.Time, error) {
	startDate, err := parseDate(start)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	endDate, err := parseDate(end)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if endDate.Before(startDate) {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateRange
	}
	return startDate, endDate, nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(v))
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(l LeaveRequest) LeaveResponse {
	resp := LeaveResponse{
		ID:              l.ID,
		EmployeeID:      l.EmployeeID,
		LeaveTypeID:     l.LeaveTypeID,
		StartDate:       l.StartDate.Format(dateLayout),
		EndDate:         l.EndDate.Format(dateLayout),
		TotalDays:       overlap.Days(l.StartDate, l.EndDate),
		Status:          l.Status,
		Reason:          l.Reason,
		ApprovedBy:      l.ApprovedBy,
		RejectionReason: l.RejectionReason,
	}
	if !l.CreatedAt.IsZero() {
		resp.CreatedAt = l.CreatedAt.Format(time.RFC3339)
	}
	if !l.UpdatedAt.IsZero() {
		resp.UpdatedAt = l.UpdatedAt.Format(time.RFC3339)
	}
	return resp
}

func mapToListResponse(leaves []LeaveRequest) []LeaveResponse {
	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(l)
	}
	return resp
}
