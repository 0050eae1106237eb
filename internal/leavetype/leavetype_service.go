package leavetype

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	leavetypeerrors "github.com/Falasefemi2/hr-portal/internal/leavetype/errors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	LeaveTypeAllKey       = "leave_types:all"
	LeaveTypeDetailPrefix = "leave_types:detail:"

	cacheTTL = 30 * time.Minute
)

func GetLeaveTypeDetailKey(id int64) string {
	return LeaveTypeDetailPrefix + strconv.FormatInt(id, 10)
}

//go:generate mockgen -source=leavetype_service.go -destination=mock/leavetype_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateLeaveTypeRequest) (LeaveTypeResponse, error)
	GetAll(ctx context.Context) ([]LeaveTypeResponse, error)
	GetByID(ctx context.Context, id int64) (LeaveTypeResponse, error)
	Update(ctx context.Context, id int64, req UpdateLeaveTypeRequest) (LeaveTypeResponse, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("leavetype.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leavetype.service")
	}
	return &service{db: db, repo: repo, rdb: rdb, sf: &singleflight.Group{}, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateLeaveTypeRequest) (LeaveTypeResponse, error) {
	name := strings.TrimSpace(req.Name)
	s.logger.Debug("create leave type", zap.String("name", name))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LeaveTypeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := s.ensureNameFree(ctx, qtx, name, 0); err != nil {
		return LeaveTypeResponse{}, err
	}

	lt := &LeaveType{
		Name:           name,
		Description:    req.Description,
		MaxDaysPerYear: req.MaxDaysPerYear,
	}
	if req.RequiresDocumentation != nil {
		lt.RequiresDocumentation = *req.RequiresDocumentation
	}

	if err := qtx.Create(ctx, lt); err != nil {
		return LeaveTypeResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return LeaveTypeResponse{}, err
	}

	s.invalidate(ctx, lt.ID)
	s.logger.Info("leave type created", zap.Int64("leave_type_id", lt.ID))
	return mapToResponse(*lt), nil
}

func (s *service) GetAll(ctx context.Context) ([]LeaveTypeResponse, error) {
	var resp []LeaveTypeResponse
	if s.getCached(ctx, LeaveTypeAllKey, &resp) {
		return resp, nil
	}

	v, err, _ := s.sf.Do(LeaveTypeAllKey, func() (interface{}, error) {
		types, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, err
		}

		resp := mapToListResponse(types)
		s.setCached(ctx, LeaveTypeAllKey, resp)
		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]LeaveTypeResponse), nil
}

func (s *service) GetByID(ctx context.Context, id int64) (LeaveTypeResponse, error) {
	key := GetLeaveTypeDetailKey(id)

	var resp LeaveTypeResponse
	if s.getCached(ctx, key, &resp) {
		return resp, nil
	}

	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		lt, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}

		resp := mapToResponse(*lt)
		s.setCached(ctx, key, resp)
		return resp, nil
	})
	if err != nil {
		return LeaveTypeResponse{}, err
	}

	return v.(LeaveTypeResponse), nil
}

func (s *service) Update(ctx context.Context, id int64, req UpdateLeaveTypeRequest) (LeaveTypeResponse, error) {
	s.logger.Debug("update leave type", zap.Int64("leave_type_id", id))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LeaveTypeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	lt, err := qtx.FindByID(ctx, id)
	if err != nil {
		return LeaveTypeResponse{}, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name != lt.Name {
			if err := s.ensureNameFree(ctx, qtx, name, lt.ID); err != nil {
				return LeaveTypeResponse{}, err
			}
			lt.Name = name
		}
	}
	if req.Description != nil {
		lt.Description = *req.Description
	}
	if req.MaxDaysPerYear != nil {
		lt.MaxDaysPerYear = req.MaxDaysPerYear
	}
	if req.RequiresDocumentation != nil {
		lt.RequiresDocumentation = *req.RequiresDocumentation
	}

	if err := qtx.Update(ctx, lt); err != nil {
		return LeaveTypeResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return LeaveTypeResponse{}, err
	}

	s.invalidate(ctx, lt.ID)
	return mapToResponse(*lt), nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Delete(ctx, id); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.invalidate(ctx, id)
	return nil
}

func (s *service) ensureNameFree(ctx context.Context, repo Repository, name string, selfID int64) error {
	existing, err := repo.FindByName(ctx, name)
	if errors.Is(err, leavetypeerrors.ErrLeaveTypeNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.ID == selfID {
		return nil
	}
	s.logger.Warn("leave type name taken", zap.String("name", name))
	return leavetypeerrors.NameTaken(name)
}

func (s *service) getCached(ctx context.Context, key string, dst any) bool {
	if s.rdb == nil {
		return false
	}
	cached, err := s.rdb.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	return json.Unmarshal([]byte(cached), dst) == nil
}

func (s *service) setCached(ctx context.Context, key string, v any) {
	if s.rdb == nil {
		return
	}
	if jsonData, err := json.Marshal(v); err == nil {
		s.rdb.Set(ctx, key, jsonData, cacheTTL)
	}
}

func (s *service) invalidate(ctx context.Context, id int64) {
	if s.rdb == nil {
		return
	}
	keys := []string{LeaveTypeAllKey, GetLeaveTypeDetailKey(id)}
	if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
		s.logger.Error("failed to invalidate cache", zap.Strings("keys", keys), zap.Error(err))
	}
}

func mapToResponse(lt LeaveType) LeaveTypeResponse {
	resp := LeaveTypeResponse{
		ID:                    lt.ID,
		Name:                  lt.Name,
		Description:           lt.Description,
		MaxDaysPerYear:        lt.MaxDaysPerYear,
		RequiresDocumentation: lt.RequiresDocumentation,
	}
	if !lt.CreatedAt.IsZero() {
		resp.CreatedAt = lt.CreatedAt.Format(time.RFC3339)
	}
	if !lt.UpdatedAt.IsZero() {
		resp.UpdatedAt = lt.UpdatedAt.Format(time.RFC3339)
	}
	return resp
}

func mapToListResponse(types []LeaveType) []LeaveTypeResponse {
	res := make([]LeaveTypeResponse, len(types))
	for i, lt := range types {
		res[i] = mapToResponse(lt)
	}
	return res
}
