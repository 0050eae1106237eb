package leave_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Falasefemi2/hr-portal/internal/access"
	"github.com/Falasefemi2/hr-portal/internal/identity"
	"github.com/Falasefemi2/hr-portal/internal/leave"
	leaveerrors "github.com/Falasefemi2/hr-portal/internal/leave/errors"
	"github.com/Falasefemi2/hr-portal/internal/middleware"
	"github.com/Falasefemi2/hr-portal/internal/shared/apperror"
	"github.com/Falasefemi2/hr-portal/internal/shared/contextutil"
	"github.com/Falasefemi2/hr-portal/internal/shared/response"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiMeta struct {
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"pageSize"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Meta  *apiMeta        `json:"meta"`
	Error *apiError       `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakeLeaveService struct {
	ListAllFn         func(ctx context.Context, p identity.Principal) ([]leave.LeaveResponse, error)
	ListMineFn        func(ctx context.Context, p identity.Principal) ([]leave.LeaveResponse, error)
	ListPendingFn     func(ctx context.Context, p identity.Principal) ([]leave.LeaveResponse, error)
	GetByIDFn         func(ctx context.Context, p identity.Principal, id int64) (leave.LeaveResponse, error)
	CreateFn          func(ctx context.Context, p identity.Principal, req leave.CreateLeaveRequest) (leave.LeaveResponse, error)
	ApproveOrRejectFn func(ctx context.Context, p identity.Principal, id int64, req leave.DecisionRequest) (leave.LeaveResponse, error)
}

func (f *fakeLeaveService) ListAll(ctx context.Context, p identity.Principal) ([]leave.LeaveResponse, error) {
	return f.ListAllFn(ctx, p)
}
func (f *fakeLeaveService) ListMine(ctx context.Context, p identity.Principal) ([]leave.LeaveResponse, error) {
	return f.ListMineFn(ctx, p)
}
func (f *fakeLeaveService) ListPendingForHOD(ctx context.Context, p identity.Principal) ([]leave.LeaveResponse, error) {
	return f.ListPendingFn(ctx, p)
}
func (f *fakeLeaveService) GetByID(ctx context.Context, p identity.Principal, id int64) (leave.LeaveResponse, error) {
	return f.GetByIDFn(ctx, p, id)
}
func (f *fakeLeaveService) Create(ctx context.Context, p identity.Principal, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
	return f.CreateFn(ctx, p, req)
}
func (f *fakeLeaveService) ApproveOrReject(ctx context.Context, p identity.Principal, id int64, req leave.DecisionRequest) (leave.LeaveResponse, error) {
	return f.ApproveOrRejectFn(ctx, p, id, req)
}

func newContext(method, target, body string, p identity.Principal) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	c.Request = req.WithContext(contextutil.WithPrincipal(req.Context(), p))
	return c, w
}

// newRouter mounts the leave routes behind a middleware that injects p.
func newRouter(t *testing.T, svc leave.Service, p identity.Principal) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Request = c.Request.WithContext(contextutil.WithPrincipal(c.Request.Context(), p))
		c.Next()
	})
	leave.RegisterRoutes(r.Group("/api/v1"), leave.NewHandler(svc), rdb, rate.Inf, 1)
	return r
}

func TestLeaveHandler_Create(t *testing.T) {
	employee := caller("E2", "employee", int64Ptr(10))

	t.Run("success passes the principal through", func(t *testing.T) {
		svc := &fakeLeaveService{
			CreateFn: func(ctx context.Context, p identity.Principal, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
				assert.Equal(t, "E2", p.Caller.EmployeeID)
				assert.Equal(t, "token-E2", p.Token)
				assert.Equal(t, int64(1), req.LeaveTypeID)
				return leave.LeaveResponse{ID: 100, EmployeeID: "E2", Status: leave.StatusPending, TotalDays: 5}, nil
			},
		}
		c, w := newContext(http.MethodPost, "/leave-requests",
			`{"leave_type_id":1,"start_date":"2025-06-01","end_date":"2025-06-05","reason":"flu"}`, employee)

		leave.NewHandler(svc).Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)

		var resp leave.LeaveResponse
		require.NoError(t, json.Unmarshal(env.Data, &resp))
		assert.Equal(t, int64(100), resp.ID)
		assert.Equal(t, 5, resp.TotalDays)
	})

	t.Run("negative missing leave type", func(t *testing.T) {
		c, w := newContext(http.MethodPost, "/leave-requests",
			`{"start_date":"2025-06-01","end_date":"2025-06-05"}`, employee)

		leave.NewHandler(&fakeLeaveService{}).Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "INVALID_INPUT", env.Error.Code)
	})

	t.Run("negative malformed date never reaches the service", func(t *testing.T) {
		apperror.Init()
		c, w := newContext(http.MethodPost, "/leave-requests",
			`{"leave_type_id":1,"start_date":"2025-6-1","end_date":"2025-06-05"}`, employee)

		leave.NewHandler(&fakeLeaveService{}).Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "INVALID_INPUT", env.Error.Code)
		assert.Equal(t, "Start Date must be a date in YYYY-MM-DD format", env.Error.Message)
	})

	t.Run("negative overlap is a conflict", func(t *testing.T) {
		svc := &fakeLeaveService{
			CreateFn: func(ctx context.Context, p identity.Principal, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrLeaveOverlap
			},
		}
		c, w := newContext(http.MethodPost, "/leave-requests",
			`{"leave_type_id":1,"start_date":"2025-06-04","end_date":"2025-06-06"}`, employee)

		leave.NewHandler(svc).Create(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "CONFLICT", env.Error.Code)
		assert.Equal(t, leaveerrors.ErrLeaveOverlap.Message, env.Error.Message)
	})

	t.Run("negative unauthenticated", func(t *testing.T) {
		svc := &fakeLeaveService{
			CreateFn: func(ctx context.Context, p identity.Principal, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, access.ErrUnauthenticated
			},
		}
		c, w := newContext(http.MethodPost, "/leave-requests",
			`{"leave_type_id":1,"start_date":"2025-06-01","end_date":"2025-06-05"}`, identity.Principal{})

		leave.NewHandler(svc).Create(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "UNAUTHORIZED", env.Error.Code)
	})
}

func TestLeaveHandler_ApproveOrReject(t *testing.T) {
	hod := caller("E1", "hod", int64Ptr(10))

	t.Run("success", func(t *testing.T) {
		svc := &fakeLeaveService{
			ApproveOrRejectFn: func(ctx context.Context, p identity.Principal, id int64, req leave.DecisionRequest) (leave.LeaveResponse, error) {
				assert.Equal(t, int64(100), id)
				assert.Equal(t, "reject", req.Action)
				require.NotNil(t, req.RejectionReason)
				assert.Equal(t, "", *req.RejectionReason)
				return leave.LeaveResponse{ID: id, Status: leave.StatusRejected, ApprovedBy: strPtr("E1"), RejectionReason: req.RejectionReason}, nil
			},
		}
		c, w := newContext(http.MethodPut, "/leave-requests/100/approve-reject", `{"action":"reject","rejection_reason":""}`, hod)
		c.Params = gin.Params{{Key: "id", Value: "100"}}

		leave.NewHandler(svc).ApproveOrReject(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"rejection_reason":""`)
	})

	t.Run("negative invalid id", func(t *testing.T) {
		c, w := newContext(http.MethodPut, "/leave-requests/abc/approve-reject", `{"action":"approve"}`, hod)
		c.Params = gin.Params{{Key: "id", Value: "abc"}}

		leave.NewHandler(&fakeLeaveService{}).ApproveOrReject(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "invalid leave request id", env.Error.Message)
	})

	t.Run("negative missing action", func(t *testing.T) {
		c, w := newContext(http.MethodPut, "/leave-requests/100/approve-reject", `{}`, hod)
		c.Params = gin.Params{{Key: "id", Value: "100"}}

		leave.NewHandler(&fakeLeaveService{}).ApproveOrReject(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("negative not pending is invalid state", func(t *testing.T) {
		svc := &fakeLeaveService{
			ApproveOrRejectFn: func(ctx context.Context, p identity.Principal, id int64, req leave.DecisionRequest) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrNotPending
			},
		}
		c, w := newContext(http.MethodPut, "/leave-requests/100/approve-reject", `{"action":"approve"}`, hod)
		c.Params = gin.Params{{Key: "id", Value: "100"}}

		leave.NewHandler(svc).ApproveOrReject(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "INVALID_STATE", env.Error.Code)
		assert.Equal(t, "leave request is not pending", env.Error.Message)
	})

	t.Run("negative forbidden hod", func(t *testing.T) {
		svc := &fakeLeaveService{
			ApproveOrRejectFn: func(ctx context.Context, p identity.Principal, id int64, req leave.DecisionRequest) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrNotDepartmentHOD
			},
		}
		c, w := newContext(http.MethodPut, "/leave-requests/100/approve-reject", `{"action":"approve"}`, hod)
		c.Params = gin.Params{{Key: "id", Value: "100"}}

		leave.NewHandler(svc).ApproveOrReject(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestLeaveHandler_GetByID(t *testing.T) {
	p := caller("E2", "employee", int64Ptr(10))

	t.Run("not found", func(t *testing.T) {
		svc := &fakeLeaveService{
			GetByIDFn: func(ctx context.Context, p identity.Principal, id int64) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrLeaveNotFound
			},
		}
		c, w := newContext(http.MethodGet, "/leave-requests/9", "", p)
		c.Params = gin.Params{{Key: "id", Value: "9"}}

		leave.NewHandler(svc).GetById(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("unknown error hides detail", func(t *testing.T) {
		svc := &fakeLeaveService{
			GetByIDFn: func(ctx context.Context, p identity.Principal, id int64) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, errors.New("pq: connection reset")
			},
		}
		c, w := newContext(http.MethodGet, "/leave-requests/9", "", p)
		c.Params = gin.Params{{Key: "id", Value: "9"}}

		leave.NewHandler(svc).GetById(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "Internal server error", env.Error.Message)
	})
}

func TestLeaveHandler_ListPaging(t *testing.T) {
	hod := caller("E1", "hod", int64Ptr(10))
	list := []leave.LeaveResponse{{ID: 1}, {ID: 2}, {ID: 3}}
	svc := &fakeLeaveService{
		ListAllFn: func(ctx context.Context, p identity.Principal) ([]leave.LeaveResponse, error) {
			return list, nil
		},
		ListMineFn: func(ctx context.Context, p identity.Principal) ([]leave.LeaveResponse, error) {
			return list, nil
		},
		ListPendingFn: func(ctx context.Context, p identity.Principal) ([]leave.LeaveResponse, error) {
			return list, nil
		},
	}
	r := newRouter(t, svc, hod)

	get := func(target string) (*httptest.ResponseRecorder, []leave.LeaveResponse, apiEnvelope) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
		env := decodeEnvelope(t, w.Body.Bytes())
		var items []leave.LeaveResponse
		if len(env.Data) > 0 {
			require.NoError(t, json.Unmarshal(env.Data, &items))
		}
		return w, items, env
	}

	t.Run("page far past the end is empty, not a crash", func(t *testing.T) {
		for _, path := range []string{"", "/my-leaves", "/pending"} {
			w, items, env := get("/api/v1/leave-requests" + path + "?page=4611686018427387904")
			assert.Equal(t, http.StatusOK, w.Code, path)
			assert.Empty(t, items, path)
			assert.Equal(t, int64(3), env.Meta.Total, path)
		}
	})

	t.Run("page and page size at max int", func(t *testing.T) {
		w, items, _ := get("/api/v1/leave-requests?page=9223372036854775807&page_size=9223372036854775807")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, items)
	})

	t.Run("page size is capped", func(t *testing.T) {
		w, items, env := get("/api/v1/leave-requests?page_size=100000")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, items, 3)
		assert.Equal(t, response.MaxPageSize, env.Meta.PageSize)
	})
}

func TestLeaveRoutes(t *testing.T) {
	hod := caller("E1", "hod", int64Ptr(10))
	list := []leave.LeaveResponse{{ID: 1}, {ID: 2}, {ID: 3}}

	called := map[string]int{}
	svc := &fakeLeaveService{
		ListAllFn: func(ctx context.Context, p identity.Principal) ([]leave.LeaveResponse, error) {
			called["all"]++
			return list, nil
		},
		ListMineFn: func(ctx context.Context, p identity.Principal) ([]leave.LeaveResponse, error) {
			called["mine"]++
			return list[:1], nil
		},
		ListPendingFn: func(ctx context.Context, p identity.Principal) ([]leave.LeaveResponse, error) {
			called["pending"]++
			assert.Equal(t, "E1", p.Caller.EmployeeID)
			return list[1:], nil
		},
		GetByIDFn: func(ctx context.Context, p identity.Principal, id int64) (leave.LeaveResponse, error) {
			called["get"]++
			return leave.LeaveResponse{ID: id}, nil
		},
		CreateFn: func(ctx context.Context, p identity.Principal, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
			called["create"]++
			return leave.LeaveResponse{ID: 100}, nil
		},
	}
	r := newRouter(t, svc, hod)

	do := func(method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		if body != "" {
			req.Header.Set("Content-Type", "application/json")
		}
		for k, v := range headers {
			req.Header.Set(k, v)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := do(http.MethodGet, "/api/v1/leave-requests?page=2&page_size=2", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w.Body.Bytes())
	assert.Equal(t, int64(3), env.Meta.Total)
	var page []leave.LeaveResponse
	require.NoError(t, json.Unmarshal(env.Data, &page))
	require.Len(t, page, 1)
	assert.Equal(t, int64(3), page[0].ID)

	assert.Equal(t, http.StatusOK, do(http.MethodGet, "/api/v1/leave-requests/my-leaves", "", nil).Code)
	assert.Equal(t, http.StatusOK, do(http.MethodGet, "/api/v1/leave-requests/pending", "", nil).Code)
	assert.Equal(t, http.StatusOK, do(http.MethodGet, "/api/v1/leave-requests/7", "", nil).Code)

	body := `{"leave_type_id":1,"start_date":"2025-06-01","end_date":"2025-06-05"}`
	headers := map[string]string{middleware.HeaderIdempotencyKey: "create-1"}
	first := do(http.MethodPost, "/api/v1/leave-requests", body, headers)
	replay := do(http.MethodPost, "/api/v1/leave-requests", body, headers)
	assert.Equal(t, http.StatusCreated, first.Code)
	assert.Equal(t, http.StatusCreated, replay.Code)
	assert.JSONEq(t, first.Body.String(), replay.Body.String())

	assert.Equal(t, map[string]int{"all": 1, "mine": 1, "pending": 1, "get": 1, "create": 1}, called)
}
