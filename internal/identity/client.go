package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

const defaultTimeout = 5 * time.Second

var errNoTimeLeft = errors.New("identity: request deadline already passed")

type userPayload struct {
	ID           string `json:"id"`
	UserID       string `json:"userId"`
	EmployeeID   string `json:"employeeId"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	DepartmentID *int64 `json:"departmentId"`
	IsActive     bool   `json:"isActive"`
}

func (u userPayload) toCaller() Caller {
	userID := u.ID
	if userID == "" {
		userID = u.UserID
	}
	return Caller{
		UserID:       userID,
		EmployeeID:   u.EmployeeID,
		Email:        u.Email,
		Role:         u.Role,
		DepartmentID: u.DepartmentID,
		IsActive:     u.IsActive,
	}
}

type validateResponse struct {
	Valid bool         `json:"valid"`
	User  *userPayload `json:"user"`
}

// Client talks to the identity service over HTTP.
type Client struct {
	baseURL string
	timeout time.Duration
	http    *fasthttp.Client
	logger  *zap.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger ...*zap.Logger) *Client {
	l := zap.L().Named("identity.gateway")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("identity.gateway")
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		http: &fasthttp.Client{
			Name:                "hr-portal",
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxIdleConnDuration: time.Minute,
		},
		logger: l,
	}
}

func (c *Client) Validate(ctx context.Context, token string) *Caller {
	if token == "" {
		return nil
	}

	var body validateResponse
	if err := c.get(ctx, "/auth/validate", token, &body); err != nil {
		c.logger.Warn("validate token failed", zap.Error(err))
		return nil
	}
	if !body.Valid || body.User == nil {
		return nil
	}

	caller := body.User.toCaller()
	return &caller
}

func (c *Client) UsersInDepartment(ctx context.Context, departmentID int64, token string) []Caller {
	var users []userPayload
	path := "/auth/users/department/" + strconv.FormatInt(departmentID, 10)
	if err := c.get(ctx, path, token, &users); err != nil {
		c.logger.Warn("list department users failed",
			zap.Int64("department_id", departmentID),
			zap.Error(err),
		)
		return []Caller{}
	}

	callers := make([]Caller, 0, len(users))
	for _, u := range users {
		callers = append(callers, u.toCaller())
	}
	return callers
}

func (c *Client) UserByEmployeeID(ctx context.Context, employeeID, token string) *Caller {
	var user *userPayload
	path := "/auth/users/employee/" + url.PathEscape(employeeID)
	if err := c.get(ctx, path, token, &user); err != nil {
		c.logger.Warn("get user by employee id failed",
			zap.String("employee_id", employeeID),
			zap.Error(err),
		)
		return nil
	}
	if user == nil {
		return nil
	}

	caller := user.toCaller()
	return &caller
}

func (c *Client) get(ctx context.Context, path, token string, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); left < timeout {
			timeout = left
		}
	}
	if timeout <= 0 {
		return errNoTimeLeft
	}

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + path)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set(fasthttp.HeaderAuthorization, "Bearer "+token)
	req.Header.Set(fasthttp.HeaderAccept, "application/json")

	if err := c.http.DoTimeout(req, resp, timeout); err != nil {
		return fmt.Errorf("identity: GET %s: %w", path, err)
	}
	if status := resp.StatusCode(); status != fasthttp.StatusOK {
		return fmt.Errorf("identity: GET %s: unexpected status %d", path, status)
	}

	return json.Unmarshal(resp.Body(), out)
}
