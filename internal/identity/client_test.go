package identity_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Falasefemi2/hr-portal/internal/identity"

	"github.com/stretchr/testify/assert"
)

func newIdentityServer(t *testing.T, routes map[string]func(w http.ResponseWriter, r *http.Request)) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	for path, h := range routes {
		mux.HandleFunc(path, h)
	}
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_Validate(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		srv := newIdentityServer(t, map[string]func(http.ResponseWriter, *http.Request){
			"/auth/validate": func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"valid":true,"user":{"id":"u-1","employeeId":"E2","email":"e2@corp.io","role":"Employee","departmentId":10,"isActive":true}}`))
			},
		})

		c := identity.NewClient(srv.URL, time.Second)
		caller := c.Validate(context.Background(), "tok-1")

		if assert.NotNil(t, caller) {
			assert.Equal(t, "u-1", caller.UserID)
			assert.Equal(t, "E2", caller.EmployeeID)
			assert.Equal(t, "employee", caller.NormalizedRole())
			assert.True(t, caller.HasDepartment())
			assert.Equal(t, int64(10), *caller.DepartmentID)
			assert.True(t, caller.IsActive)
		}
	})

	t.Run("invalid token response", func(t *testing.T) {
		srv := newIdentityServer(t, map[string]func(http.ResponseWriter, *http.Request){
			"/auth/validate": func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"valid":false}`))
			},
		})

		c := identity.NewClient(srv.URL, time.Second)
		assert.Nil(t, c.Validate(context.Background(), "tok-1"))
	})

	t.Run("unauthorized status yields nil", func(t *testing.T) {
		srv := newIdentityServer(t, map[string]func(http.ResponseWriter, *http.Request){
			"/auth/validate": func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
			},
		})

		c := identity.NewClient(srv.URL, time.Second)
		assert.Nil(t, c.Validate(context.Background(), "tok-1"))
	})

	t.Run("empty token skips the call", func(t *testing.T) {
		c := identity.NewClient("http://127.0.0.1:1", time.Second)
		assert.Nil(t, c.Validate(context.Background(), ""))
	})
}

func TestClient_UsersInDepartment(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		srv := newIdentityServer(t, map[string]func(http.ResponseWriter, *http.Request){
			"/auth/users/department/10": func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`[{"id":"u-2","employeeId":"E2","role":"employee","departmentId":10,"isActive":true},{"id":"u-3","employeeId":"E3","role":"employee","departmentId":10,"isActive":true}]`))
			},
		})

		c := identity.NewClient(srv.URL, time.Second)
		users := c.UsersInDepartment(context.Background(), 10, "tok")

		assert.Len(t, users, 2)
		assert.Equal(t, "E2", users[0].EmployeeID)
		assert.Equal(t, "E3", users[1].EmployeeID)
	})

	t.Run("server error yields empty slice", func(t *testing.T) {
		srv := newIdentityServer(t, map[string]func(http.ResponseWriter, *http.Request){
			"/auth/users/department/10": func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		})

		c := identity.NewClient(srv.URL, time.Second)
		users := c.UsersInDepartment(context.Background(), 10, "tok")

		assert.NotNil(t, users)
		assert.Empty(t, users)
	})

	t.Run("unreachable service yields empty slice", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		c := identity.NewClient(url, 200*time.Millisecond)
		assert.Empty(t, c.UsersInDepartment(context.Background(), 10, "tok"))
	})

	t.Run("cancelled context yields empty slice", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		c := identity.NewClient("http://127.0.0.1:1", time.Second)
		assert.Empty(t, c.UsersInDepartment(ctx, 10, "tok"))
	})
}

func TestClient_UserByEmployeeID(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		srv := newIdentityServer(t, map[string]func(http.ResponseWriter, *http.Request){
			"/auth/users/employee/E2": func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"id":"u-2","employeeId":"E2","role":"employee","departmentId":10,"isActive":true}`))
			},
		})

		c := identity.NewClient(srv.URL, time.Second)
		user := c.UserByEmployeeID(context.Background(), "E2", "tok")

		if assert.NotNil(t, user) {
			assert.Equal(t, "E2", user.EmployeeID)
			assert.Equal(t, int64(10), *user.DepartmentID)
		}
	})

	t.Run("null body yields nil", func(t *testing.T) {
		srv := newIdentityServer(t, map[string]func(http.ResponseWriter, *http.Request){
			"/auth/users/employee/E9": func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`null`))
			},
		})

		c := identity.NewClient(srv.URL, time.Second)
		assert.Nil(t, c.UserByEmployeeID(context.Background(), "E9", "tok"))
	})

	t.Run("user without department", func(t *testing.T) {
		srv := newIdentityServer(t, map[string]func(http.ResponseWriter, *http.Request){
			"/auth/users/employee/E4": func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"id":"u-4","employeeId":"E4","role":"hr","departmentId":null,"isActive":true}`))
			},
		})

		c := identity.NewClient(srv.URL, time.Second)
		user := c.UserByEmployeeID(context.Background(), "E4", "tok")

		if assert.NotNil(t, user) {
			assert.False(t, user.HasDepartment())
		}
	})
}
