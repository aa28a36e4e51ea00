package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"skill_quiz_backend/internal/model"
	"skill_quiz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type fakeAuth map[string]*model.Identity

func (f fakeAuth) Authenticate(token string) (*model.Identity, error) {
	if id, ok := f[token]; ok {
		return id, nil
	}
	return nil, errors.New("bad token")
}

func newRouter(roles ...model.UserRole) *gin.Engine {
	gin.SetMode(gin.TestMode)
	auth := fakeAuth{
		"user-token":  {UserID: 2, Role: model.RoleUser},
		"admin-token": {UserID: 1, Role: model.RoleAdmin},
	}
	r := gin.New()
	handlers := []gin.HandlerFunc{AuthMiddleware(auth)}
	if len(roles) > 0 {
		handlers = append(handlers, RoleMiddleware(roles...))
	}
	handlers = append(handlers, func(c *gin.Context) {
		id := util.GetUserFromContext(c)
		c.JSON(http.StatusOK, gin.H{"user_id": id.UserID})
	})
	r.GET("/x", handlers...)
	return r
}

func do(r *gin.Engine, header string) int {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestAuthMiddleware(t *testing.T) {
	r := newRouter()
	cases := []struct {
		header string
		want   int
	}{
		{"", http.StatusUnauthorized},
		{"user-token", http.StatusUnauthorized},
		{"Bearer nope", http.StatusUnauthorized},
		{"Bearer user-token", http.StatusOK},
	}
	for _, tc := range cases {
		if got := do(r, tc.header); got != tc.want {
			t.Fatalf("Authorization %q = %d, want %d", tc.header, got, tc.want)
		}
	}
}

func TestRoleMiddleware(t *testing.T) {
	admin := newRouter(model.RoleAdmin)
	if got := do(admin, "Bearer user-token"); got != http.StatusForbidden {
		t.Fatalf("user on admin route = %d, want 403", got)
	}
	if got := do(admin, "Bearer admin-token"); got != http.StatusOK {
		t.Fatalf("admin on admin route = %d, want 200", got)
	}

	user := newRouter(model.RoleUser)
	if got := do(user, "Bearer admin-token"); got != http.StatusOK {
		t.Fatalf("admin on user route = %d, want 200", got)
	}
}

func TestRoleMiddlewareWithoutIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/x", RoleMiddleware(model.RoleUser), func(c *gin.Context) { c.Status(http.StatusOK) })

	if got := do(r, ""); got != http.StatusUnauthorized {
		t.Fatalf("no identity = %d, want 401", got)
	}
}

func TestRoleMiddlewareAnyOf(t *testing.T) {
	r := newRouter(model.RoleAdmin, model.RoleUser)
	if got := do(r, "Bearer user-token"); got != http.StatusOK {
		t.Fatalf("user on admin|user route = %d, want 200", got)
	}
}
