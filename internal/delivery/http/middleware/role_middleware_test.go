package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"medicore/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

func requestWithRole(role entity.Role) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx := context.WithValue(req.Context(), UserRoleKey, role)
	return req.WithContext(ctx)
}

func TestRequireRole(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("allowed role passes", func(t *testing.T) {
		rec := httptest.NewRecorder()
		RequireRole(entity.RoleDoctor)(next).ServeHTTP(rec, requestWithRole(entity.RoleDoctor))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("wrong role is forbidden", func(t *testing.T) {
		rec := httptest.NewRecorder()
		RequireRole(entity.RoleAdmin)(next).ServeHTTP(rec, requestWithRole(entity.RolePatient))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("any of several roles passes", func(t *testing.T) {
		rec := httptest.NewRecorder()
		RequireDoctorOrPatient(next).ServeHTTP(rec, requestWithRole(entity.RolePatient))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing role is unauthorized", func(t *testing.T) {
		rec := httptest.NewRecorder()
		RequireAdmin(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
