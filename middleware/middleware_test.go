package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/holocron-api/apperrors"
	"github.com/holocron-api/dto"
	"github.com/holocron-api/models"
	"github.com/samber/oops"
	"github.com/stretchr/testify/assert"
)

type stubTokens map[string]*dto.TokenClaims

func (s stubTokens) Validate(_ context.Context, token string) (*dto.TokenClaims, error) {
	if claims, ok := s[token]; ok {
		return claims, nil
	}
	return nil, oops.Code(apperrors.CodeTokenExpired).Errorf("Token has expired")
}

type stubUsers map[uint]*models.User

func (s stubUsers) GetUser(_ context.Context, id uint) (*models.User, error) {
	if user, ok := s[id]; ok {
		return user, nil
	}
	return nil, apperrors.NotFound("User not found")
}

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers = append(handlers, func(c *gin.Context) {
		id, _ := UserID(c)
		c.JSON(http.StatusOK, gin.H{"user_id": id})
	})
	r.GET("/api/private", handlers...)
	return r
}

func get(r http.Handler, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/private", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestAuthMiddleware(t *testing.T) {
	tokens := stubTokens{"good": {UserID: 7}}
	r := newRouter(AuthMiddleware(tokens))

	tests := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"missing header", "", http.StatusUnauthorized, `{"msg":"Missing authorization header"}`},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, `{"msg":"Authorization header must be 'Bearer <token>'"}`},
		{"no token", "Bearer ", http.StatusUnauthorized, `{"msg":"Authorization header must be 'Bearer <token>'"}`},
		{"expired", "Bearer stale", http.StatusUnauthorized, `{"msg":"Token has expired"}`},
		{"valid", "Bearer good", http.StatusOK, `{"user_id":7}`},
		{"scheme is case-insensitive", "bearer good", http.StatusOK, `{"user_id":7}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(r, tt.header)
			assert.Equal(t, tt.status, rec.Code)
			assert.JSONEq(t, tt.body, rec.Body.String())
		})
	}
}

func TestAdminMiddleware(t *testing.T) {
	tokens := stubTokens{
		"admin":    {UserID: 1},
		"user":     {UserID: 2},
		"disabled": {UserID: 3},
		"ghost":    {UserID: 4},
	}
	users := stubUsers{
		1: {ID: 1, IsActive: true, Roles: []models.Role{{Name: models.RoleAdmin}}},
		2: {ID: 2, IsActive: true},
		3: {ID: 3, IsActive: false, Roles: []models.Role{{Name: models.RoleAdmin}}},
	}
	r := newRouter(AuthMiddleware(tokens), AdminMiddleware(users))

	assert.Equal(t, http.StatusOK, get(r, "Bearer admin").Code)
	assert.Equal(t, http.StatusForbidden, get(r, "Bearer user").Code)
	assert.Equal(t, http.StatusForbidden, get(r, "Bearer disabled").Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "Bearer ghost").Code)

	standalone := newRouter(AdminMiddleware(users))
	assert.Equal(t, http.StatusUnauthorized, get(standalone, "").Code)
}

func TestRespondError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"not found", apperrors.NotFound("Favorite not found"), http.StatusNotFound, "Favorite not found"},
		{"conflict", apperrors.Conflict("Favorite already exists"), http.StatusConflict, "Favorite already exists"},
		{"internal hides detail", apperrors.Internal(errors.New("pq: connection reset"), "failed"), http.StatusInternalServerError, "Internal server error"},
		{"uncoded is internal", errors.New("boom"), http.StatusInternalServerError, "Internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)

			RespondError(c, tt.err)

			assert.Equal(t, tt.status, rec.Code)
			assert.JSONEq(t, `{"msg":"`+tt.msg+`"}`, rec.Body.String())
			assert.Len(t, c.Errors, 1)
		})
	}
}

func TestNoRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.NoRoute(NoRoute())

	for path, contentType := range map[string]string{
		"/api":         "application/json",
		"/api/missing": "application/json",
		"/apiary":      "text/html",
		"/":            "text/html",
	} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
		assert.Contains(t, rec.Header().Get("Content-Type"), contentType, path)
	}
}
