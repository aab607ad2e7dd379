package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bpmutter/tappdin-backend/internal/pkg/jwtutil"
)

const testSecret = "middleware-test-secret"

func newTestRouter(secret string, invoked *bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", AuthJWT(secret), func(c *gin.Context) {
		*invoked = true
		userID, ok := c.Get(ContextUserIDKey)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no user id in context"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"userId": userID})
	})
	return router
}

func TestAuthJWT_ValidToken(t *testing.T) {
	t.Parallel()

	var invoked bool
	router := newTestRouter(testSecret, &invoked)

	token, err := jwtutil.GenerateToken(testSecret, time.Hour, 42)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !invoked {
		t.Fatalf("expected handler to run for a valid token")
	}
}

func TestAuthJWT_RejectsBeforeHandler(t *testing.T) {
	t.Parallel()

	expiredToken, err := jwtutil.GenerateToken(testSecret, -time.Minute, 42)
	if err != nil {
		t.Fatalf("generate expired token: %v", err)
	}
	otherSecretToken, err := jwtutil.GenerateToken("some-other-secret", time.Hour, 42)
	if err != nil {
		t.Fatalf("generate token with other secret: %v", err)
	}

	cases := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "wrong scheme", header: "Basic dXNlcjpwYXNz"},
		{name: "garbage token", header: "Bearer not.a.jwt"},
		{name: "wrong secret", header: "Bearer " + otherSecretToken},
		{name: "expired token", header: "Bearer " + expiredToken},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var invoked bool
			router := newTestRouter(testSecret, &invoked)

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d: %s", rec.Code, rec.Body.String())
			}
			if invoked {
				t.Fatalf("handler must not run when the token is rejected")
			}
		})
	}
}
