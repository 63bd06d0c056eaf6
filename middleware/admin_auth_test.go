package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	commonConfig "github.com/Xushengqwer/go-common/config"
	"github.com/Xushengqwer/go-common/constants"
	"github.com/Xushengqwer/go-common/core"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xushengqwer/comment_service/config"
)

var testAuth = config.AuthConfig{JWTSecret: "test-secret", Issuer: "auth-service"}

func newTestRouter(t *testing.T, handlers ...gin.HandlerFunc) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin", handlers...)
	return r
}

func newLogger(t *testing.T) *core.ZapLogger {
	t.Helper()
	logger, err := core.NewZapLogger(commonConfig.ZapConfig{})
	require.NoError(t, err)
	return logger
}

func signClaims(t *testing.T, secret string, claims *AdminClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func doGet(r http.Handler, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAdminAuthMiddleware(t *testing.T) {
	var seenUserID string
	r := newTestRouter(t, AdminAuthMiddleware(testAuth, newLogger(t)), func(c *gin.Context) {
		seenUserID = c.GetString(string(constants.UserIDKey))
		c.Status(http.StatusNoContent)
	})

	valid, err := IssueAdminToken(testAuth, "admin-1", time.Hour)
	require.NoError(t, err)

	expired, err := IssueAdminToken(testAuth, "admin-1", -time.Minute)
	require.NoError(t, err)

	viewer := signClaims(t, testAuth.JWTSecret, &AdminClaims{
		UserID: "user-9",
		Role:   "viewer",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    testAuth.Issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	otherIssuer := signClaims(t, testAuth.JWTSecret, &AdminClaims{
		UserID: "admin-2",
		Role:   RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "someone-else",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	wrongSecret, err := IssueAdminToken(config.AuthConfig{JWTSecret: "other", Issuer: testAuth.Issuer}, "admin-1", time.Hour)
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"empty bearer", "Bearer ", http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized},
		{"expired", "Bearer " + expired, http.StatusUnauthorized},
		{"wrong secret", "Bearer " + wrongSecret, http.StatusUnauthorized},
		{"wrong issuer", "Bearer " + otherIssuer, http.StatusUnauthorized},
		{"not admin", "Bearer " + viewer, http.StatusForbidden},
		{"admin", "Bearer " + valid, http.StatusNoContent},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			seenUserID = ""
			w := doGet(r, tc.header)
			assert.Equal(t, tc.want, w.Code)
			if tc.want == http.StatusNoContent {
				assert.Equal(t, "admin-1", seenUserID)
			} else {
				assert.Empty(t, seenUserID, "被拒绝的请求不应进入处理函数")
			}
		})
	}
}

func TestParseAdminToken_RejectsNoneAlg(t *testing.T) {
	claims := &AdminClaims{UserID: "x", Role: RoleAdmin, RegisteredClaims: jwt.RegisteredClaims{Issuer: testAuth.Issuer}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ParseAdminToken(testAuth, token)
	assert.Error(t, err)
}
