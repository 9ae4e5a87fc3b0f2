package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/KacperKuznik/image-hosting-api/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(t *testing.T, mutate func(r *http.Request)) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if mutate != nil {
		mutate(req)
	}
	c.Request = req
	return c
}

func TestExtractToken(t *testing.T) {
	tcs := []struct {
		name   string
		mutate func(r *http.Request)
		want   string
	}{
		{
			name:   "CookieWins",
			mutate: func(r *http.Request) { r.AddCookie(&http.Cookie{Name: "access_token", Value: "from-cookie"}) },
			want:   "from-cookie",
		},
		{
			name:   "BearerHeader",
			mutate: func(r *http.Request) { r.Header.Set("Authorization", "Bearer from-header") },
			want:   "from-header",
		},
		{
			name:   "BearerCaseInsensitive",
			mutate: func(r *http.Request) { r.Header.Set("Authorization", "bearer from-header") },
			want:   "from-header",
		},
		{
			name:   "MalformedHeader",
			mutate: func(r *http.Request) { r.Header.Set("Authorization", "from-header") },
			want:   "",
		},
		{
			name:   "NoCredentials",
			mutate: nil,
			want:   "",
		},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ExtractToken(testContext(t, tc.mutate)))
		})
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	cfg := &config.EnvConfig{}
	cfg.JWT.SecretKey = "right-secret"

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": 7,
		"exp":     time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("wrong-secret"))
	require.NoError(t, err)

	_, err = ParseToken(signed, cfg)
	assert.Error(t, err)
}

func TestParseTokenRoundTrip(t *testing.T) {
	cfg := &config.EnvConfig{}
	cfg.JWT.SecretKey = "right-secret"

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": 7,
		"exp":     time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(cfg.JWT.SecretKey))
	require.NoError(t, err)

	parsed, err := ParseToken(signed, cfg)
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	id, err := UserIDFromClaims(claims)
	require.NoError(t, err)
	assert.Equal(t, uint(7), id)
}

func TestUserIDFromClaims(t *testing.T) {
	tcs := []struct {
		name    string
		claims  jwt.MapClaims
		want    uint
		wantErr bool
	}{
		{"Float", jwt.MapClaims{"user_id": float64(42)}, 42, false},
		{"String", jwt.MapClaims{"user_id": "42"}, 42, false},
		{"Zero", jwt.MapClaims{"user_id": float64(0)}, 0, true},
		{"Negative", jwt.MapClaims{"user_id": float64(-1)}, 0, true},
		{"NonNumericString", jwt.MapClaims{"user_id": "abc"}, 0, true},
		{"Missing", jwt.MapClaims{}, 0, true},
		{"WrongType", jwt.MapClaims{"user_id": []string{"42"}}, 0, true},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			id, err := UserIDFromClaims(tc.claims)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, id)
		})
	}
}
