package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradegate/internal/config"
)

const testSecret = "test-jwt-secret-that-is-32-chars-long"

// newTestTokenService builds a service with a fixed clock for predictable
// issued-at and expiry claims.
func newTestTokenService(secret string, lifetime time.Duration, timeFunc func() time.Time) *hmacTokenService {
	return &hmacTokenService{
		signingKey:    []byte(secret),
		tokenLifetime: lifetime,
		timeFunc:      timeFunc,
		clockSkew:     2 * time.Minute,
	}
}

func TestNewTokenService(t *testing.T) {
	t.Parallel()

	t.Run("accepts a sufficiently long secret", func(t *testing.T) {
		t.Parallel()
		svc, err := NewTokenService(config.AuthConfig{
			JWTSecret:            testSecret,
			TokenLifetimeMinutes: 60,
		})
		require.NoError(t, err)
		assert.NotNil(t, svc)
	})

	t.Run("rejects a short secret", func(t *testing.T) {
		t.Parallel()
		svc, err := NewTokenService(config.AuthConfig{
			JWTSecret:            "too-short",
			TokenLifetimeMinutes: 60,
		})
		assert.Error(t, err)
		assert.Nil(t, svc)
	})
}

func TestIssue(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	tokenLifetime := 60 * time.Minute

	svc := newTestTokenService(testSecret, tokenLifetime, func() time.Time {
		return fixedTime
	})

	t.Run("issues a verifiable token", func(t *testing.T) {
		t.Parallel()
		token, err := svc.Issue(context.Background(), 42, "alice@example.com")
		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := svc.Verify(context.Background(), token)
		require.NoError(t, err)

		assert.Equal(t, int64(42), claims.UserID)
		assert.Equal(t, "alice@example.com", claims.Email)
		// Compare Unix timestamps to avoid timezone issues
		assert.Equal(t, fixedTime.Unix(), claims.IssuedAt.Unix())
		assert.Equal(t, fixedTime.Add(tokenLifetime).Unix(), claims.ExpiresAt.Unix())
		assert.NotEmpty(t, claims.ID)
	})

	t.Run("issues unique token ids", func(t *testing.T) {
		t.Parallel()
		first, err := svc.Issue(context.Background(), 1, "a@example.com")
		require.NoError(t, err)
		second, err := svc.Issue(context.Background(), 1, "a@example.com")
		require.NoError(t, err)
		assert.NotEqual(t, first, second)
	})
}

func TestVerify(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	tokenLifetime := 60 * time.Minute
	wrongSecret := "wrong-secret-that-is-long-enough-for-testing"

	tests := []struct {
		name      string
		setupFunc func() (TokenService, string)
		wantErr   error
	}{
		{
			name: "valid token",
			setupFunc: func() (TokenService, string) {
				svc := newTestTokenService(testSecret, tokenLifetime, func() time.Time {
					return fixedTime
				})
				token, _ := svc.Issue(context.Background(), 42, "alice@example.com")
				return svc, token
			},
			wantErr: nil,
		},
		{
			name: "expired token",
			setupFunc: func() (TokenService, string) {
				genSvc := newTestTokenService(testSecret, tokenLifetime, func() time.Time {
					return fixedTime
				})
				token, _ := genSvc.Issue(context.Background(), 42, "alice@example.com")

				// Verify well past expiry plus clock skew
				valSvc := newTestTokenService(testSecret, tokenLifetime, func() time.Time {
					return fixedTime.Add(tokenLifetime + time.Hour)
				})
				return valSvc, token
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "expired but within clock skew",
			setupFunc: func() (TokenService, string) {
				genSvc := newTestTokenService(testSecret, tokenLifetime, func() time.Time {
					return fixedTime
				})
				token, _ := genSvc.Issue(context.Background(), 42, "alice@example.com")

				valSvc := newTestTokenService(testSecret, tokenLifetime, func() time.Time {
					return fixedTime.Add(tokenLifetime + time.Minute)
				})
				return valSvc, token
			},
			wantErr: nil,
		},
		{
			name: "wrong signing secret",
			setupFunc: func() (TokenService, string) {
				genSvc := newTestTokenService(testSecret, tokenLifetime, func() time.Time {
					return fixedTime
				})
				token, _ := genSvc.Issue(context.Background(), 42, "alice@example.com")

				valSvc := newTestTokenService(wrongSecret, tokenLifetime, func() time.Time {
					return fixedTime
				})
				return valSvc, token
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "malformed token",
			setupFunc: func() (TokenService, string) {
				svc := newTestTokenService(testSecret, tokenLifetime, func() time.Time {
					return fixedTime
				})
				return svc, "this.is.not.a.valid.jwt.token"
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "empty token",
			setupFunc: func() (TokenService, string) {
				svc := newTestTokenService(testSecret, tokenLifetime, func() time.Time {
					return fixedTime
				})
				return svc, ""
			},
			wantErr: ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc, token := tt.setupFunc()
			claims, err := svc.Verify(context.Background(), token)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, claims)
			} else {
				assert.NoError(t, err)
				require.NotNil(t, claims)
				assert.Equal(t, int64(42), claims.UserID)
			}
		})
	}
}
