package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"TRIPPLANNER_BACK-END/internal/config"
	"TRIPPLANNER_BACK-END/internal/models"
	"TRIPPLANNER_BACK-END/internal/storage"
)

func testJWTConfig() *config.JWTConfig {
	return &config.JWTConfig{
		Secret:         "test-secret",
		AccessTokenTTL: time.Hour,
	}
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestRegisterValidation(t *testing.T) {
	h := NewAuthHandler(&fakeUserStore{}, testJWTConfig())

	tests := []struct {
		name     string
		payload  map[string]string
		wantErr  string
		wantCode int
	}{
		{
			name:     "username four characters",
			payload:  map[string]string{"username": "abcd", "password": "password123", "confirmPassword": "password123"},
			wantErr:  "Username must be at least 5 characters",
			wantCode: http.StatusBadRequest,
		},
		{
			// Four characters even though the UTF-8 encoding is 12 bytes.
			name:     "username four multibyte characters",
			payload:  map[string]string{"username": "日本語国", "password": "password123", "confirmPassword": "password123"},
			wantErr:  "Username must be at least 5 characters",
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "password seven multibyte characters",
			payload:  map[string]string{"username": "alice1", "password": "ぱすわーど12", "confirmPassword": "ぱすわーど12"},
			wantErr:  "Password must be at least 8 characters",
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "password seven characters",
			payload:  map[string]string{"username": "alice1", "password": "1234567", "confirmPassword": "1234567"},
			wantErr:  "Password must be at least 8 characters",
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "passwords do not match",
			payload:  map[string]string{"username": "alice1", "password": "password123", "confirmPassword": "password124"},
			wantErr:  "Passwords do not match",
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, h.Register, "/register", tt.payload)
			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantErr, decodeBody(t, rec)["error"])
		})
	}
}

func TestRegisterSuccess(t *testing.T) {
	var created models.User
	users := &fakeUserStore{
		usernameExistsFn: func(ctx context.Context, username string) (bool, error) {
			return false, nil
		},
		createFn: func(ctx context.Context, user models.User) error {
			created = user
			return nil
		},
	}
	h := NewAuthHandler(users, testJWTConfig())

	rec := postJSON(t, h.Register, "/register", map[string]string{
		"username":        "alice", // exactly five characters
		"password":        "password123",
		"confirmPassword": "password123",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Account created successfully", body["message"])
	assert.NotEmpty(t, body["token"])

	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "alice", user["username"])
	assert.Equal(t, created.ID.String(), user["id"])

	// The plaintext password must not be stored; the hash must verify.
	assert.NotEqual(t, "password123", created.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("password123")))
}

func TestRegisterDuplicateUsername(t *testing.T) {
	users := &fakeUserStore{
		usernameExistsFn: func(ctx context.Context, username string) (bool, error) {
			return true, nil
		},
	}
	h := NewAuthHandler(users, testJWTConfig())

	rec := postJSON(t, h.Register, "/register", map[string]string{
		"username":        "alice",
		"password":        "password123",
		"confirmPassword": "password123",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Username already exists", decodeBody(t, rec)["error"])
}

func TestRegisterDuplicateRace(t *testing.T) {
	// The proactive check passes but the insert loses a race; the unique
	// constraint violation maps to the same client-facing error.
	users := &fakeUserStore{
		usernameExistsFn: func(ctx context.Context, username string) (bool, error) {
			return false, nil
		},
		createFn: func(ctx context.Context, user models.User) error {
			return storage.ErrDuplicateUsername
		},
	}
	h := NewAuthHandler(users, testJWTConfig())

	rec := postJSON(t, h.Register, "/register", map[string]string{
		"username":        "alice",
		"password":        "password123",
		"confirmPassword": "password123",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Username already exists", decodeBody(t, rec)["error"])
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
	require.NoError(t, err)

	users := &fakeUserStore{
		getByUsernameFn: func(ctx context.Context, username string) (models.User, error) {
			if username == "known" {
				return models.User{ID: uuid.New(), Username: "known", PasswordHash: string(hash)}, nil
			}
			return models.User{}, storage.ErrNotFound
		},
	}
	h := NewAuthHandler(users, testJWTConfig())

	unknownUser := postJSON(t, h.Login, "/login", map[string]string{
		"username": "nobody", "password": "whatever123",
	})
	wrongPassword := postJSON(t, h.Login, "/login", map[string]string{
		"username": "known", "password": "wrong-password",
	})

	assert.Equal(t, http.StatusUnauthorized, unknownUser.Code)
	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	// Identical bodies: the response must not reveal which check failed.
	assert.Equal(t, unknownUser.Body.String(), wrongPassword.Body.String())
}

func TestLoginSuccess(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
	require.NoError(t, err)
	userID := uuid.New()

	users := &fakeUserStore{
		getByUsernameFn: func(ctx context.Context, username string) (models.User, error) {
			return models.User{ID: userID, Username: "known", PasswordHash: string(hash)}, nil
		},
	}
	h := NewAuthHandler(users, testJWTConfig())

	rec := postJSON(t, h.Login, "/login", map[string]string{
		"username": "known", "password": "correct-password",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Login successful", body["message"])
	assert.NotEmpty(t, body["token"])

	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, userID.String(), user["id"])
}

func TestRegisterRejectsNonPost(t *testing.T) {
	h := NewAuthHandler(&fakeUserStore{}, testJWTConfig())
	req := httptest.NewRequest(http.MethodGet, "/register", nil)
	rec := httptest.NewRecorder()
	h.Register(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
