package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"schoolcomm/internal/model"
)

const testSecret = "test-secret"

func TestRegisterHashesPassword(t *testing.T) {
	var created *model.User
	userRepo := &mockUserRepo{
		CreateFn: func(ctx context.Context, user *model.User) error {
			user.ID = 1
			created = user
			return nil
		},
	}
	svc := NewAuthService(userRepo, testSecret, time.Hour)

	user, err := svc.Register(context.Background(), &model.RegisterRequest{
		Username: "teacher1",
		Password: "s3cret-pass",
		FullName: "A Teacher",
		Role:     model.RoleTeacher,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	require.NotNil(t, created)
	assert.NotEqual(t, "s3cret-pass", created.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("s3cret-pass")))
}

func TestRegisterRejectsTakenUsername(t *testing.T) {
	userRepo := &mockUserRepo{
		ExistsByUsernameFn: func(ctx context.Context, username string) (bool, error) {
			return true, nil
		},
	}
	svc := NewAuthService(userRepo, testSecret, time.Hour)

	_, err := svc.Register(context.Background(), &model.RegisterRequest{
		Username: "taken",
		Password: "s3cret-pass",
		FullName: "X",
		Role:     model.RoleParent,
	})
	require.ErrorIs(t, err, model.ErrUsernameExists)
}

func TestLoginIssuesTokenWithClaims(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	require.NoError(t, err)

	userRepo := &mockUserRepo{
		GetByUsernameFn: func(ctx context.Context, username string) (*model.User, error) {
			return &model.User{
				ID:           7,
				Username:     username,
				PasswordHash: string(hash),
				Role:         model.RoleParent,
				IsActive:     true,
			}, nil
		},
	}
	svc := NewAuthService(userRepo, testSecret, time.Hour)

	resp, err := svc.Login(context.Background(), &model.LoginRequest{Username: "parent1", Password: "s3cret-pass"})
	require.NoError(t, err)
	require.NotNil(t, resp.User)
	assert.Equal(t, int64(7), resp.User.ID)

	parsed, err := jwt.Parse(resp.Token, func(token *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, float64(7), claims["user_id"])
	assert.Equal(t, model.RoleParent, claims["role"])
}

func TestLoginRejectsBadPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("right-pass"), bcrypt.MinCost)
	require.NoError(t, err)

	userRepo := &mockUserRepo{
		GetByUsernameFn: func(ctx context.Context, username string) (*model.User, error) {
			return &model.User{ID: 7, PasswordHash: string(hash), IsActive: true}, nil
		},
	}
	svc := NewAuthService(userRepo, testSecret, time.Hour)

	_, err = svc.Login(context.Background(), &model.LoginRequest{Username: "parent1", Password: "wrong-pass"})
	require.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestLoginRejectsUnknownAndInactiveUsers(t *testing.T) {
	svc := NewAuthService(&mockUserRepo{}, testSecret, time.Hour)
	_, err := svc.Login(context.Background(), &model.LoginRequest{Username: "ghost", Password: "whatever"})
	require.ErrorIs(t, err, model.ErrInvalidCredentials, "an unknown user is indistinguishable from a bad password")

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	require.NoError(t, err)
	userRepo := &mockUserRepo{
		GetByUsernameFn: func(ctx context.Context, username string) (*model.User, error) {
			return &model.User{ID: 7, PasswordHash: string(hash), IsActive: false}, nil
		},
	}
	svc = NewAuthService(userRepo, testSecret, time.Hour)
	_, err = svc.Login(context.Background(), &model.LoginRequest{Username: "parent1", Password: "s3cret-pass"})
	require.ErrorIs(t, err, model.ErrInvalidCredentials)
}
