package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/kkarthika293/Learn-Edge/internal/app_errors"
	"github.com/kkarthika293/Learn-Edge/internal/clients/email"
	"github.com/kkarthika293/Learn-Edge/internal/config"
	"github.com/kkarthika293/Learn-Edge/internal/models"
	"github.com/kkarthika293/Learn-Edge/pkg/logger"
)

type fakeUserRepo struct {
	users map[uuid.UUID]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*models.User)}
}

func (r *fakeUserRepo) CreateUser(_ context.Context, user models.User) (*models.User, error) {
	for _, u := range r.users {
		if u.Username == user.Username || u.Email == user.Email {
			return nil, app_errors.ErrUserExists
		}
	}
	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	r.users[user.ID] = &user
	return &user, nil
}

func (r *fakeUserRepo) UserByName(_ context.Context, username string) (*models.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, app_errors.ErrUserNotFound
}

func (r *fakeUserRepo) UserByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, app_errors.ErrUserNotFound
}

func (r *fakeUserRepo) UserByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, app_errors.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) SetOTP(_ context.Context, userID uuid.UUID, otp string) error {
	u, ok := r.users[userID]
	if !ok {
		return app_errors.ErrUserNotFound
	}
	u.OTP = &otp
	return nil
}

func (r *fakeUserRepo) ResetPassword(_ context.Context, userID uuid.UUID, hashedPassword string) error {
	u, ok := r.users[userID]
	if !ok {
		return app_errors.ErrUserNotFound
	}
	u.Password = hashedPassword
	u.OTP = nil
	return nil
}

type fakeTokenRepo struct {
	tokens map[uuid.UUID]*models.RefreshToken
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: make(map[uuid.UUID]*models.RefreshToken)}
}

func (r *fakeTokenRepo) Create(_ context.Context, userID uuid.UUID, token *jwt.Token) (*models.RefreshToken, error) {
	exp, err := token.Claims.GetExpirationTime()
	if err != nil {
		return nil, err
	}
	rt := &models.RefreshToken{
		UserID:      userID,
		HashedToken: token.Raw,
		CreatedAt:   time.Now(),
		ExpiresAt:   exp.Time,
	}
	r.tokens[userID] = rt
	return rt, nil
}

func (r *fakeTokenRepo) ByPrimaryKey(_ context.Context, userID uuid.UUID, token *jwt.Token) (*models.RefreshToken, error) {
	rt, ok := r.tokens[userID]
	if !ok || rt.HashedToken != token.Raw {
		return nil, app_errors.ErrTokenNotFound
	}
	return rt, nil
}

func (r *fakeTokenRepo) DeleteUserTokens(_ context.Context, userID uuid.UUID) error {
	delete(r.tokens, userID)
	return nil
}

type fakeMailSender struct {
	sent []email.Message
}

func (s *fakeMailSender) Send(_ context.Context, msg email.Message) error {
	s.sent = append(s.sent, msg)
	return nil
}

func newTestService() (*AuthService, *fakeUserRepo, *fakeTokenRepo, *fakeMailSender) {
	userRepo := newFakeUserRepo()
	tokenRepo := newFakeTokenRepo()
	mail := &fakeMailSender{}
	manager := NewJWTManager("test-secret", "test", time.Minute, time.Hour)
	admin := config.Admin{Username: "admin", Password: "admin-secret"}
	svc := NewAuthService(logger.New("local"), manager, userRepo, tokenRepo, mail, admin)
	return svc, userRepo, tokenRepo, mail
}

func TestCreateUser(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, models.User{
		Username: "alice",
		Email:    "alice@test.test",
		Password: "password",
		Role:     "superuser",
	})
	assert.NoError(t, err)
	assert.Equal(t, models.UserRole, created.Role)
	assert.NotEqual(t, "password", created.Password)

	_, err = svc.CreateUser(ctx, models.User{
		Username: "alice",
		Email:    "other@test.test",
		Password: "password",
	})
	assert.ErrorIs(t, err, app_errors.ErrUserExists)

	_, err = svc.CreateUser(ctx, models.User{
		Username: "bob",
		Email:    "bob@test.test",
		Password: "pw",
	})
	assert.ErrorIs(t, err, app_errors.ErrIncorrectPassword)

	educator, err := svc.CreateUser(ctx, models.User{
		Username: "carol",
		Email:    "carol@test.test",
		Password: "password",
		Role:     models.EducatorRole,
	})
	assert.NoError(t, err)
	assert.Equal(t, models.EducatorRole, educator.Role)
}

func TestLoginUser(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, models.User{
		Username: "alice",
		Email:    "alice@test.test",
		Password: "password",
	})
	assert.NoError(t, err)

	access, refresh, err := svc.LoginUser(ctx, "alice", "password")
	assert.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)

	_, _, err = svc.LoginUser(ctx, "alice", "wrongpass")
	assert.ErrorIs(t, err, app_errors.ErrIncorrectPassword)

	_, _, err = svc.LoginUser(ctx, "nobody", "password")
	assert.ErrorIs(t, err, app_errors.ErrUserNotFound)
}

func TestLoginAdmin(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.LoginAdmin(ctx, "admin", "wrong")
	assert.ErrorIs(t, err, app_errors.ErrIncorrectPassword)

	token, err := svc.LoginAdmin(ctx, "admin", "admin-secret")
	assert.NoError(t, err)

	userID, roles, err := svc.AccessClaims(ctx, token)
	assert.NoError(t, err)
	assert.Equal(t, uuid.Nil, userID)
	assert.Equal(t, []string{models.AdminRole}, roles)
}

func TestPasswordReset(t *testing.T) {
	svc, userRepo, _, mail := newTestService()
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, models.User{
		Username: "alice",
		Email:    "alice@test.test",
		Password: "password",
	})
	assert.NoError(t, err)
	hashedBefore := created.Password

	userID, err := svc.RequestPasswordReset(ctx, "alice@test.test")
	assert.NoError(t, err)
	assert.Equal(t, created.ID, userID)
	assert.Len(t, mail.sent, 1)

	stored := userRepo.users[userID]
	assert.NotNil(t, stored.OTP)
	assert.Len(t, *stored.OTP, 6)
	assert.Contains(t, mail.sent[0].Body, *stored.OTP)

	err = svc.ConfirmPasswordReset(ctx, userID, "000000x", "newpassword")
	assert.ErrorIs(t, err, app_errors.ErrInvalidOTP)
	assert.Equal(t, hashedBefore, stored.Password)

	err = svc.ConfirmPasswordReset(ctx, userID, *stored.OTP, "newpassword")
	assert.NoError(t, err)
	assert.NotEqual(t, hashedBefore, stored.Password)
	assert.Nil(t, stored.OTP)

	_, _, err = svc.LoginUser(ctx, "alice", "newpassword")
	assert.NoError(t, err)

	_, err = svc.RequestPasswordReset(ctx, "nobody@test.test")
	assert.ErrorIs(t, err, app_errors.ErrUserNotFound)
}

func TestRefreshTokens(t *testing.T) {
	svc, _, tokenRepo, _ := newTestService()
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, models.User{
		Username: "alice",
		Email:    "alice@test.test",
		Password: "password",
	})
	assert.NoError(t, err)

	_, refresh, err := svc.LoginUser(ctx, "alice", "password")
	assert.NoError(t, err)

	pair, err := svc.RefreshTokens(ctx, refresh)
	assert.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken.Raw)

	// the old refresh token is rotated out
	_, err = svc.RefreshTokens(ctx, refresh)
	assert.ErrorIs(t, err, app_errors.ErrTokenNotFound)

	assert.NoError(t, svc.Logout(ctx, created.ID))
	_, ok := tokenRepo.tokens[created.ID]
	assert.False(t, ok)
}
