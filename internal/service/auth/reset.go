package auth

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/kkarthika293/Learn-Edge/internal/app_errors"
	"github.com/kkarthika293/Learn-Edge/internal/clients/email"
)

type mailSender interface {
	Send(ctx context.Context, msg email.Message) error
}

// RequestPasswordReset stores a 6-digit code on the user row and mails it.
// The code has no expiry; it is invalidated only by a successful reset.
func (u *AuthService) RequestPasswordReset(ctx context.Context, userEmail string) (uuid.UUID, error) {
	user, err := u.authRepo.UserByEmail(ctx, userEmail)
	if err != nil {
		return uuid.Nil, err
	}

	otp := fmt.Sprintf("%06d", rand.IntN(900000)+100000)
	if err := u.authRepo.SetOTP(ctx, user.ID, otp); err != nil {
		return uuid.Nil, err
	}

	msg := email.Message{
		ToName:  user.Username,
		ToEmail: user.Email,
		Subject: "Password Reset OTP",
		Body:    fmt.Sprintf("Your OTP for password reset is: %s", otp),
	}
	if err := u.mail.Send(ctx, msg); err != nil {
		return uuid.Nil, err
	}

	return user.ID, nil
}

// ConfirmPasswordReset requires an exact code match. On success the password
// is rehashed and the code cleared so it cannot be reused.
func (u *AuthService) ConfirmPasswordReset(ctx context.Context, userID uuid.UUID, otp, newPassword string) error {
	user, err := u.authRepo.UserByID(ctx, userID)
	if err != nil {
		return err
	}

	if user.OTP == nil || *user.OTP != otp {
		return app_errors.ErrInvalidOTP
	}

	if len(newPassword) > 16 || len(newPassword) < 6 {
		return app_errors.ErrIncorrectPassword
	}
	hashed, err := hashPassword(newPassword)
	if err != nil {
		return err
	}

	return u.authRepo.ResetPassword(ctx, user.ID, hashed)
}
