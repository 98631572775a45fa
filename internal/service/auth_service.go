package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/MartinOstios/backend-posco/internal/apierror"
	"github.com/MartinOstios/backend-posco/internal/dto"
	"github.com/MartinOstios/backend-posco/internal/model"
	"github.com/MartinOstios/backend-posco/internal/repository"
	"github.com/MartinOstios/backend-posco/internal/security"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ResetCodeMailer delivers password reset codes.
type ResetCodeMailer interface {
	SendResetCode(ctx context.Context, to, name, code string, ttl time.Duration) error
}

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (dto.TokenResponse, error)
	RecoverPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, req dto.ResetPasswordRequest) error
}

type authService struct {
	tx        repository.TxManager
	employees repository.EmployeeRepository
	resets    repository.ResetTokenRepository
	tokens    *security.TokenManager
	mailer    ResetCodeMailer
	resetTTL  time.Duration
	now       func() time.Time
}

func NewAuthService(
	tx repository.TxManager,
	employees repository.EmployeeRepository,
	resets repository.ResetTokenRepository,
	tokens *security.TokenManager,
	mailer ResetCodeMailer,
	resetTTL time.Duration,
) AuthService {
	return &authService{
		tx:        tx,
		employees: employees,
		resets:    resets,
		tokens:    tokens,
		mailer:    mailer,
		resetTTL:  resetTTL,
		now:       time.Now,
	}
}

var errBadLogin = apierror.E(apierror.KindInvalidCredential, "Incorrect email or password")

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (dto.TokenResponse, error) {
	emp, err := s.employees.FindByEmail(ctx, strings.ToLower(req.Username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.TokenResponse{}, errBadLogin
		}
		return dto.TokenResponse{}, err
	}
	if !security.VerifyPassword(req.Password, emp.PasswordHash) {
		return dto.TokenResponse{}, errBadLogin
	}
	if !emp.IsActive {
		return dto.TokenResponse{}, apierror.E(apierror.KindInactiveEmployee, "Inactive employee")
	}

	token, err := s.tokens.Issue(emp.ID, 0)
	if err != nil {
		return dto.TokenResponse{}, err
	}
	return dto.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int(s.tokens.TTL().Seconds()),
	}, nil
}

// RecoverPassword replaces any live code for the email with a fresh one and
// mails it. Delivery failures are logged only.
func (s *authService) RecoverPassword(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	emp, err := s.employees.FindByEmail(ctx, email)
	if err != nil {
		return notFound(err, "The employee with this email does not exist in the system")
	}

	code, err := newResetCode()
	if err != nil {
		return err
	}
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.resets.InvalidateForEmail(txCtx, email); err != nil {
			return err
		}
		return s.resets.Create(txCtx, &model.PasswordResetToken{
			Email:     email,
			Token:     code,
			CreatedAt: s.now(),
		})
	})
	if err != nil {
		return err
	}

	if err := s.mailer.SendResetCode(ctx, email, emp.Name, code, s.resetTTL); err != nil {
		log.Error().Err(err).Str("to", email).Msg("auth: failed to send reset code")
	}
	return nil
}

func (s *authService) ResetPassword(ctx context.Context, req dto.ResetPasswordRequest) error {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	hash, err := security.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	invalid := apierror.E(apierror.KindInvalidCredential, "Invalid or expired code")

	return s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		tok, err := s.resets.FindValid(txCtx, email, req.Token, s.now().Add(-s.resetTTL))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return invalid
			}
			return err
		}
		emp, err := s.employees.FindByEmail(txCtx, email)
		if err != nil {
			return notFound(err, "The employee with this email does not exist in the system")
		}
		if !emp.IsActive {
			return apierror.E(apierror.KindInactiveEmployee, "Inactive employee")
		}
		ok, err := s.resets.Consume(txCtx, tok.ID)
		if err != nil {
			return err
		}
		if !ok {
			return invalid
		}
		return s.employees.UpdatePassword(txCtx, emp.ID, hash)
	})
}

// newResetCode returns a zero-padded 4-digit code from crypto/rand.
func newResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		return "", fmt.Errorf("generate reset code: %w", err)
	}
	return fmt.Sprintf("%04d", n.Int64()), nil
}
