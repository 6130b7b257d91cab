package account

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/barbershop-booking/internal/auth"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/account"
	"github.com/BruksfildServices01/barbershop-booking/internal/infra/mailer"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
)

// Auth covers login, refresh rotation, logout and password reset.
type Auth struct {
	users     domain.UserRepository
	tokens    domain.TokenRepository
	issuer    *auth.Issuer
	denylist  Denylist
	attempts  Attempts
	sender    mailer.Sender
	clock     timezone.Clock
	publicURL string
}

func NewAuth(
	users domain.UserRepository,
	tokens domain.TokenRepository,
	issuer *auth.Issuer,
	denylist Denylist,
	attempts Attempts,
	sender mailer.Sender,
	clock timezone.Clock,
	publicURL string,
) *Auth {
	return &Auth{
		users:     users,
		tokens:    tokens,
		issuer:    issuer,
		denylist:  denylist,
		attempts:  attempts,
		sender:    sender,
		clock:     clock,
		publicURL: strings.TrimRight(publicURL, "/"),
	}
}

// ======================================================
// LOGIN
// ======================================================

func (uc *Auth) Login(ctx context.Context, email, password string) (auth.Pair, error) {
	email = domain.NormalizeEmail(email)

	ok, err := uc.attempts.Allowed(ctx, email)
	if err != nil {
		return auth.Pair{}, err
	}
	if !ok {
		return auth.Pair{}, domain.ErrTooManyAttempts
	}

	u, err := uc.users.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		return auth.Pair{}, uc.fail(ctx, email)
	}
	if err != nil {
		return auth.Pair{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return auth.Pair{}, uc.fail(ctx, email)
	}

	if u.Role == models.RoleClient && !u.EmailVerified {
		return auth.Pair{}, domain.ErrEmailNotVerified
	}
	if !u.IsActive {
		return auth.Pair{}, domain.ErrInvalidCredentials
	}

	if err := uc.attempts.Reset(ctx, email); err != nil {
		return auth.Pair{}, err
	}
	return uc.issuer.Issue(u.ID, u.Role)
}

func (uc *Auth) fail(ctx context.Context, email string) error {
	if err := uc.attempts.Fail(ctx, email); err != nil {
		return err
	}
	return domain.ErrInvalidCredentials
}

// ======================================================
// REFRESH / LOGOUT
// ======================================================

// Refresh rotates the pair: the presented refresh token is revoked.
func (uc *Auth) Refresh(ctx context.Context, raw string) (auth.Pair, error) {
	claims, err := uc.liveRefresh(ctx, raw)
	if err != nil {
		return auth.Pair{}, err
	}

	userID, _ := claims.UserID()
	u, err := uc.users.GetByID(ctx, userID)
	if errors.Is(err, domain.ErrUserNotFound) {
		return auth.Pair{}, domain.ErrInvalidToken
	}
	if err != nil {
		return auth.Pair{}, err
	}
	if !u.IsActive {
		return auth.Pair{}, domain.ErrInvalidToken
	}

	if err := uc.revoke(ctx, claims); err != nil {
		return auth.Pair{}, err
	}
	return uc.issuer.Issue(u.ID, u.Role)
}

func (uc *Auth) Logout(ctx context.Context, raw string) error {
	claims, err := uc.liveRefresh(ctx, raw)
	if err != nil {
		return err
	}
	return uc.revoke(ctx, claims)
}

func (uc *Auth) liveRefresh(ctx context.Context, raw string) (*auth.Claims, error) {
	claims, err := uc.issuer.Parse(raw, auth.TokenRefresh)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	revoked, err := uc.denylist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}

func (uc *Auth) revoke(ctx context.Context, claims *auth.Claims) error {
	ttl := uc.issuer.RefreshTTL()
	if claims.ExpiresAt != nil {
		ttl = claims.ExpiresAt.Time.Sub(uc.clock.Now())
	}
	return uc.denylist.Revoke(ctx, claims.ID, ttl)
}

// ======================================================
// PASSWORD RESET
// ======================================================

// RequestPasswordReset never reveals whether the email is registered.
func (uc *Auth) RequestPasswordReset(ctx context.Context, email string) error {
	email = domain.NormalizeEmail(email)

	u, err := uc.users.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	t := &models.AccountToken{
		Token:     newToken(),
		Purpose:   models.PurposePasswordReset,
		Email:     u.Email,
		UserID:    &u.ID,
		ExpiresAt: uc.clock.Now().Add(domain.ResetTTL),
	}
	if err := uc.tokens.Create(ctx, t); err != nil {
		return err
	}

	link := fmt.Sprintf("%s/reset-password?token=%s", uc.publicURL, t.Token)
	return uc.sender.Send(ctx, mailer.PasswordReset(u.Email, link))
}

func (uc *Auth) ResetPassword(ctx context.Context, token, password string) error {
	if err := domain.ValidatePassword(password); err != nil {
		return err
	}

	t, err := uc.tokens.Consume(ctx, token, models.PurposePasswordReset, uc.clock.Now())
	if err != nil {
		return err
	}
	if t.UserID == nil {
		return domain.ErrInvalidToken
	}

	hash, err := hashPassword(password)
	if err != nil {
		return err
	}
	return uc.users.SetPassword(ctx, *t.UserID, hash)
}
