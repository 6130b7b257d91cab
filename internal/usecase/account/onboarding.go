package account

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/account"
	"github.com/BruksfildServices01/barbershop-booking/internal/infra/mailer"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
)

// Onboarding creates accounts: the bootstrap admin, invited barbers and
// self-registered clients.
type Onboarding struct {
	users     domain.UserRepository
	tokens    domain.TokenRepository
	sender    mailer.Sender
	audit     *audit.Dispatcher
	clock     timezone.Clock
	publicURL string
}

func NewOnboarding(
	users domain.UserRepository,
	tokens domain.TokenRepository,
	sender mailer.Sender,
	audit *audit.Dispatcher,
	clock timezone.Clock,
	publicURL string,
) *Onboarding {
	return &Onboarding{
		users:     users,
		tokens:    tokens,
		sender:    sender,
		audit:     audit,
		clock:     clock,
		publicURL: strings.TrimRight(publicURL, "/"),
	}
}

// BootstrapAdmin creates the configured admin once. It reports whether a
// new account was created.
func (uc *Onboarding) BootstrapAdmin(ctx context.Context, email, password string) (bool, error) {
	if email == "" || password == "" {
		return false, nil
	}

	_, err := uc.users.GetByEmail(ctx, email)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return false, err
	}

	hash, err := hashPassword(password)
	if err != nil {
		return false, err
	}

	u := &models.User{
		Email:         email,
		PasswordHash:  hash,
		Role:          models.RoleAdmin,
		FirstName:     "Admin",
		IsActive:      true,
		EmailVerified: true,
	}
	if err := uc.users.Create(ctx, u, ""); err != nil {
		return false, err
	}
	return true, nil
}

// ======================================================
// BARBER INVITATION
// ======================================================

func (uc *Onboarding) InviteBarber(ctx context.Context, adminID uint, email string) error {
	email = domain.NormalizeEmail(email)

	_, err := uc.users.GetByEmail(ctx, email)
	if err == nil {
		return domain.ErrEmailTaken
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}

	t := &models.AccountToken{
		Token:     newToken(),
		Purpose:   models.PurposeBarberInvite,
		Email:     email,
		ExpiresAt: uc.clock.Now().Add(domain.InviteTTL),
	}
	if err := uc.tokens.Create(ctx, t); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   audit.ActionBarberInvited,
		Entity:   "user",
		Metadata: map[string]any{"email": email},
	})

	link := fmt.Sprintf("%s/barber/accept-invite?token=%s", uc.publicURL, t.Token)
	return uc.sender.Send(ctx, mailer.BarberInvite(email, link))
}

type AcceptInviteInput struct {
	Token     string
	Password  string
	FirstName string
	LastName  string
}

func (uc *Onboarding) AcceptInvite(ctx context.Context, in AcceptInviteInput) (*models.User, error) {
	if err := domain.ValidatePassword(in.Password); err != nil {
		return nil, err
	}

	t, err := uc.tokens.Consume(ctx, in.Token, models.PurposeBarberInvite, uc.clock.Now())
	if err != nil {
		return nil, err
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	u := &models.User{
		Email:         t.Email,
		PasswordHash:  hash,
		Role:          models.RoleBarber,
		FirstName:     strings.TrimSpace(in.FirstName),
		LastName:      strings.TrimSpace(in.LastName),
		IsActive:      true,
		EmailVerified: true,
	}
	if err := uc.users.Create(ctx, u, ""); err != nil {
		return nil, err
	}

	uc.registered(u)
	return u, nil
}

// ======================================================
// CLIENT SIGNUP
// ======================================================

type SignupInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
}

// SignupClient creates an inactive client and mails the verification link.
func (uc *Onboarding) SignupClient(ctx context.Context, in SignupInput) (*models.User, error) {
	if err := domain.ValidatePassword(in.Password); err != nil {
		return nil, err
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	u := &models.User{
		Email:        domain.NormalizeEmail(in.Email),
		PasswordHash: hash,
		Role:         models.RoleClient,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
	}
	if err := uc.users.Create(ctx, u, strings.TrimSpace(in.Phone)); err != nil {
		return nil, err
	}

	t := &models.AccountToken{
		Token:     newToken(),
		Purpose:   models.PurposeVerifyEmail,
		Email:     u.Email,
		UserID:    &u.ID,
		ExpiresAt: uc.clock.Now().Add(domain.VerifyTTL),
	}
	if err := uc.tokens.Create(ctx, t); err != nil {
		return nil, err
	}

	uc.registered(u)

	link := fmt.Sprintf("%s/verify-email?token=%s", uc.publicURL, t.Token)
	if err := uc.sender.Send(ctx, mailer.VerifyEmail(u.Email, u.FirstName, link)); err != nil {
		return nil, err
	}
	return u, nil
}

func (uc *Onboarding) VerifyEmail(ctx context.Context, token string) error {
	t, err := uc.tokens.Consume(ctx, token, models.PurposeVerifyEmail, uc.clock.Now())
	if err != nil {
		return err
	}
	if t.UserID == nil {
		return domain.ErrInvalidToken
	}
	return uc.users.MarkVerified(ctx, *t.UserID)
}

func (uc *Onboarding) registered(u *models.User) {
	uc.audit.Dispatch(audit.Event{
		UserID:   &u.ID,
		Action:   audit.ActionUserRegistered,
		Entity:   "user",
		EntityID: &u.ID,
		Metadata: map[string]any{"role": u.Role},
	})
}
