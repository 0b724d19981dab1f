package service

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/weiawesome/neurolab/neuro-api/internal/audit"
	"github.com/weiawesome/neurolab/neuro-api/internal/domain"
	"github.com/weiawesome/neurolab/neuro-api/internal/repository"
	"github.com/weiawesome/neurolab/pkg/log"
)

// Signup validation rules.
const (
	MinPasswordLength   = 6
	MsgMissingFields    = "Please provide all required fields"
	MsgPasswordTooShort = "Password must be at least 6 characters"
)

type accountServiceImpl struct {
	repo repository.AccountRepository
	cost int
}

// NewAccountService creates an account service hashing passwords with
// the given bcrypt cost. A zero cost uses bcrypt.DefaultCost.
func NewAccountService(repo repository.AccountRepository, cost int) AccountService {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &accountServiceImpl{repo: repo, cost: cost}
}

// Signup registers a new account.
func (s *accountServiceImpl) Signup(ctx context.Context, req *domain.SignupRequest) (*domain.AccountSummary, error) {
	l := log.Ctx(ctx)

	fullName := strings.TrimSpace(req.FullName)
	email := strings.TrimSpace(req.Email)

	switch {
	case fullName == "" || email == "" || req.Password == "":
		audit.LogWithDetail(ctx, audit.ActionSignupRejected, "", email, "signup rejected: missing fields")
		return nil, invalid(MsgMissingFields)
	case !strings.Contains(email, "@"):
		audit.LogWithDetail(ctx, audit.ActionSignupRejected, "", email, "signup rejected: invalid email")
		return nil, invalid(MsgInvalidEmail)
	case len(req.Password) < MinPasswordLength:
		audit.LogWithDetail(ctx, audit.ActionSignupRejected, "", email, "signup rejected: short password")
		return nil, invalid(MsgPasswordTooShort)
	}

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		l.Error().Err(err).Msg("failed to hash password")
		return nil, err
	}

	account := &domain.Account{
		FullName:     fullName,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	if err := s.repo.Create(ctx, account); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			audit.LogWithDetail(ctx, audit.ActionSignupRejected, "", email, "signup rejected: email exists")
			return nil, ErrEmailExists
		}
		l.Error().Err(err).Msg("failed to create account")
		return nil, err
	}

	audit.Log(ctx, audit.ActionSignup, account.ID, "account registered")

	summary := account.ToSummary()
	return &summary, nil
}
