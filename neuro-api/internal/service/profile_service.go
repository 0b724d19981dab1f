package service

import (
	"context"
	"errors"
	"strings"

	"github.com/weiawesome/neurolab/neuro-api/internal/audit"
	"github.com/weiawesome/neurolab/neuro-api/internal/domain"
	"github.com/weiawesome/neurolab/neuro-api/internal/repository"
	"github.com/weiawesome/neurolab/pkg/log"
)

// Profile validation messages.
const (
	MsgNameRequired = "Full name cannot be empty"
	MsgInvalidEmail = "Please enter a valid email address"
)

type profileServiceImpl struct {
	repo repository.ProfileRepository
}

func NewProfileService(repo repository.ProfileRepository) ProfileService {
	return &profileServiceImpl{repo: repo}
}

// GetProfile retrieves a profile by user ID.
func (s *profileServiceImpl) GetProfile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	profile, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return profile, nil
}

// UpdateProfile applies the non-nil fields of req. A provided name must not
// be blank and a provided email must contain '@'.
func (s *profileServiceImpl) UpdateProfile(ctx context.Context, userID string, req *domain.UpdateProfileRequest) (*domain.UserProfile, error) {
	l := log.Ctx(ctx)

	if req.FullName != nil && strings.TrimSpace(*req.FullName) == "" {
		audit.LogWithDetail(ctx, audit.ActionUpdateProfileFailed, userID, MsgNameRequired, "profile update rejected")
		return nil, invalid(MsgNameRequired)
	}
	if req.Email != nil && !strings.Contains(*req.Email, "@") {
		audit.LogWithDetail(ctx, audit.ActionUpdateProfileFailed, userID, MsgInvalidEmail, "profile update rejected")
		return nil, invalid(MsgInvalidEmail)
	}

	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		profile.FullName = strings.TrimSpace(*req.FullName)
	}
	if req.Email != nil {
		profile.Email = strings.TrimSpace(*req.Email)
	}
	if req.ProfilePicture != nil {
		profile.ProfilePicture = *req.ProfilePicture
	}

	if err := s.repo.Update(ctx, profile); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrNotFound
		case errors.Is(err, repository.ErrEmailExists):
			return nil, ErrEmailExists
		}
		l.Error().Err(err).Str(log.FieldUserID, userID).Msg("failed to update profile")
		return nil, err
	}

	audit.Log(ctx, audit.ActionUpdateProfile, userID, "profile updated")
	return profile, nil
}
