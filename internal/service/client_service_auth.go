package service

import (
	"context"
	"strings"

	"github.com/MKhiriev/go-clinic-client/internal/logger"
	"github.com/MKhiriev/go-clinic-client/internal/validators"
	"github.com/MKhiriev/go-clinic-client/models"
)

type clientAuthService struct {
	manager   SessionManager
	validator validators.Validator
	logger    *logger.Logger
}

func NewClientAuthService(manager SessionManager, validator validators.Validator, logger *logger.Logger) AuthService {
	return &clientAuthService{manager: manager, validator: validator, logger: logger}
}

func (a *clientAuthService) Login(ctx context.Context, creds models.Credentials) (models.Session, error) {
	creds.Email = strings.TrimSpace(creds.Email)

	if err := a.validator.Validate(ctx, creds); err != nil {
		return models.Session{}, invalidInput(err)
	}

	return a.manager.Login(ctx, creds.Email, creds.Password)
}

func (a *clientAuthService) Register(ctx context.Context, reg models.Registration) (models.Session, error) {
	reg.Name = strings.TrimSpace(reg.Name)
	reg.Email = strings.TrimSpace(reg.Email)

	if err := a.validator.Validate(ctx, reg); err != nil {
		return models.Session{}, invalidInput(err)
	}

	return a.manager.Register(ctx, reg)
}

func (a *clientAuthService) Logout(ctx context.Context) error {
	return a.manager.Logout(ctx)
}

func (a *clientAuthService) Status() models.Session {
	return a.manager.Snapshot()
}

func (a *clientAuthService) Profile(ctx context.Context) (models.User, error) {
	snap := a.manager.Snapshot()
	if !snap.HasToken() {
		return models.User{}, ErrNotAuthenticated
	}

	user, err := a.manager.RefreshProfile(ctx)
	if err != nil {
		// the cached profile is still good enough to show
		a.logger.Warn().Err(err).Str("func", "clientAuthService.Profile").Msg("profile refresh failed, using cached profile")
		if current := a.manager.Snapshot(); current.User != nil {
			return *current.User, nil
		}
		return models.User{}, err
	}
	return user, nil
}

func (a *clientAuthService) UpdateProfile(ctx context.Context, update models.ProfileUpdate) (models.User, error) {
	if err := a.validator.Validate(ctx, update); err != nil {
		return models.User{}, invalidInput(err)
	}

	return a.manager.UpdateProfile(ctx, update)
}

func (a *clientAuthService) ChangePassword(ctx context.Context, change models.PasswordChange) error {
	if err := a.validator.Validate(ctx, change); err != nil {
		return invalidInput(err)
	}

	return a.manager.ChangePassword(ctx, change.CurrentPassword, change.NewPassword)
}
