package service

import (
	"context"
	"time"

	"coreclad-be/internal/dto"
	"coreclad-be/internal/pkg/logger"
	adminEvents "coreclad-be/pkg/admin/events"
	"coreclad-be/pkg/session"
)

type IAuthService interface {
	Login(ctx context.Context, client *AdminClient, req *dto.LoginRequest) (*dto.IdentityResponse, error)
	Logout(ctx context.Context, client *AdminClient) error
	Session(ctx context.Context, client *AdminClient) *dto.SessionResponse
}

type authService struct {
	publisher    adminEvents.Publisher
	logger       logger.ILogger
	loginTimeout time.Duration
}

func NewAuthService(publisher adminEvents.Publisher, logger logger.ILogger, loginTimeout time.Duration) IAuthService {
	return &authService{
		publisher:    publisher,
		logger:       logger,
		loginTimeout: loginTimeout,
	}
}

func (s *authService) Login(ctx context.Context, client *AdminClient, req *dto.LoginRequest) (*dto.IdentityResponse, error) {
	if s.loginTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.loginTimeout)
		defer cancel()
	}

	id, err := client.Store.Login(ctx, req.Email, req.Password)
	if err != nil {
		s.logger.Warn("AUTH", "Admin login failed", map[string]interface{}{
			"client_id": client.ID,
			"error":     err.Error(),
		})
		return nil, err
	}

	// A new login starts from a clean product list
	client.View.Reset()

	s.logger.Info("AUTH", "Admin logged in", map[string]interface{}{
		"client_id":  client.ID,
		"account_id": id.Id,
	})
	s.publisher.PublishAdminLogin(context.WithoutCancel(ctx), id, client.ID)

	return identityResponse(id), nil
}

func (s *authService) Logout(ctx context.Context, client *AdminClient) error {
	id, wasIn := client.Store.Identity()

	if err := client.Store.Logout(ctx); err != nil {
		s.logger.Error("AUTH", "Admin logout failed", map[string]interface{}{
			"client_id": client.ID,
			"error":     err.Error(),
		})
		return err
	}

	client.View.Reset()

	if wasIn {
		s.logger.Info("AUTH", "Admin logged out", map[string]interface{}{
			"client_id":  client.ID,
			"account_id": id.Id,
		})
		s.publisher.PublishAdminLogout(context.WithoutCancel(ctx), id, client.ID)
	}
	return nil
}

func (s *authService) Session(ctx context.Context, client *AdminClient) *dto.SessionResponse {
	snap := client.Store.Snapshot()
	res := &dto.SessionResponse{
		State:   snap.State.String(),
		Loading: snap.Loading,
	}
	if snap.Identity != nil {
		res.Identity = identityResponse(*snap.Identity)
	}
	return res
}

func identityResponse(id session.Identity) *dto.IdentityResponse {
	return &dto.IdentityResponse{
		Id:    id.Id,
		Email: id.Email,
		Role:  id.Role,
	}
}
