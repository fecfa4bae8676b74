package httpadapter

import (
	"context"
	"log/slog"

	"parceltrack/contexts/identity-access/access-service/application"
	"parceltrack/contexts/identity-access/access-service/domain/entities"
	httptransport "parceltrack/contexts/identity-access/access-service/transport/http"
)

// Handler maps HTTP DTOs to the access application service.
type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) CallerRoleHandler(ctx context.Context, identity string) (httptransport.CallerRoleResponse, error) {
	role, err := h.Service.RoleOf(ctx, identity)
	if err != nil {
		return httptransport.CallerRoleResponse{}, err
	}
	return httptransport.CallerRoleResponse{Role: string(role)}, nil
}

func (h Handler) CallerAdminHandler(ctx context.Context, identity string) (httptransport.CallerAdminResponse, error) {
	admin, err := h.Service.IsAdmin(ctx, identity)
	if err != nil {
		return httptransport.CallerAdminResponse{}, err
	}
	return httptransport.CallerAdminResponse{Admin: admin}, nil
}

func (h Handler) AssignRoleHandler(ctx context.Context, actingIdentity string, targetIdentity string, request httptransport.AssignRoleRequest) error {
	return h.Service.AssignRole(ctx, actingIdentity, targetIdentity, entities.Role(request.Role))
}

func (h Handler) GetOwnProfileHandler(ctx context.Context, identity string) (httptransport.GetProfileResponse, error) {
	profile, err := h.Service.GetOwnProfile(ctx, identity)
	if err != nil {
		return httptransport.GetProfileResponse{}, err
	}
	return httptransport.GetProfileResponse{Item: profileDTO(profile)}, nil
}

func (h Handler) GetProfileHandler(ctx context.Context, callerIdentity string, targetIdentity string) (httptransport.GetProfileResponse, error) {
	profile, err := h.Service.GetProfile(ctx, callerIdentity, targetIdentity)
	if err != nil {
		return httptransport.GetProfileResponse{}, err
	}
	return httptransport.GetProfileResponse{Item: profileDTO(profile)}, nil
}

func (h Handler) SaveOwnProfileHandler(ctx context.Context, identity string, request httptransport.SaveProfileRequest) error {
	return h.Service.SaveOwnProfile(ctx, identity, entities.Profile{
		Name:  request.Name,
		Email: request.Email,
		Phone: request.Phone,
	})
}

func (h Handler) BootstrapInitialAdminHandler(ctx context.Context, identity string, providedToken string, expectedToken string) error {
	return h.Service.SetInitialAdmin(ctx, identity, providedToken, expectedToken)
}

func profileDTO(profile entities.Profile) httptransport.ProfileDTO {
	return httptransport.ProfileDTO{
		Name:  profile.Name,
		Email: profile.Email,
		Phone: profile.Phone,
	}
}
