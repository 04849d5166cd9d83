package domain

import (
	"context"
	"errors"

	"github.com/questdrop/backend/internal/common"
	"github.com/questdrop/backend/internal/entity"
	"github.com/questdrop/backend/internal/model"
	"github.com/questdrop/backend/internal/repository"
	"github.com/questdrop/backend/pkg/errorx"
	"github.com/questdrop/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type AdminDomain interface {
	AddAdmin(ctx context.Context, req *model.AddAdminRequest) (*model.AddAdminResponse, error)
	RemoveAdmin(ctx context.Context, req *model.RemoveAdminRequest) (*model.RemoveAdminResponse, error)
	Pause(ctx context.Context, req *model.PausePlatformRequest) (*model.PausePlatformResponse, error)
	Unpause(ctx context.Context, req *model.UnpausePlatformRequest) (*model.UnpausePlatformResponse, error)
}

type adminDomain struct {
	userRepo     repository.UserRepository
	roleVerifier *common.GlobalRoleVerifier
	pauser       *common.Pauser
}

func NewAdminDomain(userRepo repository.UserRepository, pauser *common.Pauser) *adminDomain {
	return &adminDomain{
		userRepo:     userRepo,
		roleVerifier: common.NewGlobalRoleVerifier(userRepo),
		pauser:       pauser,
	}
}

func (d *adminDomain) AddAdmin(ctx context.Context, req *model.AddAdminRequest) (*model.AddAdminResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.RoleSuperAdmin); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied when adding admin: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	user, err := d.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	if user.Role == entity.RoleSuperAdmin {
		return nil, errorx.New(errorx.BadRequest, "This user is the owner")
	}

	if err := d.userRepo.UpdateRole(ctx, user.ID, entity.RoleAdmin); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update user role: %v", err)
		return nil, errorx.Unknown
	}

	return &model.AddAdminResponse{}, nil
}

func (d *adminDomain) RemoveAdmin(
	ctx context.Context, req *model.RemoveAdminRequest,
) (*model.RemoveAdminResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.RoleSuperAdmin); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied when removing admin: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	user, err := d.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	// The owner can never lose admin rights through this path.
	if user.Role == entity.RoleSuperAdmin {
		return nil, errorx.New(errorx.PermissionDenied, "Cannot remove the owner")
	}

	if err := d.userRepo.UpdateRole(ctx, user.ID, entity.RoleUser); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update user role: %v", err)
		return nil, errorx.Unknown
	}

	return &model.RemoveAdminResponse{}, nil
}

func (d *adminDomain) Pause(ctx context.Context, req *model.PausePlatformRequest) (*model.PausePlatformResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.RoleSuperAdmin); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied when pausing: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	if err := d.pauser.Pause(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot pause the platform: %v", err)
		return nil, errorx.Unknown
	}

	return &model.PausePlatformResponse{}, nil
}

func (d *adminDomain) Unpause(
	ctx context.Context, req *model.UnpausePlatformRequest,
) (*model.UnpausePlatformResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.RoleSuperAdmin); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied when unpausing: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	if err := d.pauser.Unpause(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot unpause the platform: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UnpausePlatformResponse{}, nil
}
