package repository

import (
	"context"

	"github.com/questdrop/backend/internal/entity"
	"github.com/questdrop/backend/pkg/xcontext"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByWalletAddress(ctx context.Context, walletAddress string) (*entity.User, error)
	UpdateRole(ctx context.Context, id string, role entity.GlobalRole) error
}

type userRepository struct{}

func NewUserRepository() *userRepository {
	return &userRepository{}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	return xcontext.DB(ctx).Create(user).Error
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var record entity.User
	if err := xcontext.DB(ctx).Take(&record, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *userRepository) GetByWalletAddress(ctx context.Context, walletAddress string) (*entity.User, error) {
	var record entity.User
	err := xcontext.DB(ctx).Take(&record, "wallet_address=?", walletAddress).Error
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *userRepository) UpdateRole(ctx context.Context, id string, role entity.GlobalRole) error {
	return xcontext.DB(ctx).Model(&entity.User{}).
		Where("id=?", id).
		Update("role", role).Error
}
