package common

import (
	"context"
	"errors"

	"github.com/questdrop/backend/internal/entity"
	"github.com/questdrop/backend/internal/repository"
	"github.com/questdrop/backend/pkg/xcontext"
	"golang.org/x/exp/slices"
)

type GlobalRoleVerifier struct {
	userRepo repository.UserRepository
}

func NewGlobalRoleVerifier(userRepo repository.UserRepository) *GlobalRoleVerifier {
	return &GlobalRoleVerifier{userRepo: userRepo}
}

func (verifier *GlobalRoleVerifier) Verify(ctx context.Context, requiredRoles ...entity.GlobalRole) error {
	userID := xcontext.RequestUserID(ctx)
	user, err := verifier.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if !slices.Contains(requiredRoles, user.Role) {
		return errors.New("permission denied")
	}

	return nil
}
