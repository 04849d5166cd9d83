package domain

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"
	"github.com/questdrop/backend/internal/entity"
	"github.com/questdrop/backend/internal/model"
	"github.com/questdrop/backend/internal/repository"
	"github.com/questdrop/backend/pkg/crypto"
	"github.com/questdrop/backend/pkg/errorx"
	"github.com/questdrop/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type AuthDomain interface {
	WalletLogin(ctx context.Context, req *model.WalletLoginRequest) (*model.WalletLoginResponse, error)
	WalletVerify(ctx context.Context, req *model.WalletVerifyRequest) (*model.WalletVerifyResponse, error)
	Refresh(ctx context.Context, req *model.RefreshTokenRequest) (*model.RefreshTokenResponse, error)
	GetMe(ctx context.Context, req *model.GetMeRequest) (*model.GetMeResponse, error)
}

type authDomain struct {
	userRepo         repository.UserRepository
	refreshTokenRepo repository.RefreshTokenRepository
}

func NewAuthDomain(
	userRepo repository.UserRepository,
	refreshTokenRepo repository.RefreshTokenRepository,
) *authDomain {
	return &authDomain{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
	}
}

func (d *authDomain) WalletLogin(
	ctx context.Context, req *model.WalletLoginRequest,
) (*model.WalletLoginResponse, error) {
	if !common.IsHexAddress(req.Address) {
		return nil, errorx.New(errorx.BadRequest, "Invalid wallet address")
	}

	nonce, err := crypto.GenerateRandomString()
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate nonce: %v", err)
		return nil, errorx.Unknown
	}

	// The nonce travels inside a signed short-lived token instead of a
	// server-side session, so login needs no shared state.
	loginToken, err := xcontext.TokenEngine(ctx).Generate(
		xcontext.Configs(ctx).Auth.WalletLoginExpiration,
		model.WalletLoginToken{
			Address: common.HexToAddress(req.Address).Hex(),
			Nonce:   nonce,
		})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate login token: %v", err)
		return nil, errorx.Unknown
	}

	return &model.WalletLoginResponse{Nonce: nonce, LoginToken: loginToken}, nil
}

func (d *authDomain) WalletVerify(
	ctx context.Context, req *model.WalletVerifyRequest,
) (*model.WalletVerifyResponse, error) {
	var loginToken model.WalletLoginToken
	if err := xcontext.TokenEngine(ctx).Verify(req.LoginToken, &loginToken); err != nil {
		xcontext.Logger(ctx).Debugf("Cannot verify login token: %v", err)
		return nil, errorx.New(errorx.Unauthenticated, "The login challenge is invalid or expired")
	}

	if err := verifyWalletAnswer(req.Signature, loginToken.Nonce, loginToken.Address); err != nil {
		xcontext.Logger(ctx).Debugf("Cannot verify wallet answer: %v", err)
		return nil, errorx.New(errorx.Unauthenticated, "Invalid signature")
	}

	user, err := d.userRepo.GetByWalletAddress(ctx, loginToken.Address)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot get user by wallet address: %v", err)
			return nil, errorx.Unknown
		}

		role := entity.RoleUser
		if loginToken.Address == xcontext.Configs(ctx).Platform.OwnerWalletAddress {
			role = entity.RoleSuperAdmin
		}

		user = &entity.User{
			Base:          entity.Base{ID: uuid.NewString()},
			WalletAddress: sql.NullString{Valid: true, String: loginToken.Address},
			Name:          loginToken.Address,
			Role:          role,
		}

		if err := d.userRepo.Create(ctx, user); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot create user: %v", err)
			return nil, errorx.Unknown
		}
	}

	accessToken, err := xcontext.TokenEngine(ctx).Generate(
		xcontext.Configs(ctx).Auth.AccessToken.Expiration,
		model.AccessToken{
			ID:      user.ID,
			Name:    user.Name,
			Address: user.WalletAddress.String,
		})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate access token: %v", err)
		return nil, errorx.Unknown
	}

	refreshToken, err := d.generateRefreshToken(ctx, user.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate refresh token: %v", err)
		return nil, errorx.Unknown
	}

	return &model.WalletVerifyResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (d *authDomain) Refresh(
	ctx context.Context, req *model.RefreshTokenRequest,
) (*model.RefreshTokenResponse, error) {
	var refreshToken model.RefreshToken
	if err := xcontext.TokenEngine(ctx).Verify(req.RefreshToken, &refreshToken); err != nil {
		xcontext.Logger(ctx).Debugf("Cannot verify refresh token: %v", err)
		return nil, errorx.New(errorx.Unauthenticated, "Invalid refresh token")
	}

	hashedFamily := crypto.SHA256([]byte(refreshToken.Family))
	storedToken, err := d.refreshTokenRepo.Get(ctx, hashedFamily)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.Unauthenticated, "Invalid refresh token")
		}

		xcontext.Logger(ctx).Errorf("Cannot get refresh token: %v", err)
		return nil, errorx.Unknown
	}

	if time.Now().After(storedToken.Expiration) {
		return nil, errorx.New(errorx.TokenExpired, "Your refresh token is expired")
	}

	// A counter mismatch means an old token of this family was replayed.
	// Revoke the whole family so the thief and the victim both re-login.
	if refreshToken.Counter != storedToken.Counter {
		if err := d.refreshTokenRepo.Delete(ctx, hashedFamily); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot delete stolen refresh token family: %v", err)
			return nil, errorx.Unknown
		}

		return nil, errorx.New(errorx.StolenDetected, "Your refresh token may be stolen")
	}

	user, err := d.userRepo.GetByID(ctx, storedToken.UserID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user of refresh token: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.refreshTokenRepo.Rotate(ctx, hashedFamily); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot rotate refresh token: %v", err)
		return nil, errorx.Unknown
	}

	accessToken, err := xcontext.TokenEngine(ctx).Generate(
		xcontext.Configs(ctx).Auth.AccessToken.Expiration,
		model.AccessToken{
			ID:      user.ID,
			Name:    user.Name,
			Address: user.WalletAddress.String,
		})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate access token: %v", err)
		return nil, errorx.Unknown
	}

	newRefreshToken, err := xcontext.TokenEngine(ctx).Generate(
		xcontext.Configs(ctx).Auth.RefreshToken.Expiration,
		model.RefreshToken{
			Family:  refreshToken.Family,
			Counter: storedToken.Counter + 1,
		})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate refresh token: %v", err)
		return nil, errorx.Unknown
	}

	return &model.RefreshTokenResponse{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
	}, nil
}

func (d *authDomain) GetMe(ctx context.Context, req *model.GetMeRequest) (*model.GetMeResponse, error) {
	user, err := d.userRepo.GetByID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get current user: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetMeResponse{User: convertUser(user)}, nil
}

func (d *authDomain) generateRefreshToken(ctx context.Context, userID string) (string, error) {
	family, err := crypto.GenerateRandomString()
	if err != nil {
		return "", err
	}

	token, err := xcontext.TokenEngine(ctx).Generate(
		xcontext.Configs(ctx).Auth.RefreshToken.Expiration,
		model.RefreshToken{Family: family, Counter: 0})
	if err != nil {
		return "", err
	}

	err = d.refreshTokenRepo.Create(ctx, &entity.RefreshToken{
		Base:       entity.Base{ID: uuid.NewString()},
		UserID:     userID,
		Family:     crypto.SHA256([]byte(family)),
		Counter:    0,
		Expiration: time.Now().Add(xcontext.Configs(ctx).Auth.RefreshToken.Expiration),
	})
	if err != nil {
		return "", err
	}

	return token, nil
}

// verifyWalletAnswer recovers the signer of the nonce and compares it with
// the address the challenge was issued for.
func verifyWalletAnswer(hexSignature, nonce, address string) error {
	signature, err := hexutil.Decode(hexSignature)
	if err != nil {
		return err
	}

	if len(signature) != ethcrypto.SignatureLength {
		return errors.New("invalid signature length")
	}

	if signature[ethcrypto.RecoveryIDOffset] == 27 || signature[ethcrypto.RecoveryIDOffset] == 28 {
		signature[ethcrypto.RecoveryIDOffset] -= 27
	}

	hash := accounts.TextHash([]byte(nonce))
	pubKey, err := ethcrypto.SigToPub(hash, signature)
	if err != nil {
		return err
	}

	recovered := ethcrypto.PubkeyToAddress(*pubKey)
	if !strings.EqualFold(recovered.Hex(), address) {
		return errors.New("mismatched wallet address")
	}

	return nil
}
