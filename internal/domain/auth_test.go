package domain

import (
	"testing"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/questdrop/backend/internal/entity"
	"github.com/questdrop/backend/internal/model"
	"github.com/questdrop/backend/internal/repository"
	"github.com/questdrop/backend/pkg/testutil"
	"github.com/questdrop/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func newTestAuthDomain() *authDomain {
	return NewAuthDomain(
		repository.NewUserRepository(),
		repository.NewRefreshTokenRepository())
}

func Test_authDomain_WalletLoginAndVerify(t *testing.T) {
	ctx := testutil.MockContext(t)
	d := newTestAuthDomain()

	privateKey, err := ethcrypto.GenerateKey()
	require.NoError(t, err)
	address := ethcrypto.PubkeyToAddress(privateKey.PublicKey).Hex()

	_, err = d.WalletLogin(ctx, &model.WalletLoginRequest{Address: "not-an-address"})
	require.Error(t, err)
	require.Equal(t, "Invalid wallet address", err.Error())

	loginResp, err := d.WalletLogin(ctx, &model.WalletLoginRequest{Address: address})
	require.NoError(t, err)
	require.NotEmpty(t, loginResp.Nonce)
	require.NotEmpty(t, loginResp.LoginToken)

	signature, err := ethcrypto.Sign(accounts.TextHash([]byte(loginResp.Nonce)), privateKey)
	require.NoError(t, err)
	signature[ethcrypto.RecoveryIDOffset] += 27

	verifyResp, err := d.WalletVerify(ctx, &model.WalletVerifyRequest{
		LoginToken: loginResp.LoginToken,
		Signature:  hexutil.Encode(signature),
	})
	require.NoError(t, err)
	require.NotEmpty(t, verifyResp.AccessToken)
	require.NotEmpty(t, verifyResp.RefreshToken)

	user, err := d.userRepo.GetByWalletAddress(ctx, address)
	require.NoError(t, err)
	require.Equal(t, entity.RoleUser, user.Role)

	var accessToken model.AccessToken
	require.NoError(t, xcontext.TokenEngine(ctx).Verify(verifyResp.AccessToken, &accessToken))
	require.Equal(t, user.ID, accessToken.ID)
	require.Equal(t, address, accessToken.Address)

	meResp, err := d.GetMe(xcontext.WithRequestUserID(ctx, user.ID), &model.GetMeRequest{})
	require.NoError(t, err)
	require.Equal(t, address, meResp.User.WalletAddress)
}

func Test_authDomain_WalletVerify_wrongSigner(t *testing.T) {
	ctx := testutil.MockContext(t)
	d := newTestAuthDomain()

	privateKey, err := ethcrypto.GenerateKey()
	require.NoError(t, err)
	address := ethcrypto.PubkeyToAddress(privateKey.PublicKey).Hex()

	loginResp, err := d.WalletLogin(ctx, &model.WalletLoginRequest{Address: address})
	require.NoError(t, err)

	// Signed by a different key than the challenged address.
	otherKey, err := ethcrypto.GenerateKey()
	require.NoError(t, err)
	signature, err := ethcrypto.Sign(accounts.TextHash([]byte(loginResp.Nonce)), otherKey)
	require.NoError(t, err)
	signature[ethcrypto.RecoveryIDOffset] += 27

	_, err = d.WalletVerify(ctx, &model.WalletVerifyRequest{
		LoginToken: loginResp.LoginToken,
		Signature:  hexutil.Encode(signature),
	})
	require.Error(t, err)
	require.Equal(t, "Invalid signature", err.Error())

	_, err = d.WalletVerify(ctx, &model.WalletVerifyRequest{
		LoginToken: "garbage",
		Signature:  hexutil.Encode(signature),
	})
	require.Error(t, err)
	require.Equal(t, "The login challenge is invalid or expired", err.Error())
}

func Test_authDomain_WalletVerify_ownerBecomesSuperAdmin(t *testing.T) {
	ctx := testutil.MockContext(t)
	d := newTestAuthDomain()

	privateKey, err := ethcrypto.GenerateKey()
	require.NoError(t, err)
	address := ethcrypto.PubkeyToAddress(privateKey.PublicKey).Hex()

	cfg := testutil.MockConfigs()
	cfg.Platform.OwnerWalletAddress = address
	ctx = xcontext.WithConfigs(ctx, cfg)

	loginResp, err := d.WalletLogin(ctx, &model.WalletLoginRequest{Address: address})
	require.NoError(t, err)

	signature, err := ethcrypto.Sign(accounts.TextHash([]byte(loginResp.Nonce)), privateKey)
	require.NoError(t, err)
	signature[ethcrypto.RecoveryIDOffset] += 27

	_, err = d.WalletVerify(ctx, &model.WalletVerifyRequest{
		LoginToken: loginResp.LoginToken,
		Signature:  hexutil.Encode(signature),
	})
	require.NoError(t, err)

	user, err := d.userRepo.GetByWalletAddress(ctx, address)
	require.NoError(t, err)
	require.Equal(t, entity.RoleSuperAdmin, user.Role)
}

func Test_authDomain_Refresh(t *testing.T) {
	ctx := testutil.MockContext(t)
	d := newTestAuthDomain()

	privateKey, err := ethcrypto.GenerateKey()
	require.NoError(t, err)
	address := ethcrypto.PubkeyToAddress(privateKey.PublicKey).Hex()

	loginResp, err := d.WalletLogin(ctx, &model.WalletLoginRequest{Address: address})
	require.NoError(t, err)

	signature, err := ethcrypto.Sign(accounts.TextHash([]byte(loginResp.Nonce)), privateKey)
	require.NoError(t, err)
	signature[ethcrypto.RecoveryIDOffset] += 27

	verifyResp, err := d.WalletVerify(ctx, &model.WalletVerifyRequest{
		LoginToken: loginResp.LoginToken,
		Signature:  hexutil.Encode(signature),
	})
	require.NoError(t, err)

	refreshResp, err := d.Refresh(ctx, &model.RefreshTokenRequest{
		RefreshToken: verifyResp.RefreshToken,
	})
	require.NoError(t, err)
	require.NotEmpty(t, refreshResp.AccessToken)
	require.NotEmpty(t, refreshResp.RefreshToken)

	// Replaying the already rotated token revokes the whole family.
	_, err = d.Refresh(ctx, &model.RefreshTokenRequest{
		RefreshToken: verifyResp.RefreshToken,
	})
	require.Error(t, err)
	require.Equal(t, "Your refresh token may be stolen", err.Error())

	_, err = d.Refresh(ctx, &model.RefreshTokenRequest{
		RefreshToken: refreshResp.RefreshToken,
	})
	require.Error(t, err)
	require.Equal(t, "Invalid refresh token", err.Error())
}
