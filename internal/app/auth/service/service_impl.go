package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/skylume/user-service/internal/adapters/transport/http/dto"
	"github.com/skylume/user-service/internal/app/auth/password"
	customErrors "github.com/skylume/user-service/internal/domain/user/errors"
	"github.com/skylume/user-service/internal/domain/user/model"
	"github.com/skylume/user-service/internal/domain/user/repo"
	"github.com/skylume/user-service/internal/domain/user/token"
)

type authService struct {
	userRepo repo.UserRepo
	tokens   token.Issuer
	v        *validator.Validate
}

type Service interface {
	Register(ctx context.Context, in dto.RegisterDTO) (model.User, error)
	Login(ctx context.Context, in dto.LoginDTO) (model.User, model.TokenPair, error)
	Refresh(ctx context.Context, in dto.RefreshDTO) (model.TokenPair, error)
}

func New(ur repo.UserRepo, tokens token.Issuer, v *validator.Validate) Service {
	return &authService{userRepo: ur, tokens: tokens, v: v}
}

// Register creates the user and returns its outward view. Tokens are not
// issued here; the client logs in afterwards.
func (a *authService) Register(ctx context.Context, in dto.RegisterDTO) (model.User, error) {
	if err := a.v.Struct(in); err != nil {
		return model.User{}, customErrors.NewInvalidArgument(err.Error())
	}

	hash, err := password.Hash(in.Password)
	if err != nil {
		return model.User{}, customErrors.WrapInternal(err, "Register")
	}

	user := model.User{
		Email:        in.Email,
		PasswordHash: hash,
	}
	id, err := a.userRepo.CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, customErrors.ErrAlreadyExists) {
			return model.User{}, customErrors.ErrAlreadyExists
		}
		return model.User{}, customErrors.WrapInternal(err, "Register")
	}

	user.ID = id
	user.PasswordHash = ""
	return user, nil
}

func (a *authService) Login(ctx context.Context, in dto.LoginDTO) (model.User, model.TokenPair, error) {
	if err := a.v.Struct(in); err != nil {
		return model.User{}, model.TokenPair{}, customErrors.NewInvalidArgument(err.Error())
	}

	user, err := a.userRepo.GetUserByEmail(ctx, in.Email)
	switch {
	case errors.Is(err, customErrors.ErrNotFound):
		return model.User{}, model.TokenPair{}, customErrors.ErrInvalidCredentials
	case err != nil:
		return model.User{}, model.TokenPair{}, customErrors.WrapInternal(err, "Login")
	}

	if !password.Verify(in.Password, user.PasswordHash) {
		return model.User{}, model.TokenPair{}, customErrors.ErrInvalidCredentials
	}

	pair, err := a.issueTokens(user.ID, user.Email)
	if err != nil {
		return model.User{}, model.TokenPair{}, err
	}

	user.PasswordHash = ""
	return user, pair, nil
}

// Refresh verifies the long-lived token and mints a fresh pair for the
// identity it carries. There is no rotation record: the old refresh token
// stays valid until it expires.
func (a *authService) Refresh(ctx context.Context, in dto.RefreshDTO) (model.TokenPair, error) {
	if err := a.v.Struct(in); err != nil {
		return model.TokenPair{}, customErrors.NewInvalidArgument(err.Error())
	}

	claims, err := a.tokens.ValidateRefreshToken(in.RefreshToken)
	if err != nil {
		return model.TokenPair{}, customErrors.ErrInvalidToken
	}

	return a.issueTokens(claims.UserID, claims.Email)
}

func (a *authService) issueTokens(userID uint64, email string) (model.TokenPair, error) {
	at, atExp, err := a.tokens.GenerateAccessToken(userID, email)
	if err != nil {
		return model.TokenPair{}, customErrors.WrapInternal(err, "GenerateAccessToken")
	}
	rt, rtExp, err := a.tokens.GenerateRefreshToken(userID, email)
	if err != nil {
		return model.TokenPair{}, customErrors.WrapInternal(err, "GenerateRefreshToken")
	}

	now := time.Now()
	return model.TokenPair{
		AccessToken:  at,
		RefreshToken: rt,
		AccessTTL:    atExp.Sub(now),
		RefreshTTL:   rtExp.Sub(now),
		UserID:       userID,
	}, nil
}
