package service

import (
	"context"
	"errors"
	"io"

	"go.uber.org/zap"

	"github.com/skylume/user-service/internal/app/profile/storage"
	customErrors "github.com/skylume/user-service/internal/domain/user/errors"
	"github.com/skylume/user-service/internal/domain/user/model"
	"github.com/skylume/user-service/internal/domain/user/repo"
)

type profileService struct {
	userRepo repo.UserRepo
	store    storage.Store
	hostURL  string
	log      *zap.Logger
}

type Service interface {
	UploadProfilePicture(ctx context.Context, ident model.Identity, userID uint64, filename string, size int64, r io.Reader) (model.User, error)
	GetProfilePicture(ctx context.Context, ident model.Identity, userID uint64) (string, error)
}

func New(ur repo.UserRepo, store storage.Store, hostURL string, log *zap.Logger) Service {
	return &profileService{userRepo: ur, store: store, hostURL: hostURL, log: log}
}

// UploadProfilePicture stores the new asset, drops the previous one and
// records the path against the user. A caller may only touch their own
// record. Used for both the initial upload and replacement.
func (p *profileService) UploadProfilePicture(ctx context.Context, ident model.Identity, userID uint64, filename string, size int64, r io.Reader) (model.User, error) {
	if ident.UserID != userID {
		return model.User{}, customErrors.ErrInvalidToken
	}

	user, err := p.userRepo.GetUserByID(ctx, userID)
	switch {
	case errors.Is(err, customErrors.ErrNotFound):
		return model.User{}, customErrors.ErrNotFound
	case err != nil:
		return model.User{}, customErrors.WrapInternal(err, "UploadProfilePicture")
	}

	relPath, err := p.store.Save(filename, size, r)
	if err != nil {
		return model.User{}, err
	}

	// best-effort cleanup of the replaced asset
	if user.ProfilePicture != "" {
		if err := p.store.Remove(user.ProfilePicture); err != nil {
			p.log.Warn("failed to remove previous profile picture",
				zap.Uint64("user_id", userID),
				zap.String("path", user.ProfilePicture),
				zap.Error(err),
			)
		}
	}

	user.ProfilePicture = relPath
	if err := p.userRepo.UpdateUser(ctx, user); err != nil {
		return model.User{}, customErrors.WrapInternal(err, "UploadProfilePicture")
	}

	view := user
	view.PasswordHash = ""
	view.ProfilePicture = p.assetURL(relPath)
	return view, nil
}

func (p *profileService) GetProfilePicture(ctx context.Context, ident model.Identity, userID uint64) (string, error) {
	if ident.UserID != userID {
		return "", customErrors.ErrInvalidToken
	}

	user, err := p.userRepo.GetUserByID(ctx, userID)
	switch {
	case errors.Is(err, customErrors.ErrNotFound):
		return "", customErrors.ErrNotFound
	case err != nil:
		return "", customErrors.WrapInternal(err, "GetProfilePicture")
	}

	if user.ProfilePicture == "" {
		return "", customErrors.ErrNotFound
	}
	return p.assetURL(user.ProfilePicture), nil
}

func (p *profileService) assetURL(relPath string) string {
	return p.hostURL + "/" + relPath
}
