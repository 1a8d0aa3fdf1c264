package service_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	profilesvc "github.com/skylume/user-service/internal/app/profile/service"
	"github.com/skylume/user-service/internal/app/profile/storage"
	customErrors "github.com/skylume/user-service/internal/domain/user/errors"
	"github.com/skylume/user-service/internal/domain/user/model"
)

const hostURL = "http://localhost:8080"

type userRepoStub struct {
	users map[uint64]model.User
}

func (u *userRepoStub) CreateUser(_ context.Context, m model.User) (uint64, error) {
	u.users[m.ID] = m
	return m.ID, nil
}

func (u *userRepoStub) GetUserByEmail(_ context.Context, email string) (model.User, error) {
	for _, v := range u.users {
		if v.Email == email {
			return v, nil
		}
	}
	return model.User{}, customErrors.ErrNotFound
}

func (u *userRepoStub) GetUserByID(_ context.Context, id uint64) (model.User, error) {
	v, ok := u.users[id]
	if !ok {
		return model.User{}, customErrors.ErrNotFound
	}
	return v, nil
}

func (u *userRepoStub) UpdateUser(_ context.Context, m model.User) error {
	u.users[m.ID] = m
	return nil
}

func (u *userRepoStub) DeleteUser(_ context.Context, id uint64) error {
	delete(u.users, id)
	return nil
}

func newSvc(t *testing.T) (profilesvc.Service, *userRepoStub, string) {
	t.Helper()
	root := t.TempDir()
	store, err := storage.NewDiskStore(root)
	require.NoError(t, err)

	ur := &userRepoStub{users: map[uint64]model.User{
		7: {ID: 7, Email: "e@example.com", PasswordHash: "hash"},
	}}
	return profilesvc.New(ur, store, hostURL, zap.NewNop()), ur, root
}

func ident() model.Identity {
	return model.Identity{UserID: 7, Email: "e@example.com"}
}

func TestProfileService_UploadAndFetch(t *testing.T) {
	svc, ur, _ := newSvc(t)
	ctx := context.Background()

	payload := bytes.Repeat([]byte{0x1F}, 1<<20)
	view, err := svc.UploadProfilePicture(ctx, ident(), 7, "me.jpg", int64(len(payload)), bytes.NewReader(payload))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(view.ProfilePicture, hostURL+"/profile_pic/"))
	require.Empty(t, view.PasswordHash)

	url, err := svc.GetProfilePicture(ctx, ident(), 7)
	require.NoError(t, err)
	require.Equal(t, view.ProfilePicture, url)

	// stored path stays relative
	require.True(t, strings.HasPrefix(ur.users[7].ProfilePicture, "profile_pic/"))
}

func TestProfileService_ReplaceDeletesOld(t *testing.T) {
	svc, ur, root := newSvc(t)
	ctx := context.Background()

	_, err := svc.UploadProfilePicture(ctx, ident(), 7, "one.png", 4, bytes.NewReader([]byte("aaaa")))
	require.NoError(t, err)
	oldPath := ur.users[7].ProfilePicture

	_, err = svc.UploadProfilePicture(ctx, ident(), 7, "two.png", 4, bytes.NewReader([]byte("bbbb")))
	require.NoError(t, err)
	newPath := ur.users[7].ProfilePicture
	require.NotEqual(t, oldPath, newPath)

	_, err = os.Stat(filepath.Join(root, oldPath))
	require.True(t, os.IsNotExist(err), "old asset must be deleted")
	_, err = os.Stat(filepath.Join(root, newPath))
	require.NoError(t, err)

	// the rest of the record is untouched
	require.Equal(t, "e@example.com", ur.users[7].Email)
	require.Equal(t, "hash", ur.users[7].PasswordHash)
}

func TestProfileService_RejectsBadUploads(t *testing.T) {
	svc, _, _ := newSvc(t)
	ctx := context.Background()

	_, err := svc.UploadProfilePicture(ctx, ident(), 7, "anim.gif", 4, bytes.NewReader([]byte("gif!")))
	require.True(t, customErrors.IsInvalidArgument(err))

	_, err = svc.UploadProfilePicture(ctx, ident(), 7, "big.png", 3<<20, bytes.NewReader(nil))
	require.True(t, customErrors.IsInvalidArgument(err))
}

func TestProfileService_OwnershipEnforced(t *testing.T) {
	svc, _, _ := newSvc(t)
	ctx := context.Background()
	other := model.Identity{UserID: 8, Email: "other@example.com"}

	_, err := svc.UploadProfilePicture(ctx, other, 7, "me.jpg", 1, bytes.NewReader([]byte{1}))
	require.True(t, customErrors.IsInvalidToken(err))

	_, err = svc.GetProfilePicture(ctx, other, 7)
	require.True(t, customErrors.IsInvalidToken(err))
}

func TestProfileService_FetchUnset(t *testing.T) {
	svc, _, _ := newSvc(t)

	_, err := svc.GetProfilePicture(context.Background(), ident(), 7)
	require.True(t, customErrors.IsNotFound(err))
}
