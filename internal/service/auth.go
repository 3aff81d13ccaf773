package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/google/uuid"

	"github.com/inkwell/inkwell/internal/hash"
	"github.com/inkwell/inkwell/internal/logger"
	"github.com/inkwell/inkwell/internal/model"
)

// Validation bounds for registration input.
const (
	maxNameLen  = 10
	maxBioLen   = 30
	minPassword = 6
)

// avatarPrefix is the object storage key prefix for avatar images. The
// prefix is a storage-layout detail: accounts carry only the bare reference.
const avatarPrefix = "avatars/"

type Auth struct {
	accountStore model.AccountStore
	sessionStore model.SessionStore
	storage      model.Storage
	hasher       hash.Hasher
	logger       *logger.Logger
}

func NewAuth(
	accountStore model.AccountStore,
	sessionStore model.SessionStore,
	storage model.Storage,
	hasher hash.Hasher,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		accountStore: accountStore,
		sessionStore: sessionStore,
		storage:      storage,
		hasher:       hasher,
		logger:       logger,
	}
}

// AvatarUpload carries the uploaded avatar image.
type AvatarUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// RegisterParams contains user input for registration.
type RegisterParams struct {
	SessionID  uuid.UUID
	Name       string
	Bio        string
	Password   string
	Repassword string
	Avatar     AvatarUpload
}

// LoginParams contains user input for signing in.
type LoginParams struct {
	SessionID uuid.UUID
	Name      string
	Password  string
}

// Register validates the draft, stores the avatar, creates the account and
// establishes the session snapshot. The avatar is removed again on any later
// failure so a rejected registration leaves no orphaned files.
func (a *Auth) Register(ctx context.Context, params RegisterParams) (model.AccountSummary, error) {
	a.logger.Debug("Auth service: starting registration", "name", params.Name)

	if err := validateRegistration(params); err != nil {
		return model.AccountSummary{}, err
	}

	avatarRef := a.generateAvatarRef(params.Avatar.Filename)
	avatarKey := avatarPrefix + avatarRef
	if err := a.storage.Upload(ctx, avatarKey, params.Avatar.Reader, params.Avatar.Size, params.Avatar.ContentType); err != nil {
		return model.AccountSummary{}, fmt.Errorf("failed to store avatar: %w", err)
	}

	digest, err := a.hasher.Hash(params.Password)
	if err != nil {
		a.deleteAvatar(ctx, avatarKey)
		return model.AccountSummary{}, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	account := model.Account{
		ID:             uuid.New(),
		Name:           params.Name,
		PasswordDigest: digest,
		Bio:            params.Bio,
		AvatarRef:      avatarRef,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	saved, err := a.accountStore.Create(ctx, account)
	if err != nil {
		a.deleteAvatar(ctx, avatarKey)
		if errors.Is(err, model.ErrDuplicateName) {
			a.logger.Info("Auth service: account name taken", "name", params.Name)
			return model.AccountSummary{}, model.ErrDuplicateName
		}
		return model.AccountSummary{}, fmt.Errorf("failed to create account: %w", err)
	}

	summary := saved.Summary()
	if err := a.sessionStore.SetAccount(ctx, params.SessionID, summary); err != nil {
		return model.AccountSummary{}, fmt.Errorf("failed to establish session: %w", err)
	}

	a.logger.Info("Auth service: registration completed", "name", params.Name, "account_id", saved.ID)

	return summary, nil
}

// Login verifies the credentials and establishes the session snapshot. Wrong
// name and wrong password are both user-correctable; the messages match the
// ones users already know.
func (a *Auth) Login(ctx context.Context, params LoginParams) (model.AccountSummary, error) {
	a.logger.Debug("Auth service: starting login", "name", params.Name)

	if params.Name == "" {
		return model.AccountSummary{}, model.NewValidationError("account is missing")
	}
	if params.Password == "" {
		return model.AccountSummary{}, model.NewValidationError("password is missing")
	}

	account, err := a.accountStore.GetByName(ctx, params.Name)
	if errors.Is(err, model.ErrNotFound) {
		return model.AccountSummary{}, model.NewValidationError("no such account")
	}
	if err != nil {
		return model.AccountSummary{}, fmt.Errorf("failed to get account by name: %w", err)
	}

	if !a.hasher.Verify(params.Password, account.PasswordDigest) {
		return model.AccountSummary{}, model.NewValidationError("wrong password")
	}

	summary := account.Summary()
	if err := a.sessionStore.SetAccount(ctx, params.SessionID, summary); err != nil {
		return model.AccountSummary{}, fmt.Errorf("failed to establish session: %w", err)
	}

	a.logger.Info("Auth service: login completed", "name", params.Name, "account_id", account.ID)

	return summary, nil
}

// Logout drops the account snapshot, turning the session anonymous again.
func (a *Auth) Logout(ctx context.Context, sessionID uuid.UUID) error {
	if err := a.sessionStore.ClearAccount(ctx, sessionID); err != nil && !errors.Is(err, model.ErrNotFound) {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// Avatar streams a stored avatar image by its opaque reference.
func (a *Auth) Avatar(ctx context.Context, ref string) (io.ReadCloser, error) {
	reader, err := a.storage.Download(ctx, avatarPrefix+ref)
	if err != nil {
		return nil, fmt.Errorf("failed to download avatar: %w", err)
	}
	return reader, nil
}

func validateRegistration(params RegisterParams) error {
	if len(params.Name) < 1 || len(params.Name) > maxNameLen {
		return model.NewValidationError("Account name must be 1-10 letters")
	}
	if len(params.Bio) < 1 || len(params.Bio) > maxBioLen {
		return model.NewValidationError("Bio must be 1-30 letters")
	}
	if params.Avatar.Filename == "" || params.Avatar.Reader == nil {
		return model.NewValidationError("Need avatar")
	}
	if len(params.Password) < minPassword {
		return model.NewValidationError("Password must be at least 6 letters")
	}
	if params.Password != params.Repassword {
		return model.NewValidationError("Password is not as same as above")
	}
	return nil
}

func (a *Auth) generateAvatarRef(filename string) string {
	return uuid.NewString() + path.Ext(filename)
}

func (a *Auth) deleteAvatar(ctx context.Context, ref string) {
	if err := a.storage.Delete(ctx, ref); err != nil {
		a.logger.Error("Auth service: failed to delete avatar", "ref", ref, "error", err.Error())
	}
}
