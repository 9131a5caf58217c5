package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/marketplace-storefront/internal/domain/entity"
	repo "github.com/oksasatya/marketplace-storefront/internal/domain/repository"
	"github.com/oksasatya/marketplace-storefront/internal/infrastructure/search"
	"github.com/oksasatya/marketplace-storefront/pkg/helpers"
	"github.com/oksasatya/marketplace-storefront/pkg/mailer"
	tpl "github.com/oksasatya/marketplace-storefront/pkg/mailer/templates"
)

type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) (bool, error)
}

type TokenIssuer interface {
	Issue(userID string) (string, time.Time, error)
}

// Notifier enqueues account emails. Delivery is best-effort.
type Notifier interface {
	Notify(ctx context.Context, job mailer.EmailJob) error
}

// ImageStore turns a submitted profile image into the reference that gets stored.
// Remove deletes an object Store uploaded; other references are left alone.
type ImageStore interface {
	Store(ctx context.Context, userID, ref string) (string, error)
	Remove(ctx context.Context, ref string) error
}

// UserDirectory is the searchable account index behind the admin tables.
type UserDirectory interface {
	IndexUser(ctx context.Context, u *entity.User) error
	Search(ctx context.Context, q, role string, size int) ([]search.DirectoryEntry, error)
}

type Service struct {
	Repo      repo.UserRepository
	Passwords PasswordHasher
	Tokens    TokenIssuer
	Logger    *logrus.Logger

	// Optional collaborators; nil disables the feature.
	Notifier  Notifier
	Images    ImageStore
	Directory UserDirectory

	dummyOnce sync.Once
	dummyHash string
}

func NewService(repo repo.UserRepository, passwords PasswordHasher, tokens TokenIssuer, logger *logrus.Logger) *Service {
	if logger == nil {
		logger = helpers.NopLogger()
	}
	return &Service{Repo: repo, Passwords: passwords, Tokens: tokens, Logger: logger}
}

// ClientInfo describes the request origin; it only ends up in notification emails.
type ClientInfo struct {
	IP        string
	UserAgent string
}

func (ci ClientInfo) options() []tpl.Option {
	return []tpl.Option{tpl.WithIP(ci.IP), tpl.WithUserAgent(ci.UserAgent), tpl.WithTime(time.Now())}
}

type RegisterInput struct {
	Name         string
	Email        string
	Password     string
	ProfileImage string
	Address      *entity.Address
	Role         entity.Role
	Client       ClientInfo
}

// Session is an issued token and the moment it stops being valid.
type Session struct {
	Token     string
	ExpiresAt time.Time
}

// Register creates an account. It fails with ErrEmailTaken if the email exists.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	if in.Role == "" {
		in.Role = entity.RoleCustomer
	}
	if !in.Role.SelfService() {
		return nil, ErrRoleNotAllowed
	}
	email := entity.NormalizeEmail(in.Email)

	if existing, err := s.Repo.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, ErrEmailTaken
	} else if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return nil, fmt.Errorf("check existing user: %w", err)
	}

	var addr *entity.Address
	if in.Address != nil {
		a := *in.Address
		a.Normalize()
		if !a.Complete() {
			return nil, ErrIncompleteAddress
		}
		addr = &a
	}

	hash, err := s.Passwords.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	u := &entity.User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: hash,
		Role:         in.Role,
		Address:      addr,
	}
	if in.ProfileImage != "" {
		if u.ProfileImage, err = s.storeImage(ctx, u.ID, in.ProfileImage); err != nil {
			return nil, err
		}
	}

	if err := s.Repo.Create(ctx, u); err != nil {
		if u.ProfileImage != in.ProfileImage {
			s.discardImage(ctx, u)
		}
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.notify(ctx, u, tpl.NewWelcomeData(u.Name, u.Email, append(in.Client.options(), tpl.WithRole(u.Role.String()))...))
	s.index(ctx, u)
	return u, nil
}

// Authenticate checks email and password. A non-empty role additionally
// requires the account to have that role.
func (s *Service) Authenticate(ctx context.Context, email, password string, role entity.Role) (*entity.User, error) {
	u, err := s.Repo.GetByEmail(ctx, entity.NormalizeEmail(email))
	if err != nil {
		if !errors.Is(err, repo.ErrNotFound) {
			return nil, fmt.Errorf("find user: %w", err)
		}
		// burn comparable time so a missing account is not distinguishable by latency
		_, _ = s.Passwords.Verify(password, s.placeholderHash())
		return nil, ErrInvalidCredentials
	}
	ok, err := s.Passwords.Verify(password, u.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}
	if role != "" && u.Role != role {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// Login authenticates and issues a session token.
func (s *Service) Login(ctx context.Context, email, password string, role entity.Role) (*entity.User, Session, error) {
	u, err := s.Authenticate(ctx, email, password, role)
	if err != nil {
		return nil, Session{}, err
	}
	token, exp, err := s.Tokens.Issue(u.ID)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Error("issue session token failed")
		return nil, Session{}, err
	}
	return u, Session{Token: token, ExpiresAt: exp}, nil
}

func (s *Service) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	return u, nil
}

// UpdateProfileInput carries optional changes. Nil pointers mean "leave as is";
// a NewPassword is only applied after CurrentPassword verifies.
type UpdateProfileInput struct {
	Name            *string
	ProfileImage    *string
	CurrentPassword string
	NewPassword     string
	Client          ClientInfo
}

// UpdateProfile applies the changes in in. A wrong current password fails
// with ErrIncorrectPassword before anything is written.
func (s *Service) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*entity.User, error) {
	u, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	var newHash string
	if in.NewPassword != "" {
		ok, err := s.Passwords.Verify(in.CurrentPassword, u.PasswordHash)
		if err != nil {
			return nil, fmt.Errorf("verify password: %w", err)
		}
		if !ok || in.CurrentPassword == "" {
			return nil, ErrIncorrectPassword
		}
		if newHash, err = s.Passwords.Hash(in.NewPassword); err != nil {
			return nil, err
		}
	}

	changes := map[string]string{}
	if in.Name != nil {
		if name := strings.TrimSpace(*in.Name); name != "" && name != u.Name {
			u.Name = name
			changes["name"] = name
		}
	}
	if in.ProfileImage != nil && *in.ProfileImage != u.ProfileImage {
		ref := *in.ProfileImage
		if ref != "" {
			if ref, err = s.storeImage(ctx, u.ID, ref); err != nil {
				return nil, err
			}
		}
		u.ProfileImage = ref
		changes["profileImage"] = "updated"
		if ref == "" {
			changes["profileImage"] = "removed"
		}
	}

	if len(changes) > 0 {
		if err := s.Repo.Update(ctx, u); err != nil {
			return nil, s.mapWriteErr(err)
		}
	}
	if newHash != "" {
		if err := s.Repo.UpdatePassword(ctx, u.ID, newHash); err != nil {
			return nil, s.mapWriteErr(err)
		}
		u.PasswordHash = newHash
		s.notify(ctx, u, tpl.NewPasswordChangedData(u.Name, u.Email, in.Client.options()...))
	}
	if len(changes) > 0 {
		s.notify(ctx, u, tpl.NewProfileUpdatedData(u.Name, u.Email, changes, in.Client.options()...))
		s.index(ctx, u)
	}
	return u, nil
}

// SettingsInput is the settings page payload: password change and profile image.
type SettingsInput struct {
	CurrentPassword string
	NewPassword     string
	ProfileImage    *string
	Client          ClientInfo
}

func (s *Service) UpdateSettings(ctx context.Context, userID string, in SettingsInput) (*entity.User, error) {
	return s.UpdateProfile(ctx, userID, UpdateProfileInput{
		ProfileImage:    in.ProfileImage,
		CurrentPassword: in.CurrentPassword,
		NewPassword:     in.NewPassword,
		Client:          in.Client,
	})
}

// UpsertAddress replaces the user's address as a whole.
func (s *Service) UpsertAddress(ctx context.Context, userID string, addr entity.Address) (*entity.Address, error) {
	addr.Normalize()
	if !addr.Complete() {
		return nil, ErrIncompleteAddress
	}
	if err := s.Repo.SetAddress(ctx, userID, &addr); err != nil {
		return nil, s.mapWriteErr(err)
	}
	s.reindex(ctx, userID)
	return &addr, nil
}

// DeleteAddress clears the address. Clearing an absent address succeeds.
func (s *Service) DeleteAddress(ctx context.Context, userID string) error {
	if err := s.Repo.SetAddress(ctx, userID, nil); err != nil {
		return s.mapWriteErr(err)
	}
	s.reindex(ctx, userID)
	return nil
}

// SearchDirectory lists accounts for the admin tables. Without a directory it returns nothing.
func (s *Service) SearchDirectory(ctx context.Context, q string, role entity.Role, size int) ([]search.DirectoryEntry, error) {
	if s.Directory == nil {
		return []search.DirectoryEntry{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	return s.Directory.Search(ctx, q, role.String(), size)
}

func (s *Service) mapWriteErr(err error) error {
	if errors.Is(err, repo.ErrNotFound) {
		return ErrUserNotFound
	}
	return fmt.Errorf("write user: %w", err)
}

func (s *Service) storeImage(ctx context.Context, userID, ref string) (string, error) {
	if s.Images == nil {
		return ref, nil
	}
	stored, err := s.Images.Store(ctx, userID, ref)
	if err != nil {
		if errors.Is(err, helpers.ErrInvalidDataURL) {
			return "", ErrInvalidImage
		}
		return "", fmt.Errorf("store profile image: %w", err)
	}
	return stored, nil
}

// discardImage removes an avatar uploaded for an account that was never stored.
func (s *Service) discardImage(ctx context.Context, u *entity.User) {
	if err := s.Images.Remove(ctx, u.ProfileImage); err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("remove orphaned profile image failed")
	}
}

func (s *Service) placeholderHash() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = s.Passwords.Hash(uuid.NewString())
	})
	return s.dummyHash
}

func (s *Service) notify(ctx context.Context, u *entity.User, data map[string]any) {
	if s.Notifier == nil {
		return
	}
	job := mailer.EmailJob{To: u.Email, Template: mailer.UniversalTemplate, Data: data}
	if err := s.Notifier.Notify(ctx, job); err != nil {
		s.Logger.WithError(err).WithFields(logrus.Fields{"user_id": u.ID, "type": data["Type"]}).Warn("enqueue notification failed")
	}
}

func (s *Service) index(ctx context.Context, u *entity.User) {
	if s.Directory == nil {
		return
	}
	if err := s.Directory.IndexUser(ctx, u); err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("directory index failed")
	}
}

// reindex refreshes the directory entry from the stored user after a partial write.
func (s *Service) reindex(ctx context.Context, userID string) {
	if s.Directory == nil {
		return
	}
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", userID).Warn("directory reindex lookup failed")
		return
	}
	s.index(ctx, u)
}
