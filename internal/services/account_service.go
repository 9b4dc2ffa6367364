package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/libshelf/libshelf-be/internal/auth"
	"github.com/libshelf/libshelf-be/internal/models"
)

// AccountServiceProvider defines the interface for account services.
type AccountServiceProvider interface {
	FindByEmail(ctx context.Context, email string) (*models.Account, error)
	FindByUsernameOrEmail(ctx context.Context, username, email string) (*models.Account, error)
	IsTakenByOther(ctx context.Context, username, email string, excludeID uint) (bool, error)
	Create(ctx context.Context, username, email, password string) (*models.Account, error)
	Update(ctx context.Context, account *models.Account, username, email, password string) (*models.Account, error)
	Delete(ctx context.Context, account *models.Account) error
	ListAll(ctx context.Context) ([]models.Account, error)
	Authenticate(ctx context.Context, email, password string) (*models.Account, error)
}

// AccountService provides business logic for account management.
type AccountService struct {
	db *gorm.DB
}

// NewAccountService creates a new AccountService on the given connection pool.
func NewAccountService(db *gorm.DB) *AccountService {
	return &AccountService{db: db}
}

// FindByEmail retrieves an account by its email address.
func (s *AccountService) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	var account models.Account
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account by email: %w", err)
	}
	return &account, nil
}

// FindByUsernameOrEmail returns the first account matching either field.
func (s *AccountService) FindByUsernameOrEmail(ctx context.Context, username, email string) (*models.Account, error) {
	var account models.Account
	err := s.db.WithContext(ctx).
		Where("username = ? OR email = ?", username, email).
		First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account by username or email: %w", err)
	}
	return &account, nil
}

// IsTakenByOther reports whether a different account already holds the
// username or email. Used on update so a no-op self-update passes.
func (s *AccountService) IsTakenByOther(ctx context.Context, username, email string, excludeID uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Account{}).
		Where("(username = ? OR email = ?) AND id <> ?", username, email, excludeID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check account uniqueness: %w", err)
	}
	return count > 0, nil
}

// Create hashes the password and inserts a new account. A username or email
// already in use yields ErrDuplicateAccount, whether caught by the pre-check
// or by the unique constraint when a concurrent signup wins the race.
func (s *AccountService) Create(ctx context.Context, username, email, password string) (*models.Account, error) {
	_, err := s.FindByUsernameOrEmail(ctx, username, email)
	if err == nil {
		return nil, ErrDuplicateAccount
	}
	if !errors.Is(err, ErrAccountNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account := &models.Account{
		Username: username,
		Email:    email,
		Password: hash,
	}
	if err := s.db.WithContext(ctx).Create(account).Error; err != nil {
		if isDuplicateEntryError(err) {
			return nil, ErrDuplicateAccount
		}
		return nil, fmt.Errorf("create account: %w", err)
	}
	return account, nil
}

// Update replaces the account's username, email and password. The caller
// must already have verified identity ownership.
func (s *AccountService) Update(ctx context.Context, account *models.Account, username, email, password string) (*models.Account, error) {
	taken, err := s.IsTakenByOther(ctx, username, email, account.ID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrDuplicateAccount
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account.Username = username
	account.Email = email
	account.Password = hash
	if err := s.db.WithContext(ctx).Save(account).Error; err != nil {
		if isDuplicateEntryError(err) {
			return nil, ErrDuplicateAccount
		}
		return nil, fmt.Errorf("update account: %w", err)
	}
	return account, nil
}

// Delete removes the account. The caller must already have verified
// identity ownership.
func (s *AccountService) Delete(ctx context.Context, account *models.Account) error {
	if err := s.db.WithContext(ctx).Delete(account).Error; err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	return nil
}

// ListAll returns every account, id ascending.
func (s *AccountService) ListAll(ctx context.Context) ([]models.Account, error) {
	var accounts []models.Account
	if err := s.db.WithContext(ctx).Order("id asc").Find(&accounts).Error; err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return accounts, nil
}

// Authenticate verifies an account's credentials by email. A missing account
// and a wrong password are indistinguishable to the caller.
func (s *AccountService) Authenticate(ctx context.Context, email, password string) (*models.Account, error) {
	account, err := s.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !auth.CheckPassword(password, account.Password) {
		return nil, ErrInvalidCredentials
	}
	return account, nil
}
