package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/AhmadAkmal83/jwt-sandbox/domain"
)

// UserRepositoryImpl implements domain.UserRepository using GORM
type UserRepositoryImpl struct {
	db *gorm.DB
}

// DBUser represents the database model for User (with GORM tags). Roles
// persist as a JSON column; the one-time token pairs as nullable columns.
type DBUser struct {
	ID                       uint       `gorm:"primaryKey"`
	Email                    string     `gorm:"uniqueIndex;size:255"`
	PasswordHash             string     `gorm:"column:password_hash"`
	Roles                    []string   `gorm:"serializer:json"`
	IsVerified               bool       `gorm:"index"`
	VerificationToken        *string    `gorm:"uniqueIndex;size:64"`
	VerificationTokenExpiry  *time.Time
	PasswordResetToken       *string    `gorm:"uniqueIndex;size:64"`
	PasswordResetTokenExpiry *time.Time
	CreatedAt                time.Time
	UpdatedAt                time.Time
}

// TableName returns the table name for GORM
func (DBUser) TableName() string {
	return "users"
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &UserRepositoryImpl{db: db}
}

// Create implements domain.UserRepository
func (r *UserRepositoryImpl) Create(ctx context.Context, user *domain.User) error {
	dbUser := r.domainToDB(user)
	if err := r.db.WithContext(ctx).Create(dbUser).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrEmailAlreadyExists
		}
		return err
	}
	user.ID = dbUser.ID
	user.CreatedAt = dbUser.CreatedAt
	user.UpdatedAt = dbUser.UpdatedAt
	return nil
}

// FindByEmail implements domain.UserRepository
func (r *UserRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, "email = ?", email)
}

// ExistsByEmail implements domain.UserRepository
func (r *UserRepositoryImpl) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&DBUser{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindByID implements domain.UserRepository
func (r *UserRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

// FindByVerificationToken implements domain.UserRepository
func (r *UserRepositoryImpl) FindByVerificationToken(ctx context.Context, token string) (*domain.User, error) {
	return r.findOne(ctx, "verification_token = ?", token)
}

// FindByPasswordResetToken implements domain.UserRepository
func (r *UserRepositoryImpl) FindByPasswordResetToken(ctx context.Context, token string) (*domain.User, error) {
	return r.findOne(ctx, "password_reset_token = ?", token)
}

// Update implements domain.UserRepository. The save path owns the
// updated-at audit timestamp; business logic never sets it.
func (r *UserRepositoryImpl) Update(ctx context.Context, user *domain.User) error {
	dbUser := r.domainToDB(user)
	if err := r.db.WithContext(ctx).Save(dbUser).Error; err != nil {
		return err
	}
	user.UpdatedAt = dbUser.UpdatedAt
	return nil
}

func (r *UserRepositoryImpl) findOne(ctx context.Context, query string, arg interface{}) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where(query, arg).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// domainToDB converts domain user to database user
func (r *UserRepositoryImpl) domainToDB(user *domain.User) *DBUser {
	return &DBUser{
		ID:                       user.ID,
		Email:                    user.Email,
		PasswordHash:             user.PasswordHash,
		Roles:                    user.Roles,
		IsVerified:               user.IsVerified,
		VerificationToken:        user.VerificationToken,
		VerificationTokenExpiry:  user.VerificationTokenExpiry,
		PasswordResetToken:       user.PasswordResetToken,
		PasswordResetTokenExpiry: user.PasswordResetTokenExpiry,
		CreatedAt:                user.CreatedAt,
	}
}

// dbToDomain converts database user to domain user
func (r *UserRepositoryImpl) dbToDomain(dbUser *DBUser) *domain.User {
	return &domain.User{
		ID:                       dbUser.ID,
		Email:                    dbUser.Email,
		PasswordHash:             dbUser.PasswordHash,
		Roles:                    dbUser.Roles,
		IsVerified:               dbUser.IsVerified,
		VerificationToken:        dbUser.VerificationToken,
		VerificationTokenExpiry:  dbUser.VerificationTokenExpiry,
		PasswordResetToken:       dbUser.PasswordResetToken,
		PasswordResetTokenExpiry: dbUser.PasswordResetTokenExpiry,
		CreatedAt:                dbUser.CreatedAt,
		UpdatedAt:                dbUser.UpdatedAt,
	}
}
