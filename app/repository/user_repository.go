package repository

import (
	"gorm.io/gorm"

	"github.com/MarcoBender/GrubGo/app/models"
)

// userRepository implements the UserRepository interface
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository instance
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create creates a new user in the database
func (r *userRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// GetByID retrieves a user by their ID
func (r *userRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail retrieves a user by their email address
func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByGoogleID retrieves a user by their Google account id
func (r *userRepository) GetByGoogleID(googleID string) (*models.User, error) {
	var user models.User
	err := r.db.Where("google_id = ?", googleID).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByFacebookID retrieves a user by their Facebook account id
func (r *userRepository) GetByFacebookID(facebookID string) (*models.User, error) {
	var user models.User
	err := r.db.Where("facebook_id = ?", facebookID).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByResetTokenHash retrieves a user with a matching stored reset token hash.
// Expiry is checked by the caller against the loaded record.
func (r *userRepository) GetByResetTokenHash(hash string) (*models.User, error) {
	var user models.User
	err := r.db.Where("reset_token_hash = ? AND reset_token_hash <> ''", hash).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Update updates an existing user in the database
func (r *userRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// ClearRefreshToken removes the stored refresh token for the given user.
func (r *userRepository) ClearRefreshToken(id uint) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).Update("refresh_token", "").Error
}
