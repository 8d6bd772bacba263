package models

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

const (
	// PasswordHashCost is the bcrypt cost used for stored credentials.
	PasswordHashCost = 12

	// MinPasswordLength is enforced on signup and password reset.
	MinPasswordLength = 6

	// ResetTokenTTL bounds how long a password reset link stays usable.
	ResetTokenTTL = 10 * time.Minute
)

type User struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	Name         string  `gorm:"type:varchar(150)" json:"name" validate:"required,max=150"`
	Email        string  `gorm:"uniqueIndex;type:varchar(200)" json:"email" validate:"required,email,min=5,max=200"`
	PasswordHash string  `gorm:"type:text" json:"-" validate:"required"`
	Phone        string  `gorm:"type:varchar(30);default:null" json:"phone,omitempty"`
	Address      string  `gorm:"type:varchar(255);default:null" json:"address,omitempty"`
	City         string  `gorm:"type:varchar(100);default:null" json:"city,omitempty"`
	Pincode      string  `gorm:"type:varchar(20);default:null" json:"pincode,omitempty"`
	GoogleID     *string `gorm:"type:varchar(64);uniqueIndex;default:null" json:"-"`
	FacebookID   *string `gorm:"type:varchar(64);uniqueIndex;default:null" json:"-"`

	// At most one valid refresh token per user; overwritten on every
	// login/refresh, cleared on logout.
	RefreshToken string `gorm:"type:text" json:"-"`

	// Only the SHA-256 hash of a pending reset token is stored.
	ResetTokenHash   string     `gorm:"type:varchar(64);index;default:null" json:"-"`
	ResetTokenExpiry *time.Time `gorm:"type:timestamp;default:null" json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (u *User) Validate() error {
	v := validator.New()

	return v.Struct(u)
}

func CreateUser(name string, email string, password string) (*User, error) {
	pw, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	u := &User{
		Name:         name,
		Email:        email,
		PasswordHash: pw,
	}

	err = u.Validate()
	if err != nil {
		return nil, err
	}

	return u, nil
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), PasswordHashCost)

	return string(bytes), err
}

// CheckPasswordHash compares the given password with the stored hash.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))

	return err == nil
}

// CheckPassword verifies if the provided password matches the user's stored password
func (u *User) CheckPassword(password string) bool {
	return CheckPasswordHash(password, u.PasswordHash)
}

// SetPassword hashes and sets a new password for the user
func (u *User) SetPassword(password string) error {
	hashedPassword, err := HashPassword(password)
	if err != nil {
		return err
	}
	u.PasswordHash = hashedPassword
	return nil
}

// GenerateResetToken creates a random reset token, stores its hash and expiry
// on the user, and returns the plaintext token. The plaintext is never
// persisted; it only travels inside the reset email.
func (u *User) GenerateResetToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	plaintext := hex.EncodeToString(b)

	u.ResetTokenHash = HashResetToken(plaintext)
	expiry := time.Now().Add(ResetTokenTTL)
	u.ResetTokenExpiry = &expiry

	return plaintext, nil
}

// HashResetToken maps a plaintext reset token to its stored form.
func HashResetToken(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}

// ClearResetToken removes any pending reset request.
func (u *User) ClearResetToken() {
	u.ResetTokenHash = ""
	u.ResetTokenExpiry = nil
}

// HasValidResetToken reports whether a reset request is pending and unexpired.
// An expired token is treated as absent even while still stored.
func (u *User) HasValidResetToken() bool {
	return u.ResetTokenHash != "" && u.ResetTokenExpiry != nil && u.ResetTokenExpiry.After(time.Now())
}
