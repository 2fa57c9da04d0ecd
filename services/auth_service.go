package services

import (
	"context"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/PrasadRajuPathapati/Calorie-App-backend/models"
	"github.com/PrasadRajuPathapati/Calorie-App-backend/utils"
)

// OTPSender delivers one-time codes: SES in production, a fake in tests.
type OTPSender interface {
	SendVerificationEmail(ctx context.Context, to, otp string) error
	SendResetEmail(ctx context.Context, to, otp string) error
}

// AuthService handles the account lifecycle: signup with email OTP
// verification, login, and password reset.
type AuthService struct {
	db        *gorm.DB
	mailer    OTPSender
	jwtSecret []byte
}

func NewAuthService(db *gorm.DB, mailer OTPSender, jwtSecret []byte) *AuthService {
	return &AuthService{db: db, mailer: mailer, jwtSecret: jwtSecret}
}

const otpTTL = 10 * time.Minute

// Signup stores a new unverified account and emails its OTP.
func (s *AuthService) Signup(ctx context.Context, email, password string) error {
	var existing models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&existing).Error
	if err == nil {
		return ErrEmailRegistered
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	otp := utils.GenerateOTP()
	expires := time.Now().Add(otpTTL)
	user := models.User{Email: email, Password: hashed, OTP: otp, OTPExpires: &expires}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrEmailRegistered
		}
		return err
	}

	if err := s.mailer.SendVerificationEmail(ctx, email, otp); err != nil {
		log.Printf("[AUTH] verification mail to %s failed: %v", email, err)
		return err
	}
	return nil
}

// VerifyOTP marks the account verified when the code matches and is unexpired.
// The code is single-use: it is cleared on success.
func (s *AuthService) VerifyOTP(ctx context.Context, email, otp string) error {
	user, err := s.findByEmail(ctx, email)
	if err != nil {
		return err
	}

	if user.OTP == "" || user.OTP != otp || user.OTPExpires == nil || !user.OTPExpires.After(time.Now()) {
		return ErrInvalidOTP
	}

	return s.db.WithContext(ctx).Model(user).Updates(map[string]interface{}{
		"verified":    true,
		"otp":         "",
		"otp_expires": nil,
	}).Error
}

// Login authenticates a verified account and returns a signed token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := s.findByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if !user.Verified {
		return "", nil, ErrNotVerified
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		return "", nil, ErrInvalidPassword
	}

	token, err := utils.GenerateJWT(s.jwtSecret, user.ID, user.Email)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// SendResetOTP stores a fresh reset code on the account and emails it.
func (s *AuthService) SendResetOTP(ctx context.Context, email string) error {
	user, err := s.findByEmail(ctx, email)
	if err != nil {
		return err
	}

	otp := utils.GenerateOTP()
	expires := time.Now().Add(otpTTL)
	if err := s.db.WithContext(ctx).Model(user).Updates(map[string]interface{}{
		"otp":         otp,
		"otp_expires": expires,
	}).Error; err != nil {
		return err
	}

	if err := s.mailer.SendResetEmail(ctx, email, otp); err != nil {
		log.Printf("[AUTH] reset mail to %s failed: %v", email, err)
		return err
	}
	return nil
}

// ResetPassword sets a new password when the reset code checks out.
func (s *AuthService) ResetPassword(ctx context.Context, email, otp, newPassword string) error {
	user, err := s.findByEmail(ctx, email)
	if err != nil {
		return err
	}

	if user.OTP == "" || user.OTP != otp || user.OTPExpires == nil || !user.OTPExpires.After(time.Now()) {
		return ErrInvalidOTP
	}

	hashed, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Model(user).Updates(map[string]interface{}{
		"password":    hashed,
		"otp":         "",
		"otp_expires": nil,
	}).Error
}

func (s *AuthService) findByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}
