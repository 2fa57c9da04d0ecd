package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/PrasadRajuPathapati/Calorie-App-backend/models"
	"github.com/PrasadRajuPathapati/Calorie-App-backend/utils"
)

// UserService reads and updates profiles and exposes the derived,
// read-only energy need estimate.
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// ProfileUpdate carries the editable profile fields. Nil pointers mean
// "leave unchanged"; ProfilePic semantics are controlled by the two flags.
type ProfileUpdate struct {
	Name          string
	Gender        string
	Age           *int
	Height        *float64
	Weight        *float64
	ActivityLevel string

	ProfilePicURL    string
	RemoveProfilePic bool
}

// SaveProfile applies the update to the account identified by email.
func (s *UserService) SaveProfile(ctx context.Context, email string, upd ProfileUpdate) (*models.User, error) {
	user, err := s.GetProfile(ctx, email)
	if err != nil {
		return nil, err
	}

	user.Name = upd.Name
	user.Gender = upd.Gender
	user.ActivityLevel = upd.ActivityLevel
	if upd.Age != nil {
		user.Age = upd.Age
	}
	if upd.Height != nil {
		user.Height = upd.Height
	}
	if upd.Weight != nil {
		user.Weight = upd.Weight
	}
	if upd.ProfilePicURL != "" {
		user.ProfilePic = upd.ProfilePicURL
	} else if upd.RemoveProfilePic {
		user.ProfilePic = ""
	}

	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// GetProfile loads the account by email.
func (s *UserService) GetProfile(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetByID loads the account by primary key.
func (s *UserService) GetByID(ctx context.Context, userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// CalorieNeeds estimates the user's daily energy requirement from their
// profile. All five attributes must be present; the estimate itself may still
// be undefined (gender "other", unknown activity tier).
func (s *UserService) CalorieNeeds(ctx context.Context, userID uint) (int, error) {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return 0, err
	}

	if user.Gender == "" || user.Age == nil || user.Height == nil || user.Weight == nil || user.ActivityLevel == "" {
		return 0, ErrProfileIncomplete
	}

	return utils.CalculateTDEE(user.Gender, *user.Age, *user.Height, *user.Weight, user.ActivityLevel)
}

// BMI returns the user's body mass index and its category, when height and
// weight are on file.
func (s *UserService) BMI(ctx context.Context, userID uint) (float64, string, error) {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return 0, "", err
	}
	if user.Height == nil || user.Weight == nil {
		return 0, "", ErrProfileIncomplete
	}

	bmi, err := utils.CalculateBMI(*user.Height, *user.Weight)
	if err != nil {
		return 0, "", err
	}
	return bmi, utils.BMICategory(bmi), nil
}
