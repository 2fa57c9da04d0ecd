package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/PrasadRajuPathapati/Calorie-App-backend/services"
	"github.com/PrasadRajuPathapati/Calorie-App-backend/utils"
)

type UserController struct {
	users    *services.UserService
	uploader *utils.Uploader
}

func NewUserController(users *services.UserService, uploader *utils.Uploader) *UserController {
	return &UserController{users: users, uploader: uploader}
}

// optionalInt treats an absent or empty form value as "not provided" and
// rejects anything that is present but not a number.
func optionalInt(raw string) (*int, error) {
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("not a whole number: %q", raw)
	}
	return &n, nil
}

func optionalFloat(raw string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("not a number: %q", raw)
	}
	return &f, nil
}

// SaveProfile accepts a multipart form so the profile picture can ride
// along with the text fields in a single request.
func (uc *UserController) SaveProfile(c *gin.Context) {
	email := c.PostForm("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
		return
	}

	age, err := optionalInt(c.PostForm("age"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "age " + err.Error()})
		return
	}
	height, err := optionalFloat(c.PostForm("height"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "height " + err.Error()})
		return
	}
	weight, err := optionalFloat(c.PostForm("weight"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "weight " + err.Error()})
		return
	}

	upd := services.ProfileUpdate{
		Name:             c.PostForm("name"),
		Gender:           c.PostForm("gender"),
		Age:              age,
		Height:           height,
		Weight:           weight,
		ActivityLevel:    c.PostForm("activityLevel"),
		RemoveProfilePic: c.PostForm("removeProfilePic") == "true",
	}

	if file, err := c.FormFile("profilePic"); err == nil {
		if uc.uploader == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "image uploads are not configured"})
			return
		}
		src, err := file.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "could not read uploaded file"})
			return
		}
		defer src.Close()

		url, err := uc.uploader.UploadProfileImage(c.Request.Context(), file.Filename, file.Header.Get("Content-Type"), src)
		if err != nil {
			respondError(c, err)
			return
		}
		upd.ProfilePicURL = url
	}

	user, err := uc.users.SaveProfile(c.Request.Context(), email, upd)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile saved successfully", "user": user})
}

func (uc *UserController) GetProfile(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
		return
	}

	user, err := uc.users.GetProfile(c.Request.Context(), email)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// CalorieNeeds returns the maintenance estimate for the logged-in user.
func (uc *UserController) CalorieNeeds(c *gin.Context) {
	userID := c.GetUint("userID")

	needs, err := uc.users.CalorieNeeds(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"calorieNeeds": needs})
}

func (uc *UserController) BMI(c *gin.Context) {
	userID := c.GetUint("userID")

	bmi, category, err := uc.users.BMI(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bmi": bmi, "category": category})
}
