package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/PrasadRajuPathapati/Calorie-App-backend/config"
	"github.com/PrasadRajuPathapati/Calorie-App-backend/controllers"
	"github.com/PrasadRajuPathapati/Calorie-App-backend/middlewares"
)

// Controllers bundles the handler groups the router wires up.
type Controllers struct {
	Auth *controllers.AuthController
	User *controllers.UserController
	Food *controllers.FoodController
	Log  *controllers.LogController
}

// SetupRouter registers all routes. Auth endpoints and profile reads are
// public; everything touching a specific user's data requires a valid token.
func SetupRouter(cfg *config.Config, ctrl Controllers) *gin.Engine {
	r := gin.Default()

	r.POST("/signup", ctrl.Auth.Signup)
	r.POST("/verify-otp", ctrl.Auth.VerifyOTP)
	r.POST("/login", ctrl.Auth.Login)
	r.POST("/send-reset-otp", ctrl.Auth.SendResetOTP)
	r.POST("/reset-password", ctrl.Auth.ResetPassword)

	r.POST("/save-profile", ctrl.User.SaveProfile)
	r.GET("/api/user/profile", ctrl.User.GetProfile)

	r.POST("/get-calories", ctrl.Food.GetCalories)
	r.GET("/api/foods", ctrl.Food.Search)

	protected := r.Group("/api")
	protected.Use(middlewares.AuthMiddleware([]byte(cfg.JWT.Secret)))
	{
		protected.GET("/user/calorie-needs", ctrl.User.CalorieNeeds)
		protected.GET("/user/bmi", ctrl.User.BMI)

		protected.POST("/log-food", ctrl.Log.LogFood)
		protected.GET("/daily-log", ctrl.Log.GetDailyLog)
		protected.GET("/daily-log/history", ctrl.Log.History)
		protected.DELETE("/daily-log/:logId/foods/:foodEntryId", ctrl.Log.DeleteEntry)
	}

	return r
}
