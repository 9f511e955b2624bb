package router

import (
	"time"

	"studiohq/config"
	"studiohq/internal/handler"
	"studiohq/internal/middleware"
	"studiohq/internal/repository"
	"studiohq/internal/service"
	"studiohq/internal/ws"
	"studiohq/pkg/cloudinary"
	"studiohq/pkg/email"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(cfg *config.Config, db *gorm.DB, cloud cloudinary.Client, sender email.Sender) (*gin.Engine, *service.ReminderService) {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(&cfg.CORS))
	r.Use(middleware.RateLimit(middleware.NewInMemoryRateLimiter(100, 60*time.Second)))

	// Repositories
	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	authSessionRepo := repository.NewAuthSessionRepository(db)
	creditRepo := repository.NewCreditRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	checkinRepo := repository.NewCheckinRepository(db)
	rewardsRepo := repository.NewRewardsRepository(db)
	membershipRepo := repository.NewMembershipRepository(db)
	intakeRepo := repository.NewIntakeRepository(db)
	waiverRepo := repository.NewWaiverRepository(db)
	workoutRepo := repository.NewWorkoutRepository(db)
	reminderRepo := repository.NewReminderRepository(db)

	feedHub := ws.NewFeedHub()

	// Services
	authSvc := service.NewAuthService(cfg, userRepo, authSessionRepo)
	bookingSvc := service.NewBookingService(db, bookingRepo, sessionRepo, creditRepo, membershipRepo, waiverRepo)
	checkinSvc := service.NewCheckinService(db, bookingRepo, checkinRepo, rewardsRepo)
	reminderSvc := service.NewReminderService(bookingRepo, reminderRepo, sender, cfg.Email.From)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc)
	googleOAuthHandler := handler.NewGoogleOAuthHandler(cfg, authSvc)
	meHandler := handler.NewMeHandler(userRepo, waiverRepo, intakeRepo)
	catalogHandler := handler.NewCatalogHandler(sessionRepo, bookingRepo)
	creditHandler := handler.NewCreditHandler(creditRepo, userRepo)
	membershipHandler := handler.NewMembershipHandler(membershipRepo, userRepo)
	bookingHandler := handler.NewBookingHandler(bookingSvc, bookingRepo, feedHub)
	adminBookingHandler := handler.NewAdminBookingHandler(bookingSvc, checkinSvc, bookingRepo, feedHub)
	rewardsHandler := handler.NewRewardsHandler(rewardsRepo)
	intakeHandler := handler.NewIntakeHandler(intakeRepo)
	waiverHandler := handler.NewWaiverHandler(waiverRepo)
	exerciseHandler := handler.NewExerciseHandler(workoutRepo, cloud)
	workoutHandler := handler.NewWorkoutHandler(workoutRepo, userRepo)
	reminderHandler := handler.NewReminderHandler(reminderSvc, cfg.Reminder.HoursAhead)

	authMw := middleware.AuthRequired(&cfg.JWT, authSessionRepo)
	adminMw := middleware.AdminRequired()

	api := r.Group("/api/v1")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/signup", authHandler.Signup)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/logout", authMw, authHandler.Logout)
			authGroup.PATCH("/change-password", authMw, authHandler.ChangePassword)
			authGroup.GET("/google", googleOAuthHandler.Redirect)
			authGroup.GET("/google/callback", googleOAuthHandler.Callback)
		}

		me := api.Group("/me")
		me.Use(authMw)
		{
			me.GET("", meHandler.Get)
			me.GET("/credits", creditHandler.MyBalances)
			me.GET("/membership", membershipHandler.Status)
			me.GET("/rewards", rewardsHandler.Get)
			me.GET("/bookings", bookingHandler.ListMine)
			me.GET("/workouts", workoutHandler.ListMine)
			me.GET("/workouts/:id", workoutHandler.GetMine)
		}

		api.GET("/sessions", authMw, catalogHandler.ListUpcoming)
		api.GET("/credit-types", authMw, creditHandler.ListTypes)

		api.POST("/bookings", authMw, bookingHandler.Create)
		api.POST("/bookings/:id/cancel", authMw, bookingHandler.Cancel)

		api.GET("/waiver", authMw, waiverHandler.GetActive)
		api.POST("/waiver/sign", authMw, waiverHandler.Sign)

		intake := api.Group("/intake")
		intake.Use(authMw)
		{
			intake.POST("", intakeHandler.Submit)
			intake.GET("/status", intakeHandler.Status)
			intake.GET("/forms/:form_type", intakeHandler.GetForm)
		}

		admin := api.Group("/admin")
		admin.Use(authMw, adminMw)
		{
			admin.GET("/clients", meHandler.ListClients)

			admin.POST("/class-types", catalogHandler.CreateClassType)
			admin.GET("/class-types", catalogHandler.ListClassTypes)
			admin.PUT("/class-types/:id", catalogHandler.UpdateClassType)
			admin.DELETE("/class-types/:id", catalogHandler.DeleteClassType)

			admin.POST("/sessions", catalogHandler.CreateSession)
			admin.GET("/sessions", catalogHandler.ListSessionsAdmin)
			admin.PUT("/sessions/:id", catalogHandler.UpdateSession)
			admin.DELETE("/sessions/:id", catalogHandler.DeleteSession)

			admin.GET("/bookings", adminBookingHandler.List)
			admin.POST("/bookings/:id/checkin", adminBookingHandler.Checkin)
			admin.POST("/bookings/:id/cancel", adminBookingHandler.Cancel)

			admin.POST("/credits/adjust", creditHandler.AdminAdjust)
			admin.GET("/credits/ledger", creditHandler.AdminLedger)

			admin.POST("/memberships", membershipHandler.AdminSet)
			admin.DELETE("/memberships/:user_id", membershipHandler.AdminClear)

			admin.POST("/waivers", waiverHandler.AdminCreate)
			admin.GET("/intake", intakeHandler.AdminList)

			admin.POST("/exercises", exerciseHandler.Create)
			admin.GET("/exercises", exerciseHandler.List)
			admin.GET("/exercises/:id", exerciseHandler.Get)
			admin.PUT("/exercises/:id", exerciseHandler.Update)
			admin.DELETE("/exercises/:id", exerciseHandler.Delete)
			admin.POST("/exercises/:id/image", exerciseHandler.UploadImage)

			admin.POST("/workouts", workoutHandler.Create)
			admin.GET("/workouts", workoutHandler.List)
			admin.GET("/workouts/:id", workoutHandler.Get)
			admin.PUT("/workouts/:id", workoutHandler.Update)
			admin.DELETE("/workouts/:id", workoutHandler.Delete)
			admin.POST("/workouts/:id/exercises", workoutHandler.AddExercise)
			admin.DELETE("/workouts/:id/exercises/:exercise_id", workoutHandler.RemoveExercise)
			admin.PUT("/workouts/:id/exercises/order", workoutHandler.Reorder)
			admin.POST("/workouts/:id/assign", workoutHandler.Assign)
			admin.DELETE("/workouts/:id/assign/:user_id", workoutHandler.Unassign)
			admin.GET("/workouts/:id/assignments", workoutHandler.ListAssignments)

			admin.GET("/reminders/preview", reminderHandler.Preview)
			admin.POST("/reminders/run", reminderHandler.Run)
		}
	}

	r.GET("/ws/admin", ws.UpgradeAdminFeed(&cfg.JWT, feedHub))

	return r, reminderSvc
}
