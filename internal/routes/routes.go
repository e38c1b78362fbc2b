package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/Malek-bh/agrical-api/internal/audit"
	"github.com/Malek-bh/agrical-api/internal/auth"
	"github.com/Malek-bh/agrical-api/internal/cache"
	"github.com/Malek-bh/agrical-api/internal/config"
	"github.com/Malek-bh/agrical-api/internal/handlers"
	"github.com/Malek-bh/agrical-api/internal/imagestore"
	"github.com/Malek-bh/agrical-api/internal/middleware"
	"github.com/Malek-bh/agrical-api/internal/store"
)

// Deps carries everything the route tree needs. The external clients
// come in as interfaces so tests can swap in fakes.
type Deps struct {
	DB     *gorm.DB
	Config *config.Config
	Log    *logrus.Logger

	Cache      *cache.Cache
	Weather    handlers.WeatherFetcher
	Commodity  handlers.CommodityFetcher
	Classifier handlers.DiseasePredictor
	Images     *imagestore.Store

	// EmailValidator defaults to the DNS-based check when nil.
	EmailValidator func(string) bool
}

func RegisterRoutes(r *gin.Engine, deps Deps) {

	// ------------------------------
	// CORE (auth wiring)
	// ------------------------------
	users := store.NewUserStore(deps.DB)
	tokens := auth.NewTokenMaker(deps.Config.SecretKey, deps.Config.TokenTTL)
	authService := auth.NewService(users, tokens)

	auditLogger := audit.New(deps.DB)
	auditDispatcher := audit.NewDispatcher(auditLogger, deps.Log)

	// ------------------------------
	// HANDLERS
	// ------------------------------
	authHandler := handlers.NewAuthHandler(deps.DB, users, authService, auditDispatcher, deps.EmailValidator)
	meHandler := handlers.NewMeHandler(users, auditDispatcher, deps.EmailValidator)
	userHandler := handlers.NewUserHandler(users, auditDispatcher)

	postHandler := handlers.NewPostHandler(deps.DB, auditDispatcher)
	commentHandler := handlers.NewCommentHandler(deps.DB, auditDispatcher)
	serviceHandler := handlers.NewServiceHandler(deps.DB, auditDispatcher)
	cropHandler := handlers.NewCropHandler(deps.DB, auditDispatcher)
	calendarHandler := handlers.NewCalendarHandler(deps.DB)

	weatherHandler := handlers.NewWeatherHandler(deps.Weather, deps.Cache)
	commodityHandler := handlers.NewCommodityHandler(deps.Commodity, deps.Cache)
	diseaseHandler := handlers.NewDiseaseHandler(deps.Classifier, deps.Images, deps.Log)

	auditLogsHandler := handlers.NewAuditLogsHandler(deps.DB)

	// ------------------------------
	// PUBLIC
	// ------------------------------
	r.POST("/register", authHandler.Register)
	r.POST("/login", authHandler.Login)

	r.GET("/posts", postHandler.List)
	r.GET("/posts/:id", postHandler.Get)
	r.GET("/posts/:id/comments", commentHandler.ListForPost)

	r.GET("/services", serviceHandler.List)
	r.GET("/services/:id/requests", serviceHandler.ListRequests)

	r.GET("/crops", cropHandler.List)
	r.GET("/crops/:id/tasks", cropHandler.ListTasks)

	r.GET("/agriculture/calendar", calendarHandler.List)
	r.GET("/agriculture/calendar/season/:season", calendarHandler.BySeason)
	r.GET("/agriculture/calendar/date/:date", calendarHandler.ByDate)
	r.GET("/agriculture/calendar/category/:category", calendarHandler.ByCategory)

	r.POST("/weather", weatherHandler.Get)
	r.POST("/commodity-price", commodityHandler.Get)

	// ------------------------------
	// PROTECTED
	// ------------------------------
	secured := r.Group("/")
	secured.Use(middleware.AuthMiddleware(tokens, users))
	{
		secured.GET("/profile", meHandler.GetProfile)
		secured.PUT("/update-profile", meHandler.UpdateProfile)

		secured.DELETE("/users/:id", userHandler.Delete)

		secured.POST("/posts", postHandler.Create)
		secured.PUT("/posts/:id", postHandler.Update)
		secured.DELETE("/posts/:id", postHandler.Delete)

		secured.POST("/comments", commentHandler.Create)
		secured.DELETE("/comments/:id", commentHandler.Delete)

		secured.POST("/services", serviceHandler.Create)
		secured.DELETE("/services/:id", serviceHandler.Delete)
		secured.POST("/services/:id/request", serviceHandler.Request)

		secured.POST("/crops", cropHandler.Create)
		secured.DELETE("/crops/:id/tasks", cropHandler.DeleteTasks)

		secured.POST("/agriculture/calendar", calendarHandler.Create)

		secured.POST("/predict-disease", diseaseHandler.Predict)

		secured.GET("/audit-logs", auditLogsHandler.List)
	}
}
