package http

import (
	"time"

	"github.com/gin-gonic/gin"

	appsvc "github.com/bpmutter/tappdin-backend/internal/app"
	"github.com/bpmutter/tappdin-backend/internal/bootstrap"
	"github.com/bpmutter/tappdin-backend/internal/cache"
	"github.com/bpmutter/tappdin-backend/internal/platform/rabbitmq"
	"github.com/bpmutter/tappdin-backend/internal/repository"
	"github.com/bpmutter/tappdin-backend/internal/transport/http/handler"
	"github.com/bpmutter/tappdin-backend/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/healthz", healthHandler.Check)

	userRepo := repository.NewUserRepository(app.MySQL)
	beerRepo := repository.NewBeerRepository(app.MySQL)
	checkinRepo := repository.NewCheckinRepository(app.MySQL)
	feedCache := cache.NewCheckinCache(
		app.Redis,
		time.Duration(app.Config.Redis.FeedTTLSeconds)*time.Second,
		time.Duration(app.Config.Redis.FeedDirtyTTLSeconds)*time.Second,
	)
	checkinPublisher := rabbitmq.NewCheckinPublisher(app.MQConn, app.Config.RabbitMQ.CheckinPersistQueue)

	accountService := appsvc.NewAccountService(
		userRepo,
		checkinRepo,
		feedCache,
		app.Config.Auth.JWTSecret,
		time.Duration(app.Config.Auth.JWTExpireMinute)*time.Minute,
	)
	beerService := appsvc.NewBeerService(beerRepo, checkinRepo)
	checkinService := appsvc.NewCheckinService(beerRepo, checkinPublisher, feedCache)

	userHandler := handler.NewUserHandler(accountService)
	beerHandler := handler.NewBeerHandler(beerService)
	checkinHandler := handler.NewCheckinHandler(checkinService)

	router.POST("/users", userHandler.Signup)
	router.POST("/users/token", userHandler.Login)

	authed := router.Group("/")
	authed.Use(middleware.AuthJWT(app.Config.Auth.JWTSecret))
	authed.GET("/users/:id", userHandler.GetProfile)
	authed.PUT("/users/:id", userHandler.UpdateProfile)
	authed.PUT("/users/:id/password", userHandler.ChangePassword)
	authed.DELETE("/users/:id/delete", userHandler.DeleteAccount)

	authed.GET("/beers", beerHandler.ListBeers)
	authed.GET("/beers/top", beerHandler.TopRated)
	authed.GET("/beers/:id", beerHandler.GetBeer)
	authed.GET("/beers/brewery/:id", beerHandler.ListByBrewery)
	authed.DELETE("/beers/:id", beerHandler.DeleteBeer)
	authed.POST("/beers/search", beerHandler.SearchBeers)

	authed.POST("/checkins", checkinHandler.CreateCheckin)

	return router
}
