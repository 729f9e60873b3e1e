package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/astroreserve/planetarium-api/docs"
	v1 "github.com/astroreserve/planetarium-api/internal/api/handler/v1"
	"github.com/astroreserve/planetarium-api/internal/api/middleware"
	"github.com/astroreserve/planetarium-api/internal/config"
	"github.com/astroreserve/planetarium-api/internal/repository"
	"github.com/astroreserve/planetarium-api/internal/repository/dao"
	"github.com/astroreserve/planetarium-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	authHandler := s.initAuthHandler(db)
	userHandler := s.initUserHandler(db)
	catalogHandler := s.initCatalogHandler(db)
	sessionHandler := s.initSessionHandler(db)
	reservationHandler := s.initReservationHandler(db)
	s.MountHandlers(authHandler, userHandler, catalogHandler, sessionHandler, reservationHandler)

	return s
}

func (s *Server) initAuthHandler(db *gorm.DB) *v1.AuthHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewAuthService(repo)
	handler := v1.NewAuthHandler(s.Config.API, svc)

	return handler
}

func (s *Server) initUserHandler(db *gorm.DB) *v1.UserHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewUserService(repo)
	handler := v1.NewUserHandler(svc)

	return handler
}

func (s *Server) initCatalogHandler(db *gorm.DB) *v1.CatalogHandler {
	catalogDAO := dao.NewCatalogDAO(db)
	repo := repository.NewCatalogRepository(catalogDAO)
	svc := service.NewCatalogService(repo)
	uSvc := service.NewUserService(repository.NewUserRepository(dao.NewUserDAO(db)))
	handler := v1.NewCatalogHandler(svc, uSvc)

	return handler
}

func (s *Server) initSessionHandler(db *gorm.DB) *v1.SessionHandler {
	catalogDAO := dao.NewCatalogDAO(db)
	repo := repository.NewCatalogRepository(catalogDAO)
	svc := service.NewCatalogService(repo)
	uSvc := service.NewUserService(repository.NewUserRepository(dao.NewUserDAO(db)))
	handler := v1.NewSessionHandler(svc, uSvc)

	return handler
}

func (s *Server) initReservationHandler(db *gorm.DB) *v1.ReservationHandler {
	catalogRepo := repository.NewCatalogRepository(dao.NewCatalogDAO(db))
	repo := repository.NewReservationRepository(dao.NewReservationDAO(db), catalogRepo)
	svc := service.NewReservationService(repo, catalogRepo)
	handler := v1.NewReservationHandler(svc)

	return handler
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	authHandler *v1.AuthHandler,
	userHandler *v1.UserHandler,
	catalogHandler *v1.CatalogHandler,
	sessionHandler *v1.SessionHandler,
	reservationHandler *v1.ReservationHandler,
) {
	const basePath = "/api/v1"

	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/signup", authHandler.HandleSignup)
		auth.POST("/auth/login", authHandler.HandleLogin)
	}

	authenticated := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		authenticated.GET("/users/me", userHandler.HandleGetMe)

		// Catalog reads are open to any authenticated user; writes check for
		// the staff role inside the handlers.
		authenticated.GET("/themes", catalogHandler.HandleListThemes)
		authenticated.POST("/themes", catalogHandler.HandleCreateTheme)

		authenticated.GET("/shows", catalogHandler.HandleListShows)
		authenticated.POST("/shows", catalogHandler.HandleCreateShow)
		authenticated.GET("/shows/:showID", catalogHandler.HandleGetShow)
		authenticated.PUT("/shows/:showID", catalogHandler.HandleUpdateShow)
		authenticated.DELETE("/shows/:showID", catalogHandler.HandleDeleteShow)

		authenticated.GET("/domes", catalogHandler.HandleListDomes)
		authenticated.POST("/domes", catalogHandler.HandleCreateDome)
		authenticated.GET("/domes/:domeID", catalogHandler.HandleGetDome)
		authenticated.PUT("/domes/:domeID", catalogHandler.HandleUpdateDome)
		authenticated.DELETE("/domes/:domeID", catalogHandler.HandleDeleteDome)

		authenticated.GET("/sessions", sessionHandler.HandleListSessions)
		authenticated.POST("/sessions", sessionHandler.HandleCreateSession)
		authenticated.GET("/sessions/:sessionID", sessionHandler.HandleGetSession)
		authenticated.PUT("/sessions/:sessionID", sessionHandler.HandleUpdateSession)
		authenticated.DELETE("/sessions/:sessionID", sessionHandler.HandleDeleteSession)

		authenticated.GET("/reservations", reservationHandler.HandleListReservations)
		authenticated.POST("/reservations", reservationHandler.HandleCreateReservation)
		authenticated.GET("/reservations/:reservationID", reservationHandler.HandleGetReservation)
		authenticated.DELETE("/reservations/:reservationID", reservationHandler.HandleDeleteReservation)

		authenticated.GET("/tickets", reservationHandler.HandleListTickets)
		authenticated.GET("/tickets/:ticketID", reservationHandler.HandleGetTicket)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Planetarium API"
	docs.SwaggerInfo.Description = "Seat reservation API for a planetarium."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
