package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/siaksi/siaksi-api/docs"
	v1 "github.com/siaksi/siaksi-api/internal/api/handler/v1"
	"github.com/siaksi/siaksi-api/internal/api/middleware"
	"github.com/siaksi/siaksi-api/internal/config"
	"github.com/siaksi/siaksi-api/internal/mailqueue"
	"github.com/siaksi/siaksi-api/internal/repository"
	"github.com/siaksi/siaksi-api/internal/repository/dao"
	"github.com/siaksi/siaksi-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine

	mailService *service.MailService
	rateLimiter *middleware.RateLimiter
}

func NewServer(conf *config.AppConfig, db *gorm.DB, redisClient *redis.Client) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.rateLimiter = middleware.NewRateLimiter(redisClient, conf.Redis.RateLimitPerMin)

	s.MountMiddlewares()

	authHandler := s.initAuthHandler(db)
	userHandler := s.initUserHandler(db)
	scheduleHandler := s.initScheduleHandler(db)
	attendanceHandler := s.initAttendanceHandler(db)
	mailHandler := s.initMailHandler(db, redisClient)
	aspirationHandler := s.initAspirationHandler(db)
	learningHandler := s.initLearningHandler(db)
	financeHandler := s.initFinanceHandler(db)
	s.MountHandlers(authHandler, userHandler, scheduleHandler, attendanceHandler, mailHandler, aspirationHandler, learningHandler, financeHandler)

	return s
}

// MailService exposes the broadcast deliverer for the queue dispatcher.
func (s *Server) MailService() *service.MailService {
	return s.mailService
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

func (s *Server) initScheduleHandler(db *gorm.DB) *v1.ScheduleHandler {
	scheduleDAO := dao.NewScheduleDAO(db)
	repo := repository.NewScheduleRepository(scheduleDAO)
	svc := service.NewScheduleService(repo)
	uSvc := service.NewUserService(repository.NewUserRepository(dao.NewUserDAO(db)))
	handler := v1.NewScheduleHandler(svc, uSvc)

	return handler
}

func (s *Server) initAttendanceHandler(db *gorm.DB) *v1.AttendanceHandler {
	attendanceDAO := dao.NewAttendanceDAO(db)
	repo := repository.NewAttendanceRepository(attendanceDAO)
	scheduleRepo := repository.NewScheduleRepository(dao.NewScheduleDAO(db))
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	svc := service.NewAttendanceService(repo, scheduleRepo, userRepo)
	uSvc := service.NewUserService(userRepo)
	handler := v1.NewAttendanceHandler(svc, uSvc)

	return handler
}

func (s *Server) initMailHandler(db *gorm.DB, redisClient *redis.Client) *v1.MailHandler {
	mailDAO := dao.NewMailDAO(db)
	repo := repository.NewMailRepository(mailDAO)
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	queue := mailqueue.NewRedisQueue(redisClient, s.Config.Redis.MailQueueKey)
	svc := service.NewMailService(repo, userRepo, queue)
	uSvc := service.NewUserService(userRepo)
	handler := v1.NewMailHandler(svc, uSvc)

	s.mailService = svc

	return handler
}

func (s *Server) initAspirationHandler(db *gorm.DB) *v1.AspirationHandler {
	aspirationDAO := dao.NewAspirationDAO(db)
	repo := repository.NewAspirationRepository(aspirationDAO)
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	svc := service.NewAspirationService(repo, userRepo)
	uSvc := service.NewUserService(userRepo)
	handler := v1.NewAspirationHandler(svc, uSvc)

	return handler
}

func (s *Server) initLearningHandler(db *gorm.DB) *v1.LearningHandler {
	learningDAO := dao.NewLearningDAO(db)
	repo := repository.NewLearningRepository(learningDAO)
	svc := service.NewLearningService(repo)
	uSvc := service.NewUserService(repository.NewUserRepository(dao.NewUserDAO(db)))
	handler := v1.NewLearningHandler(svc, uSvc)

	return handler
}

func (s *Server) initFinanceHandler(db *gorm.DB) *v1.FinanceHandler {
	financeDAO := dao.NewFinanceDAO(db)
	repo := repository.NewFinanceRepository(financeDAO)
	svc := service.NewFinanceService(repo)
	uSvc := service.NewUserService(repository.NewUserRepository(dao.NewUserDAO(db)))
	handler := v1.NewFinanceHandler(svc, uSvc)

	return handler
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
	s.Router.Use(middleware.CountRequests())
}

func (s *Server) MountHandlers(
	authHandler *v1.AuthHandler,
	userHandler *v1.UserHandler,
	scheduleHandler *v1.ScheduleHandler,
	attendanceHandler *v1.AttendanceHandler,
	mailHandler *v1.MailHandler,
	aspirationHandler *v1.AspirationHandler,
	learningHandler *v1.LearningHandler,
	financeHandler *v1.FinanceHandler,
) {
	const basePath = "/api/v1"

	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/signup", authHandler.HandleSignup)
		auth.POST("/auth/login", authHandler.HandleLogin)
	}

	authed := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		authed.GET("/users/me", userHandler.HandleGetMe)
		authed.PATCH("/users/me", userHandler.HandleUpdateProfile)
		authed.GET("/users", userHandler.HandleListUsers)
		authed.GET("/users/:id", userHandler.HandleGetUser)
		authed.PATCH("/users/:id/active", userHandler.HandleSetActive)

		authed.POST("/schedules", scheduleHandler.HandleCreateSchedule)
		authed.GET("/schedules", scheduleHandler.HandleListSchedules)
		authed.GET("/schedules/:id", scheduleHandler.HandleGetSchedule)
		authed.PUT("/schedules/:id", scheduleHandler.HandleUpdateSchedule)
		authed.DELETE("/schedules/:id", scheduleHandler.HandleCancelSchedule)

		authed.POST("/schedules/:id/attendance", s.rateLimiter.Limit(), attendanceHandler.HandleSubmitAttendance)
		authed.GET("/schedules/:id/attendance", attendanceHandler.HandleAttendanceRecap)
		authed.POST("/schedules/:id/closeout", attendanceHandler.HandleCloseOut)
		authed.GET("/attendance/history", attendanceHandler.HandleAttendanceHistory)

		authed.POST("/mail", mailHandler.HandleSendMail)
		authed.POST("/mail/broadcast", mailHandler.HandleBroadcast)
		authed.GET("/mail/inbox", mailHandler.HandleInbox)
		authed.GET("/mail/inbox/:id", mailHandler.HandleReadEntry)

		authed.POST("/aspirations", aspirationHandler.HandleSubmitAspiration)
		authed.GET("/aspirations", aspirationHandler.HandleListAspirations)
		authed.GET("/aspirations/mine", aspirationHandler.HandleListMyAspirations)
		authed.PATCH("/aspirations/:id", aspirationHandler.HandleRespondAspiration)

		authed.POST("/learning/categories", learningHandler.HandleCreateCategory)
		authed.GET("/learning/categories/tree", learningHandler.HandleCategoryTree)
		authed.DELETE("/learning/categories/:id", learningHandler.HandleDeleteCategory)
		authed.GET("/learning/categories/:id/materials", learningHandler.HandleListMaterials)
		authed.POST("/learning/materials", learningHandler.HandleCreateMaterial)
		authed.GET("/learning/materials/:id", learningHandler.HandleGetMaterial)
		authed.PUT("/learning/materials/:id", learningHandler.HandleUpdateMaterial)
		authed.DELETE("/learning/materials/:id", learningHandler.HandleDeleteMaterial)

		authed.POST("/finance/entries", financeHandler.HandleRecordEntry)
		authed.GET("/finance/entries", financeHandler.HandleListEntries)
		authed.DELETE("/finance/entries/:id", financeHandler.HandleDeleteEntry)
		authed.GET("/finance/report", financeHandler.HandleExportReport)
	}

	s.Router.GET("/", v1.HandleHealthcheck)
	s.Router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "SIAKSI API"
	docs.SwaggerInfo.Description = "Backend for student organization management."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
