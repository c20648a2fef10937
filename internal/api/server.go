package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	v1 "github.com/kiotdev/contesthub-api/internal/api/handler/v1"
	"github.com/kiotdev/contesthub-api/internal/api/middleware"
	"github.com/kiotdev/contesthub-api/internal/config"
	"github.com/kiotdev/contesthub-api/internal/domain"
	"github.com/kiotdev/contesthub-api/internal/repository"
	"github.com/kiotdev/contesthub-api/internal/repository/dao"
	"github.com/kiotdev/contesthub-api/internal/service"
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
	contestHandler := s.initContestHandler(db)
	registrationHandler := s.initRegistrationHandler(db)
	teamHandler := s.initTeamHandler(db)
	mentorHandler := s.initMentorHandler(db)
	chatHandler := s.initChatHandler(db)
	s.MountHandlers(authHandler, contestHandler, registrationHandler, teamHandler, mentorHandler, chatHandler)

	return s
}

func (s *Server) initAuthHandler(db *gorm.DB) *v1.AuthHandler {
	repo := repository.NewUserRepository(dao.NewUserDAO(db))
	svc := service.NewAuthService(repo)

	return v1.NewAuthHandler(s.Config.API, svc)
}

func (s *Server) initContestHandler(db *gorm.DB) *v1.ContestHandler {
	repo := repository.NewContestRepository(dao.NewContestDAO(db))
	teamRepo := repository.NewTeamRepository(dao.NewTeamDAO(db))
	svc := service.NewContestService(repo, teamRepo)

	return v1.NewContestHandler(s.Config.API, svc)
}

func (s *Server) initRegistrationHandler(db *gorm.DB) *v1.RegistrationHandler {
	repo := repository.NewRegistrationRepository(dao.NewRegistrationDAO(db))
	contestRepo := repository.NewContestRepository(dao.NewContestDAO(db))
	svc := service.NewRegistrationService(repo, contestRepo)

	return v1.NewRegistrationHandler(svc)
}

func (s *Server) initTeamHandler(db *gorm.DB) *v1.TeamHandler {
	repo := repository.NewTeamRepository(dao.NewTeamDAO(db))
	contestRepo := repository.NewContestRepository(dao.NewContestDAO(db))
	svc := service.NewTeamService(repo, contestRepo)

	return v1.NewTeamHandler(svc)
}

func (s *Server) initMentorHandler(db *gorm.DB) *v1.MentorHandler {
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	contestRepo := repository.NewContestRepository(dao.NewContestDAO(db))
	teamRepo := repository.NewTeamRepository(dao.NewTeamDAO(db))
	svc := service.NewMentorService(userRepo, contestRepo, teamRepo)

	return v1.NewMentorHandler(svc)
}

func (s *Server) initChatHandler(db *gorm.DB) *v1.ChatHandler {
	repo := repository.NewChatRepository(dao.NewChatDAO(db))
	contestRepo := repository.NewContestRepository(dao.NewContestDAO(db))
	svc := service.NewChatService(repo, contestRepo)

	return v1.NewChatHandler(svc)
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
	contestHandler *v1.ContestHandler,
	registrationHandler *v1.RegistrationHandler,
	teamHandler *v1.TeamHandler,
	mentorHandler *v1.MentorHandler,
	chatHandler *v1.ChatHandler,
) {
	const basePath = "/api"

	authenticated := middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT()
	studentOnly := middleware.RequireRoles(domain.RoleStudent)
	coordinatorOnly := middleware.RequireRoles(domain.RoleCoordinator)
	mentorOnly := middleware.RequireRoles(domain.RoleMentor)

	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/register", authHandler.HandleSignup)
		auth.POST("/auth/login", authHandler.HandleLogin)
		auth.GET("/auth/me", authenticated, authHandler.HandleGetMe)
	}

	contests := s.Router.Group(basePath)
	{
		contests.GET("/contests", contestHandler.HandleListContests)
		contests.GET("/contests/:contestID", contestHandler.HandleGetContest)
		contests.POST("/contests", authenticated, coordinatorOnly, contestHandler.HandleCreateContest)
		contests.PUT("/contests/:contestID", authenticated, coordinatorOnly, contestHandler.HandleUpdateContest)
		contests.DELETE("/contests/:contestID", authenticated, coordinatorOnly, contestHandler.HandleDeleteContest)
	}

	registrations := s.Router.Group(basePath, authenticated)
	{
		registrations.POST("/registrations/contest/:contestID", studentOnly, registrationHandler.HandleRegister)
		registrations.DELETE("/registrations/:registrationID", studentOnly, registrationHandler.HandleCancel)
		registrations.GET("/registrations/my", studentOnly, registrationHandler.HandleListMine)
		registrations.GET("/registrations/contest/:contestID",
			middleware.RequireRoles(domain.RoleCoordinator, domain.RoleMentor),
			registrationHandler.HandleListForContest)
	}

	teams := s.Router.Group(basePath)
	{
		teams.GET("/teams/contest/:contestID", teamHandler.HandleListForContest)
		teams.GET("/teams/my", authenticated, studentOnly, teamHandler.HandleListMine)
		teams.GET("/teams/:teamID", teamHandler.HandleGetTeam)
		teams.POST("/teams", authenticated, studentOnly, teamHandler.HandleCreateTeam)
		teams.POST("/teams/:teamID/join", authenticated, studentOnly, teamHandler.HandleJoinTeam)
		teams.DELETE("/teams/:teamID/leave", authenticated, studentOnly, teamHandler.HandleLeaveTeam)
	}

	mentors := s.Router.Group(basePath, authenticated)
	{
		mentors.GET("/mentors", coordinatorOnly, mentorHandler.HandleListMentors)
		mentors.POST("/mentors", coordinatorOnly, mentorHandler.HandleCreateMentor)
		mentors.GET("/mentors/my/contests", mentorOnly, mentorHandler.HandleMyContests)
		mentors.GET("/mentors/my/teams", mentorOnly, mentorHandler.HandleMyTeams)
		mentors.POST("/mentors/assign/contest", coordinatorOnly, mentorHandler.HandleAssignContest)
		mentors.POST("/mentors/assign/team", coordinatorOnly, mentorHandler.HandleAssignTeam)
	}

	chat := s.Router.Group(basePath, authenticated)
	{
		chat.GET("/chat/my-groups", chatHandler.HandleMyGroups)
		chat.GET("/chat/:contestID", chatHandler.HandleGetMessages)
		chat.POST("/chat/:contestID", chatHandler.HandlePostMessage)
		chat.DELETE("/chat/message/:messageID", chatHandler.HandleDeleteMessage)
	}

	s.Router.Static("/uploads", s.Config.API.UploadDir)
	s.Router.GET("/", v1.HandleHealthcheck)
}
