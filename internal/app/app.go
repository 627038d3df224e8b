package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/kkarthika293/Learn-Edge/internal/app/server"
	"github.com/kkarthika293/Learn-Edge/internal/clients/completion"
	"github.com/kkarthika293/Learn-Edge/internal/clients/email"
	"github.com/kkarthika293/Learn-Edge/internal/config"
	"github.com/kkarthika293/Learn-Edge/internal/delivery/http"
	"github.com/kkarthika293/Learn-Edge/internal/service"
	"github.com/kkarthika293/Learn-Edge/internal/service/auth"
	"github.com/kkarthika293/Learn-Edge/internal/service/certificate"
	"github.com/kkarthika293/Learn-Edge/internal/service/chat"
	"github.com/kkarthika293/Learn-Edge/internal/service/course"
	"github.com/kkarthika293/Learn-Edge/internal/service/quiz"
	"github.com/kkarthika293/Learn-Edge/internal/storage/elastic"
	"github.com/kkarthika293/Learn-Edge/internal/storage/minio_storage"
	"github.com/kkarthika293/Learn-Edge/internal/storage/postgres"
	"github.com/kkarthika293/Learn-Edge/pkg/logger"
)

const mediaBucket = "media"

func Run(cfg *config.Config) {

	log := logger.New(cfg.Env)
	log.Info("Starting with Env: " + cfg.Env)

	pg, err := postgres.NewPostgresPool(cfg.Postgres.User, cfg.Postgres.Password, cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.DBName)
	if err != nil {
		log.FatalErr("error connecting to database", err)
	}
	defer pg.Close()

	minioStorage, err := minio_storage.NewMinioStorage(cfg.Minio.Endpoint, cfg.Minio.AccessKey, cfg.Minio.SecretKey, cfg.Minio.UseSSL, cfg.Minio.Buckets)
	if err != nil {
		log.FatalErr("error connecting to minio", err)
	}
	bucket, ok := cfg.Minio.Buckets[mediaBucket]
	if !ok {
		log.Fatal("minio bucket config missing: " + mediaBucket)
	}
	mediaStorage, err := minio_storage.NewMediaStorage(minioStorage, bucket.Name, bucket.PresignTTL)
	if err != nil {
		log.FatalErr("error preparing media bucket", err)
	}

	esClient, err := elastic.NewElasticClient(cfg.ES.Password, cfg.ES.Hosts)
	if err != nil {
		log.FatalErr("error connecting to elasticsearch", err)
	}
	index := cfg.ES.Index
	if index == "" {
		index = elastic.CourseIndex
	}
	searchRepo := elastic.NewCourseSearchRepository(esClient, index)
	if err := searchRepo.CreateIndexIfNotExist(context.Background()); err != nil {
		log.FatalErr("error creating search index", err)
	}

	var mail email.Sender
	if cfg.Sendgrid.APIKey != "" {
		mail = email.NewSendgridSender(cfg.Sendgrid)
	} else {
		log.Warn("sendgrid api key not set, emails go to the log")
		mail = email.NewConsoleSender(log)
	}

	completionClient := completion.NewOpenAIClient(cfg.Completion)

	userRepo := postgres.NewUserPostgres(pg.Pool)
	tokenRepo := postgres.NewTokensPostgres(pg.Pool)
	courseRepo := postgres.NewCoursePostgres(pg.Pool)
	questionRepo := postgres.NewQuestionPostgres(pg.Pool)
	scoreRepo := postgres.NewScorePostgres(pg.Pool)
	chatRepo := postgres.NewChatPostgres(pg.Pool)

	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, "learn-edge", cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)
	authService := auth.NewAuthService(log, jwtManager, userRepo, tokenRepo, mail, cfg.Admin)
	courseService := course.NewCourseService(log, courseRepo, mediaStorage, searchRepo)
	certificateService := certificate.NewCertificateService(log, mail, cfg.Certificates)
	quizService := quiz.NewQuizService(log, questionRepo, scoreRepo, courseRepo, userRepo, completionClient, certificateService, cfg.Certificates.Threshold)
	chatService := chat.NewChatService(log, chatRepo, userRepo, completionClient)

	u := service.Collection{
		AuthService:        authService,
		CourseService:      courseService,
		QuizService:        quizService,
		ChatService:        chatService,
		CertificateService: certificateService,
	}

	r := http.InitRoutes(log, u)

	srv := server.New(cfg.HTTPServer.Address, cfg.HTTPServer.Timeout, cfg.HTTPServer.IdleTimeout, r)
	srv.Start()
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		log.Info("app signal: " + s.String())
	case err := <-srv.Notify():
		log.ErrorErr("server error", err)
	}
	if err := srv.Shutdown(); err != nil {
		log.ErrorErr("shutdown error", err)
	}
}
