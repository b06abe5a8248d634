package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/DJRGVC/Noter/application/ports/outbound"
	"github.com/DJRGVC/Noter/application/services"
	"github.com/DJRGVC/Noter/config"
	"github.com/DJRGVC/Noter/infrastructure/adapters"
	"github.com/DJRGVC/Noter/infrastructure/gin_interface/controllers"
	"github.com/DJRGVC/Noter/middleware"
	mockrelay "github.com/DJRGVC/Noter/mock"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/panjf2000/ants/v2"
	"github.com/rs/zerolog/log"
)

func main() {
	anthropicConfig, err := config.GetAnthropicConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get anthropic config")
	}

	fishConfig, err := config.GetFishConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get fish config")
	}

	relayConfig, err := config.GetRelayConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get relay config")
	}

	notesConfig, err := config.GetNotesConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get notes config")
	}

	manimConfig, err := config.GetManimConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get manim config")
	}

	zeroLogger := adapters.NewZerologWrapper()

	panicHandler := func(p interface{}) {
		zeroLogger.Error(fmt.Errorf("%v", p), "Panic in worker pool")
	}

	workerPool, err := ants.NewPool(120, ants.WithPanicHandler(panicHandler))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create worker pool")
	}
	defer workerPool.Release()

	httpClient := &http.Client{Timeout: 2 * time.Minute}

	contentFetcher := adapters.NewContentFetcher(httpClient, zeroLogger)

	answerStreamer := adapters.NewClaudeStreamer(anthropicConfig, workerPool, zeroLogger)
	completion := adapters.NewClaudeCompletion(contentFetcher, anthropicConfig, zeroLogger)
	synthesizer := adapters.NewFishSynthesizer(fishConfig, workerPool, zeroLogger)

	noteStore := adapters.NewFsNoteStore(notesConfig, zeroLogger)
	renderer := adapters.NewManimRenderer(manimConfig, zeroLogger)

	var studyCache outbound.StudySetCachePort
	var videoPublisher outbound.VideoPublisherPort
	if os.Getenv("STUDY_CACHE_TABLE") != "" || os.Getenv("S3_BUCKET") != "" {
		sess := session.Must(session.NewSessionWithOptions(session.Options{
			SharedConfigState: session.SharedConfigEnable,
		}))

		if os.Getenv("STUDY_CACHE_TABLE") != "" {
			dynamoConfig, err := config.GetDynamoConfig()
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to get dynamo config")
			}
			studyCache = adapters.NewDynamoStudyCache(zeroLogger, dynamodb.New(sess), dynamoConfig)
		}

		if os.Getenv("S3_BUCKET") != "" {
			s3Config, err := config.GetS3Config()
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to get s3 config")
			}
			videoPublisher = adapters.NewS3VideoPublisher(zeroLogger, s3.New(sess, aws.NewConfig().WithRegion(s3Config.Region)), s3Config)
		}
	}

	voiceRelay := services.NewVoiceRelay(zeroLogger, workerPool, answerStreamer, synthesizer, relayConfig)
	answerService := services.NewAnswerService(zeroLogger, workerPool, answerStreamer, completion)
	studySetGenerator := services.NewStudySetGenerator(zeroLogger, completion, studyCache)
	animationPipeline := services.NewAnimationPipeline(zeroLogger, completion, renderer, videoPublisher, manimConfig.VideoBaseUrl)
	noteLibrary := services.NewNoteLibrary(zeroLogger, noteStore)

	assistantController := controllers.NewAssistantController(zeroLogger, voiceRelay, answerService, relayConfig)
	studySetController := controllers.NewStudySetController(zeroLogger, studySetGenerator)
	animationController := controllers.NewAnimationController(zeroLogger, animationPipeline, manimConfig.MediaDir)
	noteLibraryController := controllers.NewNoteLibraryController(zeroLogger, noteLibrary)

	router := gin.Default()

	err = router.SetTrustedProxies(nil)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to set trusted proxies!")
	}

	if jwksUrl := os.Getenv("JWKS_URL"); jwksUrl != "" {
		authHandler, err := middleware.NewAuthHandler(jwksUrl)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create auth handler!")
		}
		router.Use(authHandler.AuthMiddleware())
	}

	if eventsFile := os.Getenv("MOCK_EVENTS_FILE"); eventsFile != "" {
		mockrelay.Init(router, workerPool, eventsFile, zeroLogger)
	}

	assistantController.RegisterRoutes(router)
	studySetController.RegisterRoutes(router)
	animationController.RegisterRoutes(router)
	noteLibraryController.RegisterRoutes(router)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	err = router.Run(":" + port)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to start server!")
	}
}
