package routes

import (
	"context"
	"fmt"
	_ "managrr/docs"
	"managrr/internal/adapter/http/handlers"
	"managrr/internal/adapter/persistence/repository"
	"managrr/internal/config"
	"managrr/internal/infrastructure/database"
	"managrr/internal/usecase"
	"managrr/internal/usecase/interfaces"
	"strconv"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Run will start the sandbox estimates API.
func Run(ctx context.Context, cfg config.API) error {
	repo, err := newEstimateRepository(ctx, cfg)
	if err != nil {
		return err
	}

	router := NewRouter(handlers.NewEstimateHandler(usecase.NewEstimateUseCase(repo)))

	log.WithFields(log.Fields{"port": cfg.Port, "store": cfg.Store}).Info("[api] listening")
	if err := router.Run(":" + strconv.Itoa(cfg.Port)); err != nil {
		return fmt.Errorf("failed to startup the application: %w", err)
	}
	return nil
}

// NewRouter wires middlewares, Swagger and the /v1 routes.
func NewRouter(estimateHandler *handlers.EstimateHandler) *gin.Engine {
	router := gin.New()
	setMiddlewares(router)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addEstimateRoutes(v1, estimateHandler)
	return router
}

func newEstimateRepository(ctx context.Context, cfg config.API) (interfaces.IEstimateRepository, error) {
	switch cfg.Store {
	case config.StoreDynamoDB:
		ddb, err := database.ConnectDynamoDB(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create dynamodb client: %w", err)
		}
		return repository.NewEstimateDynamoRepository(ddb, cfg.EstimatesTable), nil
	case config.StoreMemory, "":
		return repository.NewEstimateMemoryRepository(), nil
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrInvalidStore, cfg.Store)
	}
}

func setMiddlewares(router *gin.Engine) {
	router.Use(gin.Logger())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.WithField("path", c.Request.URL.Path).Errorf("[api] recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}
