package routes

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "evdealer/docs"
	"evdealer/internal/adapter/http/handlers"
	"evdealer/internal/adapter/persistence/repository"
	"evdealer/internal/domain/media"
	"evdealer/internal/infrastructure/config"
	"evdealer/internal/infrastructure/database"
	"evdealer/internal/infrastructure/logger"
	"evdealer/internal/infrastructure/payments"
	"evdealer/internal/usecase"
	"evdealer/internal/usecase/interfaces"
)

// Run will start the server
func Run() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}
	logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ddb, err := database.ConnectDynamoDB(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot connect to dynamodb")
	}

	router := NewRouter(cfg, ddb)
	addr := ":" + strconv.Itoa(cfg.Port)
	log.Info().Str("addr", addr).Msg("starting http server")
	if err := router.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("failed to startup the application")
	}
}

// NewRouter wires repositories, use cases and handlers onto a new engine.
func NewRouter(cfg config.Config, ddb repository.DynamoAPI) *gin.Engine {
	router := gin.New()
	setMiddlewares(router)

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	tables := repository.TablesFromConfig(cfg)
	catalogRepo := repository.NewCatalogDynamoRepository(ddb, tables)
	paymentRepo := repository.NewPaymentDynamoRepository(ddb, tables)
	orderRepo := repository.NewOrderDynamoRepository(ddb, tables, paymentRepo, catalogRepo)
	quotationRepo := repository.NewQuotationDynamoRepository(ddb, tables, catalogRepo)

	var paymentGateway interfaces.IPaymentGateway
	mpGateway, err := payments.NewMercadoPagoGateway(cfg.MercadoPagoAccessToken, cfg.PaymentGatewayMock)
	if err != nil {
		log.Warn().Err(err).Msg("mercado pago gateway not configured, card payments disabled")
	} else {
		paymentGateway = mpGateway
	}
	paymentService := payments.NewPaymentService(paymentRepo, orderRepo, paymentGateway, cfg.MercadoPagoPayerEmail)

	resolver := media.NewResolver(cfg.MediaBaseOrigin)
	catalogUseCase := usecase.NewCatalogUseCase(catalogRepo, resolver)
	quotationUseCase := usecase.NewQuotationUseCase(quotationRepo, resolver)
	orderUseCase := usecase.NewOrderUseCase(orderRepo, paymentService, resolver)

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addCatalogRoutes(v1, handlers.NewCatalogHandler(catalogUseCase))
	addQuotationRoutes(v1, handlers.NewQuotationHandler(quotationUseCase))
	addOrderRoutes(v1, handlers.NewOrderHandler(orderUseCase))
	return router
}

func setMiddlewares(router *gin.Engine) {
	router.Use(gin.Logger())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Error().Interface("panic", recovered).Str("path", c.Request.URL.Path).Msg("recovered from panic")
		c.AbortWithStatus(500)
	}))
}
