package router

import (
	_ "github.com/assetlabel/inventory/docs"
	"github.com/assetlabel/inventory/internal/infra/logger"
	"github.com/assetlabel/inventory/internal/modules/handler"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

type RouterDeps struct {
	ServiceName        string
	Development        bool
	Log                *zap.Logger
	AssetHandler       *handler.AssetHandler
	LabelHandler       *handler.LabelHandler
	LocationHandler    *handler.LocationHandler
	ResponsibleHandler *handler.ResponsibleHandler
	AssetNameHandler   *handler.AssetNameHandler
	ImportHandler      *handler.ImportHandler
	MaintenanceHandler *handler.MaintenanceHandler
	HealthHandler      *handler.HealthHandler
}

func NewRouter(d RouterDeps) *gin.Engine {
	if !d.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(otelgin.Middleware(d.ServiceName), logger.GinMiddleware(d.Log), gin.Recovery())

	r.GET("/health", d.HealthHandler.Health)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	{
		assets := api.Group("/assets")
		{
			assets.POST("", d.AssetHandler.CreateAsset)
			assets.GET("", d.AssetHandler.ListAssets)
			assets.GET("/stats", d.AssetHandler.GetAssetStats)
			assets.GET("/qr/:assetId", d.AssetHandler.GetQRCode)
			assets.POST("/qr/regenerate-all", d.AssetHandler.RegenerateAllQR)
			assets.GET("/:id", d.AssetHandler.GetAsset)
			assets.PUT("/:id", d.AssetHandler.UpdateAsset)
			assets.DELETE("/:id", d.AssetHandler.DeleteAsset)
			assets.POST("/:id/generate-qr", d.AssetHandler.RegenerateQR)
		}

		labels := api.Group("/labels")
		{
			labels.POST("/batch", d.LabelHandler.RenderBatchLabels)
			labels.GET("/batch/:file", d.LabelHandler.DownloadBatchLabels)
			labels.POST("/:assetId/pdf", d.LabelHandler.RenderPDFLabel)
			labels.GET("/:assetId/pdf", d.LabelHandler.DownloadPDFLabel)
			labels.POST("/:assetId/bartender", d.LabelHandler.RenderBarTenderLabel)
			labels.DELETE("/:assetId", d.LabelHandler.DeleteLabels)
		}

		locations := api.Group("/locations")
		{
			locations.GET("", d.LocationHandler.ListLocations)
			locations.POST("", d.LocationHandler.CreateLocation)
			locations.PUT("/:id", d.LocationHandler.UpdateLocation)
			locations.DELETE("/:id", d.LocationHandler.DeleteLocation)
		}

		responsibles := api.Group("/responsibles")
		{
			responsibles.GET("", d.ResponsibleHandler.ListResponsibles)
			responsibles.POST("", d.ResponsibleHandler.CreateResponsible)
			responsibles.PUT("/:id", d.ResponsibleHandler.UpdateResponsible)
			responsibles.DELETE("/:id", d.ResponsibleHandler.DeleteResponsible)
		}

		assetNames := api.Group("/asset-names")
		{
			assetNames.GET("", d.AssetNameHandler.ListAssetNames)
			assetNames.POST("", d.AssetNameHandler.CreateAssetName)
		}

		api.GET("/templates/:entity", d.ImportHandler.DownloadTemplate)
		api.GET("/import/jobs", d.ImportHandler.ListImportJobs)
		api.POST("/import/:entity", d.ImportHandler.ImportEntities)

		api.POST("/maintenance/cleanup", d.MaintenanceHandler.Cleanup)
	}

	return r
}
