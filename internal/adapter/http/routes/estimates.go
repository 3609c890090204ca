package routes

import (
	"managrr/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathEstimates = "/estimates"
)

func addEstimateRoutes(rg *gin.RouterGroup, estimateHandler *handlers.EstimateHandler) {
	estimates := rg.Group(PathEstimates)
	{
		estimates.POST("", estimateHandler.CreateEstimate)
		estimates.GET("/contract/:contract_id", estimateHandler.ListByContract)
		estimates.POST("/:id/approve", estimateHandler.ApproveEstimate)
		estimates.POST("/:id/reject", estimateHandler.RejectEstimate)
	}
}
