package router

import (
	"github.com/joshuakessell/club-ops-deploy-sub001/src/config"
	"github.com/joshuakessell/club-ops-deploy-sub001/src/controller"
	"github.com/joshuakessell/club-ops-deploy-sub001/src/middleware"
	"github.com/joshuakessell/club-ops-deploy-sub001/src/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// NewRouter wires the local render API. Everything except the health check
// and the swagger UI sits behind the display token.
func NewRouter(cfg *config.GlobalConfig, state *service.State, dispatcher *service.Dispatcher, log *logrus.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(log))

	stateController := controller.NewStateController(state, dispatcher)
	actionsController := controller.NewActionsController(dispatcher, log)

	router.GET("/health", stateController.GetHealth)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	authorized := router.Group("/", middleware.DisplayAuthRequiredMiddleware(cfg.DisplayToken))
	authorized.GET("/state", stateController.GetState)

	actions := authorized.Group("/actions")
	actions.POST("/language", actionsController.SetLanguage)
	actions.POST("/propose", actionsController.ProposeSelection)
	actions.POST("/waitlist-backup", actionsController.SubmitWaitlistBackup)
	actions.POST("/confirm-selection", actionsController.ConfirmSelection)
	actions.POST("/membership-choice", actionsController.SetMembershipChoice)
	actions.POST("/customer-confirm", actionsController.CustomerConfirm)
	actions.POST("/sign-agreement", actionsController.SignAgreement)
	actions.POST("/acknowledge-complete", actionsController.AcknowledgeComplete)
	actions.POST("/reset", actionsController.ResetLane)

	return router
}
