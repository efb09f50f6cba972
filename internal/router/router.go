package router

import (
	"net/http"
	"time"

	"github.com/Frenky19/QRkot-spreadsheets/internal/handler"
	"github.com/Frenky19/QRkot-spreadsheets/internal/logic"
	"github.com/Frenky19/QRkot-spreadsheets/internal/metrics"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps 路由依赖的业务逻辑
type Deps struct {
	Projects  *logic.ProjectLogic
	Donations *logic.DonationLogic
	Users     *logic.UserLogic
	Reports   *logic.ReportLogic
}

func Setup(deps Deps) *gin.Engine {
	// 请求体中出现未声明的字段（例如 invested_amount）视为非法
	binding.EnableDecoderDisallowUnknownFields = true

	r := gin.New()

	// 中间件
	r.Use(requestLogger())
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())
	r.Use(metrics.PrometheusMiddleware())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "qrkot",
			"time":    time.Now().UTC(),
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authenticated := authMiddleware(deps.Users)
	superuser := superuserMiddleware()

	projectHandler := handler.NewProjectHandler(deps.Projects)
	donationHandler := handler.NewDonationHandler(deps.Donations)
	userHandler := handler.NewUserHandler(deps.Users)
	reportHandler := handler.NewReportHandler(deps.Reports)

	// API版本组
	v1 := r.Group("/api/v1")
	{
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register", userHandler.Register)
			authGroup.POST("/jwt/login", userHandler.Login)
		}

		users := v1.Group("/users", authenticated)
		{
			users.GET("/me", userHandler.Me)
			users.GET("/:id", superuser, userHandler.GetUser)
		}

		projects := v1.Group("/charity_project")
		{
			projects.GET("", projectHandler.GetProjects)
			projects.GET("/:id", projectHandler.GetProject)
			projects.POST("", authenticated, superuser, projectHandler.CreateProject)
			projects.PATCH("/:id", authenticated, superuser, projectHandler.UpdateProject)
			projects.DELETE("/:id", authenticated, superuser, projectHandler.DeleteProject)
		}

		donations := v1.Group("/donation", authenticated)
		{
			donations.GET("", superuser, donationHandler.GetDonations)
			donations.POST("", donationHandler.CreateDonation)
			donations.GET("/my", donationHandler.GetMyDonations)
		}

		v1.GET("/report", authenticated, superuser, reportHandler.GetReport)
		v1.POST("/google", authenticated, superuser, reportHandler.ExportReport)
	}

	return r
}
