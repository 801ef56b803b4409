package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/unipem/lms/internal/app/controllers"
	"github.com/unipem/lms/internal/app/models"
	"github.com/unipem/lms/internal/middleware"
	"github.com/unipem/lms/internal/pkg/filestorage"
	"github.com/unipem/lms/internal/pkg/websocket"
)

// Controllers groups every HTTP handler set
type Controllers struct {
	Auth       *controllers.AuthController
	Dashboard  *controllers.DashboardController
	User       *controllers.UserController
	Course     *controllers.CourseController
	Section    *controllers.SectionController
	Activity   *controllers.ActivityController
	Submission *controllers.SubmissionController
	Live       *websocket.Handler
}

// SetupRouter configures all application routes. The session gate must already be installed on router.
func SetupRouter(router *gin.Engine, c Controllers, sessions *middleware.SessionMiddleware, uploadsDir string) {
	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/login", c.Auth.LoginPage)
	router.POST("/login", c.Auth.Login)
	router.POST("/logout", c.Auth.Logout)

	dashboard := router.Group("/dashboard")
	{
		dashboard.GET("", c.Dashboard.GetDashboard)
		dashboard.GET("/me", c.Auth.Me)
		dashboard.GET("/courses", c.Dashboard.ListCourses)
		dashboard.GET("/grades", c.Dashboard.GetGrades)
	}

	course := router.Group("/course/:id")
	{
		course.GET("", c.Course.GetCourse)
		course.GET("/sections", c.Section.ListSections)

		// Course editing
		editors := course.Group("")
		editors.Use(sessions.RequireRoles(models.RoleAdmin, models.RoleTeacher))
		{
			editors.POST("/sections", c.Section.CreateSection)
			editors.PUT("/sections/:sectionId", c.Section.UpdateSection)
			editors.DELETE("/sections/:sectionId", c.Section.DeleteSection)

			editors.POST("/activities", c.Activity.CreateActivity)
			editors.PUT("/activities/:activityId", c.Activity.UpdateActivity)
			editors.DELETE("/activities/:activityId", c.Activity.DeleteActivity)
			editors.POST("/activities/:activityId/file", c.Activity.UploadActivityFile)
		}

		activity := course.Group("/activity/:activityId")
		{
			activity.GET("", c.Activity.GetActivity)
			activity.POST("/submit", sessions.RequireRoles(models.RoleStudent), c.Submission.Submit)

			// The gate already keeps students out of every /submissions path
			submissions := activity.Group("/submissions")
			{
				submissions.GET("", c.Submission.ListSubmissions)
				submissions.GET("/live", c.Live.HandleConnection)
				submissions.GET("/:submissionId", c.Submission.GetSubmission)
				submissions.PUT("/:submissionId/grade", c.Submission.GradeSubmission)
				submissions.DELETE("/:submissionId", c.Submission.DeleteSubmission)
			}
		}
	}

	admin := router.Group("/admin")
	admin.Use(sessions.RequireRoles(models.RoleAdmin))
	{
		admin.GET("/settings", c.Dashboard.GetSettings)

		users := admin.Group("/users")
		{
			users.GET("", c.User.ListUsers)
			users.POST("", c.User.CreateUser)
			users.GET("/by-username/:username", c.User.GetUserByUsername)
			users.GET("/:id", c.User.GetUser)
			users.PUT("/:id", c.User.UpdateUser)
			users.DELETE("/:id", c.User.DeleteUser)
		}

		courses := admin.Group("/courses")
		{
			courses.GET("", c.Course.ListCourses)
			courses.POST("", c.Course.CreateCourse)
			courses.GET("/:id", c.Course.GetCourse)
			courses.PUT("/:id", c.Course.UpdateCourse)
			courses.DELETE("/:id", c.Course.DeleteCourse)
		}
	}

	router.Static(filestorage.URLPrefix, uploadsDir)
}
