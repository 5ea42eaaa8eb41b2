package router

import (
	"github.com/labstack/echo/v4"

	"ordernest/internal/adapter/api/handler"
	"ordernest/internal/adapter/api/middleware"
)

func SetupFileRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, rateLimitMiddleware *middleware.RateLimitMiddleware) {
	fileHandler := handler.GetFileHandler()

	files := e.Group("/v1/files")
	files.Use(authMiddleware.Authenticate)

	files.POST("", fileHandler.UploadFile, rateLimitMiddleware.Limit("upload_file"))
	files.DELETE("/:id", fileHandler.DeleteFile)
}
