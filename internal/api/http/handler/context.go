package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/inkwell/inkwell/internal/api/http/middleware"
	"github.com/inkwell/inkwell/internal/model"
)

func sessionFrom(c *gin.Context) model.Session {
	return middleware.SessionFrom(c)
}
