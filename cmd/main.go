package main

import (
	"github.com/gin-gonic/gin"

	"github.com/kkarthika293/Learn-Edge/internal/app"
	"github.com/kkarthika293/Learn-Edge/internal/config"
)

func main() {
	gin.SetMode(gin.ReleaseMode)
	cfg := config.MustLoad()
	app.Run(cfg)
}
