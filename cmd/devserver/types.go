package main

import (
	"codeberg.org/capworks/portal/api/rest/auth"
	"codeberg.org/capworks/portal/cap/jobs"
	"codeberg.org/capworks/portal/cap/users"
	"codeberg.org/capworks/portal/internal/config"
	ws "codeberg.org/capworks/portal/internal/websocket"
	"github.com/gin-gonic/gin"
)

// holds all dependencies and state for the development API server
type Server struct {
	config   *config.ServerConfig
	userRepo *users.Repository
	jobStore *jobs.Store
	limiter  *auth.LoginLimiter
	hub      *ws.Hub
	router   *gin.Engine
}
