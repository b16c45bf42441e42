package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/scopetrack/scopetrack-go/src/cache"
	"github.com/scopetrack/scopetrack-go/src/config"
	"github.com/scopetrack/scopetrack-go/src/db"
	"github.com/scopetrack/scopetrack-go/src/events"
	"github.com/scopetrack/scopetrack-go/src/routes"
)

func main() {
	config.LoadConfig()
	db.Init()

	store, err := cache.Open(config.CacheDir, nil)
	if err != nil {
		log.Fatal("Failed to open cache:", err)
	}
	defer store.Close()

	hub := events.NewHub()

	r := gin.Default()
	routes.RegisterRoutes(r, store, hub)
	r.Run(":" + config.ServerPort)
}
