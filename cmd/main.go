package main

import (
	"log"

	"github.com/Iamjava/nutritionist/config"
	"github.com/Iamjava/nutritionist/routes"
	"github.com/Iamjava/nutritionist/store"
)

func main() {
	cfg := config.Load()
	st := store.New(cfg.RedisAddr)

	r := routes.SetupRouter(cfg, st)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
