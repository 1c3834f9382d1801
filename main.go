package main

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"zenith/ai"
	"zenith/config"
	dbpkg "zenith/db"
	"zenith/router"
	"zenith/tools"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

// =====================
// ENV esperadas
// =====================
//
// - CONFIG_PATH        (default: config.json)
// - BACKBOARD_API_KEY  (chave da API do Backboard; sem ela as rotas de IA
//                       respondem 503)
// - JWT_SECRET         (sobrescreve security.jwt_secret do config)
// - AUTOMIGRATE        (=1 cria/atualiza tabelas no boot)
//
// =====================

func main() {
	// .env é opcional; em produção as envs vêm do ambiente mesmo
	_ = godotenv.Load()

	configPath := strings.TrimSpace(os.Getenv("CONFIG_PATH"))
	if configPath == "" {
		configPath = "config.json"
	}
	cfg := config.Get(configPath)
	exportSecurityEnv(cfg)

	dbpkg.SetConfigurations(cfg)
	database, err := dbpkg.Connect()
	if err != nil {
		log.Fatal(err)
	}
	defer database.Close()

	timeout := time.Duration(cfg.Backboard.TimeoutSeconds) * time.Second
	client := tools.NewBackboardClient(cfg.Backboard.BaseURL, os.Getenv("BACKBOARD_API_KEY"), timeout)
	service := ai.NewService(database, client, ai.NewDispatcher(cfg.Backboard.Workers, timeout))

	r := gin.New()
	r.Use(dbpkg.SetDBtoContext(database))
	r.Use(ai.SetServiceToContext(service))
	router.Initialize(r, cfg)

	log.Printf("Zenith listening on :%s", cfg.ApiPort)
	log.Fatal(r.Run(":" + cfg.ApiPort))
}

// exportSecurityEnv leva os valores de security do config pras envs que os
// controllers leem. Env já setada sempre vence o config.
func exportSecurityEnv(cfg config.Configuration) {
	if os.Getenv("JWT_SECRET") == "" && cfg.Security.JwtSecret != "" {
		os.Setenv("JWT_SECRET", cfg.Security.JwtSecret)
	}
	if os.Getenv("REFRESH_CODE_LEN") == "" && cfg.Security.RefreshCodeLen > 0 {
		os.Setenv("REFRESH_CODE_LEN", strconv.Itoa(cfg.Security.RefreshCodeLen))
	}
	if os.Getenv("REFRESH_CODE_MAX_VALID_DAYS") == "" && cfg.Security.RefreshCodeMaxValid > 0 {
		os.Setenv("REFRESH_CODE_MAX_VALID_DAYS", strconv.Itoa(cfg.Security.RefreshCodeMaxValid))
	}
}
