package app

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"rewear/db"
	"rewear/session"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// 简化别名，便于 handlers 调用
type Ctx = gin.Context
type H = gin.H

// App 聚合各依赖
type App struct {
	Router *gin.Engine
	DB     *gorm.DB
	RDB    *redis.Client
	Config Config

	appSess *session.AppSessionStore
}

// Config 从环境变量读取
type Config struct {
	RedisAddr         string
	RedisPwd          string
	WebOrigin         string
	SessionTTL        time.Duration
	AdminEmails       []string
	BootstrapEmail    string
	BootstrapPassword string
}

func (a *App) AppSessions() *session.AppSessionStore { return a.appSess }

func MustNew() *App {
	cfg := loadConfig()

	dbConn := db.ConnectDB()

	// --- Redis ---
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPwd, DB: 0})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("redis: %v", err)
	}

	// --- Gin ---
	r := gin.Default()
	useCORS(r, cfg.WebOrigin)
	return New(r, dbConn, rdb, cfg)
}

// New wires an App from existing connections; MustNew is the production path.
func New(r *gin.Engine, dbConn *gorm.DB, rdb *redis.Client, cfg Config) *App {
	return &App{
		Router: r, DB: dbConn, RDB: rdb, Config: cfg,
		appSess: session.NewAppSessionStore(rdb, cfg.SessionTTL),
	}
}

func (a *App) Close() { _ = a.RDB.Close() }

func loadConfig() Config {
	get := func(k, def string) string {
		v := os.Getenv(k)
		if v == "" {
			return def
		}
		return v
	}
	ttlSec := get("SESSION_TTL_SECONDS", "86400")
	ttl := 24 * time.Hour
	if d, err := time.ParseDuration(ttlSec + "s"); err == nil {
		ttl = d
	}
	adminsCSV := os.Getenv("ADMIN_EMAILS") // 例如: "admin@ex.com,ops@ex.com"
	var admins []string
	for _, s := range strings.Split(adminsCSV, ",") {
		if t := strings.TrimSpace(s); t != "" {
			admins = append(admins, strings.ToLower(t))
		}
	}
	return Config{
		RedisAddr:         get("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPwd:          os.Getenv("REDIS_PASSWORD"),
		WebOrigin:         get("WEB_ORIGIN", "http://localhost:5173"),
		SessionTTL:        ttl,
		AdminEmails:       admins,
		BootstrapEmail:    strings.ToLower(os.Getenv("BOOTSTRAP_ADMIN_EMAIL")),
		BootstrapPassword: os.Getenv("BOOTSTRAP_ADMIN_PASSWORD"),
	}
}
