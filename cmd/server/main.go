package main

import (
	"flag"
	"fmt"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/pokerjest/animateRenamer/internal/api"
	"github.com/pokerjest/animateRenamer/internal/config"
	"github.com/pokerjest/animateRenamer/internal/db"
	"github.com/pokerjest/animateRenamer/internal/event"
	"github.com/pokerjest/animateRenamer/internal/logger"
	"github.com/pokerjest/animateRenamer/internal/model"
	"github.com/pokerjest/animateRenamer/internal/parser"
	"github.com/pokerjest/animateRenamer/internal/session"
	"github.com/pokerjest/animateRenamer/internal/watcher"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

func main() {
	configDir := flag.String("config", ".", "directory containing config.yaml")
	flag.Parse()

	// 1. Load Config
	if err := config.LoadConfig(*configDir); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg := config.AppConfig
	logger.Setup(cfg.Log.Level, cfg.Log.JSON, nil)
	parser.SetVideoExtensions(cfg.Library.VideoExtensions)

	// 2. Setup Gin Mode
	gin.SetMode(cfg.Server.Mode)

	// 转换为绝对路径日志一下
	absPath, _ := filepath.Abs(cfg.Database.Path)
	log.Infof("Initializing database at: %s", absPath)
	if err := db.InitDB(cfg.Database.Path); err != nil {
		log.Fatalf("Failed to init database: %v", err)
	}
	defer db.CloseDB()

	bus := event.NewInMemoryBus()
	fs := afero.NewOsFs()

	sess := openSession(fs, bus, cfg)
	bus.Subscribe(event.EventDirectoryChanged, func(e event.Event) {
		if dir, ok := e.Payload.(string); ok {
			if err := db.SetSetting(model.ConfigKeyLastDirectory, dir); err != nil {
				log.Warnf("Failed to remember directory %s: %v", dir, err)
			}
		}
	})

	w, err := watcher.New(bus, watcher.DefaultDebounce)
	if err != nil {
		log.Warnf("Filesystem watcher disabled: %v", err)
	} else {
		w.Start(sess.Current())
		defer w.Stop()
	}

	r := gin.New()
	r.Use(gin.Recovery())

	// 初始化路由
	api.NewServer(cfg, fs, bus, sess).InitRoutes(r)

	port := fmt.Sprintf("%d", cfg.Server.Port)
	log.Infof("Server starting on port %s, browsing %s", port, sess.Current())
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}

// openSession 依次尝试上次目录, 配置的起始目录, 用户主目录.
func openSession(fs afero.Fs, bus event.Bus, cfg *config.Config) *session.Session {
	candidates := []string{cfg.Library.StartDir}
	if last, ok := db.GetSetting(model.ConfigKeyLastDirectory); ok {
		candidates = append([]string{last}, candidates...)
	}
	for _, dir := range candidates {
		if dir == "" {
			continue
		}
		sess, err := session.New(fs, bus, dir)
		if err == nil {
			return sess
		}
		log.Warnf("Cannot open %s: %v", dir, err)
	}
	sess, err := session.New(fs, bus, "")
	if err != nil {
		log.Fatalf("Failed to open home directory: %v", err)
	}
	return sess
}
