package api

import (
	"github.com/gin-gonic/gin"
	"github.com/pokerjest/animateRenamer/internal/config"
	"github.com/pokerjest/animateRenamer/internal/event"
	"github.com/pokerjest/animateRenamer/internal/renamer"
	"github.com/pokerjest/animateRenamer/internal/scanner"
	"github.com/pokerjest/animateRenamer/internal/session"
	"github.com/spf13/afero"
)

// Server 持有所有处理器共享的依赖.
type Server struct {
	Cfg     *config.Config
	Fs      afero.Fs
	Bus     event.Bus
	Session *session.Session
	Renamer *renamer.Renamer
	Scanner *scanner.Scanner
	Tasks   *scanner.Coordinator
}

// NewServer wires a renamer, scanner and task coordinator around sess.
func NewServer(cfg *config.Config, fs afero.Fs, bus event.Bus, sess *session.Session) *Server {
	r := renamer.New(fs)
	r.MinEpisode = cfg.Renumber.MinEpisode

	sc := scanner.New(fs, bus)
	if cfg.Scanner.SizeWorkers > 0 {
		sc.SizeWorkers = cfg.Scanner.SizeWorkers
	}

	return &Server{
		Cfg:     cfg,
		Fs:      fs,
		Bus:     bus,
		Session: sess,
		Renamer: r,
		Scanner: sc,
		Tasks:   scanner.NewCoordinator(bus),
	}
}

func (s *Server) InitRoutes(r *gin.Engine) {
	r.Use(RequestLogger())

	apiGroup := r.Group("/api")
	{
		// Explorer
		apiGroup.GET("/explorer", s.ListDirectoryHandler)
		apiGroup.GET("/explorer/hierarchy", s.HierarchyHandler)
		apiGroup.POST("/explorer/cd", s.ChangeDirectoryHandler)
		apiGroup.POST("/explorer/parent", s.ParentDirectoryHandler)
		apiGroup.POST("/explorer/home", s.HomeDirectoryHandler)
		apiGroup.GET("/explorer/nfo", s.ShowNFOHandler)

		// Episodes
		apiGroup.GET("/episodes/titles", s.CurrentTitlesHandler)
		apiGroup.POST("/episodes/titles/preview", s.PreviewTitlesHandler)
		apiGroup.POST("/episodes/titles/apply", s.ApplyTitlesHandler)
		apiGroup.POST("/episodes/renumber/preview", s.PreviewRenumberHandler)
		apiGroup.POST("/episodes/renumber/apply", s.ApplyRenumberHandler)
		apiGroup.POST("/rename/replace/preview", s.PreviewReplaceHandler)
		apiGroup.POST("/rename/replace/apply", s.ApplyReplaceHandler)

		// Metadata
		apiGroup.GET("/metadata/:provider", s.ShowDetailsHandler)

		// Scanning
		apiGroup.POST("/scan/media", s.ScanMediaHandler)
		apiGroup.POST("/scan/sizes", s.SizeReportHandler)
		apiGroup.POST("/scan/cancel", s.CancelScanHandler)
		apiGroup.POST("/scan/export", s.ExportListHandler)

		// Settings
		apiGroup.GET("/settings", s.GetSettingsHandler)
		apiGroup.POST("/settings", s.UpdateSettingsHandler)

		// Events
		apiGroup.GET("/events", s.SSEHandler)
	}
}
