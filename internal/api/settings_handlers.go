package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pokerjest/animateRenamer/internal/db"
	"github.com/pokerjest/animateRenamer/internal/metadata"
	"github.com/pokerjest/animateRenamer/internal/model"
)

const maskedValue = "******"

// setting 优先使用数据库中的值, 否则回退到配置文件.
func setting(key, fallback string) string {
	if v, ok := db.GetSetting(key); ok && v != "" {
		return v
	}
	return fallback
}

func (s *Server) metadataOptions() metadata.Options {
	return metadata.Options{
		Proxy:      s.Cfg.Metadata.Proxy,
		Timeout:    s.Cfg.Metadata.Timeout,
		TVDBAPIKey: setting(model.ConfigKeyTVDBApiKey, s.Cfg.Metadata.TVDBAPIKey),
		TMDBToken:  setting(model.ConfigKeyTMDBToken, s.Cfg.Metadata.TMDBToken),
	}
}

func (s *Server) defaultProvider() string {
	return setting(model.ConfigKeyDefaultProvider, s.Cfg.Metadata.DefaultProvider)
}

func mask(v string) string {
	if v == "" {
		return ""
	}
	return maskedValue
}

func (s *Server) GetSettingsHandler(c *gin.Context) {
	opts := s.metadataOptions()
	c.JSON(http.StatusOK, gin.H{
		model.ConfigKeyTVDBApiKey:      mask(opts.TVDBAPIKey),
		model.ConfigKeyTMDBToken:       mask(opts.TMDBToken),
		model.ConfigKeyDefaultProvider: s.defaultProvider(),
		model.ConfigKeyLastDirectory:   setting(model.ConfigKeyLastDirectory, ""),
		"providers":                    metadata.NewRegistry(opts).Names(),
	})
}

type updateSettingsRequest struct {
	TVDBAPIKey      *string `json:"tvdb_api_key"`
	TMDBToken       *string `json:"tmdb_token"`
	DefaultProvider *string `json:"default_provider"`
}

func (s *Server) UpdateSettingsHandler(c *gin.Context) {
	var req updateSettingsRequest
	if !bindJSON(c, &req) {
		return
	}

	if req.DefaultProvider != nil {
		name := strings.ToLower(strings.TrimSpace(*req.DefaultProvider))
		if _, err := metadata.NewRegistry(metadata.Options{}).Get(name); err != nil {
			respondError(c, err, nil)
			return
		}
		req.DefaultProvider = &name
	}

	updates := map[string]*string{
		model.ConfigKeyTVDBApiKey:      req.TVDBAPIKey,
		model.ConfigKeyTMDBToken:       req.TMDBToken,
		model.ConfigKeyDefaultProvider: req.DefaultProvider,
	}
	for key, val := range updates {
		// the masked placeholder echoes an unchanged secret
		if val == nil || *val == maskedValue {
			continue
		}
		if err := db.SetSetting(key, strings.TrimSpace(*val)); err != nil {
			respondError(c, err, nil)
			return
		}
	}
	s.GetSettingsHandler(c)
}
