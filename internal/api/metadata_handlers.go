package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pokerjest/animateRenamer/internal/grouping"
	"github.com/pokerjest/animateRenamer/internal/metadata"
	"github.com/pokerjest/animateRenamer/internal/model"
)

func queryInt(c *gin.Context, name string) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, model.InputError("%s must be an integer", name)
	}
	return v, nil
}

// ShowDetailsHandler 获取剧集并按季分组. The provider "default" resolves to the configured one.
func (s *Server) ShowDetailsHandler(c *gin.Context) {
	name := c.Param("provider")
	if name == "default" {
		name = s.defaultProvider()
	}
	provider, err := metadata.NewRegistry(s.metadataOptions()).Get(name)
	if err != nil {
		respondError(c, err, nil)
		return
	}

	var q metadata.Query
	if q.ID, err = queryInt(c, "id"); err != nil {
		respondError(c, err, nil)
		return
	}
	if q.Year, err = queryInt(c, "year"); err != nil {
		respondError(c, err, nil)
		return
	}
	q.Name = c.Query("name")

	strategy, err := grouping.ParseStrategy(c.DefaultQuery("strategy", s.Cfg.Grouping.Strategy))
	if err != nil {
		respondError(c, err, nil)
		return
	}

	details, err := metadata.FetchShowDetails(c.Request.Context(), provider, q, strategy, s.Cfg.Grouping.ChunkSize)
	if err != nil {
		respondError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, details)
}
