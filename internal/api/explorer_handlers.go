package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pokerjest/animateRenamer/internal/parser"
)

type changeDirectoryRequest struct {
	Path string `json:"path" binding:"required"`
}

func (s *Server) writeListing(c *gin.Context) {
	entries, err := s.Session.List()
	if err != nil {
		respondError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"current": s.Session.Current(),
		"entries": entries,
	})
}

func (s *Server) ListDirectoryHandler(c *gin.Context) {
	s.writeListing(c)
}

func (s *Server) HierarchyHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"hierarchy": s.Session.Hierarchy()})
}

func (s *Server) ChangeDirectoryHandler(c *gin.Context) {
	var req changeDirectoryRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := s.Session.ChangeDirectory(req.Path); err != nil {
		respondError(c, err, nil)
		return
	}
	s.writeListing(c)
}

func (s *Server) ParentDirectoryHandler(c *gin.Context) {
	if err := s.Session.Parent(); err != nil {
		respondError(c, err, nil)
		return
	}
	s.writeListing(c)
}

func (s *Server) HomeDirectoryHandler(c *gin.Context) {
	if err := s.Session.Home(); err != nil {
		respondError(c, err, nil)
		return
	}
	s.writeListing(c)
}

// ShowNFOHandler 读取当前目录的 tvshow.nfo, so the UI can prefill a metadata lookup.
func (s *Server) ShowNFOHandler(c *gin.Context) {
	var nfo parser.TVShowNFO
	err := s.Session.Do(func(dir string) error {
		var err error
		nfo, err = parser.ReadShowNFO(s.Fs, dir)
		return err
	})
	if err != nil {
		respondError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"nfo": nfo, "ids": nfo.ProviderIDs()})
}
