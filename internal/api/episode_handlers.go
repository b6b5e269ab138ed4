package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pokerjest/animateRenamer/internal/event"
	"github.com/pokerjest/animateRenamer/internal/model"
)

type titlesRequest struct {
	Titles []string `json:"titles"`
}

type replaceRequest struct {
	Target      string `json:"target"`
	Replacement string `json:"replacement"`
}

type renumberRequest struct {
	Delta int `json:"delta"`
}

// PreviewPayload is published on every preview.
type PreviewPayload struct {
	Kind      string             `json:"kind"`
	Directory string             `json:"directory"`
	Changes   []model.RenamePair `json:"changes"`
}

// preview runs plan under the session lock and reports the result.
func (s *Server) preview(c *gin.Context, kind string, plan func(dir string) ([]model.RenamePair, error)) {
	var (
		dir     string
		changes []model.RenamePair
	)
	err := s.Session.Do(func(current string) error {
		dir = current
		var err error
		changes, err = plan(current)
		return err
	})
	if err != nil {
		respondError(c, err, nil)
		return
	}
	event.Publish(s.Bus, event.EventPreview, PreviewPayload{Kind: kind, Directory: dir, Changes: changes})
	c.JSON(http.StatusOK, gin.H{"directory": dir, "changes": changes})
}

// apply runs a rename batch under the session lock. On failure the count of
// files already renamed is reported next to the error.
func (s *Server) apply(c *gin.Context, batch func(dir string) (int, error)) {
	var (
		dir     string
		renamed int
	)
	err := s.Session.Do(func(current string) error {
		dir = current
		var err error
		renamed, err = batch(current)
		return err
	})
	if renamed > 0 {
		event.Publish(s.Bus, event.EventReload, dir)
	}
	if err != nil {
		respondError(c, err, gin.H{"renamed": renamed})
		return
	}
	c.JSON(http.StatusOK, gin.H{"directory": dir, "renamed": renamed})
}

func (s *Server) CurrentTitlesHandler(c *gin.Context) {
	var titles []string
	err := s.Session.Do(func(dir string) error {
		var err error
		titles, err = s.Renamer.CurrentTitles(dir)
		return err
	})
	if err != nil {
		respondError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"titles": titles})
}

func (s *Server) PreviewTitlesHandler(c *gin.Context) {
	var req titlesRequest
	if !bindJSON(c, &req) {
		return
	}
	s.preview(c, "titles", func(dir string) ([]model.RenamePair, error) {
		return s.Renamer.PreviewTitles(dir, req.Titles)
	})
}

func (s *Server) ApplyTitlesHandler(c *gin.Context) {
	var req titlesRequest
	if !bindJSON(c, &req) {
		return
	}
	s.apply(c, func(dir string) (int, error) {
		return s.Renamer.ApplyTitles(dir, req.Titles)
	})
}

func (s *Server) PreviewReplaceHandler(c *gin.Context) {
	var req replaceRequest
	if !bindJSON(c, &req) {
		return
	}
	s.preview(c, "replace", func(dir string) ([]model.RenamePair, error) {
		return s.Renamer.PreviewReplace(dir, req.Target, req.Replacement)
	})
}

func (s *Server) ApplyReplaceHandler(c *gin.Context) {
	var req replaceRequest
	if !bindJSON(c, &req) {
		return
	}
	s.apply(c, func(dir string) (int, error) {
		return s.Renamer.ApplyReplace(dir, req.Target, req.Replacement)
	})
}

func (s *Server) PreviewRenumberHandler(c *gin.Context) {
	var req renumberRequest
	if !bindJSON(c, &req) {
		return
	}
	s.preview(c, "renumber", func(dir string) ([]model.RenamePair, error) {
		return s.Renamer.PreviewRenumber(dir, req.Delta)
	})
}

func (s *Server) ApplyRenumberHandler(c *gin.Context) {
	var req renumberRequest
	if !bindJSON(c, &req) {
		return
	}
	s.apply(c, func(dir string) (int, error) {
		return s.Renamer.ApplyRenumber(dir, req.Delta)
	})
}
