package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pokerjest/animateRenamer/internal/model"
	"github.com/pokerjest/animateRenamer/internal/scanner"
)

type exportRequest struct {
	Path  string   `json:"path"`
	Lines []string `json:"lines"`
}

// ScanMediaHandler lists every video file below the current directory. A newer
// scan or an explicit cancel aborts it with status 499.
func (s *Server) ScanMediaHandler(c *gin.Context) {
	dir := s.Session.Current()
	var files []model.VideoFile
	err := s.Tasks.Run(c.Request.Context(), scanner.TaskMediaScan, func(ctx context.Context) error {
		var err error
		files, err = s.Scanner.Scan(ctx, dir)
		return err
	})
	if err != nil {
		respondError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"directory":   dir,
		"export_name": scanner.ExportName(scanner.MediaFilesPrefix, dir),
		"files":       files,
	})
}

func (s *Server) SizeReportHandler(c *gin.Context) {
	dir := s.Session.Current()
	var entries []model.SizedEntry
	err := s.Tasks.Run(c.Request.Context(), scanner.TaskSizes, func(ctx context.Context) error {
		var err error
		entries, err = s.Scanner.SizeReport(ctx, dir)
		return err
	})
	if err != nil {
		respondError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"directory":   dir,
		"export_name": scanner.ExportName(scanner.FileSizesPrefix, dir),
		"entries":     entries,
	})
}

func (s *Server) CancelScanHandler(c *gin.Context) {
	if err := s.Tasks.Cancel(); err != nil {
		respondError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}

func (s *Server) ExportListHandler(c *gin.Context) {
	var req exportRequest
	if !bindJSON(c, &req) {
		return
	}
	if strings.TrimSpace(req.Path) == "" {
		respondError(c, model.InputError("export path cannot be empty"), nil)
		return
	}
	if err := scanner.ExportList(s.Fs, req.Path, req.Lines); err != nil {
		respondError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"path": req.Path, "lines": len(req.Lines)})
}
