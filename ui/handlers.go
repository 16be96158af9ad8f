package ui

import (
	"errors"
	"fmt"
	"html/template"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gomarkdown/markdown"

	"visitdedupe/app"
	"visitdedupe/domain/core"
	"visitdedupe/domain/dedupe"
	apperrors "visitdedupe/internal/errors"
	"visitdedupe/internal/jobstore"
)

// handleIndex renders the upload page
func (s *Server) handleIndex(c *gin.Context) {
	s.renderTemplate(c, "index.html", gin.H{
		"KeyColumns":  dedupe.DefaultKeyColumns,
		"MaxUploadMB": s.cfg.Upload.MaxSizeBytes / (1024 * 1024),
		"DatePolicy":  string(s.cfg.Dedupe.DatePolicy),
	})
}

// handleHelp renders the embedded usage text
func (s *Server) handleHelp(c *gin.Context) {
	src, err := embeddedFiles.ReadFile("help.md")
	if err != nil {
		log.Printf("[handleHelp] help.md not found: %v", err)
		c.String(http.StatusInternalServerError, "Help text not available")
		return
	}
	s.renderTemplate(c, "help.html", gin.H{
		"Body": template.HTML(markdown.ToHTML(src, nil, nil)),
	})
}

// handleCreateJob accepts one spreadsheet upload, runs the dedupe pipeline
// and stores the result for download
func (s *Server) handleCreateJob(c *gin.Context) {
	file, header, err := c.Request.FormFile("dataset")
	if err != nil {
		log.Printf("[handleCreateJob] No file uploaded: %v", err)
		s.respondError(c, http.StatusBadRequest, "No file uploaded. Choose a spreadsheet first.")
		return
	}
	defer file.Close()

	if header.Size > s.cfg.Upload.MaxSizeBytes {
		s.respondError(c, http.StatusBadRequest, fmt.Sprintf(
			"File size (%.1f MB) exceeds the %d MB limit",
			float64(header.Size)/(1024*1024), s.cfg.Upload.MaxSizeBytes/(1024*1024)))
		return
	}

	filename := header.Filename
	if !hasValidExtension(filename) {
		s.respondError(c, http.StatusBadRequest, "Only Excel (.xlsx, .xlsm) and CSV (.csv) files are allowed")
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.Upload.MaxSizeBytes+1))
	if err != nil {
		log.Printf("[handleCreateJob] Failed to read upload: %v", err)
		s.respondError(c, http.StatusInternalServerError, "Failed to read uploaded file")
		return
	}
	if int64(len(data)) > s.cfg.Upload.MaxSizeBytes {
		s.respondError(c, http.StatusBadRequest, fmt.Sprintf("File exceeds the %d MB limit", s.cfg.Upload.MaxSizeBytes/(1024*1024)))
		return
	}

	job, err := s.service.Run(app.RunRequest{Filename: filename, Data: data})
	if err != nil {
		log.Printf("[handleCreateJob] Dedupe failed for %q: %v", filename, err)
		status := http.StatusInternalServerError
		switch apperrors.GetCode(err) {
		case apperrors.CodeInvalidInput, apperrors.CodeSchemaError, apperrors.CodeValueError:
			status = http.StatusBadRequest
		}
		s.respondError(c, status, err.Error())
		return
	}

	s.store.Put(job)
	s.respondJob(c, job)
}

// handleJobSummary returns the summary of a finished job
func (s *Server) handleJobSummary(c *gin.Context) {
	job, ok := s.lookupJob(c)
	if !ok {
		return
	}
	s.respondJob(c, job)
}

// handleDownload streams one artifact of a finished job
func (s *Server) handleDownload(c *gin.Context) {
	job, ok := s.lookupJob(c)
	if !ok {
		return
	}

	kind := jobstore.ArtifactKind(c.Param("kind"))
	artifact, err := s.store.Artifact(job.ID, kind)
	if err != nil {
		s.respondError(c, http.StatusNotFound, fmt.Sprintf("No %q file for this job", kind))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.Filename))
	c.Data(http.StatusOK, artifact.ContentType, artifact.Data)
}

// lookupJob resolves the :id path parameter, writing the error response on
// failure
func (s *Server) lookupJob(c *gin.Context) (*jobstore.Job, bool) {
	id, err := core.ParseJobID(c.Param("id"))
	if err != nil {
		s.respondError(c, http.StatusBadRequest, "Invalid job ID")
		return nil, false
	}

	job, err := s.store.Get(id)
	if err != nil {
		if errors.Is(err, core.ErrJobExpired) {
			s.respondError(c, http.StatusGone, "This job's files have expired. Upload the file again.")
			return nil, false
		}
		s.respondError(c, http.StatusNotFound, "Job not found")
		return nil, false
	}
	return job, true
}

// respondJob renders either the HTMX summary fragment or plain JSON
func (s *Server) respondJob(c *gin.Context, job *jobstore.Job) {
	if isHTMX(c) {
		s.renderTemplate(c, "summary.html", gin.H{
			"JobID":   job.ID.String(),
			"Summary": job.Summary,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"job_id":  job.ID.String(),
		"summary": job.Summary,
	})
}

// respondError writes a human-readable error as a fragment or JSON
func (s *Server) respondError(c *gin.Context, status int, message string) {
	if isHTMX(c) {
		c.Status(status)
		c.Header("Content-Type", "text/html")
		if err := s.templates.ExecuteTemplate(c.Writer, "error.html", gin.H{"Message": message}); err != nil {
			log.Printf("Template error: %v", err)
		}
		return
	}
	c.JSON(status, gin.H{"error": message})
}

func hasValidExtension(filename string) bool {
	name := strings.ToLower(filename)
	for _, ext := range []string{".xlsx", ".xlsm", ".csv"} {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
