package server

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/june-assistant/relay/identity"
)

// maxAudioUpload bounds one transcription request body.
const maxAudioUpload = 25 << 20

func (s *Server) handleLogin(c *gin.Context) {
	var body struct {
		RegNo string `json:"reg_no"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusOK, gin.H{"ok": false, "msg": "Invalid register number"})
		return
	}

	regNo := strings.TrimSpace(body.RegNo)
	profile, err := s.directory.Lookup(c.Request.Context(), regNo)
	if errors.Is(err, identity.ErrNotFound) {
		c.JSON(http.StatusOK, gin.H{"ok": false, "msg": "Invalid register number"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "msg": "Lookup failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":     true,
		"reg_no": regNo,
		"name":   profile.Name,
		"dept":   profile.Department,
	})
}

func (s *Server) handleLogout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (s *Server) handleHistory(c *gin.Context) {
	regNo := strings.TrimSpace(c.Query("reg_no"))
	if regNo == "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "reg_no is required"})
		return
	}

	entries, err := s.recorder.Recent(c.Request.Context(), regNo, 0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "history query failed"})
		return
	}

	items := make([]gin.H, 0, len(entries))
	for _, entry := range entries {
		items = append(items, gin.H{
			"message":   entry.Message,
			"timestamp": entry.Timestamp,
		})
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (s *Server) handleTranscribe(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "file field is required"})
		return
	}
	defer file.Close()

	audio, err := io.ReadAll(io.LimitReader(file, maxAudioUpload+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "failed to read upload"})
		return
	}
	if len(audio) > maxAudioUpload {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"detail": "audio exceeds 25MB limit"})
		return
	}

	text, err := s.bridge.Transcribe(c.Request.Context(), audio)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"text": text})
}

func (s *Server) handleHealthDB(c *gin.Context) {
	if err := s.store.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (s *Server) handleHealthLM(c *gin.Context) {
	models, err := s.lm.Models(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"detail": "LM server check failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "models": models})
}
