package chatapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

type createMessageRequest struct {
	Content string `json:"content"`
}

func (s *Server) listMessages(c *gin.Context) {
	c.JSON(http.StatusOK, s.Messages(c.Param("id")))
}

func (s *Server) createMessage(c *gin.Context) {
	var req createMessageRequest
	var attachments []string

	if strings.HasPrefix(c.ContentType(), "multipart/") {
		form, err := c.MultipartForm()
		if err != nil {
			invalidBody(c)
			return
		}
		if payload := form.Value["payload_json"]; len(payload) > 0 {
			if err := json.Unmarshal([]byte(payload[0]), &req); err != nil {
				invalidBody(c)
				return
			}
		}
		for _, files := range form.File {
			for _, f := range files {
				attachments = append(attachments, f.Filename)
			}
		}
	} else if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c)
		return
	}

	id := c.Param("id")
	s.mu.Lock()
	s.state.nextID++
	msg := Message{
		ID:          strconv.FormatUint(s.state.nextID, 10),
		ChannelID:   id,
		Content:     req.Content,
		Attachments: attachments,
	}
	s.state.channels[id] = append(s.state.channels[id], msg)
	s.mu.Unlock()

	c.JSON(http.StatusOK, msg)
}

func (s *Server) deleteChannel(c *gin.Context) {
	id := c.Param("id")
	s.mu.Lock()
	delete(s.state.channels, id)
	s.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"id": id})
}

func (s *Server) manyHeaders(c *gin.Context) {
	n, err := strconv.Atoi(c.Param("n"))
	if err != nil || n < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "bad header count"})
		return
	}
	for i := range n {
		c.Header(fmt.Sprintf("X-Fake-%03d", i), fmt.Sprintf("value-%d", i))
	}
	c.JSON(http.StatusOK, gin.H{"headers": n})
}

func (s *Server) sizedBody(c *gin.Context) {
	n, err := strconv.Atoi(c.Param("n"))
	if err != nil || n < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "bad size"})
		return
	}
	c.Data(http.StatusOK, "application/octet-stream", []byte(strings.Repeat("x", n)))
}

// duplicateHeaders sends X-Duplicate twice, "first" then "second".
func (s *Server) duplicateHeaders(c *gin.Context) {
	c.Writer.Header().Add("X-Duplicate", "first")
	c.Writer.Header().Add("X-Duplicate", "second")
	c.Status(http.StatusNoContent)
}

func (s *Server) echoHeaders(c *gin.Context) {
	out := make(map[string]string, len(c.Request.Header))
	for k, v := range c.Request.Header {
		out[k] = strings.Join(v, ", ")
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) globalLimited(c *gin.Context) {
	c.Header("X-RateLimit-Global", "true")
	c.Header("X-RateLimit-Scope", "global")
	c.Header("Retry-After", seconds(s.cfg.GlobalRetryAfter))
	c.JSON(http.StatusTooManyRequests, gin.H{
		"message":     "You are being rate limited.",
		"retry_after": s.cfg.GlobalRetryAfter.Seconds(),
		"global":      true,
	})
}

func invalidBody(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{"message": "The request body contains invalid JSON.", "code": CodeInvalidJSON})
}
