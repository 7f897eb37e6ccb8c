package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"packtravel/services/forum"
)

// RidesWithTopics (GET /forum)
func (s Server) RidesWithTopics(c *gin.Context) {
	result, err := s.Forum.RidesWithTopics(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"rides_with_topics": result})
}

type createTopicForm struct {
	RideID  string `form:"ride_id" binding:"required"`
	Title   string `form:"title" binding:"required"`
	Content string `form:"content" binding:"required"`
}

// CreateTopic (POST /forum/topics)
func (s Server) CreateTopic(c *gin.Context) {
	username, ok := requireLogin(c)
	if !ok {
		return
	}
	var form createTopicForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required!"})
		return
	}
	topic, err := s.Forum.CreateTopic(c.Request.Context(), forum.TopicInput{
		RideID:  form.RideID,
		Title:   form.Title,
		Content: form.Content,
		Creator: username,
	})
	if errors.Is(err, forum.ErrMissingFields) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required!"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"topic": topic, "redirect": "/forum"})
}

// ForumTopics (GET /forum/rides/:ride_id/topics)
func (s Server) ForumTopics(c *gin.Context) {
	rideID := c.Param("ride_id")
	topics, err := s.Forum.Topics(c.Request.Context(), rideID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ride_id": rideID, "topics": topics})
}

// TopicDetails (GET /forum/topics/:topic_id)
func (s Server) TopicDetails(c *gin.Context) {
	topic, comments, err := s.Forum.Topic(c.Request.Context(), c.Param("topic_id"))
	if errors.Is(err, forum.NotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "topic not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"topic": topic, "comments": comments})
}

type addCommentForm struct {
	Content string `form:"content" binding:"required"`
}

// AddComment (POST /forum/topics/:topic_id/comments)
func (s Server) AddComment(c *gin.Context) {
	username, ok := requireLogin(c)
	if !ok {
		return
	}
	var form addCommentForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	topicID := c.Param("topic_id")
	if _, err := s.Forum.AddComment(c.Request.Context(), topicID, username, form.Content); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"redirect": fmt.Sprintf("/forum/topics/%s", topicID)})
}
