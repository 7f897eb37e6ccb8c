package api

import (
	"github.com/gin-gonic/gin"

	"packtravel/clients/mail"
	"packtravel/envvars"
	"packtravel/services/forum"
	"packtravel/services/ride"
	"packtravel/services/route"
	"packtravel/services/user"
)

type Server struct {
	Users  user.Service
	Routes route.Service
	Rides  ride.Service
	Forum  forum.Service
	Mail   mail.Sender
	Env    envvars.Env
}

func NewServer(users user.Service, routes route.Service, rides ride.Service, forumService forum.Service, sender mail.Sender, env envvars.Env) Server {
	return Server{
		Users:  users,
		Routes: routes,
		Rides:  rides,
		Forum:  forumService,
		Mail:   sender,
		Env:    env,
	}
}

func RegisterHandlers(r *gin.Engine, s Server) {
	r.POST("/register", s.Register)
	r.POST("/login", s.Login)
	r.GET("/logout", s.Logout)
	r.GET("/users/:userid", s.Profile)
	r.POST("/users/edit", s.EditProfile)

	r.GET("/publish", s.PublishIndex)
	r.POST("/routes", s.CreateRoute)
	r.GET("/rides/:ride_id", s.DisplayRide)
	r.POST("/routes/select", s.SelectRoute)
	r.GET("/search", s.SearchIndex)
	r.GET("/favorites", s.Favorites)
	r.GET("/myrides", s.MyRides)
	r.POST("/myrides/:route_id/delete", s.DeleteRide)

	r.GET("/forum", s.RidesWithTopics)
	r.POST("/forum/topics", s.CreateTopic)
	r.GET("/forum/rides/:ride_id/topics", s.ForumTopics)
	r.GET("/forum/topics/:topic_id", s.TopicDetails)
	r.POST("/forum/topics/:topic_id/comments", s.AddComment)
}
