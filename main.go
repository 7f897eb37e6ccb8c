package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/go-resty/resty/v2"

	"packtravel/api"
	"packtravel/clients/gcp"
	"packtravel/clients/mail"
	"packtravel/clients/maps"
	"packtravel/envvars"
	"packtravel/services/forum"
	"packtravel/services/ride"
	"packtravel/services/route"
	"packtravel/services/user"
)

const routesHostname = "routes.googleapis.com"

func main() {
	env := envvars.GetEnv()

	firestore := gcp.CreateFirestore(context.Background(), env.ProjectID)
	defer firestore.Close()

	mapsService := maps.NewService(resty.New(), routesHostname, env.MapsAPIKey)
	sender := mail.NewSMTPSender(env.SMTPHost, env.SMTPPort, env.EmailUser, env.EmailPassword)

	userService := user.NewService(firestore)
	routeService := route.NewService(firestore, userService, mapsService)
	rideService := ride.NewService(firestore)
	forumService := forum.NewService(firestore)

	server := api.NewServer(userService, routeService, rideService, forumService, sender, env)

	r := gin.Default()
	r.Use(cors.Default())
	r.Use(sessions.Sessions("packtravel", cookie.NewStore([]byte(env.SessionSecret))))

	api.RegisterHandlers(r, server)

	s := &http.Server{
		Handler: r,
		Addr:    "0.0.0.0:8080",
	}

	slog.Info("Starting HTTP server on port 8080")
	log.Fatal(s.ListenAndServe())
}
