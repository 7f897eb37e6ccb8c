package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"packtravel/services/ride"
	"packtravel/services/route"
	"packtravel/services/user"
)

// PublishIndex (GET /publish)
func (s Server) PublishIndex(c *gin.Context) {
	username, ok := requireLogin(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"username":     username,
		"gmap_api_key": s.Env.MapsAPIKey,
	})
}

type createRouteForm struct {
	Purpose     string `form:"purpose" binding:"required"`
	StartPoint  string `form:"spoint" binding:"required"`
	Destination string `form:"destination" binding:"required"`
	Type        string `form:"type"`
	Date        string `form:"date" binding:"required"`
	Hour        string `form:"hour" binding:"required"`
	Minute      string `form:"minute" binding:"required"`
	AmPm        string `form:"ampm" binding:"required"`
	Details     string `form:"details"`
	StartLat    string `form:"slat"`
	StartLong   string `form:"slong"`
	DestLat     string `form:"dlat"`
	DestLong    string `form:"dlong"`
}

// CreateRoute (POST /routes)
func (s Server) CreateRoute(c *gin.Context) {
	username, ok := requireLogin(c)
	if !ok {
		return
	}
	var form createRouteForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := route.ValidateDate(form.Date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rideID, err := s.Routes.Create(c.Request.Context(), username, route.Input{
		Purpose:     form.Purpose,
		StartPoint:  form.StartPoint,
		Destination: form.Destination,
		Type:        form.Type,
		Date:        form.Date,
		Hour:        form.Hour,
		Minute:      form.Minute,
		AmPm:        form.AmPm,
		Details:     form.Details,
		StartLat:    form.StartLat,
		StartLong:   form.StartLong,
		DestLat:     form.DestLat,
		DestLong:    form.DestLong,
	})
	if errors.Is(err, user.NotFound) {
		c.JSON(http.StatusUnauthorized, gin.H{"redirect": "/"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"redirect": fmt.Sprintf("/rides/%s", rideID)})
}

// DisplayRide (GET /rides/:ride_id) returns the ride, its active
// routes, and the route the viewer has already joined, if any.
func (s Server) DisplayRide(c *gin.Context) {
	rideID := c.Param("ride_id")
	r, err := s.Rides.Get(c.Request.Context(), rideID)
	if errors.Is(err, ride.NotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "ride not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	routes, err := s.Routes.ActiveRoutes(c.Request.Context(), r.RouteIDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	selected := ""
	if username := currentUsername(c); username != "" {
		selected = s.Routes.SelectedRoute(c.Request.Context(), username, routes)
	}
	c.JSON(http.StatusOK, gin.H{
		"username":      currentUsername(c),
		"ride":          r,
		"routes":        routes,
		"selectedRoute": selected,
	})
}

type selectRouteForm struct {
	RouteID string `form:"route_id" binding:"required"`
	RideID  string `form:"ride_id" binding:"required"`
}

// SelectRoute (POST /routes/select) toggles the viewer onto the route
// and sends a confirmation mail on a successful join.
func (s Server) SelectRoute(c *gin.Context) {
	username, ok := requireLogin(c)
	if !ok {
		return
	}
	var form selectRouteForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ride data"})
		return
	}

	if _, err := s.Routes.AttachUser(c.Request.Context(), username, form.RouteID); err != nil {
		if errors.Is(err, user.NotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"redirect": "/"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred"})
		return
	}

	if email := currentEmail(c); email != "" {
		if err := s.Mail.SendRouteSelected(email, username, form.RideID); err != nil {
			log.Warn().Err(err).Str("user", username).Msg("route confirmation mail failed")
		}
	}
	c.JSON(http.StatusOK, gin.H{"redirect": fmt.Sprintf("/rides/%s", form.RideID)})
}

// SearchIndex (GET /search)
func (s Server) SearchIndex(c *gin.Context) {
	username, ok := requireLogin(c)
	if !ok {
		return
	}
	rides, err := s.Rides.SearchIndex(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"username":     username,
		"rides":        rides,
		"gmap_api_key": s.Env.MapsAPIKey,
	})
}

// Favorites (GET /favorites) returns the top destinations by joined
// riders.
func (s Server) Favorites(c *gin.Context) {
	picks, err := s.Routes.FavoriteDestinations(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"top_picks": picks})
}

// MyRides (GET /myrides)
func (s Server) MyRides(c *gin.Context) {
	username, ok := requireLogin(c)
	if !ok {
		return
	}
	rides, err := s.Routes.MyRides(c.Request.Context(), username)
	if errors.Is(err, user.NotFound) {
		c.JSON(http.StatusUnauthorized, gin.H{"redirect": "/"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"username": username, "rides": rides})
}

// DeleteRide (POST /myrides/:route_id/delete)
func (s Server) DeleteRide(c *gin.Context) {
	if _, ok := requireLogin(c); !ok {
		return
	}
	if err := s.Routes.Delete(c.Request.Context(), c.Param("route_id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"redirect": "/myrides"})
}
