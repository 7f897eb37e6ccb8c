package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"packtravel/clients/gcp"
	"packtravel/dates"
	"packtravel/services/route"
	"packtravel/services/user"
)

type registerForm struct {
	Username  string `form:"username" binding:"required"`
	UnityID   string `form:"unityid" binding:"required"`
	FirstName string `form:"first_name" binding:"required"`
	LastName  string `form:"last_name" binding:"required"`
	Email     string `form:"email" binding:"required"`
	Password  string `form:"password1" binding:"required"`
	Phone     string `form:"phone_number"`
}

// Register (POST /register)
func (s Server) Register(c *gin.Context) {
	var form registerForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	publicURL := ""
	if file, err := c.FormFile("profile_picture"); err == nil {
		f, err := file.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read profile picture"})
			return
		}
		defer f.Close()
		objectName := fmt.Sprintf("%s.png", form.Username)
		publicURL, err = gcp.UploadFile(c.Request.Context(), s.Env.StorageBucket, objectName, f)
		if err != nil {
			log.Warn().Err(err).Msg("profile picture upload failed")
			publicURL = ""
		}
	}

	u, err := s.Users.Register(c.Request.Context(), user.RegisterInput{
		Username:       form.Username,
		UnityID:        form.UnityID,
		FirstName:      form.FirstName,
		LastName:       form.LastName,
		Email:          form.Email,
		Password:       form.Password,
		Phone:          form.Phone,
		ProfilePicture: publicURL,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := setLoginSession(c, u); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u, "redirect": "/"})
}

type loginForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// Login (POST /login)
func (s Server) Login(c *gin.Context) {
	if currentUsername(c) != "" {
		c.JSON(http.StatusOK, gin.H{"redirect": "/"})
		return
	}
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u, err := s.Users.Authenticate(c.Request.Context(), form.Username, form.Password)
	if errors.Is(err, user.ErrInvalidCredentials) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if err := setLoginSession(c, u); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u, "redirect": "/"})
}

// Logout (GET /logout)
func (s Server) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		log.Warn().Err(err).Msg("failed to clear session")
	}
	c.JSON(http.StatusOK, gin.H{"redirect": "/"})
}

// Profile (GET /users/:userid) returns the user with their created
// routes split into past and upcoming.
func (s Server) Profile(c *gin.Context) {
	userID := c.Param("userid")
	u, err := s.Users.GetByID(c.Request.Context(), userID)
	if errors.Is(err, user.NotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	created, err := s.Routes.ByCreator(c.Request.Context(), u.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	past := make([]route.Route, 0)
	current := make([]route.Route, 0)
	for _, r := range created {
		passed, err := dates.HasPassed(r.Date)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if passed {
			past = append(past, r)
		} else {
			current = append(current, r)
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"user":         u,
		"pastrides":    past,
		"currentrides": current,
	})
}

type editProfileForm struct {
	FirstName string `form:"first_name" binding:"required"`
	LastName  string `form:"last_name" binding:"required"`
	Phone     string `form:"phone_number"`
}

// EditProfile (POST /users/edit)
func (s Server) EditProfile(c *gin.Context) {
	username, ok := requireLogin(c)
	if !ok {
		return
	}
	var form editProfileForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	publicURL := ""
	if file, err := c.FormFile("profile_picture"); err == nil {
		f, err := file.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read profile picture"})
			return
		}
		defer f.Close()
		objectName := fmt.Sprintf("%s.png", username)
		publicURL, err = gcp.UploadFile(c.Request.Context(), s.Env.StorageBucket, objectName, f)
		if err != nil {
			log.Warn().Err(err).Msg("profile picture upload failed")
			publicURL = ""
		}
	}

	err := s.Users.UpdateProfile(c.Request.Context(), username, user.ProfileUpdate{
		FirstName:      form.FirstName,
		LastName:       form.LastName,
		Phone:          form.Phone,
		ProfilePicture: publicURL,
	})
	if errors.Is(err, user.NotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	u, err := s.Users.GetByUsername(c.Request.Context(), username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"redirect": fmt.Sprintf("/users/%s", u.ID)})
}
