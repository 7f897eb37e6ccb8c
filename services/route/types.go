package route

import "packtravel/services/user"

// Route is a single scheduled trip. Its document id is the composite
// key built by CompositeID; field names match the stored documents.
type Route struct {
	ID          string   `json:"id" firestore:"id"`
	Purpose     string   `json:"purpose" firestore:"purpose"`
	StartPoint  string   `json:"s_point" firestore:"s_point"`
	Destination string   `json:"destination" firestore:"destination"`
	Type        string   `json:"type" firestore:"type"`
	Date        string   `json:"date" firestore:"date"`
	Hour        string   `json:"hour" firestore:"hour"`
	Minute      string   `json:"minute" firestore:"minute"`
	AmPm        string   `json:"ampm" firestore:"ampm"`
	Details     string   `json:"details" firestore:"details"`
	Creator     string   `json:"creator" firestore:"creator"`
	Users       []string `json:"users" firestore:"users"`
	StartLat    string   `json:"s_lat,omitempty" firestore:"s_lat,omitempty"`
	StartLong   string   `json:"s_long,omitempty" firestore:"s_long,omitempty"`
	DestLat     string   `json:"d_lat,omitempty" firestore:"d_lat,omitempty"`
	DestLong    string   `json:"d_long,omitempty" firestore:"d_long,omitempty"`
	Distance    float64  `json:"distance" firestore:"distance"`
	Fuel        float64  `json:"fuel" firestore:"fuel"`
}

// Input carries the publish form fields for a new route.
type Input struct {
	Purpose     string
	StartPoint  string
	Destination string
	Type        string
	Date        string
	Hour        string
	Minute      string
	AmPm        string
	Details     string
	StartLat    string
	StartLong   string
	DestLat     string
	DestLong    string
}

// DisplayRoute is a route prepared for rendering: creator inlined and
// distance rounded to one decimal place.
type DisplayRoute struct {
	Route   Route     `json:"route"`
	Creator user.User `json:"creator"`
}

// Favorite is one destination bucket in the ranking: total joined-user
// count accumulated across every route sharing the destination.
type Favorite struct {
	Destination string `json:"destination"`
	Slug        string `json:"destination_slug"`
	UserCount   int    `json:"user_count"`
}
