package user

// User mirrors the userData document shape. Field names match the
// documents already in the store.
type User struct {
	ID             string   `json:"id" firestore:"id"`
	Username       string   `json:"username" firestore:"username"`
	UnityID        string   `json:"unityid" firestore:"unityid"`
	FirstName      string   `json:"fname" firestore:"fname"`
	LastName       string   `json:"lname" firestore:"lname"`
	Email          string   `json:"email" firestore:"email"`
	Password       string   `json:"-" firestore:"password"`
	Phone          string   `json:"phone" firestore:"phone"`
	ProfilePicture string   `json:"pfp" firestore:"pfp"`
	Rides          []string `json:"rides" firestore:"rides"`
}

// RegisterInput carries the registration form fields. Password arrives
// in the clear and is hashed before storage.
type RegisterInput struct {
	Username       string
	UnityID        string
	FirstName      string
	LastName       string
	Email          string
	Password       string
	Phone          string
	ProfilePicture string
}

// ProfileUpdate is the subset of fields a user may edit after signup.
type ProfileUpdate struct {
	FirstName      string
	LastName       string
	Phone          string
	ProfilePicture string
}
