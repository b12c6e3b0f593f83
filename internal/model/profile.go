package model

// Profile is a predefined company category selected at registration time.
type Profile struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
