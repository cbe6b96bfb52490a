package models

// User is a parent account that owns baby profiles.
type User struct {
	ID       int64  `json:"id" bson:"_id"`
	Username string `json:"username" bson:"username"`
	// Password holds the bcrypt hash, never the submitted secret.
	Password string `json:"-" bson:"password"`
}

// InsertUser is the payload accepted when registering or logging in.
type InsertUser struct {
	Username string `json:"username" binding:"required,min=1,max=64"`
	Password string `json:"password" binding:"required,min=1"`
}
