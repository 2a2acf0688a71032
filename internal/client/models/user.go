package models

type User struct {
	ID    string
	Name  string
	Email string
}

// Session is what login and register hand back.
type Session struct {
	Token string
	User  *User
}
