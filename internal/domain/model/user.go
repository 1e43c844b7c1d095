package model

// User is the authenticated GitHub user.
type User struct {
	Login string
	Name  string
	Email string
}
