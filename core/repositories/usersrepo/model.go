package usersrepo

// User is a persisted user account. ID is assigned by the store on creation.
type User struct {
	ID       int64  `db:"id"`
	Username string `db:"username"`
	Email    string `db:"email"`
	Password string `db:"password"`
}

// NewUser holds the caller supplied fields for a new user.
type NewUser struct {
	Username string
	Email    string
	Password string
}

// New builds a user ready to be stored.
func New(nu NewUser) User {
	return User{
		Username: nu.Username,
		Email:    nu.Email,
		Password: nu.Password,
	}
}
