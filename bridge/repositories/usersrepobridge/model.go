package usersrepobridge

import (
	"encoding/json"

	"github.com/tasmag/tasmag/sdk/validation"
)

// User is the response body for a user. The password is returned as stored.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserInput is the request body for create. A body id is ignored.
type UserInput struct {
	Username string
	Email    string
	Password string
}

type userBody struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// Decode implements web.Decoder.
func (u *UserInput) Decode(data []byte) error {
	var body userBody
	if err := json.Unmarshal(data, &body); err != nil {
		return err
	}

	*u = UserInput{
		Username: validation.GetStringOrEmpty(body.Username),
		Email:    validation.GetStringOrEmpty(body.Email),
		Password: validation.GetStringOrEmpty(body.Password),
	}
	return nil
}
