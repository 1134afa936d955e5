package usersrepobridge

import "github.com/tasmag/tasmag/core/repositories/usersrepo"

func MarshalToBridge(user usersrepo.User) User {
	return User{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Password: user.Password,
	}
}

func MarshalListToBridge(users []usersrepo.User) []User {
	bridgeUsers := make([]User, len(users))
	for i, user := range users {
		bridgeUsers[i] = MarshalToBridge(user)
	}
	return bridgeUsers
}

func MarshalCreateToRepository(input UserInput) usersrepo.NewUser {
	return usersrepo.NewUser{
		Username: input.Username,
		Email:    input.Email,
		Password: input.Password,
	}
}
