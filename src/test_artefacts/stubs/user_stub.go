package stubs

import (
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"

	"zenumljpg/src/domain/entities"
)

type UserStub struct {
	user     entities.User
	password string
}

func NewUserStub() UserStub {
	now := time.Now().UTC()

	stub := UserStub{
		user: entities.User{
			ID:        gofakeit.UUID(),
			Username:  gofakeit.Username(),
			Email:     gofakeit.Email(),
			CreatedAt: now,
		},
		password: gofakeit.Password(true, true, true, false, false, 12),
	}

	return stub.withHashedPassword()
}

func (us UserStub) WithEmail(email string) UserStub {
	us.user.Email = email
	return us
}

func (us UserStub) WithUsername(username string) UserStub {
	us.user.Username = username
	return us
}

func (us UserStub) WithPassword(password string) UserStub {
	us.password = password
	return us.withHashedPassword()
}

func (us UserStub) withHashedPassword() UserStub {
	// MinCost keeps the suites fast; hashing strength is not under test here
	hashed, _ := bcrypt.GenerateFromPassword([]byte(us.password), bcrypt.MinCost)
	us.user.HashedPassword = string(hashed)
	return us
}

// Password returns the plain-text password matching the stored hash.
func (us UserStub) Password() string {
	return us.password
}

func (us UserStub) Get() entities.User {
	return us.user
}
