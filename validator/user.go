package validator // import "github.com/deepeshsaheb-tal/bookcritic/validator"

import (
	"github.com/pkg/errors"

	"github.com/deepeshsaheb-tal/bookcritic/model"
	"github.com/deepeshsaheb-tal/bookcritic/store"
	"github.com/deepeshsaheb-tal/bookcritic/util"
)

func ValidateSignupRequest(s *store.Store, user *model.UserSignupRequest) error {
	if user == nil {
		return errors.New("user is nil")
	}
	if user.Username == "" {
		return errors.New("username is empty")
	}
	if !util.UIDMatcher.MatchString(user.Username) {
		return errors.New("username is invalid")
	}
	if user.Email == "" {
		return errors.New("email is empty")
	}
	if !util.ValidateEmail(user.Email) {
		return errors.New("email is invalid")
	}
	if user.Password == "" {
		return errors.New("password is empty")
	}
	if err := validatePassword(user.Password); err != nil {
		return err
	}
	if existed, _ := s.GetUser(&model.FindUser{Username: &user.Username}); existed != nil {
		return errors.New("username already exists")
	}
	if existed, _ := s.GetUser(&model.FindUser{Email: &user.Email}); existed != nil {
		return errors.New("email already registered")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 6 {
		return errors.New("password is too short")
	}
	return nil
}
