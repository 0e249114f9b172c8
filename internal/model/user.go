package model

import (
	"errors"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/nyaruka/phonenumbers"
)

const (
	GenderMale   = "male"
	GenderFemale = "female"
)

type User struct {
	ID             int64      `json:"id"`
	Username       string     `json:"username"`
	Email          string     `json:"email"`
	PasswordHash   string     `json:"-"`
	FirstName      string     `json:"first_name,omitempty"`
	LastName       string     `json:"last_name,omitempty"`
	PhoneNumber    string     `json:"phone_number,omitempty"`
	Gender         string     `json:"gender,omitempty"`
	ProfilePicture string     `json:"profile_picture,omitempty"`
	IsActive       bool       `json:"is_active"`
	Superuser      bool       `json:"superuser"`
	CreatedAt      time.Time  `json:"created_at"`
	LastLogin      *time.Time `json:"last_login,omitempty"`
}

// Principal is the caller resolved from a validated access token.
type Principal struct {
	User    User
	Fresh   bool
	TokenID string
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

type CreateUserRequest struct {
	Username       string `json:"username"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	PhoneNumber    string `json:"phone_number"`
	Gender         string `json:"gender"`
	ProfilePicture string `json:"profile_picture"`
	Superuser      bool   `json:"superuser"`
}

// Validate checks the payload. Phone numbers without a country prefix are
// parsed against region.
func (r CreateUserRequest) Validate(region string) error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required, validation.Length(1, 50)),
		validation.Field(&r.Email, validation.Required, validation.Length(3, 100), is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(1, 128)),
		validation.Field(&r.FirstName, validation.Length(0, 50)),
		validation.Field(&r.LastName, validation.Length(0, 50)),
		validation.Field(&r.PhoneNumber, validation.Length(0, 20), validation.By(phoneNumber(region))),
		validation.Field(&r.Gender, validation.In(GenderMale, GenderFemale)),
		validation.Field(&r.ProfilePicture, validation.Length(0, 255)),
	)
}

type PasswordPatchRequest struct {
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
}

func (r PasswordPatchRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Password, validation.Required, validation.Length(1, 128)),
		validation.Field(&r.PasswordConfirm, validation.Required),
	)
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (r RefreshRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.RefreshToken, validation.Required),
	)
}

func phoneNumber(region string) validation.RuleFunc {
	return func(value interface{}) error {
		raw, _ := value.(string)
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return nil
		}

		parsed, err := phonenumbers.Parse(raw, region)
		if err != nil || !phonenumbers.IsValidNumber(parsed) {
			return errors.New("must be a valid phone number")
		}
		return nil
	}
}
