package model

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Session is what a session cookie resolves to.
type Session struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

// CredentialsReq is the form body of POST /login and POST /register.
type CredentialsReq struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

func (r CredentialsReq) Validate() error {
	return validation.Errors{
		"username": validation.Validate(strings.TrimSpace(r.Username), validation.Required.Error("username is required")),
		"password": validation.Validate(strings.TrimSpace(r.Password), validation.Required.Error("password is required")),
	}.Filter()
}

// SessionResp is returned by GET /session.
type SessionResp struct {
	Authenticated bool   `json:"authenticated"`
	Username      string `json:"username,omitempty"`
	IsAdmin       bool   `json:"is_admin"`
}
