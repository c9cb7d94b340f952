package models

import "time"

// Address is owned by its parent user or draft
type Address struct {
	State    string `json:"state"`
	District string `json:"district"`
	Block    string `json:"block,omitempty"`
	Village  string `json:"village,omitempty"`
	Pincode  string `json:"pincode"`
}

// User is the identity record created by registration. The core never
// mutates it after creation.
type User struct {
	ID           string      `json:"id"`
	Email        string      `json:"email"`
	Mobile       string      `json:"mobile"`
	Name         string      `json:"name"`
	Role         Role        `json:"role"`
	DateOfBirth  string      `json:"dateOfBirth,omitempty"`
	Gender       string      `json:"gender,omitempty"`
	Photo        string      `json:"photo,omitempty"`
	Address      *Address    `json:"address,omitempty"`
	Details      RoleDetails `json:"details,omitempty"`
	IsActive     bool        `json:"isActive"`
	CreatedAt    time.Time   `json:"createdAt"`
	PasswordHash string      `json:"-"`
}

// SchoolName returns the school a mentee or school head belongs to
func (u *User) SchoolName() string {
	switch d := u.Details.(type) {
	case *MenteeDetails:
		return d.SchoolName
	case *SchoolHeadDetails:
		return d.SchoolName
	}
	return ""
}

// AuthState is returned by a successful login
type AuthState struct {
	User            *User `json:"user"`
	IsAuthenticated bool  `json:"isAuthenticated"`
	Role            Role  `json:"role"`
}

// LoginMethod selects password or one-time-code login
type LoginMethod string

const (
	LoginMethodPassword LoginMethod = "password"
	LoginMethodOTP      LoginMethod = "otp"
)

// LoginRequest is the login form payload
type LoginRequest struct {
	EmailOrMobile string      `json:"emailOrMobile"`
	Password      string      `json:"password"`
	Role          Role        `json:"role"`
	Method        LoginMethod `json:"method"`
	OTP           string      `json:"otp"`
}

// LoginResponse carries the signed session and the dashboard to open
type LoginResponse struct {
	Auth       AuthState `json:"auth"`
	Token      string    `json:"token"`
	ExpiresAt  time.Time `json:"expiresAt"`
	RedirectTo string    `json:"redirectTo"`
}

// OTPRequest asks for a one-time login code
type OTPRequest struct {
	Mobile string `json:"mobile" binding:"required,mobile"`
	Role   Role   `json:"role" binding:"required,role"`
}

// OTPResponse acknowledges an OTP request
type OTPResponse struct {
	Success   bool   `json:"success"`
	ExpiresIn int    `json:"expiresIn"`
	Message   string `json:"message,omitempty"`
}

// UserSession is the identity carried by a validated session token
type UserSession struct {
	UserID    string `json:"userId"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      Role   `json:"role"`
	ExpiresAt int64  `json:"exp"`
	IssuedAt  int64  `json:"iat"`
}
