package user

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	id           uuid.UUID
	email        Email
	phone        Phone
	fullName     string
	passwordHash string
	role         Role
	lastLogin    *time.Time
	isActive     bool
	createdAt    time.Time
}

func NewUser(email Email, phone Phone, fullName, passwordHash string, now time.Time) *User {
	return &User{
		id:           uuid.New(),
		email:        email,
		phone:        phone,
		fullName:     fullName,
		passwordHash: passwordHash,
		role:         RoleCustomer,
		isActive:     true,
		createdAt:    now,
	}
}

func (u *User) ID() uuid.UUID         { return u.id }
func (u *User) Email() Email          { return u.email }
func (u *User) Phone() Phone          { return u.phone }
func (u *User) FullName() string      { return u.fullName }
func (u *User) PasswordHash() string  { return u.passwordHash }
func (u *User) Role() Role            { return u.role }
func (u *User) LastLogin() *time.Time { return u.lastLogin }
func (u *User) IsActive() bool        { return u.isActive }
func (u *User) CreatedAt() time.Time  { return u.createdAt }
