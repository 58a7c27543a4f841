package response

import (
	"time"

	"rentcar-backend/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type UserResponse struct {
	ID        uuid.UUID  `json:"id"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	FullName  string     `json:"fullName"`
	Role      string     `json:"role"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

type LoginResponse struct {
	AccessToken string        `json:"access_token"`
	User        *UserResponse `json:"user"`
}

type RegisterResponse struct {
	UserID uuid.UUID `json:"userId"`
	Email  string    `json:"email"`
}

func FromUserView(v *queries.AuthorizedUserView) *UserResponse {
	out := &UserResponse{}
	_ = copier.Copy(out, v)
	return out
}
