package dto

import "github.com/SscSPs/finai_backend/internal/core/domain"

type UserResponse struct {
	UserID       string              `json:"userID"`
	Name         string              `json:"name"`
	Email        string              `json:"email"`
	AvatarURL    string              `json:"avatar"`
	AuthProvider domain.AuthProvider `json:"authProvider"`
}

func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:       user.UserID,
		Name:         user.Name,
		Email:        user.Email,
		AvatarURL:    user.AvatarURL(),
		AuthProvider: user.AuthProvider,
	}
}
