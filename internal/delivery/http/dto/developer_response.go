package dto

import (
	"time"

	"developer-directory/internal/domain/developer"

	"github.com/google/uuid"
)

type DeveloperResponse struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Name        string    `json:"name"`
	Role        string    `json:"role"`
	TechStack   []string  `json:"tech_stack"`
	Experience  int       `json:"experience"`
	Description *string   `json:"description"`
	PhotoURL    *string   `json:"photo_url"`
	JoiningDate time.Time `json:"joining_date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewDeveloperResponse(d developer.Developer) DeveloperResponse {
	stack := d.TechStack
	if stack == nil {
		stack = []string{}
	}
	return DeveloperResponse{
		ID:          d.ID,
		UserID:      d.UserID,
		Name:        d.Name,
		Role:        string(d.Role),
		TechStack:   stack,
		Experience:  d.Experience,
		Description: d.Description,
		PhotoURL:    d.PhotoURL,
		JoiningDate: d.JoiningDate,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func NewDeveloperListResponse(items []developer.Developer) []DeveloperResponse {
	out := make([]DeveloperResponse, 0, len(items))
	for _, d := range items {
		out = append(out, NewDeveloperResponse(d))
	}
	return out
}
