package types

import "github.com/bagoloot/bagoloot/internal/models"

type TokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
}

type IdentityResponse struct {
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
}

// ReindeerResponse exposes the children who like a reindeer without the
// join rows.
type ReindeerResponse struct {
	ID   uint           `json:"id"`
	Name string         `json:"name"`
	Fans []models.Child `json:"fans"`
}

func NewReindeerResponse(r models.Reindeer) ReindeerResponse {
	fans := make([]models.Child, 0, len(r.Fans))

	for _, f := range r.Fans {
		if f.Child != nil {
			fans = append(fans, *f.Child)
		}
	}

	return ReindeerResponse{
		ID:   r.ID,
		Name: r.Name,
		Fans: fans,
	}
}
