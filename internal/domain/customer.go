package domain

import "time"

type Customer struct {
	ID          int32      `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone,omitempty"`
	FranchiseID *int32     `json:"franchise_id,omitempty"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

type Franchise struct {
	ID   int32  `json:"id"`
	Name string `json:"name"`
	City string `json:"city"`
}
