package dto

import "time"

// CreateStartupRequest entrada para crear una startup. Si AccountEmail viene informado
// se crea además una cuenta STARTUP vinculada.
type CreateStartupRequest struct {
	Name            string `json:"name" validate:"required,min=1,max=200"`
	Description     string `json:"description"`
	Category        string `json:"category"`
	ContactName     string `json:"contact_name"`
	ContactEmail    string `json:"contact_email"`
	Website         string `json:"website"`
	AccountEmail    string `json:"account_email,omitempty"`
	AccountPassword string `json:"account_password,omitempty"`
}

// UpdateStartupRequest actualización parcial; nil = sin cambio.
type UpdateStartupRequest struct {
	Name         *string `json:"name" validate:"omitempty,min=1,max=200"`
	Description  *string `json:"description"`
	Category     *string `json:"category"`
	ContactName  *string `json:"contact_name"`
	ContactEmail *string `json:"contact_email"`
	Website      *string `json:"website"`
}

// StartupResponse salida de una startup.
type StartupResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Category     string    `json:"category"`
	ContactName  string    `json:"contact_name"`
	ContactEmail string    `json:"contact_email"`
	Website      string    `json:"website"`
	UserID       *string   `json:"user_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
