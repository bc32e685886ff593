package model

import "time"

// MaxPasswordBytes is the longest password bcrypt hashes without truncation.
const MaxPasswordBytes = 72

// Admin is an operator record. PasswordHash is never serialised.
type Admin struct {
	ID                   int                  `json:"id"`
	Name                 string               `json:"name"`
	Designation          string               `json:"designation"`
	UserID               string               `json:"user_id"`
	PasswordHash         string               `json:"-"`
	InstitutePermissions InstitutePermissions `json:"institute_permission"`
	CreatedAt            time.Time            `json:"created_at"`
	UpdatedAt            time.Time            `json:"updated_at"`
}

// CreateAdminRequest is the payload for registering an admin.
type CreateAdminRequest struct {
	Name                string `json:"name" binding:"required,notblank,max=255"`
	Designation         string `json:"designation" binding:"max=255"`
	UserID              string `json:"user_id" binding:"required,notblank,max=100"`
	Password            string `json:"password" binding:"required,min=6,maxbytes=72"`
	InstitutePermission string `json:"institute_permission"`
}

// UpdateAdminRequest updates an admin. An empty Password keeps the current one.
type UpdateAdminRequest struct {
	Name                string `json:"name" binding:"required,notblank,max=255"`
	Designation         string `json:"designation" binding:"max=255"`
	UserID              string `json:"user_id" binding:"required,notblank,max=100"`
	Password            string `json:"password" binding:"omitempty,min=6,maxbytes=72"`
	InstitutePermission string `json:"institute_permission"`
}
