package model

import "time"

// Class is a training-programme template with one sponsoring agency.
type Class struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Agency    string    `json:"agency"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ClassRequest is the payload for creating or updating a class.
type ClassRequest struct {
	Name   string `json:"name" binding:"required,notblank,max=255"`
	Agency string `json:"agency" binding:"max=255"`
}
