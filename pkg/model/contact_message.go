package model

import "time"

type ContactMessage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Email     string    `gorm:"size:100;not null" json:"email"`
	Phone     string    `gorm:"size:50" json:"phone,omitempty"`
	Subject   string    `gorm:"size:255" json:"subject,omitempty"`
	EventDate string    `gorm:"size:50" json:"event_date,omitempty"`
	ShootType string    `gorm:"size:100" json:"shoot_type,omitempty"`
	Budget    string    `gorm:"size:100" json:"budget,omitempty"`
	Message   string    `json:"message"`
	IsRead    bool      `gorm:"not null" json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

func (ContactMessage) TableName() string {
	return "contact_messages"
}
