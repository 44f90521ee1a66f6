package models

import "time"

// Table is a registry entry only. Orders reference tables by TableNumber
// value, never by foreign key, so a table can be deleted and recreated with
// the same number while its historical orders remain valid.
type Table struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	TableNumber int       `json:"table_number" gorm:"uniqueIndex;not null"`
	QRCode      string    `json:"qr_code,omitempty"`
	QRImageURL  string    `json:"qr_image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
