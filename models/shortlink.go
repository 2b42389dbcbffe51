package models

import (
	"time"
)

// ShortLink is the stored mapping of a short code to its original URL. The same
// shape is written to every backend; ID doubles as the partition key.
type ShortLink struct {
	ID          string    `json:"id"           bson:"_id"          gorm:"primaryKey"`
	OriginalURL string    `json:"original_url" bson:"original_url"`
	CreatedAt   time.Time `json:"created_at"   bson:"created_at"   gorm:"autoCreateTime:false"`
	ExpiresAt   time.Time `json:"expires_at"   bson:"expires_at"   gorm:"index"`
	Clicks      int64     `json:"clicks"       bson:"clicks"`
}
