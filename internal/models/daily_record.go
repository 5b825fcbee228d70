package models

import "time"

// DailyRecord is one item/day observation of prepared vs. sold units.
// Revenue and Loss are fixed at creation from the menu item's unit economics.
type DailyRecord struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"userId"`
	Date      string    `gorm:"size:10;index;not null" json:"date"` // YYYY-MM-DD
	ItemID    string    `gorm:"size:50;not null" json:"itemId"`
	ItemName  string    `gorm:"size:100;not null" json:"itemName"`
	Prepared  int       `gorm:"not null" json:"prepared"`
	Sold      int       `gorm:"not null" json:"sold"`
	Waste     int       `gorm:"not null" json:"waste"`
	Revenue   float64   `gorm:"not null" json:"revenue"`
	Loss      float64   `gorm:"not null" json:"loss"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
}
