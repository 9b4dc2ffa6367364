package models

// Book belongs to exactly one novelist. Titles are stored lowercase and
// must be unique across the catalog.
type Book struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	Year       int    `json:"year"`
	Title      string `json:"title" gorm:"uniqueIndex;not null"`
	NovelistID uint   `json:"novelist_id" gorm:"not null"`
}
