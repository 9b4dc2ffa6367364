package models

// Novelist is an author owning a collection of books. Names are stored
// lowercase; deleting a novelist deletes its books.
type Novelist struct {
	ID    uint   `json:"id" gorm:"primaryKey"`
	Name  string `json:"name" gorm:"uniqueIndex;not null"`
	Books []Book `json:"books" gorm:"constraint:OnDelete:CASCADE"`
}
