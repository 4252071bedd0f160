// Package models contains data structures for the application's domain models.
package models

// Post is the only persisted entity. The image reference is stored in the
// legacy "img" column and exposed to clients as "url".
type Post struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Titulo      string `gorm:"not null" json:"titulo"`
	URL         string `gorm:"column:img;not null" json:"url"`
	Descripcion string `gorm:"not null" json:"descripcion"`
	Likes       int    `gorm:"not null;default:0" json:"likes"`
}

// TableName pins the table name used by the original schema.
func (Post) TableName() string {
	return "posts"
}
