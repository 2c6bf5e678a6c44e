package models

// FavoriteReindeer links a child to a reindeer it likes.
type FavoriteReindeer struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	ChildID    uint `gorm:"not null;index" json:"childId" binding:"required"`
	ReindeerID uint `gorm:"not null;index" json:"reindeerId" binding:"required"`

	// Relationships
	Child    *Child    `gorm:"foreignKey:ChildID" json:"child,omitempty"`
	Reindeer *Reindeer `gorm:"foreignKey:ReindeerID" json:"reindeer,omitempty"`
}
