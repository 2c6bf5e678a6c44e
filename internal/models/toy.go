package models

type Toy struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"not null" json:"name" binding:"required,notblank,max=255"`
	ChildID uint   `gorm:"not null;index" json:"childId" binding:"required"`

	// Relationships
	Child *Child `gorm:"foreignKey:ChildID" json:"child,omitempty"`
}
