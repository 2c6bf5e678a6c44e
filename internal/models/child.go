package models

type Child struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"not null" json:"name" binding:"required,notblank,max=255"`
	Delivered int    `gorm:"not null;default:0;index" json:"delivered" binding:"oneof=0 1"`

	// Relationships
	Toys      []Toy              `gorm:"foreignKey:ChildID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"toys"`
	Favorites []FavoriteReindeer `gorm:"foreignKey:ChildID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}
