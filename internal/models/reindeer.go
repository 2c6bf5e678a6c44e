package models

type Reindeer struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"not null" json:"name" binding:"required,notblank,max=255"`

	// Relationships
	Fans []FavoriteReindeer `gorm:"foreignKey:ReindeerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}
