package models

// Card is one catalog entry. Rows are written by the ingestion pipeline; this
// service only reads them.
type Card struct {
	ID          int64   `gorm:"primaryKey;autoIncrement;comment:card id" json:"id"`
	Title       string  `gorm:"type:varchar(512);not null;comment:display title" json:"title"`
	ImageLink   *string `gorm:"type:text;comment:source image url" json:"image_link"`
	NumberViews int64   `gorm:"not null;default:0;index;comment:view counter" json:"number_views"`
	RealSlug    string  `gorm:"type:varchar(512);index;comment:legacy slug" json:"real_slug"`
	MySlug      string  `gorm:"type:varchar(512);index;comment:canonical slug" json:"my_slug"`
	Category    string  `gorm:"type:varchar(512);comment:space separated tags" json:"category"`
}

func (Card) TableName() string {
	return "cards"
}
