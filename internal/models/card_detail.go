package models

// CardDetail holds the playable source for a card, keyed by the card's
// canonical slug.
type CardDetail struct {
	ID       int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	MySlug   string  `gorm:"type:varchar(512);index;not null;comment:canonical slug of the card" json:"my_slug"`
	VideoSrc *string `gorm:"type:text;comment:playable media url" json:"video_src"`
}

func (CardDetail) TableName() string {
	return "cards_detail"
}
