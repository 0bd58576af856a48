package model

// Units of measure
const (
	UnitKG    = "KG"
	UnitPCS   = "PCS"
	UnitOther = "OTHER"
)

// ValidUnit reports whether u is a known unit.
func ValidUnit(u string) bool {
	switch u {
	case UnitKG, UnitPCS, UnitOther:
		return true
	}
	return false
}

// Item produced article (table items)
type Item struct {
	ItemID   string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"item_id"`
	Name     string `gorm:"type:varchar(255);not null"                     json:"name"`
	SKU      string `gorm:"column:sku;type:varchar(100);not null;uniqueIndex" json:"sku"`
	Unit     string `gorm:"type:varchar(10);not null;default:'PCS'"        json:"unit"`
	IsActive bool   `gorm:"not null;default:true"                          json:"is_active"`
	BaseModel
}

// TableName table name
func (Item) TableName() string { return "items" }
