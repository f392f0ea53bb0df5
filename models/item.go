// models/item.go
package models

import "time"

const ItemTable = "rental_items"
const RentalPeriodTable = "rental_periods"

// MaxItemIDLen 与 Item.ID 的列宽一致
const MaxItemIDLen = 120

type RentalStatus string

const (
	RentalStatusRented   RentalStatus = "rented"
	RentalStatusReturned RentalStatus = "returned"
)

// Item 单件可租物品；RentalPeriods 按创建顺序排列
type Item struct {
	ID            string         `gorm:"primaryKey;size:120" json:"id"`
	Name          string         `gorm:"size:200;not null" json:"name"`
	Description   string         `gorm:"type:text;not null" json:"description"`
	Price         float64        `gorm:"not null" json:"price"`
	Availability  bool           `gorm:"not null;default:true" json:"availability"` // 冗余列：当前无 rented 记录
	RentalPeriods []RentalPeriod `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE" json:"rentalPeriods"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

type RentalPeriod struct {
	ID           string       `gorm:"type:uuid;primaryKey" json:"id"`
	ItemID       string       `gorm:"size:120;index;not null" json:"-"`
	Seq          int          `gorm:"not null" json:"-"` // 同一物品内的插入顺序
	StartDate    string       `gorm:"size:40;not null" json:"startDate"`
	EndDate      string       `gorm:"size:40;not null" json:"endDate"`
	Status       RentalStatus `gorm:"size:20;not null;default:'rented'" json:"status"`
	ReturnedDate string       `gorm:"size:10" json:"returnedDate,omitempty"`
}

func (Item) TableName() string         { return ItemTable }
func (RentalPeriod) TableName() string { return RentalPeriodTable }

// HasActiveRental reports whether any period is still rented.
func (it *Item) HasActiveRental() bool {
	for _, p := range it.RentalPeriods {
		if p.Status == RentalStatusRented {
			return true
		}
	}
	return false
}

// FindRental returns a pointer into RentalPeriods, or nil.
func (it *Item) FindRental(id string) *RentalPeriod {
	for i := range it.RentalPeriods {
		if it.RentalPeriods[i].ID == id {
			return &it.RentalPeriods[i]
		}
	}
	return nil
}

// Clone deep-copies the item so callers never share the period slice with a store.
func (it Item) Clone() Item {
	out := it
	out.RentalPeriods = make([]RentalPeriod, len(it.RentalPeriods))
	copy(out.RentalPeriods, it.RentalPeriods)
	return out
}

// SearchFilter 为空字段/nil 表示不过滤
type SearchFilter struct {
	Name     string
	MinPrice *float64
	MaxPrice *float64
}
