package models

// OrderItem is the persisted projection of one cart line. The catalog price
// is snapshotted into UnitPrice at submission so later menu edits cannot
// change historical order totals.
type OrderItem struct {
	ID        uint    `json:"id" gorm:"primaryKey"`
	OrderID   uint    `json:"-" gorm:"not null;index"`
	ItemID    uint    `json:"item_id" gorm:"not null"`
	Quantity  int     `json:"quantity" gorm:"not null"`
	UnitPrice float64 `json:"unit_price" gorm:"not null"`
}
