package models

import "gorm.io/gorm"

const (
	PaymentMethodCard   = "card"
	PaymentMethodPaypal = "paypal"

	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
	PaymentStatusRefunded  = "refunded"
)

// Payment is an append-only record of a purchase attempt backing an enrollment
type Payment struct {
	gorm.Model
	UserID        uint    `json:"user_id" gorm:"index;not null"`
	CourseID      uint    `json:"course_id" gorm:"index;not null"`
	Amount        float64 `json:"amount" gorm:"not null"`
	Method        string  `json:"method" gorm:"type:varchar(16);default:'card'"`
	Status        string  `json:"status" gorm:"type:varchar(16);default:'pending'"`
	TransactionID string  `json:"transaction_id" gorm:"uniqueIndex;not null"`
	CouponCode    string  `json:"coupon_code" gorm:"default:''"`
	Discount      float64 `json:"discount" gorm:"default:0"`
	IsDeleted     bool    `json:"-" gorm:"default:false"`
}
