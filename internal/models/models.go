package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrSellerRequired = errors.New("product requires a seller")

// Boolean columns carry no gorm default: gorm skips zero values for columns
// with defaults, which would turn an explicit false into true.
type Account struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"      json:"id"`
	Username    string    `gorm:"size:150;uniqueIndex;not null" json:"username"`
	Password    string    `gorm:"not null"                      json:"-"`
	FirstName   string    `gorm:"size:150;not null"             json:"first_name"`
	LastName    string    `gorm:"size:150;not null"             json:"last_name"`
	IsSeller    bool      `gorm:"not null"                      json:"is_seller"`
	IsSuperuser bool      `gorm:"not null"                      json:"is_superuser"`
	IsActive    bool      `gorm:"not null"                      json:"is_active"`
	DateJoined  time.Time `gorm:"not null;index"                json:"date_joined"`
}

func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.DateJoined.IsZero() {
		a.DateJoined = tx.NowFunc()
	}
	return nil
}

type Product struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"                               json:"id"`
	Description string    `gorm:"type:text;not null"                                 json:"description"`
	Price       float64   `gorm:"not null;check:chk_products_price,price >= 0"       json:"price"`
	Quantity    int       `gorm:"not null;check:chk_products_quantity,quantity >= 0" json:"quantity"`
	IsActive    bool      `gorm:"not null"                                           json:"is_active"`

	SellerID uint    `gorm:"not null;index"                                   json:"seller_id"`
	Seller   Account `gorm:"foreignKey:SellerID;constraint:OnDelete:CASCADE;" json:"seller"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.SellerID == 0 {
		return ErrSellerRequired
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Account{}, &Product{})
}
