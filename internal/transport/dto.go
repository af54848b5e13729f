package transport

import (
	"time"

	"github.com/google/uuid"

	"github.com/Skotchmaster/marketplace/internal/models"
)

type LoginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

// RegisterRequest has no is_superuser field: the flag is read-only and a
// submitted value is dropped on bind.
type RegisterRequest struct {
	Username  string `json:"username"   form:"username"   validate:"required,max=150,username"`
	Password  string `json:"password"   form:"password"   validate:"required,maxbytes=72"`
	FirstName string `json:"first_name" form:"first_name" validate:"required,max=150"`
	LastName  string `json:"last_name"  form:"last_name"  validate:"required,max=150"`
	IsSeller  *bool  `json:"is_seller"  form:"is_seller"  validate:"required"`
	IsActive  *bool  `json:"is_active"  form:"is_active"`
}

type PatchAccountRequest struct {
	Username  *string `json:"username"   form:"username"   validate:"omitempty,min=1,max=150,username"`
	Password  *string `json:"password"   form:"password"   validate:"omitempty,min=1,maxbytes=72"`
	FirstName *string `json:"first_name" form:"first_name" validate:"omitempty,min=1,max=150"`
	LastName  *string `json:"last_name"  form:"last_name"  validate:"omitempty,min=1,max=150"`
	IsSeller  *bool   `json:"is_seller"  form:"is_seller"`
	IsActive  *bool   `json:"is_active"  form:"is_active"`
}

type AccountResponse struct {
	ID          uint      `json:"id"`
	Username    string    `json:"username"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	IsSeller    bool      `json:"is_seller"`
	DateJoined  time.Time `json:"date_joined"`
	IsSuperuser bool      `json:"is_superuser"`
	IsActive    bool      `json:"is_active"`
}

func NewAccountResponse(a *models.Account) AccountResponse {
	return AccountResponse{
		ID:          a.ID,
		Username:    a.Username,
		FirstName:   a.FirstName,
		LastName:    a.LastName,
		IsSeller:    a.IsSeller,
		DateJoined:  a.DateJoined,
		IsSuperuser: a.IsSuperuser,
		IsActive:    a.IsActive,
	}
}

func NewAccountList(items []models.Account) []AccountResponse {
	out := make([]AccountResponse, 0, len(items))
	for i := range items {
		out = append(out, NewAccountResponse(&items[i]))
	}
	return out
}

type CreateProductRequest struct {
	Description string   `json:"description" form:"description" validate:"required"`
	Price       *float64 `json:"price"       form:"price"       validate:"required,min=0"`
	Quantity    *int     `json:"quantity"    form:"quantity"    validate:"required,min=0"`
	IsActive    *bool    `json:"is_active"   form:"is_active"`
}

type PatchProductRequest struct {
	Description *string  `json:"description" form:"description" validate:"omitempty,min=1"`
	Price       *float64 `json:"price"       form:"price"       validate:"omitempty,min=0"`
	Quantity    *int     `json:"quantity"    form:"quantity"    validate:"omitempty,min=0"`
	IsActive    *bool    `json:"is_active"   form:"is_active"`
}

type ProductDetail struct {
	ID          uuid.UUID       `json:"id"`
	Seller      AccountResponse `json:"seller"`
	Description string          `json:"description"`
	Price       float64         `json:"price"`
	Quantity    int             `json:"quantity"`
	IsActive    bool            `json:"is_active"`
}

func NewProductDetail(p *models.Product) ProductDetail {
	return ProductDetail{
		ID:          p.ID,
		Seller:      NewAccountResponse(&p.Seller),
		Description: p.Description,
		Price:       p.Price,
		Quantity:    p.Quantity,
		IsActive:    p.IsActive,
	}
}

type ProductListItem struct {
	ID          uuid.UUID `json:"id"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Quantity    int       `json:"quantity"`
	IsActive    bool      `json:"is_active"`
	SellerID    uint      `json:"seller_id"`
}

func NewProductList(items []models.Product) []ProductListItem {
	out := make([]ProductListItem, 0, len(items))
	for _, p := range items {
		out = append(out, ProductListItem{
			ID:          p.ID,
			Description: p.Description,
			Price:       p.Price,
			Quantity:    p.Quantity,
			IsActive:    p.IsActive,
			SellerID:    p.SellerID,
		})
	}
	return out
}

// Page is the paginated list envelope. Next and Previous are absolute URLs
// or null.
type Page[T any] struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}
