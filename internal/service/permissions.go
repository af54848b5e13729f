package service

import "github.com/Skotchmaster/marketplace/internal/models"

// Permission predicates take a nil principal for anonymous requests.

func IsAuthenticated(principal *models.Account) bool {
	return principal != nil
}

func IsSuperuser(principal *models.Account) bool {
	return principal != nil && principal.IsSuperuser
}

func IsSeller(principal *models.Account) bool {
	return principal != nil && principal.IsSeller
}

func IsAccountOwner(principal, acc *models.Account) bool {
	return principal != nil && acc != nil && principal.ID == acc.ID
}

func IsProductOwner(principal *models.Account, prod *models.Product) bool {
	return principal != nil && prod != nil && principal.ID == prod.SellerID
}
