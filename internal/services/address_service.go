package services

import (
	"context"

	"storefront/internal/models"
	"storefront/internal/repositories"
)

type AddressService interface {
	AddAddress(ctx context.Context, address *models.Address) error
}

type addressService struct {
	addressRepo repositories.AddressRepository
}

func NewAddressService(addressRepo repositories.AddressRepository) AddressService {
	return &addressService{addressRepo: addressRepo}
}

// AddAddress assigns a new address id. An unknown user id surfaces as the foreign key violation.
func (s *addressService) AddAddress(ctx context.Context, address *models.Address) error {
	address.AddressID = newShortID()
	return s.addressRepo.Create(ctx, address)
}
