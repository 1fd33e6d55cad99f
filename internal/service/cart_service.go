package service

import (
	"github.com/lepanier/lepanier-api/internal/models"
	"github.com/lepanier/lepanier-api/internal/repository"

	"github.com/shopspring/decimal"
)

// CartService manages the per-user shopping cart.
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

// NewCartService builds the cart service.
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// CartView is the cart with its computed total.
type CartView struct {
	Items []models.CartItem `json:"items"`
	Total models.Money      `json:"total"`
}

// Get returns the user's cart and total.
func (s *CartService) Get(userID uint) (*CartView, error) {
	items, err := s.cartRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	total := decimal.Zero
	for _, line := range items {
		if line.Product == nil {
			continue
		}
		total = total.Add(line.Product.PriceAmount.Decimal.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return &CartView{
		Items: items,
		Total: models.NewMoneyFromDecimal(total),
	}, nil
}

// SetItem puts a product line into the cart; quantity zero removes it.
func (s *CartService) SetItem(userID, productID uint, quantity int) error {
	if quantity < 0 {
		return ErrQuantityInvalid
	}
	if quantity == 0 {
		return s.cartRepo.DeleteByUserAndProduct(userID, productID)
	}

	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return err
	}
	if product == nil || !product.IsActive {
		return ErrProductNotFound
	}

	return s.cartRepo.Upsert(&models.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	})
}

// RemoveItem deletes one product line.
func (s *CartService) RemoveItem(userID, productID uint) error {
	return s.cartRepo.DeleteByUserAndProduct(userID, productID)
}

// Clear empties the cart.
func (s *CartService) Clear(userID uint) error {
	return s.cartRepo.ClearByUser(userID)
}
