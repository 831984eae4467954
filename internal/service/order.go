package service

import (
	"context"

	"github.com/SilasJCSP/delivery-tech-fat/internal/domain"
	"github.com/SilasJCSP/delivery-tech-fat/internal/repo"
	"github.com/SilasJCSP/delivery-tech-fat/internal/validate"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type OrderItemInput struct {
	ProductID primitive.ObjectID
	Quantity  int
}

type OrderInput struct {
	CustomerID   primitive.ObjectID
	RestaurantID primitive.ObjectID
	Items        []OrderItemInput
}

type OrderService struct {
	orders      repo.OrderRepository
	customers   repo.CustomerRepository
	restaurants repo.RestaurantRepository
	products    repo.ProductRepository
	logger      *zap.SugaredLogger
}

func NewOrderService(
	orders repo.OrderRepository,
	customers repo.CustomerRepository,
	restaurants repo.RestaurantRepository,
	products repo.ProductRepository,
	logger *zap.SugaredLogger,
) *OrderService {
	return &OrderService{
		orders:      orders,
		customers:   customers,
		restaurants: restaurants,
		products:    products,
		logger:      logger,
	}
}

func (s *OrderService) Create(ctx context.Context, input OrderInput) (*domain.Order, error) {
	if len(input.Items) == 0 {
		return nil, domain.NewValidationError("items", "O pedido deve ter pelo menos um item")
	}

	customer, err := s.customers.GetByID(ctx, input.CustomerID)
	if err != nil {
		return nil, err
	}
	if !customer.Active {
		return nil, domain.NewValidationError("customer_id", "Cliente inativo não pode fazer pedidos")
	}

	restaurant, err := s.restaurants.GetByID(ctx, input.RestaurantID)
	if err != nil {
		return nil, err
	}
	if !restaurant.Active {
		return nil, domain.NewValidationError("restaurant_id", "Restaurante inativo não pode receber pedidos")
	}

	items := make([]domain.OrderItem, 0, len(input.Items))
	for _, in := range input.Items {
		item, err := s.buildItem(ctx, input.RestaurantID, in)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}

	order := &domain.Order{
		CustomerID:   input.CustomerID,
		RestaurantID: input.RestaurantID,
		Status:       domain.OrderPending,
		Items:        items,
		Total:        domain.OrderTotal(items),
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Infow("order created",
		"order_id", order.ID.Hex(),
		"customer_id", order.CustomerID.Hex(),
		"total", order.Total.String(),
	)

	return order, nil
}

// buildItem resolves the product and snapshots its current price onto the
// item. Subtotal is always derived here, never taken from the caller.
func (s *OrderService) buildItem(ctx context.Context, restaurantID primitive.ObjectID, in OrderItemInput) (*domain.OrderItem, error) {
	if err := validate.ItemQuantity(in.Quantity); err != nil {
		return nil, err
	}

	product, err := s.products.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product.RestaurantID != restaurantID {
		return nil, domain.NewValidationError("product_id", "O produto não pertence ao restaurante do pedido")
	}
	if !product.Available {
		return nil, domain.NewValidationError("product_id", "Produto indisponível")
	}

	item := &domain.OrderItem{
		ProductID:   product.ID,
		ProductName: product.Name,
		Quantity:    in.Quantity,
		UnitPrice:   product.Price,
	}
	item.Subtotal = domain.ItemSubtotal(item.UnitPrice, item.Quantity)

	return item, nil
}

func (s *OrderService) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Order, error) {
	return s.orders.GetByID(ctx, id)
}

func (s *OrderService) ListByCustomer(ctx context.Context, customerID primitive.ObjectID) ([]domain.Order, error) {
	return s.orders.ListByCustomer(ctx, customerID)
}

// AddItem appends a line item to a pending order, snapshotting the product
// price at add time.
func (s *OrderService) AddItem(ctx context.Context, orderID primitive.ObjectID, in OrderItemInput) (*domain.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != domain.OrderPending {
		return nil, domain.NewValidationError("status", "Itens só podem ser adicionados a pedidos pendentes")
	}

	item, err := s.buildItem(ctx, order.RestaurantID, in)
	if err != nil {
		return nil, err
	}

	order.Items = append(order.Items, *item)
	order.Total = domain.OrderTotal(order.Items)

	if err := s.orders.Update(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Infow("order item added", "order_id", order.ID.Hex(), "product_id", in.ProductID.Hex())

	return order, nil
}

func (s *OrderService) UpdateStatus(ctx context.Context, orderID primitive.ObjectID, next domain.OrderStatus) (*domain.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !order.Status.CanTransitionTo(next) {
		return nil, domain.NewValidationError("status", "Transição de status inválida")
	}

	order.Status = next

	if err := s.orders.Update(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Infow("order status updated", "order_id", order.ID.Hex(), "status", order.Status)

	return order, nil
}
