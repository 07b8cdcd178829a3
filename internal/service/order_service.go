package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Konaisya/build-service/internal/model"
	"github.com/Konaisya/build-service/internal/repository"
)

type ContractGenerator interface {
	Generate(doc model.ContractDocument) ([]byte, error)
}

type ReportGenerator interface {
	Generate(report model.OrdersReport) ([]byte, error)
}

type OrderService struct {
	db     *gorm.DB
	orders *repository.Repository[model.Order]
	users  *repository.Repository[model.User]
	houses *HouseService
	pdf    ContractGenerator
	excel  ReportGenerator
}

func NewOrderService(db *gorm.DB, houses *HouseService, pdf ContractGenerator, excel ReportGenerator) *OrderService {
	return &OrderService{
		db:     db,
		orders: repository.New[model.Order](db),
		users:  repository.New[model.User](db),
		houses: houses,
		pdf:    pdf,
		excel:  excel,
	}
}

type CreateOrderInput struct {
	IDUser        int64
	ContractPrice float64
	// House describes the project house to build for this order. When nil,
	// IDHouse must reference an existing house (pre-built purchase).
	House   *CreateHouseInput
	IDHouse int64
}

type UpdateOrderInput struct {
	Status        *model.OrderStatus
	ContractPrice *float64
}

// ApplyStatusChange is the pure transition function: given the requested
// status and the current date it returns the stamped order fields and the
// house status side effect, if any. Date fields are only ever set, never
// cleared, so stamps survive later transitions.
func ApplyStatusChange(status model.OrderStatus, now time.Time) (repository.Fields, *model.HouseStatus) {
	fields := repository.Fields{"status": status}
	switch status {
	case model.OrderStatusPaid:
		fields["payment_date"] = now
	case model.OrderStatusSigned:
		fields["sign_off_date"] = now
	case model.OrderStatusCompleted:
		fields["completion_date"] = now
		built := model.HouseStatusBuilt
		return fields, &built
	case model.OrderStatusSold:
		sold := model.HouseStatusSold
		return fields, &sold
	}
	return fields, nil
}

// Create inserts the order, creating its project house first when one is
// supplied. House and order land in the same transaction.
func (s *OrderService) Create(ctx context.Context, input CreateOrderInput) (*model.Order, error) {
	var order *model.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		houseID := input.IDHouse
		if input.House != nil {
			houseInput := *input.House
			houseInput.Status = model.HouseStatusProject
			houseInput.IsOrder = true
			house, err := s.houses.createTx(ctx, tx, houseInput)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrOrderCreation, err)
			}
			houseID = house.ID
		} else {
			if _, err := s.houses.houses.WithTx(tx).GetByID(ctx, houseID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: house %d does not exist", ErrOrderCreation, houseID)
				}
				return err
			}
		}

		order = &model.Order{
			IDUser:        input.IDUser,
			IDHouse:       houseID,
			Status:        model.OrderStatusPending,
			ContractPrice: input.ContractPrice,
			CreateDate:    dateOnly(time.Now()),
		}
		if _, err := s.orders.WithTx(tx).Add(ctx, order); err != nil {
			return fmt.Errorf("%w: %v", ErrOrderCreation, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (s *OrderService) Update(ctx context.Context, id int64, input UpdateOrderInput) (*model.Order, error) {
	var updated *model.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		orders := s.orders.WithTx(tx)
		order, err := orders.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		now := dateOnly(time.Now())
		fields := repository.Fields{"update_date": now}
		if input.ContractPrice != nil {
			fields["contract_price"] = *input.ContractPrice
		}

		var houseStatus *model.HouseStatus
		if input.Status != nil {
			stamped, side := ApplyStatusChange(*input.Status, now)
			for key, value := range stamped {
				fields[key] = value
			}
			houseStatus = side
		}

		row, err := orders.Update(ctx, id, fields)
		if err != nil {
			return err
		}
		if houseStatus != nil {
			_, err := s.houses.houses.WithTx(tx).Update(ctx, order.IDHouse, repository.Fields{"status": *houseStatus})
			if err != nil {
				return err
			}
		}
		updated = row
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the order row only; the house is left standing.
func (s *OrderService) Delete(ctx context.Context, id int64) error {
	if _, err := s.orders.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.orders.Delete(ctx, id)
}

func (s *OrderService) List(ctx context.Context, filter repository.Fields) ([]model.Order, error) {
	orders, err := s.orders.GetAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		if err := s.resolve(ctx, &orders[i]); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (s *OrderService) Get(ctx context.Context, id int64) (*model.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := s.resolve(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *OrderService) resolve(ctx context.Context, order *model.Order) error {
	user, err := s.users.GetByID(ctx, order.IDUser)
	if err == nil {
		order.User = user
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	house, err := s.houses.Get(ctx, order.IDHouse)
	if err == nil {
		order.House = house
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}
	return nil
}

type DocumentResult struct {
	FileName string
	Content  []byte
}

// Contract renders the construction contract PDF for an order.
func (s *OrderService) Contract(ctx context.Context, id int64) (*DocumentResult, error) {
	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.User == nil || order.House == nil {
		return nil, fmt.Errorf("%w: order %d is missing user or house", ErrNotFound, id)
	}
	content, err := s.pdf.Generate(model.ContractDocument{
		Order: *order,
		User:  *order.User,
		House: *order.House,
	})
	if err != nil {
		return nil, err
	}
	return &DocumentResult{
		FileName: fmt.Sprintf("contract-%d-%s.pdf", order.ID, order.CreateDate.Format("20060102")),
		Content:  content,
	}, nil
}

// Export renders the orders overview spreadsheet.
func (s *OrderService) Export(ctx context.Context, filter repository.Fields) (*DocumentResult, error) {
	orders, err := s.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	content, err := s.excel.Generate(model.OrdersReport{
		GeneratedAt: now,
		Orders:      orders,
	})
	if err != nil {
		return nil, err
	}
	return &DocumentResult{
		FileName: fmt.Sprintf("orders-%s.xlsx", now.Format("20060102")),
		Content:  content,
	}, nil
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
