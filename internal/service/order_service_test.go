package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Konaisya/build-service/internal/excel"
	"github.com/Konaisya/build-service/internal/model"
	"github.com/Konaisya/build-service/internal/pdf"
	"github.com/Konaisya/build-service/internal/repository"
)

func newOrderFixture(t *testing.T) (*gorm.DB, *OrderService, *HouseService) {
	t.Helper()
	db, houses, _, _ := newHouseFixture(t)
	orders := NewOrderService(db, houses, pdf.NewGenerator(), excel.NewGenerator())
	return db, orders, houses
}

func addUser(t *testing.T, db *gorm.DB, email string) *model.User {
	t.Helper()
	user := &model.User{Name: "Customer", Role: model.RoleUser, Email: email, Password: "x"}
	_, err := repository.New[model.User](db).Add(context.Background(), user)
	require.NoError(t, err)
	return user
}

func TestApplyStatusChangeStampsDates(t *testing.T) {
	now := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	fields, house := ApplyStatusChange(model.OrderStatusPaid, now)
	require.Equal(t, now, fields["payment_date"])
	require.Nil(t, house)

	fields, house = ApplyStatusChange(model.OrderStatusSigned, now)
	require.Equal(t, now, fields["sign_off_date"])
	require.Nil(t, house)

	fields, house = ApplyStatusChange(model.OrderStatusCompleted, now)
	require.Equal(t, now, fields["completion_date"])
	require.NotNil(t, house)
	require.Equal(t, model.HouseStatusBuilt, *house)

	_, house = ApplyStatusChange(model.OrderStatusSold, now)
	require.NotNil(t, house)
	require.Equal(t, model.HouseStatusSold, *house)

	fields, house = ApplyStatusChange(model.OrderStatusCancelled, now)
	require.Nil(t, house)
	require.NotContains(t, fields, "payment_date")
	require.NotContains(t, fields, "sign_off_date")
	require.NotContains(t, fields, "completion_date")
}

func TestCreateOrderBuildsProjectHouse(t *testing.T) {
	ctx := context.Background()
	db, orders, houses := newOrderFixture(t)
	user := addUser(t, db, "a@example.com")

	order, err := orders.Create(ctx, CreateOrderInput{
		IDUser:        user.ID,
		ContractPrice: 12_500_000,
		House: &CreateHouseInput{
			Name:     "Custom cottage",
			District: "East",
			// The requested status is overridden for project houses.
			Status: model.HouseStatusForSale,
		},
	})
	require.NoError(t, err)
	require.Equal(t, model.OrderStatusPending, order.Status)
	require.False(t, order.CreateDate.IsZero())

	house, err := houses.Get(ctx, order.IDHouse)
	require.NoError(t, err)
	require.Equal(t, model.HouseStatusProject, house.Status)
	require.True(t, house.IsOrder)
}

func TestCreateOrderForExistingHouse(t *testing.T) {
	ctx := context.Background()
	db, orders, houses := newOrderFixture(t)
	user := addUser(t, db, "a@example.com")

	house, err := houses.Create(ctx, CreateHouseInput{Name: "Aurora", Status: model.HouseStatusForSale})
	require.NoError(t, err)

	order, err := orders.Create(ctx, CreateOrderInput{
		IDUser:        user.ID,
		ContractPrice: 9_000_000,
		IDHouse:       house.ID,
	})
	require.NoError(t, err)
	require.Equal(t, house.ID, order.IDHouse)
}

func TestCreateOrderMissingHouse(t *testing.T) {
	ctx := context.Background()
	db, orders, _ := newOrderFixture(t)
	user := addUser(t, db, "a@example.com")

	_, err := orders.Create(ctx, CreateOrderInput{IDUser: user.ID, IDHouse: 999})
	require.ErrorIs(t, err, ErrOrderCreation)
}

func TestUpdateOrderPaidStampsPaymentDate(t *testing.T) {
	ctx := context.Background()
	db, orders, _ := newOrderFixture(t)
	user := addUser(t, db, "a@example.com")

	order, err := orders.Create(ctx, CreateOrderInput{
		IDUser: user.ID,
		House:  &CreateHouseInput{Name: "Cottage"},
	})
	require.NoError(t, err)

	paid := model.OrderStatusPaid
	updated, err := orders.Update(ctx, order.ID, UpdateOrderInput{Status: &paid})
	require.NoError(t, err)
	require.Equal(t, model.OrderStatusPaid, updated.Status)
	require.NotNil(t, updated.PaymentDate)
	require.NotNil(t, updated.UpdateDate)
	require.Nil(t, updated.SignOffDate)

	// A later transition keeps the earlier stamp.
	signed := model.OrderStatusSigned
	updated, err = orders.Update(ctx, order.ID, UpdateOrderInput{Status: &signed})
	require.NoError(t, err)
	require.NotNil(t, updated.PaymentDate)
	require.NotNil(t, updated.SignOffDate)
}

func TestUpdateOrderCompletedMarksHouseBuilt(t *testing.T) {
	ctx := context.Background()
	db, orders, houses := newOrderFixture(t)
	user := addUser(t, db, "a@example.com")

	order, err := orders.Create(ctx, CreateOrderInput{
		IDUser: user.ID,
		House:  &CreateHouseInput{Name: "Cottage"},
	})
	require.NoError(t, err)

	completed := model.OrderStatusCompleted
	updated, err := orders.Update(ctx, order.ID, UpdateOrderInput{Status: &completed})
	require.NoError(t, err)
	require.NotNil(t, updated.CompletionDate)

	house, err := houses.Get(ctx, order.IDHouse)
	require.NoError(t, err)
	require.Equal(t, model.HouseStatusBuilt, house.Status)
}

func TestUpdateOrderSoldMarksHouseSold(t *testing.T) {
	ctx := context.Background()
	db, orders, houses := newOrderFixture(t)
	user := addUser(t, db, "a@example.com")

	house, err := houses.Create(ctx, CreateHouseInput{Name: "Aurora", Status: model.HouseStatusForSale})
	require.NoError(t, err)
	order, err := orders.Create(ctx, CreateOrderInput{IDUser: user.ID, IDHouse: house.ID})
	require.NoError(t, err)

	sold := model.OrderStatusSold
	_, err = orders.Update(ctx, order.ID, UpdateOrderInput{Status: &sold})
	require.NoError(t, err)

	got, err := houses.Get(ctx, house.ID)
	require.NoError(t, err)
	require.Equal(t, model.HouseStatusSold, got.Status)
}

func TestDeleteOrderLeavesHouseStanding(t *testing.T) {
	ctx := context.Background()
	db, orders, houses := newOrderFixture(t)
	user := addUser(t, db, "a@example.com")

	order, err := orders.Create(ctx, CreateOrderInput{
		IDUser: user.ID,
		House:  &CreateHouseInput{Name: "Cottage"},
	})
	require.NoError(t, err)

	require.NoError(t, orders.Delete(ctx, order.ID))
	require.ErrorIs(t, orders.Delete(ctx, order.ID), ErrNotFound)

	_, err = houses.Get(ctx, order.IDHouse)
	require.NoError(t, err)
}

func TestContractAndExportProduceDocuments(t *testing.T) {
	ctx := context.Background()
	db, orders, _ := newOrderFixture(t)
	user := addUser(t, db, "a@example.com")

	order, err := orders.Create(ctx, CreateOrderInput{
		IDUser:        user.ID,
		ContractPrice: 12_500_000,
		House:         &CreateHouseInput{Name: "Cottage", Address: "12 Oak St"},
	})
	require.NoError(t, err)

	contract, err := orders.Contract(ctx, order.ID)
	require.NoError(t, err)
	require.NotEmpty(t, contract.Content)
	require.Contains(t, contract.FileName, ".pdf")

	export, err := orders.Export(ctx, repository.Fields{})
	require.NoError(t, err)
	require.NotEmpty(t, export.Content)
	require.Contains(t, export.FileName, ".xlsx")
}
