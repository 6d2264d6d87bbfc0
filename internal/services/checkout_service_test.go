package services_test

import (
	"context"
	"strings"
	"testing"

	"molove/internal/cartstore"
	"molove/internal/checkout"
	"molove/internal/models"
	"molove/internal/repositories"
	"molove/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockPublisher is a mock EventPublisher.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(exchange, routingKey string, body []byte) error {
	args := m.Called(exchange, routingKey, body)
	return args.Error(0)
}

func checkoutFixture(t *testing.T, sale *models.ActiveSale) (*services.CheckoutService, *services.CartService, cartstore.Store, *repositories.MemoryOrderRepository, *MockPublisher) {
	t.Helper()

	store := cartstore.NewMemoryStore()
	carts := services.NewCartService(store)
	orders := repositories.NewMemoryOrderRepository()
	promo := repositories.NewMemoryPromoRepository()
	if sale != nil {
		assert.NoError(t, promo.Save(sale))
	}
	publisher := new(MockPublisher)

	cfg := checkout.Config{TelegramUsername: "molovestore", WhatsAppPhone: "79123456789"}
	svc := services.NewCheckoutService(carts, orders, promo, store, cfg, publisher)
	return svc, carts, store, orders, publisher
}

func TestCheckout_EmptyCart(t *testing.T) {
	svc, _, _, _, _ := checkoutFixture(t, nil)

	_, err := svc.Checkout(context.Background(), "dev-1", checkout.ChannelTelegram)
	assert.ErrorIs(t, err, services.ErrEmptyCart)
}

func TestCheckout_UnknownChannel(t *testing.T) {
	svc, carts, _, _, _ := checkoutFixture(t, nil)
	ctx := context.Background()
	_, err := carts.Add(ctx, "dev-1", dressProduct(), "M", 1)
	assert.NoError(t, err)

	_, err = svc.Checkout(ctx, "dev-1", checkout.Channel("sms"))
	assert.ErrorIs(t, err, services.ErrUnknownChannel)

	// Rejection leaves the cart untouched.
	assert.Len(t, carts.Get(ctx, "dev-1").Items, 1)
}

func TestCheckout_SaleAppliedToTotal(t *testing.T) {
	sale := &models.ActiveSale{Active: true, Discount: 10, Title: "Распродажа"}
	svc, carts, _, _, publisher := checkoutFixture(t, sale)
	publisher.On("Publish", "shop", "order.created", mock.Anything).Return(nil).Once()

	ctx := context.Background()
	_, err := carts.Add(ctx, "dev-1", dressProduct(), "M", 2)
	assert.NoError(t, err)

	// {price 1000, discount 0, qty 2} with active 10% sale: unit 900, total 1800.
	result, err := svc.Checkout(ctx, "dev-1", checkout.ChannelTelegram)
	assert.NoError(t, err)
	assert.Equal(t, 900, result.Order.Items[0].Price)
	assert.Equal(t, 1800, result.Order.Total)
	assert.Equal(t, models.OrderStatusPending, result.Order.Status)
	assert.True(t, strings.HasPrefix(result.URL, "https://t.me/molovestore?text="))
	publisher.AssertExpectations(t)
}

func TestCheckout_BothChannelsClearCartAndRecordHistory(t *testing.T) {
	for _, channel := range []checkout.Channel{checkout.ChannelTelegram, checkout.ChannelWhatsApp} {
		t.Run(string(channel), func(t *testing.T) {
			svc, carts, store, orders, publisher := checkoutFixture(t, nil)
			publisher.On("Publish", "shop", "order.created", mock.Anything).Return(nil).Once()

			ctx := context.Background()
			_, err := carts.Add(ctx, "dev-1", dressProduct(), "S", 1)
			assert.NoError(t, err)

			result, err := svc.Checkout(ctx, "dev-1", channel)
			assert.NoError(t, err)
			assert.NotEmpty(t, result.URL)

			// Cart is cleared regardless of channel.
			assert.Empty(t, carts.Get(ctx, "dev-1").Items)

			// History and the orders table both hold the snapshot.
			history, err := store.Orders(ctx, "dev-1")
			assert.NoError(t, err)
			assert.Len(t, history, 1)
			assert.Equal(t, result.Order.ID, history[0].ID)

			recorded, err := orders.GetAll()
			assert.NoError(t, err)
			assert.Len(t, recorded, 1)
			publisher.AssertExpectations(t)
		})
	}
}

func TestCheckout_HistoryNewestFirst(t *testing.T) {
	svc, carts, _, _, publisher := checkoutFixture(t, nil)
	publisher.On("Publish", "shop", "order.created", mock.Anything).Return(nil).Twice()

	ctx := context.Background()
	_, err := carts.Add(ctx, "dev-1", dressProduct(), "S", 1)
	assert.NoError(t, err)
	first, err := svc.Checkout(ctx, "dev-1", checkout.ChannelTelegram)
	assert.NoError(t, err)

	_, err = carts.Add(ctx, "dev-1", dressProduct(), "M", 1)
	assert.NoError(t, err)
	second, err := svc.Checkout(ctx, "dev-1", checkout.ChannelWhatsApp)
	assert.NoError(t, err)

	history, err := svc.History(ctx, "dev-1")
	assert.NoError(t, err)
	assert.Len(t, history, 2)
	assert.Equal(t, second.Order.ID, history[0].ID)
	assert.Equal(t, first.Order.ID, history[1].ID)
}

func TestCheckout_PublishFailureDoesNotFailHandoff(t *testing.T) {
	svc, carts, _, _, publisher := checkoutFixture(t, nil)
	publisher.On("Publish", "shop", "order.created", mock.Anything).
		Return(assert.AnError).Once()

	ctx := context.Background()
	_, err := carts.Add(ctx, "dev-1", dressProduct(), "S", 1)
	assert.NoError(t, err)

	result, err := svc.Checkout(ctx, "dev-1", checkout.ChannelTelegram)
	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Empty(t, carts.Get(ctx, "dev-1").Items)
}
