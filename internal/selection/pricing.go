package selection

import (
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

// PriceState цена текущего выбора
type PriceState = domain.PriceState

// PriceRequest параметры запроса цены для внешнего сервиса
type PriceRequest struct {
	Token   uint64
	CourtID int64
	Start   time.Time
	End     time.Time
}

func (c *Controller) invalidatePrice() {
	c.price = PriceState{Token: c.price.Token + 1}
}

// BeginPricing выдает новый запрос цены, если выбор это позволяет
func (c *Controller) BeginPricing(date time.Time) (PriceRequest, bool) {
	if !c.CanPrice() {
		return PriceRequest{}, false
	}

	start, end, _ := c.Window(date)
	c.price = PriceState{Token: c.price.Token + 1, Pending: true}

	return PriceRequest{
		Token:   c.price.Token,
		CourtID: c.courtID,
		Start:   start,
		End:     end,
	}, true
}

// ApplyPrice применяет ответ; устаревший ответ отбрасывается (false)
func (c *Controller) ApplyPrice(token uint64, amount int64) bool {
	if token != c.price.Token || !c.price.Pending {
		return false
	}
	c.price = PriceState{Token: token, Priced: true, Amount: amount}
	return true
}

// FailPricing сбрасывает цену в "ещё не оценено" после ошибки запроса
func (c *Controller) FailPricing(token uint64) bool {
	if token != c.price.Token || !c.price.Pending {
		return false
	}
	c.price = PriceState{Token: token}
	return true
}

// Price текущая цена; ok=false пока выбор не оценён
func (c *Controller) Price() (amount int64, ok bool) {
	return c.price.Amount, c.price.Priced
}

// PricePending запрос цены в полёте
func (c *Controller) PricePending() bool {
	return c.price.Pending
}
