package courtapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

// WireTimeLayout формат отметок времени, которые клиент отправляет в бэкенд
// (локальное время площадки без смещения)
const WireTimeLayout = "2006-01-02T15:04:05"

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент REST бэкенда площадок и бронирований
type Client struct {
	baseURL    string
	httpClient *http.Client
	location   *time.Location
	log        Logger
}

// NewClient создает клиент; location - часовой пояс площадок,
// в нём интерпретируются отметки времени без смещения
func NewClient(baseURL string, timeout time.Duration, location *time.Location, log Logger) *Client {
	if location == nil {
		location = time.UTC
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		location: location,
		log:      log,
	}
}

// GetFacility получает метаданные площадки
func (c *Client) GetFacility(ctx context.Context, facilityID int64) (*domain.Facility, error) {
	var resp Facility
	status, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/facilities/%d", facilityID), nil, &resp)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, ErrFacilityNotFound
	}

	facility := &domain.Facility{
		ID:         resp.ID,
		Name:       resp.Name,
		MinPrice:   resp.MinPrice,
		MaxPrice:   resp.MaxPrice,
		CourtCount: resp.CourtCount,
	}

	// Часы работы не критичны для сетки: некорректное значение только логируем
	if resp.OpenTime != "" {
		if facility.OpenTime, err = types.NewTimeStringFromString(resp.OpenTime); err != nil {
			c.log.Warn("courtapi: facility id=%d has invalid openTime=%q", facilityID, resp.OpenTime)
		}
	}
	if resp.CloseTime != "" {
		if facility.CloseTime, err = types.NewTimeStringFromString(resp.CloseTime); err != nil {
			c.log.Warn("courtapi: facility id=%d has invalid closeTime=%q", facilityID, resp.CloseTime)
		}
	}

	return facility, nil
}

// GetCourts получает корты площадки в порядке отображения
func (c *Client) GetCourts(ctx context.Context, facilityID int64) ([]int64, error) {
	var resp []Court
	status, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/facilities/%d/courts", facilityID), nil, &resp)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, ErrFacilityNotFound
	}

	ids := make([]int64, 0, len(resp))
	for _, court := range resp {
		ids = append(ids, court.ID)
	}
	return ids, nil
}

// GetBookedIntervals получает существующие брони всех кортов площадки на дату
// Пустые массивы и отсутствующие корты допустимы; при разной длине массивов
// пары составляются по более короткому
func (c *Client) GetBookedIntervals(ctx context.Context, facilityID int64, date time.Time) (domain.BookedIntervals, error) {
	query := url.Values{}
	query.Set("date", date.Format(domain.DateFormat))

	var resp map[string]BookedSlots
	path := fmt.Sprintf("/facilities/%d/booked-slots?%s", facilityID, query.Encode())
	status, err := c.do(ctx, http.MethodGet, path, nil, &resp)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, ErrFacilityNotFound
	}

	intervals := make(domain.BookedIntervals, len(resp))
	for key, slots := range resp {
		courtID, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad court id %q", ErrInvalidResponse, key)
		}

		n := len(slots.StartTimes)
		if len(slots.EndTimes) != n {
			c.log.Warn("courtapi: court id=%d has %d starts and %d ends, pairing the shorter",
				courtID, len(slots.StartTimes), len(slots.EndTimes))
			if len(slots.EndTimes) < n {
				n = len(slots.EndTimes)
			}
		}

		courtIntervals := make([]domain.BookedInterval, 0, n)
		for i := 0; i < n; i++ {
			start, err := c.parseTimestamp(slots.StartTimes[i])
			if err != nil {
				return nil, fmt.Errorf("%w: court id=%d start: %v", ErrInvalidResponse, courtID, err)
			}
			end, err := c.parseTimestamp(slots.EndTimes[i])
			if err != nil {
				return nil, fmt.Errorf("%w: court id=%d end: %v", ErrInvalidResponse, courtID, err)
			}
			courtIntervals = append(courtIntervals, domain.BookedInterval{Start: start, End: end})
		}
		intervals[courtID] = courtIntervals
	}

	return intervals, nil
}

// GetPrice запрашивает цену аренды корта на интервал [start, end)
func (c *Client) GetPrice(ctx context.Context, courtID int64, start, end time.Time) (int64, error) {
	req := PriceRequest{
		CourtID:   courtID,
		StartTime: []string{c.formatTimestamp(start)},
		EndTime:   []string{c.formatTimestamp(end)},
	}

	var resp PriceResponse
	status, err := c.do(ctx, http.MethodPost, "/bookings/price", req, &resp)
	if err != nil {
		return 0, err
	}
	if status == http.StatusNotFound {
		return 0, fmt.Errorf("%w: court id=%d not found", ErrInvalidResponse, courtID)
	}
	if resp.TotalPrice < 0 {
		return 0, fmt.Errorf("%w: negative price %d", ErrInvalidResponse, resp.TotalPrice)
	}

	return resp.TotalPrice, nil
}

// CreateBooking создает бронь и возвращает её ID
func (c *Client) CreateBooking(ctx context.Context, courtID int64, note string, totalPrice int64, start, end time.Time) (int64, error) {
	req := CreateBookingRequest{
		CourtID:    courtID,
		Note:       note,
		TotalPrice: totalPrice,
		StartTime:  []string{c.formatTimestamp(start)},
		EndTime:    []string{c.formatTimestamp(end)},
	}

	var resp CreateBookingResponse
	status, err := c.do(ctx, http.MethodPost, "/bookings", req, &resp)
	if err != nil {
		return 0, err
	}
	if status == http.StatusConflict {
		return 0, ErrSlotUnavailable
	}
	if status == http.StatusNotFound {
		return 0, fmt.Errorf("%w: court id=%d not found", ErrInvalidResponse, courtID)
	}
	if resp.BookingID <= 0 {
		return 0, fmt.Errorf("%w: missing booking id", ErrInvalidResponse)
	}

	return resp.BookingID, nil
}

// CapturePayment запускает оплату ранее созданной брони
func (c *Client) CapturePayment(ctx context.Context, bookingID int64) (string, error) {
	var resp PaymentResponse
	status, err := c.do(ctx, http.MethodPost, fmt.Sprintf("/bookings/%d/payment", bookingID), nil, &resp)
	if err != nil {
		return "", err
	}
	if status == http.StatusNotFound {
		return "", ErrBookingNotFound
	}

	return resp.PaymentURL, nil
}

// do выполняет запрос; 200/201 декодируются в out, 404/409 возвращаются вызывающему
// как статус без ошибки, остальные коды - ErrInvalidResponse
func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) (int, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		// Продолжаем обработку
	case http.StatusNotFound, http.StatusConflict:
		return resp.StatusCode, nil
	default:
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		var apiErr ErrorResponse
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Message != "" {
			return resp.StatusCode, fmt.Errorf("%w: %s %s: unexpected status code %d: %s (code=%d)",
				ErrInvalidResponse, method, path, resp.StatusCode, apiErr.Message, apiErr.Code)
		}
		return resp.StatusCode, fmt.Errorf("%w: %s %s: unexpected status code %d: %s",
			ErrInvalidResponse, method, path, resp.StatusCode, string(data))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
		}
	}

	return resp.StatusCode, nil
}

func (c *Client) formatTimestamp(t time.Time) string {
	return t.In(c.location).Format(WireTimeLayout)
}

// parseTimestamp принимает ISO-8601 со смещением и без него
func (c *Client) parseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	for _, layout := range []string{WireTimeLayout, "2006-01-02T15:04:05.999999999", "2006-01-02T15:04", "2006-01-02 15:04:05"} {
		if t, err := time.ParseInLocation(layout, s, c.location); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported timestamp %q", s)
}
