package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "hh:mm", input: "05:30", want: "05:30"},
		{name: "hh:mm:ss from facility hours", input: "23:30:00", want: "23:30"},
		{name: "surrounding spaces", input: " 10:00 ", want: "10:00"},
		{name: "garbage", input: "ten", wantErr: true},
		{name: "out of range hour", input: "25:00", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	ts := MustTimeString("23:00")

	next, err := ts.AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, "23:30", next.String())

	_, err = ts.AddMinutes(60)
	assert.ErrorIs(t, err, ErrTimeOverflow)
}

func TestTimeString_Compare(t *testing.T) {
	a := MustTimeString("08:00")
	b := MustTimeString("08:30")

	assert.True(t, a.IsBefore(b))
	assert.False(t, b.IsBefore(a))
	assert.True(t, b.IsAfter(a))
	assert.False(t, a.IsAfter(a))
}

func TestTimeString_On(t *testing.T) {
	loc := time.FixedZone("ICT", 7*60*60)
	date := time.Date(2025, 1, 1, 17, 45, 12, 0, loc)

	got := MustTimeString("10:30").On(date)

	assert.Equal(t, time.Date(2025, 1, 1, 10, 30, 0, 0, loc), got)
}

func TestTimeString_JSON(t *testing.T) {
	payload := struct {
		Slot TimeString `json:"slot"`
	}{Slot: MustTimeString("06:00")}

	data, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"slot":"06:00"}`, string(data))

	var decoded struct {
		Slot TimeString `json:"slot"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"slot":"21:30"}`), &decoded))
	assert.Equal(t, "21:30", decoded.Slot.String())
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("07:30:00"))
	assert.Equal(t, "07:30", ts.String())

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}
