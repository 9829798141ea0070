package locale_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/vendas/internal/locale"
)

func TestParseDate(t *testing.T) {
	type testCase struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}

	tests := []testCase{
		{name: "Slash", input: "15/03/2024", want: time.Date(2024, 3, 15, 0, 0, 0, 0, time.Local)},
		{name: "Dash", input: "01-12-2023", want: time.Date(2023, 12, 1, 0, 0, 0, 0, time.Local)},
		{name: "LeapDay", input: "29/02/2024", want: time.Date(2024, 2, 29, 0, 0, 0, 0, time.Local)},
		{name: "RolloverFeb", input: "31/02/2024", wantErr: true},
		{name: "NotLeapYear", input: "29/02/2023", wantErr: true},
		{name: "DayZero", input: "00/01/2024", wantErr: true},
		{name: "MonthThirteen", input: "12/13/2024", wantErr: true},
		{name: "ISO", input: "2024-01-15", wantErr: true},
		{name: "SingleDigitDay", input: "1/01/2024", wantErr: true},
		{name: "TwoDigitYear", input: "01/01/24", wantErr: true},
		{name: "Empty", input: "", wantErr: true},
		{name: "TrailingText", input: "01/01/2024 10:00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := locale.ParseDate(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, locale.ErrInvalidDate)
				return
			}

			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got))
		})
	}
}

func TestParseDate_RoundTripsEveryDayOfLeapYear(t *testing.T) {
	for d := time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local); d.Year() == 2024; d = d.AddDate(0, 0, 1) {
		got, err := locale.ParseDate(d.Format("02/01/2006"))
		require.NoError(t, err, d.Format("02/01/2006"))

		assert.Equal(t, d.Day(), got.Day())
		assert.Equal(t, d.Month(), got.Month())
		assert.Equal(t, d.Year(), got.Year())
	}
}

func TestFormatISO(t *testing.T) {
	d := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-01-01T00:00:00.000Z", locale.FormatISO(d))
}

func TestParseNumber(t *testing.T) {
	type testCase struct {
		name    string
		input   any
		want    float64
		wantErr error
	}

	tests := []testCase{
		{name: "Thousands", input: "1.234,56", want: 1234.56},
		{name: "DecimalComma", input: "100,5", want: 100.5},
		{name: "Currency", input: "R$ 1.000,00", want: 1000},
		{name: "Negative", input: "-588,74", want: -588.74},
		{name: "Integer", input: "42", want: 42},
		{name: "DotIsThousands", input: "100.5", want: 1005},
		{name: "LeadingComma", input: ",5", want: 0.5},
		{name: "TrailingGarbage", input: "12,5-3", want: 12.5},
		{name: "NativeFloat", input: 100.5, want: 100.5},
		{name: "NativeInt", input: 3, want: 3},
		{name: "NativeInt8", input: int8(-8), want: -8},
		{name: "NativeInt16", input: int16(1600), want: 1600},
		{name: "NativeInt32", input: int32(32), want: 32},
		{name: "NativeInt64", input: int64(1 << 40), want: 1 << 40},
		{name: "NativeUint", input: uint(7), want: 7},
		{name: "NativeUint8", input: uint8(255), want: 255},
		{name: "NativeUint16", input: uint16(65535), want: 65535},
		{name: "NativeUint32", input: uint32(1 << 31), want: 1 << 31},
		{name: "NativeUint64", input: uint64(1 << 60), want: 1 << 60},
		{name: "NativeFloat32", input: float32(2.5), want: 2.5},
		{name: "Nil", input: nil, wantErr: locale.ErrAbsent},
		{name: "Empty", input: "", wantErr: locale.ErrAbsent},
		{name: "Blank", input: "   ", wantErr: locale.ErrAbsent},
		{name: "Letters", input: "abc", wantErr: locale.ErrInvalidNumber},
		{name: "MinusOnly", input: "-", wantErr: locale.ErrInvalidNumber},
		{name: "NaN", input: math.NaN(), wantErr: locale.ErrInvalidNumber},
		{name: "UnsupportedType", input: true, wantErr: locale.ErrInvalidNumber},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := locale.ParseNumber(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestParseDecimal(t *testing.T) {
	got, err := locale.ParseDecimal("1.234,56")
	require.NoError(t, err)
	assert.Equal(t, "1234.56", got.String())

	got, err = locale.ParseDecimal(100.5)
	require.NoError(t, err)
	assert.Equal(t, "100.5", got.String())

	got, err = locale.ParseDecimal("-,25")
	require.NoError(t, err)
	assert.Equal(t, "-0.25", got.String())

	_, err = locale.ParseDecimal(nil)
	assert.ErrorIs(t, err, locale.ErrAbsent)

	_, err = locale.ParseDecimal("x")
	assert.ErrorIs(t, err, locale.ErrInvalidNumber)
}
