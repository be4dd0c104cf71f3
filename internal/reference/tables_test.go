package reference

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/Portfolio-Statement-Analyzer/internal/apperrors"
	"github.com/ndewijer/Portfolio-Statement-Analyzer/internal/model"
)

func TestDefaults(t *testing.T) {
	tables := Defaults()

	assert.Equal(t, []string{"AAPL", "TSLA"}, tables.Symbols())
	assert.Len(t, tables.Splits(), 3)

	tsla := tables.SplitsFor("TSLA")
	require.Len(t, tsla, 2)
	assert.Equal(t, 5, tsla[0].Ratio)
	assert.Equal(t, 3, tsla[1].Ratio)

	assert.Equal(t, 74.0, tables.RateOn(day(2020, time.August, 31)))
	assert.Equal(t, 79.0, tables.RateOn(day(2022, time.August, 25).Add(13*time.Hour)))
	assert.Equal(t, 75.0, tables.RateOn(day(2021, time.January, 1)))
	assert.Equal(t, 1.0, tables.Factor(model.USD))
	assert.Equal(t, 0.85, tables.Factor(model.EUR))
	assert.Equal(t, 0.75, tables.Factor(model.GBP))
}

func TestTables_LookupRate(t *testing.T) {
	tables := Defaults()

	r, err := tables.LookupRate(day(2020, time.August, 31))
	require.NoError(t, err)
	assert.Equal(t, 74.0, r)

	_, err = tables.LookupRate(day(2020, time.September, 1))
	assert.ErrorIs(t, err, apperrors.ErrExchangeRateNotFound)
}

func TestBuilder_Build(t *testing.T) {
	t.Run("sorts splits by effective date", func(t *testing.T) {
		tables, err := NewBuilder(1).
			Split("X", day(2022, time.January, 1), 2).
			Split("X", day(2020, time.January, 1), 3).
			Factor(model.EUR, 1).
			Factor(model.GBP, 1).
			Build()
		require.NoError(t, err)

		splits := tables.SplitsFor("X")
		assert.Equal(t, 3, splits[0].Ratio)
		assert.Equal(t, 2, splits[1].Ratio)
	})

	t.Run("rejects a zero ratio", func(t *testing.T) {
		_, err := NewBuilder(1).
			Split("X", day(2022, time.January, 1), 0).
			Factor(model.EUR, 1).
			Factor(model.GBP, 1).
			Build()
		assert.ErrorIs(t, err, apperrors.ErrInvalidSplitRatio)
	})

	t.Run("rejects a non-positive default rate", func(t *testing.T) {
		_, err := NewBuilder(0).Factor(model.EUR, 1).Factor(model.GBP, 1).Build()
		assert.Error(t, err)
	})

	t.Run("requires both conversion factors", func(t *testing.T) {
		_, err := NewBuilder(1).Factor(model.EUR, 1).Build()
		assert.ErrorContains(t, err, model.GBP)
	})

	t.Run("returned slices are copies", func(t *testing.T) {
		tables := Defaults()
		tables.SplitsFor("AAPL")[0].Ratio = 100
		tables.Rates()["2020-08-31"] = 1

		assert.Equal(t, 4, tables.SplitsFor("AAPL")[0].Ratio)
		assert.Equal(t, 74.0, tables.RateOn(day(2020, time.August, 31)))
	})
}

func TestTables_Export(t *testing.T) {
	data := Defaults().Export()

	assert.Len(t, data.Splits, 3)
	assert.Equal(t, map[string]float64{"2020-08-31": 74, "2022-08-25": 79}, data.ExchangeRates)
	assert.Equal(t, 75.0, data.DefaultRate)
	assert.Equal(t, map[string]float64{model.USD: 1, model.EUR: 0.85, model.GBP: 0.75}, data.Factors)
	assert.Equal(t, model.INR, data.HomeCurrency)
}
