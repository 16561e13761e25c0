package price_test

import (
	"testing"

	"github.com/fwojciec/pricewatch"
	pwgoquery "github.com/fwojciec/pricewatch/goquery"
	"github.com/fwojciec/pricewatch/price"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Compile-time interface verification.
var _ pricewatch.PriceResolver = (*price.Resolver)(nil)

func elementByID(t *testing.T, html, id string) pricewatch.Element {
	t.Helper()
	doc, err := pwgoquery.NewParser().Parse([]byte(html))
	require.NoError(t, err)
	els := doc.FindByID(id)
	require.Len(t, els, 1)
	return els[0]
}

func TestResolver_Resolve_USD(t *testing.T) {
	t.Parallel()

	r := price.NewResolver()

	t.Run("parses the dollar-adjacent token", func(t *testing.T) {
		t.Parallel()

		el := elementByID(t, `<div id="x">Now only $49.99 today</div>`, "x")
		token, err := r.Resolve(el, pricewatch.CurrencyUSD)
		require.NoError(t, err)
		require.NotNil(t, token)
		assert.Equal(t, 49.99, token.Value)
		assert.Equal(t, "$49.99", token.Raw)
		assert.Equal(t, pricewatch.CurrencyUSD, token.Currency)
	})

	t.Run("strips thousands separators", func(t *testing.T) {
		t.Parallel()

		el := elementByID(t, `<div id="x">was $1,299.00 yesterday</div>`, "x")
		token, err := r.Resolve(el, pricewatch.CurrencyUSD)
		require.NoError(t, err)
		require.NotNil(t, token)
		assert.Equal(t, 1299.00, token.Value)
	})

	t.Run("ignores numbers not adjacent to the glyph", func(t *testing.T) {
		t.Parallel()

		el := elementByID(t, `<div id="x">save 20 percent on $15.00 orders</div>`, "x")
		token, err := r.Resolve(el, pricewatch.CurrencyUSD)
		require.NoError(t, err)
		require.NotNil(t, token)
		assert.Equal(t, 15.00, token.Value)
	})

	t.Run("returns nil token when no dollar-adjacent number exists", func(t *testing.T) {
		t.Parallel()

		el := elementByID(t, `<div id="x">price on request</div>`, "x")
		token, err := r.Resolve(el, pricewatch.CurrencyUSD)
		require.NoError(t, err)
		assert.Nil(t, token)
	})

	t.Run("skips negative parses", func(t *testing.T) {
		t.Parallel()

		el := elementByID(t, `<div id="x">adjustment $-5.00 applied</div>`, "x")
		token, err := r.Resolve(el, pricewatch.CurrencyUSD)
		require.NoError(t, err)
		assert.Nil(t, token)
	})

	t.Run("zero is a legitimate price", func(t *testing.T) {
		t.Parallel()

		el := elementByID(t, `<div id="x">yours for $0 today</div>`, "x")
		token, err := r.Resolve(el, pricewatch.CurrencyUSD)
		require.NoError(t, err)
		require.NotNil(t, token)
		assert.Equal(t, 0.0, token.Value)
	})
}

func TestResolver_Resolve_Yen(t *testing.T) {
	t.Parallel()

	r := price.NewResolver()

	t.Run("parses the figure span before the glyph", func(t *testing.T) {
		t.Parallel()

		el := elementByID(t, `
			<div id="x">
				<span class="label">価格</span>
				<span class="price figure">1,980円</span>
			</div>`, "x")
		token, err := r.Resolve(el, pricewatch.CurrencyYen)
		require.NoError(t, err)
		require.NotNil(t, token)
		assert.Equal(t, 1980.0, token.Value)
		assert.Equal(t, pricewatch.CurrencyYen, token.Currency)
	})

	t.Run("finds the figure span in nested markup", func(t *testing.T) {
		t.Parallel()

		el := elementByID(t, `
			<div id="x"><p><em><span class="figure">12,800円</span></em></p></div>`, "x")
		token, err := r.Resolve(el, pricewatch.CurrencyYen)
		require.NoError(t, err)
		require.NotNil(t, token)
		assert.Equal(t, 12800.0, token.Value)
	})

	t.Run("returns nil token without a figure span", func(t *testing.T) {
		t.Parallel()

		el := elementByID(t, `<div id="x"><span class="price">1,980円</span></div>`, "x")
		token, err := r.Resolve(el, pricewatch.CurrencyYen)
		require.NoError(t, err)
		assert.Nil(t, token)
	})

	t.Run("returns nil token when the figure span is not numeric", func(t *testing.T) {
		t.Parallel()

		el := elementByID(t, `<div id="x"><span class="figure">在庫なし</span></div>`, "x")
		token, err := r.Resolve(el, pricewatch.CurrencyYen)
		require.NoError(t, err)
		assert.Nil(t, token)
	})
}

func TestResolver_Resolve_UnsupportedCurrency(t *testing.T) {
	t.Parallel()

	r := price.NewResolver()
	el := elementByID(t, `<div id="x">$5</div>`, "x")

	_, err := r.Resolve(el, pricewatch.CurrencyUnknown)
	require.Error(t, err)
	assert.Equal(t, pricewatch.EINVALID, pricewatch.ErrorCode(err))

	_, err = r.Resolve(el, pricewatch.Currency("eur"))
	require.Error(t, err)
	assert.Equal(t, pricewatch.EINVALID, pricewatch.ErrorCode(err))
}
