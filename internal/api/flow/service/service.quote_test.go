package flowsvc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeOnlineQuote(t *testing.T) {
	t.Run("ten percent service fee", func(t *testing.T) {
		q := ComputeOnlineQuote(850, "")
		assert.Equal(t, 850.0, q.Goods)
		assert.Equal(t, 85.0, q.ServiceFee)
		assert.Equal(t, 935.0, q.Payable)
		assert.Equal(t, 0.0, q.DeliveryFee)
	})

	t.Run("delivery fee attached but not folded in", func(t *testing.T) {
		q := ComputeOnlineQuote(850, "Gweru")
		assert.Equal(t, 935.0, q.Payable)
		assert.Equal(t, 180.0, q.DeliveryFee)
		assert.Equal(t, "Gweru", q.Town)
	})

	t.Run("unknown town gets default fee", func(t *testing.T) {
		q := ComputeOnlineQuote(100, "Kadoma")
		assert.Equal(t, 250.0, q.DeliveryFee)
	})

	t.Run("half-up rounding at two decimals", func(t *testing.T) {
		q := ComputeOnlineQuote(99.99, "")
		assert.Equal(t, 10.0, q.ServiceFee)
		assert.Equal(t, 109.99, q.Payable)
	})
}

func TestComputeAssistedEstimate(t *testing.T) {
	e := ComputeAssistedEstimate(600)
	assert.Equal(t, 600.0, e.Budget)
	assert.Equal(t, 120.0, e.ServiceFee)
	assert.Equal(t, 720.0, e.Total)
}

func TestFormatRand(t *testing.T) {
	assert.Equal(t, "R935.00", FormatRand(935))
	assert.Equal(t, "R85.50", FormatRand(85.5))
}

func TestDeliveryInfo(t *testing.T) {
	assert.Equal(t, 150.0, DeliveryFee("harare"))
	assert.Equal(t, 150.0, DeliveryFee("Harare"))
	assert.Equal(t, 250.0, DeliveryFee("nowhere"))
	assert.NotEmpty(t, DeliveryTimeline("Harare"))
	assert.NotEmpty(t, DeliveryTimeline("nowhere"))
}
