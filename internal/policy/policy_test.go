package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hagglekit/strategy-engine/internal/domain"
)

func f64(v float64) *float64 {
	return &v
}

// baseContext is a standard negotiation baseline; tests override what matters.
func baseContext() domain.NegotiationContext {
	return domain.NegotiationContext{
		FloorPrice:   42000,
		ListedPrice:  50000,
		CurrentOffer: 45000,
		Sentiment:    domain.SentimentUnknown,
		SessionID:    "sess_test_fixture",
	}
}

func TestFloorAccept(t *testing.T) {
	p := NewRulePolicy(DefaultConfig())

	t.Run("Offer Above Floor", func(t *testing.T) {
		nc := baseContext()
		nc.CurrentOffer = 43000

		d := p.Decide(nc)

		assert.Equal(t, domain.ActionAccept, d.Action)
		assert.Equal(t, KeyAcceptFinal, d.ResponseKey)
		require.NotNil(t, d.CounterPrice)
		assert.Equal(t, 43000.0, *d.CounterPrice)
		assert.Equal(t, "offer_gte_floor", d.Metadata["rule"])
	})

	t.Run("Offer Equals Floor", func(t *testing.T) {
		nc := baseContext()
		nc.CurrentOffer = 42000

		d := p.Decide(nc)

		assert.Equal(t, domain.ActionAccept, d.Action)
		assert.Equal(t, KeyAcceptFinal, d.ResponseKey)
		require.NotNil(t, d.CounterPrice)
		assert.Equal(t, 42000.0, *d.CounterPrice)
	})

	t.Run("Holds Regardless Of Sentiment And History", func(t *testing.T) {
		sentiments := []domain.Sentiment{
			domain.SentimentPositive, domain.SentimentNeutral,
			domain.SentimentNegative, domain.SentimentUnknown,
		}
		for _, sent := range sentiments {
			nc := baseContext()
			nc.CurrentOffer = 44500
			nc.Sentiment = sent
			nc.History = []domain.Turn{
				{Role: "user", Price: f64(41000)},
				{Role: "bot", Price: f64(47000)},
			}

			d := p.Decide(nc)

			assert.Equal(t, domain.ActionAccept, d.Action, "sentiment %s", sent)
			require.NotNil(t, d.CounterPrice)
			assert.Equal(t, 44500.0, *d.CounterPrice)
		}
	})
}

func TestSentimentReliefAccept(t *testing.T) {
	p := NewRulePolicy(DefaultConfig())

	t.Run("Negative Sentiment Near Floor", func(t *testing.T) {
		nc := baseContext()
		nc.CurrentOffer = 40000 // >= 42000 * 0.95 = 39900, below floor
		nc.Sentiment = domain.SentimentNegative

		d := p.Decide(nc)

		assert.Equal(t, domain.ActionAccept, d.Action)
		assert.Equal(t, KeyAcceptSentimentClose, d.ResponseKey)
		require.NotNil(t, d.CounterPrice)
		assert.Equal(t, 40000.0, *d.CounterPrice)
		assert.Equal(t, "sentiment_accept_on_negative", d.Metadata["rule"])
		assert.InDelta(t, 39900.0, d.Metadata["threshold_value"], 0.01)
	})

	t.Run("Same Offer Without Negative Sentiment Counters", func(t *testing.T) {
		nc := baseContext()
		nc.CurrentOffer = 40000
		nc.Sentiment = domain.SentimentNeutral

		d := p.Decide(nc)

		assert.Equal(t, domain.ActionCounter, d.Action)
		assert.Equal(t, KeyStandardCounter, d.ResponseKey)
	})

	t.Run("Negative Sentiment Below Relief Threshold", func(t *testing.T) {
		nc := baseContext()
		nc.CurrentOffer = 39000 // < 39900
		nc.Sentiment = domain.SentimentNegative

		d := p.Decide(nc)

		assert.Equal(t, domain.ActionCounter, d.Action)
	})
}

func TestLowballReject(t *testing.T) {
	p := NewRulePolicy(DefaultConfig())

	t.Run("Lowball Offer", func(t *testing.T) {
		nc := baseContext()
		nc.CurrentOffer = 25000 // < 42000 * 0.70 = 29400

		d := p.Decide(nc)

		assert.Equal(t, domain.ActionReject, d.Action)
		assert.Equal(t, KeyRejectLowball, d.ResponseKey)
		assert.Nil(t, d.CounterPrice)
		assert.Equal(t, "offer_lt_lowball_threshold", d.Metadata["rule"])
	})

	t.Run("Just Below Threshold", func(t *testing.T) {
		nc := baseContext()
		nc.CurrentOffer = 29399.99

		d := p.Decide(nc)

		assert.Equal(t, domain.ActionReject, d.Action)
		assert.Nil(t, d.CounterPrice)
	})

	t.Run("Exactly At Threshold Counters", func(t *testing.T) {
		nc := baseContext()
		nc.CurrentOffer = 29400

		d := p.Decide(nc)

		assert.Equal(t, domain.ActionCounter, d.Action)
	})
}

func TestFirstTurnCounter(t *testing.T) {
	p := NewRulePolicy(DefaultConfig())

	nc := baseContext()
	nc.CurrentOffer = 40000
	nc.History = nil

	d := p.Decide(nc)

	// anchor = listed 50000, gap 10000, standard factor 0.5
	assert.Equal(t, domain.ActionCounter, d.Action)
	assert.Equal(t, KeyStandardCounter, d.ResponseKey)
	require.NotNil(t, d.CounterPrice)
	assert.Equal(t, 45000.0, *d.CounterPrice)
	assert.Equal(t, 50000.0, d.Metadata["anchor"])
	assert.Equal(t, 1, d.Metadata["offer_count"])
}

func TestHistoryAwareCounter(t *testing.T) {
	p := NewRulePolicy(DefaultConfig())

	nc := baseContext()
	nc.FloorPrice = 40000
	nc.CurrentOffer = 38000
	nc.History = []domain.Turn{
		{Role: "user", Price: f64(36000)},
		{Role: "bot", Price: f64(48000)},
	}

	d := p.Decide(nc)

	// anchor = 48000, gap 10000, standard factor 0.5 -> 43000
	assert.Equal(t, domain.ActionCounter, d.Action)
	require.NotNil(t, d.CounterPrice)
	assert.Equal(t, 43000.0, *d.CounterPrice)
	assert.LessOrEqual(t, *d.CounterPrice, 48000.0)
	assert.Equal(t, 48000.0, d.Metadata["anchor"])
}

func TestFatigueFinalOffer(t *testing.T) {
	p := NewRulePolicy(DefaultConfig())

	nc := baseContext()
	nc.CurrentOffer = 40000
	nc.History = []domain.Turn{
		{Role: "user", Price: f64(35000)},
		{Role: "bot", Price: f64(46000)},
		{Role: "user", Price: f64(36000)},
		{Role: "bot", Price: f64(45000)},
		{Role: "user", Price: f64(37000)},
		{Role: "bot", Price: f64(44000)},
		{Role: "user", Price: f64(38000)},
	}

	d := p.Decide(nc)

	// 4 prior counterparty turns + the current offer = 5 >= threshold 3.
	// anchor 44000, gap 4000, final factor 0.75 -> raw 41000, clamped to floor.
	assert.Equal(t, domain.ActionCounter, d.Action)
	assert.Equal(t, KeyFinalOfferCounter, d.ResponseKey)
	require.NotNil(t, d.CounterPrice)
	assert.Equal(t, 42000.0, *d.CounterPrice)
	assert.Equal(t, 5, d.Metadata["offer_count"])
	assert.Contains(t, d.Metadata["clamps_applied"], "floor")
}

func TestCounterInvariants(t *testing.T) {
	p := NewRulePolicy(DefaultConfig())

	histories := [][]domain.Turn{
		nil,
		{{Role: "user", Price: f64(33000)}, {Role: "bot", Price: f64(47000)}},
		{{Role: "user", Price: f64(30000)}, {Role: "bot", Price: f64(45000)}, {Role: "user", Price: f64(34000)}, {Role: "bot", Price: f64(43500)}},
	}

	for _, history := range histories {
		for offer := 29400.0; offer < 42000.0; offer += 700 {
			nc := baseContext()
			nc.CurrentOffer = offer
			nc.History = history

			d := p.Decide(nc)
			require.Equal(t, domain.ActionCounter, d.Action)
			require.NotNil(t, d.CounterPrice)

			anchor, _ := ScanHistory(history, nc.ListedPrice)
			assert.GreaterOrEqual(t, *d.CounterPrice, nc.FloorPrice, "offer %.0f", offer)
			assert.LessOrEqual(t, *d.CounterPrice, anchor, "offer %.0f", offer)
			assert.LessOrEqual(t, *d.CounterPrice, nc.ListedPrice, "offer %.0f", offer)
		}
	}
}

func TestDeterminism(t *testing.T) {
	p := NewRulePolicy(DefaultConfig())

	nc := baseContext()
	nc.CurrentOffer = 38500
	nc.Sentiment = domain.SentimentNeutral
	nc.History = []domain.Turn{
		{Role: "user", Price: f64(36000)},
		{Role: "bot", Price: f64(47000)},
	}

	first := p.Decide(nc)
	second := p.Decide(nc)

	assert.Equal(t, first, second)
}

func TestPolicyStamp(t *testing.T) {
	p := NewRulePolicy(DefaultConfig())

	for _, offer := range []float64{25000, 40000, 45000} {
		nc := baseContext()
		nc.CurrentOffer = offer

		d := p.Decide(nc)

		assert.Equal(t, domain.PolicyTypeRuleBased, d.PolicyType)
		assert.Equal(t, Version, d.PolicyVersion)
		assert.NotEmpty(t, d.ResponseKey)
	}
}

func TestFactory(t *testing.T) {
	t.Run("Rule Based", func(t *testing.T) {
		p, err := New("rule-based", DefaultConfig())
		require.NoError(t, err)
		assert.IsType(t, &RulePolicy{}, p)
	})

	t.Run("Unknown Type", func(t *testing.T) {
		_, err := New("rl-ppo-v2", DefaultConfig())
		assert.Error(t, err)
	})
}
