package tickloop

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comalice/tickloop/ease"
	"github.com/comalice/tickloop/interpolate"
)

type sample struct {
	Val float32
	N   int
}

func (s sample) Interpolate(end sample, t float32, curve ease.Curve) sample {
	return sample{
		Val: interpolate.Number(s.Val, end.Val, t, curve),
		N:   interpolate.Number(s.N, end.N, t, curve),
	}
}

func TestStoreUpdateShiftsSnapshots(t *testing.T) {
	s := NewStore[sample]()

	for k := 1; k <= 10; k++ {
		require.NoError(t, s.Update(sample{N: k}))

		v, err := s.View()
		require.NoError(t, err)
		assert.Equal(t, k, v.New.N)
		assert.Equal(t, uint64(k), v.Updates)
		if k >= 2 {
			require.True(t, v.HasLast)
			assert.Equal(t, k-1, v.Last.N)
		} else {
			assert.False(t, v.HasLast)
		}
	}
}

func TestStoreTooFewSnapshots(t *testing.T) {
	s := NewStore[sample]()

	_, err := s.Interpolate(0.5, nil)
	assert.ErrorIs(t, err, ErrTooFewSnapshots)

	require.NoError(t, s.Update(sample{Val: 1}))
	_, err = s.Interpolate(0.5, nil)
	assert.ErrorIs(t, err, ErrTooFewSnapshots)

	require.NoError(t, s.Update(sample{Val: 0}))
	_, err = s.Interpolate(0.5, nil)
	assert.NoError(t, err)
}

func TestSeededStoreInterpolatesAfterOneUpdate(t *testing.T) {
	s := NewSeededStore(sample{Val: 10})

	_, err := s.Interpolate(0.5, nil)
	assert.ErrorIs(t, err, ErrTooFewSnapshots)

	require.NoError(t, s.Update(sample{Val: 20}))
	got, err := s.Interpolate(0.5, nil)
	require.NoError(t, err)
	assert.InDelta(t, 15, got.Val, 1e-6)
}

func TestStoreInterpolateEndpointsAndClamp(t *testing.T) {
	s := NewStore[sample]()
	require.NoError(t, s.Update(sample{Val: 1, N: 10}))
	require.NoError(t, s.Update(sample{Val: 0, N: 20}))

	at := func(f float32) sample {
		v, err := s.Interpolate(f, ease.Linear)
		require.NoError(t, err)
		return v
	}

	assert.Equal(t, sample{Val: 1, N: 10}, at(0))
	assert.Equal(t, sample{Val: 0, N: 20}, at(1))
	assert.Equal(t, sample{Val: 0.5, N: 15}, at(0.5))
	assert.Equal(t, at(0), at(-5))
	assert.Equal(t, at(1), at(5))
}

func TestStoreInterpolateAt(t *testing.T) {
	s := NewStore[sample]()
	base := time.Now()
	require.NoError(t, s.UpdateAt(sample{Val: 0}, base))
	require.NoError(t, s.UpdateAt(sample{Val: 10}, base.Add(100*time.Millisecond)))

	got, err := s.InterpolateAt(base.Add(125*time.Millisecond), 100*time.Millisecond, nil)
	require.NoError(t, err)
	assert.InDelta(t, 2.5, got.Val, 1e-4)

	// Past the next expected tick the fraction clamps to the newest snapshot.
	got, err = s.InterpolateAt(base.Add(time.Second), 100*time.Millisecond, nil)
	require.NoError(t, err)
	assert.Equal(t, float32(10), got.Val)

	v, err := s.View()
	require.NoError(t, err)
	assert.Equal(t, base, v.LastAt)
	assert.InDelta(t, -1, v.Fraction(base, 100*time.Millisecond), 1e-6)
}

func TestStoreReadPanicPoisons(t *testing.T) {
	s := NewStore[sample]()
	require.NoError(t, s.Update(sample{Val: 1}))

	assert.Panics(t, func() {
		_ = s.Read(func(View[sample]) { panic("boom") })
	})

	assert.True(t, s.Poisoned())
	assert.ErrorIs(t, s.Update(sample{}), ErrLockPoisoned)
	_, err := s.View()
	assert.ErrorIs(t, err, ErrLockPoisoned)
	_, err = s.Interpolate(0.5, nil)
	assert.ErrorIs(t, err, ErrLockPoisoned)
	assert.ErrorIs(t, s.Read(func(View[sample]) {}), ErrLockPoisoned)
}

// Readers must never observe Last and New from different ticks.
func TestStoreConcurrentReadersSeeConsistentPairs(t *testing.T) {
	s := NewStore[sample]()
	require.NoError(t, s.Update(sample{N: 0}))

	var wg sync.WaitGroup
	stop := make(chan struct{})

	for r := 0; r < 8; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				err := s.Read(func(v View[sample]) {
					if v.HasLast && v.New.N != v.Last.N+1 {
						t.Errorf("torn read: last=%d new=%d", v.Last.N, v.New.N)
					}
				})
				if err != nil {
					t.Error(err)
					return
				}
			}
		}()
	}

	for k := 1; k <= 5000; k++ {
		require.NoError(t, s.Update(sample{N: k}))
	}
	close(stop)
	wg.Wait()

	assert.Equal(t, uint64(5001), s.Updates())
}
