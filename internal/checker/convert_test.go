package checker

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry_Entries(t *testing.T) {
	r := DefaultRegistry()

	tests := []struct {
		target      string
		sources     []*Type
		reinterpret bool
	}{
		{"int128", []*Type{TypeUint256, TypeDecimal, TypeBytes32}, false},
		{"uint256", []*Type{TypeInt128, TypeDecimal, TypeBytes32, TypeAddress}, false},
		{"decimal", []*Type{TypeInt128, TypeUint256}, false},
		{"bytes32", []*Type{TypeInt128, TypeUint256, TypeAddress}, true},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			entry, ok := r.Lookup(tt.target)
			require.True(t, ok, "missing entry for %s", tt.target)
			assert.Equal(t, tt.reinterpret, entry.Reinterpret)
			for _, src := range tt.sources {
				assert.True(t, entry.Accepts(src), "%s should accept %s", tt.target, src)
			}
			assert.False(t, entry.Accepts(entry.Target), "an entry never accepts its own target")
		})
	}
}

func TestDefaultRegistry_NoEntryForOpaqueTypes(t *testing.T) {
	r := DefaultRegistry()
	for _, name := range []string{"bool", "bytes", "address", "void", "nosuch"} {
		_, ok := r.Lookup(name)
		assert.False(t, ok, "unexpected conversion entry for %s", name)
	}
}

func TestConversionEntry_Clamp(t *testing.T) {
	entry := &ConversionEntry{
		Target:  TypeUint256,
		Sources: []*Type{TypeInt128},
		Min:     new(big.Rat),
		Max:     new(big.Rat).SetInt64(255),
	}

	tests := []struct {
		name string
		in   int64
		want int64
	}{
		{"above max saturates", 300, 255},
		{"below min saturates", -7, 0},
		{"at max unchanged", 255, 255},
		{"at min unchanged", 0, 0},
		{"in range unchanged", 42, 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := entry.Clamp(new(big.Rat).SetInt64(tt.in))
			assert.Equal(t, 0, got.Cmp(new(big.Rat).SetInt64(tt.want)),
				"Clamp(%d) = %s, want %d", tt.in, got.RatString(), tt.want)
		})
	}
}

func TestConversionEntry_ClampIdempotent(t *testing.T) {
	entry, ok := DefaultRegistry().Lookup("int128")
	require.True(t, ok)

	// Clamping an already-clamped value changes nothing
	huge := new(big.Rat).SetInt(new(big.Int).Lsh(big.NewInt(1), 200))
	once := entry.Clamp(huge)
	twice := entry.Clamp(once)
	assert.Equal(t, 0, once.Cmp(twice))
	assert.Equal(t, 0, once.Cmp(TypeInt128.Max))
}

func TestVerifyRegistry(t *testing.T) {
	t.Run("default registry is consistent", func(t *testing.T) {
		assert.NoError(t, verifyRegistry(DefaultRegistry()))
	})

	t.Run("missing numeric entry", func(t *testing.T) {
		r := NewRegistry(&ConversionEntry{
			Target:  TypeInt128,
			Sources: []*Type{TypeUint256},
			Min:     TypeInt128.Min,
			Max:     TypeInt128.Max,
		})
		err := verifyRegistry(r)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no entry")
	})

	t.Run("self-source rejected", func(t *testing.T) {
		entries := defaultEntries()
		entries[0].Sources = append(entries[0].Sources, entries[0].Target)
		err := verifyRegistry(NewRegistry(entries...))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "own target")
	})

	t.Run("reinterpret with bounds rejected", func(t *testing.T) {
		entries := defaultEntries()
		for _, e := range entries {
			if e.Reinterpret {
				e.Min = new(big.Rat)
				e.Max = new(big.Rat).SetInt64(1)
			}
		}
		err := verifyRegistry(NewRegistry(entries...))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "mixes reinterpretation")
	})

	t.Run("inverted bounds rejected", func(t *testing.T) {
		entries := defaultEntries()
		entries[0].Min, entries[0].Max = entries[0].Max, entries[0].Min
		err := verifyRegistry(NewRegistry(entries...))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "inverted")
	})

	t.Run("bounds outside target rejected", func(t *testing.T) {
		entries := defaultEntries()
		for _, e := range entries {
			if e.Target == TypeInt128 {
				e.Max = new(big.Rat).Add(TypeInt128.Max, new(big.Rat).SetInt64(1))
			}
		}
		err := verifyRegistry(NewRegistry(entries...))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "outside the type's own bounds")
	})
}

func TestTypeBounds(t *testing.T) {
	// int128: [-2^127, 2^127 - 1]
	twoTo127 := new(big.Int).Lsh(big.NewInt(1), 127)
	min := new(big.Rat).SetInt(new(big.Int).Neg(twoTo127))
	max := new(big.Rat).SetInt(new(big.Int).Sub(twoTo127, big.NewInt(1)))
	assert.Equal(t, 0, TypeInt128.Min.Cmp(min))
	assert.Equal(t, 0, TypeInt128.Max.Cmp(max))

	// uint256: [0, 2^256 - 1]
	twoTo256 := new(big.Int).Lsh(big.NewInt(1), 256)
	assert.Equal(t, 0, TypeUint256.Min.Sign())
	assert.Equal(t, 0, TypeUint256.Max.Cmp(new(big.Rat).SetInt(new(big.Int).Sub(twoTo256, big.NewInt(1)))))

	assert.True(t, TypeInt128.InRange(new(big.Rat).SetInt64(0)))
	assert.False(t, TypeUint256.InRange(new(big.Rat).SetInt64(-1)))
	assert.True(t, TypeDecimal.Numeric)
	assert.False(t, TypeBool.Numeric)
	assert.False(t, TypeBytes32.Numeric)
}
