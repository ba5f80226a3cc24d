package mac

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	cases := []struct {
		input  string
		expect string
		valid  bool
	}{
		{"28:CD:C1:14:B8:3C", "28:CD:C1:14:B8:3C", true},
		{"28cdc114b83c", "28:CD:C1:14:B8:3C", true},
		{"28:cd:c1:14:b8:3c", "28:CD:C1:14:B8:3C", true},
		{" 28CDC114B83C\n", "", false},
		{"28:CD:C1:14:B8:3C ", "", false},
		{"00:00:00:00:00:00", "00:00:00:00:00:00", true},
		{"", "", false},
		{"28:CD:C1:14:B8", "", false},
		{"28-CD-C1-14-B8-3C", "", false},
		{"28:CDC:114:B83C:", "", false},
		{"28CDC114B83", "", false},
		{"28CDC114B83CZ", "", false},
		{"GG:CD:C1:14:B8:3C", "", false},
		{"28:CD:C1:14:B8:3C:00", "", false},
	}
	for _, c := range cases {
		c := c
		t.Run(c.input, func(t *testing.T) {
			t.Parallel()
			a, err := Parse(c.input)
			if !c.valid {
				require.Error(t, err)
				assert.True(t, IsInvalidFormat(err), "err=%v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.expect, a.String())
			n, err := Normalize(c.input)
			require.NoError(t, err)
			assert.Equal(t, c.expect, n)
		})
	}
}

func TestEqualNormalized(t *testing.T) {
	t.Parallel()

	a := MustParse("28cdc114b83c")
	b := MustParse("28:CD:C1:14:B8:3C")
	assert.True(t, Equal(a, b))
	assert.False(t, Equal(a, MustParse("28:CD:C1:14:B8:3D")))
	assert.True(t, Zero.IsZero())
	assert.False(t, a.IsZero())
}

func TestText(t *testing.T) {
	t.Parallel()

	var v struct {
		Addr Address `json:"addr"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"addr":"28cdc114b83c"}`), &v))
	assert.Equal(t, MustParse("28:CD:C1:14:B8:3C"), v.Addr)
	out, err := json.Marshal(v)
	require.NoError(t, err)
	assert.Equal(t, `{"addr":"28:CD:C1:14:B8:3C"}`, string(out))
	assert.Error(t, json.Unmarshal([]byte(`{"addr":"nope"}`), &v))
}
