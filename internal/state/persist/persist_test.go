package persist

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/temoto/imulink/internal/link"
	"github.com/temoto/imulink/log2"
)

func TestPersistStat(t *testing.T) {
	t.Parallel()

	dir, err := ioutil.TempDir("", "imulink-persist-")
	require.NoError(t, err)
	defer os.RemoveAll(dir)
	log := log2.NewTest(t, log2.LDebug)

	first := &link.Stat{}
	p1 := Persist{}
	require.NoError(t, p1.Init("link", first, dir, true, log))
	assert.True(t, p1.Enabled())
	require.NoError(t, p1.Load())
	assert.Equal(t, link.Stat{}, *first)

	first.Sessions = 3
	first.LinkLost = 2
	first.Samples = 1000
	require.NoError(t, p1.Store())

	second := &link.Stat{}
	p2 := Persist{}
	require.NoError(t, p2.Init("link", second, dir, true, log))
	require.NoError(t, p2.Load())
	assert.Equal(t, *first, *second)
}

func TestPersistDisabled(t *testing.T) {
	t.Parallel()

	log := log2.NewTest(t, log2.LDebug)
	s := &link.Stat{Sessions: 1}
	p := Persist{}
	require.NoError(t, p.Init("link", s, "", false, log))
	assert.False(t, p.Enabled())
	assert.NoError(t, p.Load())
	assert.NoError(t, p.Store())
	assert.Equal(t, uint32(1), s.Sessions)
}

func TestPersistRootRequired(t *testing.T) {
	t.Parallel()

	p := Persist{}
	err := p.Init("link", &link.Stat{}, "", true, log2.NewTest(t, log2.LDebug))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "root=empty")
}

func TestPersistCorrupt(t *testing.T) {
	t.Parallel()

	dir, err := ioutil.TempDir("", "imulink-persist-")
	require.NoError(t, err)
	defer os.RemoveAll(dir)
	log := log2.NewTest(t, log2.LDebug)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "link"), 0755))
	garbage := []byte("definitely not a link stat with checksum")
	for _, name := range []string{"extremofile.v1.main", "extremofile.v1.backup"} {
		require.NoError(t, ioutil.WriteFile(filepath.Join(dir, "link", name), garbage, 0644))
	}

	s := &link.Stat{Sessions: 7}
	p := Persist{}
	require.NoError(t, p.Init("link", s, dir, true, log))
	require.NoError(t, p.Load())
	assert.Equal(t, uint32(7), s.Sessions)

	require.NoError(t, p.Store())
	fresh := &link.Stat{}
	p2 := Persist{}
	require.NoError(t, p2.Init("link", fresh, dir, true, log))
	require.NoError(t, p2.Load())
	assert.Equal(t, *s, *fresh)
}
