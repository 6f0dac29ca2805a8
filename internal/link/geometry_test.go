package link

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seregonwar/rtnet-stack/internal/core"
)

func TestRingGeometryAlignment(t *testing.T) {
	frameSize, blockSize, numBlocks, err := ringGeometry(4, core.BufferSize, 4096)
	require.NoError(t, err)

	assert.Zero(t, frameSize%tpacketAlignment)
	assert.Zero(t, blockSize%4096)
	assert.Zero(t, blockSize%frameSize)
	assert.GreaterOrEqual(t, frameSize, tpacketHdrLen+core.BufferSize)
	assert.GreaterOrEqual(t, numBlocks, 1)
	assert.LessOrEqual(t, blockSize*numBlocks, 4*1024*1024)
}

func TestRingGeometryRejectsBadInput(t *testing.T) {
	cases := []struct {
		name     string
		budgetMB int
		snapLen  int
		pageSize int
	}{
		{"zero budget", 0, 1536, 4096},
		{"zero snaplen", 4, 0, 4096},
		{"zero pagesize", 4, 1536, 0},
		{"unaligned pagesize", 4, 1536, 1000},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, _, err := ringGeometry(tc.budgetMB, tc.snapLen, tc.pageSize)
			assert.Error(t, err)
		})
	}
}

func TestIPv6FilterAssembles(t *testing.T) {
	prog, err := ipv6Filter(core.BufferSize)
	require.NoError(t, err)
	assert.Len(t, prog, 4)
}

func TestOpenRequiresDevice(t *testing.T) {
	_, err := Open(Config{})
	assert.ErrorIs(t, err, core.ErrInvalidParam)
}
