package link

import "fmt"

// AF_PACKET PACKET_MMAP alignment rules: frames align to
// TPACKET_ALIGNMENT, blocks are page-multiples and frame-multiples, and
// the whole ring approximates the requested memory budget.
const (
	tpacketAlignment = 16
	tpacketHdrLen    = 52
	maxBlockSize     = 1 << 20
)

// ringGeometry derives (frameSize, blockSize, numBlocks) from a memory
// budget in MB, a snapshot length and the system page size.
func ringGeometry(budgetMB, snapLen, pageSize int) (frameSize, blockSize, numBlocks int, err error) {
	if budgetMB <= 0 {
		return 0, 0, 0, fmt.Errorf("ring budget must be positive, got %d MB", budgetMB)
	}
	if snapLen <= 0 {
		return 0, 0, 0, fmt.Errorf("snap length must be positive, got %d", snapLen)
	}
	if pageSize <= 0 || pageSize%tpacketAlignment != 0 {
		return 0, 0, 0, fmt.Errorf("page size must be a positive multiple of %d, got %d", tpacketAlignment, pageSize)
	}

	raw := tpacketHdrLen + snapLen
	frameSize = (raw + tpacketAlignment - 1) / tpacketAlignment * tpacketAlignment

	blockSize = lcm(pageSize, frameSize)
	for blockSize < 128*1024 {
		blockSize *= 2
	}
	if blockSize > maxBlockSize {
		return 0, 0, 0, fmt.Errorf("block size %d exceeds limit for snap length %d", blockSize, snapLen)
	}

	targetBytes := budgetMB * 1024 * 1024
	numBlocks = targetBytes / blockSize
	if numBlocks < 1 {
		numBlocks = 1
	}

	return frameSize, blockSize, numBlocks, nil
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func lcm(a, b int) int {
	return a / gcd(a, b) * b
}
