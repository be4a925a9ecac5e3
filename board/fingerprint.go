package board

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint hashes every fact of s that can influence a derived graph:
// the size, each cell's flags and booster, missing cells, and every robot.
// Equal snapshots always hash equal. Cost: O(W×H), no per-cell allocation.
func Fingerprint(s Snapshot) uint64 {
	d := xxhash.New()
	var buf [8]byte
	size := s.Size()
	putPair(d, buf[:], size.Width, size.Height)

	for y := 0; y < size.Height; y++ {
		for x := 0; x < size.Width; x++ {
			p := Point{X: x, Y: y}
			c, ok := s.At(p)
			bits := cellBits(c, ok)
			if ok && c.Point != p {
				bits |= 0x40
			}
			_, _ = d.Write([]byte{bits, byte(c.Booster)})
		}
	}
	for _, r := range s.Robots() {
		putPair(d, buf[:], int(r.ID), int(r.Abilities))
		putPair(d, buf[:], r.Position.X, r.Position.Y)
	}

	return d.Sum64()
}

func cellBits(c Cell, ok bool) byte {
	if !ok {
		return 0x80
	}
	var b byte
	if c.Obstacle {
		b |= 1
	}
	if c.Wrapped {
		b |= 2
	}
	if c.TeleporterPlanted {
		b |= 4
	}
	return b
}

func putPair(d *xxhash.Digest, buf []byte, a, b int) {
	binary.LittleEndian.PutUint32(buf[0:4], uint32(a))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(b))
	_, _ = d.Write(buf)
}
