package vtile

import (
	"fmt"

	"github.com/anirudhraja/pbf/wire"
)

// Geometry command ids.
const (
	cmdMoveTo    = 1
	cmdLineTo    = 2
	cmdClosePath = 7
)

// Point is a vertex in tile coordinates.
type Point struct {
	X, Y int64
}

func commandInteger(id, count uint64) uint64 {
	return count<<3 | id
}

// DecodeGeometry turns a command stream into rings of points. Every MoveTo
// starts a new ring, so a multi-point yields one single-point ring per point.
// ClosePath repeats the first point of the current ring.
func DecodeGeometry(cmds []uint64) ([][]Point, error) {
	var (
		rings [][]Point
		ring  []Point
		x, y  int64
	)
	for i := 0; i < len(cmds); {
		id, count := cmds[i]&0x7, cmds[i]>>3
		i++

		switch id {
		case cmdMoveTo, cmdLineTo:
			if uint64(len(cmds)-i)/2 < count {
				return nil, fmt.Errorf("%w: command %d wants %d points, %d parameters left", ErrGeometry, id, count, len(cmds)-i)
			}
			if id == cmdLineTo && ring == nil {
				return nil, fmt.Errorf("%w: LineTo before MoveTo", ErrGeometry)
			}
			for ; count > 0; count-- {
				x += wire.DecodeZigZag(cmds[i])
				y += wire.DecodeZigZag(cmds[i+1])
				i += 2
				if id == cmdMoveTo {
					if ring != nil {
						rings = append(rings, ring)
					}
					ring = []Point{{x, y}}
				} else {
					ring = append(ring, Point{x, y})
				}
			}
		case cmdClosePath:
			if ring == nil {
				return nil, fmt.Errorf("%w: ClosePath before MoveTo", ErrGeometry)
			}
			for ; count > 0; count-- {
				ring = append(ring, ring[0])
			}
		default:
			return nil, fmt.Errorf("%w: unknown command %d", ErrGeometry, id)
		}
	}
	if ring != nil {
		rings = append(rings, ring)
	}
	return rings, nil
}

// EncodeGeometry builds the command stream for rings of type t. Points are
// written as one MoveTo covering every ring's points. Polygon rings are
// expected closed (last point equal to the first) and get a ClosePath in place
// of the repeated point.
func EncodeGeometry(t GeomType, rings [][]Point) []uint64 {
	var (
		cmds []uint64
		x, y int64
	)
	move := func(p Point) {
		cmds = append(cmds, wire.EncodeZigZag(p.X-x), wire.EncodeZigZag(p.Y-y))
		x, y = p.X, p.Y
	}

	if t == GeomPoint {
		n := 0
		for _, r := range rings {
			n += len(r)
		}
		if n == 0 {
			return nil
		}
		cmds = append(cmds, commandInteger(cmdMoveTo, uint64(n)))
		for _, r := range rings {
			for _, p := range r {
				move(p)
			}
		}
		return cmds
	}

	for _, r := range rings {
		closed := t == GeomPolygon && len(r) > 1 && r[0] == r[len(r)-1]
		if closed {
			r = r[:len(r)-1]
		}
		if len(r) == 0 {
			continue
		}
		cmds = append(cmds, commandInteger(cmdMoveTo, 1))
		move(r[0])
		if len(r) > 1 {
			cmds = append(cmds, commandInteger(cmdLineTo, uint64(len(r)-1)))
			for _, p := range r[1:] {
				move(p)
			}
		}
		if closed {
			cmds = append(cmds, commandInteger(cmdClosePath, 1))
		}
	}
	return cmds
}

// Bounds returns the bounding box of rings as [minX, minY, maxX, maxY].
func Bounds(rings [][]Point) [4]int64 {
	var b [4]int64
	first := true
	for _, r := range rings {
		for _, p := range r {
			if first {
				b = [4]int64{p.X, p.Y, p.X, p.Y}
				first = false
				continue
			}
			b[0] = min(b[0], p.X)
			b[1] = min(b[1], p.Y)
			b[2] = max(b[2], p.X)
			b[3] = max(b[3], p.Y)
		}
	}
	return b
}
