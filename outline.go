package pagedraw

import (
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Outline is a stored path in document coordinates. Cmds holds the
// segment commands and Coords their points, one for MoveTo and LineTo,
// two for QuadTo, three for CubeTo and none for Close.
type Outline struct {
	Cmds   []path.Command
	Coords []vec.Vec2
}

func (o *Outline) MoveTo(p vec.Vec2) *Outline {
	o.Cmds = append(o.Cmds, path.CmdMoveTo)
	o.Coords = append(o.Coords, p)
	return o
}

func (o *Outline) LineTo(p vec.Vec2) *Outline {
	o.Cmds = append(o.Cmds, path.CmdLineTo)
	o.Coords = append(o.Coords, p)
	return o
}

func (o *Outline) QuadTo(c, p vec.Vec2) *Outline {
	o.Cmds = append(o.Cmds, path.CmdQuadTo)
	o.Coords = append(o.Coords, c, p)
	return o
}

func (o *Outline) CubeTo(c1, c2, p vec.Vec2) *Outline {
	o.Cmds = append(o.Cmds, path.CmdCubeTo)
	o.Coords = append(o.Coords, c1, c2, p)
	return o
}

func (o *Outline) Close() *Outline {
	o.Cmds = append(o.Cmds, path.CmdClose)
	return o
}

func pointCount(cmd path.Command) int {
	switch cmd {
	case path.CmdMoveTo, path.CmdLineTo:
		return 1
	case path.CmdQuadTo:
		return 2
	case path.CmdCubeTo:
		return 3
	}
	return 0
}

// Iter returns the outline as a path iterator.
func (o *Outline) Iter() path.Path {
	return func(yield func(path.Command, []vec.Vec2) bool) {
		i := 0
		for _, cmd := range o.Cmds {
			n := pointCount(cmd)
			if !yield(cmd, o.Coords[i:i+n]) {
				return
			}
			i += n
		}
	}
}

// BBox returns the bounding box of all points, control points included.
func (o *Outline) BBox() rect.Rect { return o.Iter().BBox() }
