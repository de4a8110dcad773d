package generate

import "shadowfov/internal/gamemap"

// node is one region of the BSP tree. Leaves may hold a room.
type node struct {
	area        gamemap.Rect
	left, right *node
	room        *gamemap.Rect
}

func (n *node) width() int  { return n.area.X2 - n.area.X1 + 1 }
func (n *node) height() int { return n.area.Y2 - n.area.Y1 + 1 }
func (n *node) leaf() bool  { return n.left == nil && n.right == nil }

// split cuts the node in two along its longer side (or a random side when
// it is roughly square). It returns false when either half would fall
// below cfg.MinLeafSize.
func (n *node) split(cfg *Config) bool {
	w, h := n.width(), n.height()
	horizontal := cfg.Rand.Intn(2) == 0
	switch {
	case w > h && float64(w)/float64(h) >= 1.25:
		horizontal = false
	case h > w && float64(h)/float64(w) >= 1.25:
		horizontal = true
	}

	span := w
	if horizontal {
		span = h
	}
	if span <= cfg.MinLeafSize*2 {
		return false
	}
	cut := randRange(cfg, cfg.MinLeafSize, span-cfg.MinLeafSize)

	a := n.area
	if horizontal {
		n.left = &node{area: gamemap.Rect{X1: a.X1, Y1: a.Y1, X2: a.X2, Y2: a.Y1 + cut - 1}}
		n.right = &node{area: gamemap.Rect{X1: a.X1, Y1: a.Y1 + cut, X2: a.X2, Y2: a.Y2}}
	} else {
		n.left = &node{area: gamemap.Rect{X1: a.X1, Y1: a.Y1, X2: a.X1 + cut - 1, Y2: a.Y2}}
		n.right = &node{area: gamemap.Rect{X1: a.X1 + cut, Y1: a.Y1, X2: a.X2, Y2: a.Y2}}
	}
	return true
}

// placeRoom picks a room inside a leaf, keeping RoomPadding from the leaf
// edge and a one-tile rock border around the map.
func (n *node) placeRoom(gmap *gamemap.Grid, cfg *Config) {
	pad := cfg.RoomPadding
	maxW, maxH := n.width()-2*pad, n.height()-2*pad
	rw := randRange(cfg, cfg.MinRoomSize, max(cfg.MinRoomSize, maxW))
	rh := randRange(cfg, cfg.MinRoomSize, max(cfg.MinRoomSize, maxH))
	rw, rh = min(rw, maxW), min(rh, maxH)

	x1 := n.area.X1 + pad + cfg.Rand.Intn(max(1, maxW-rw+1))
	y1 := n.area.Y1 + pad + cfg.Rand.Intn(max(1, maxH-rh+1))
	x1, y1 = max(x1, 1), max(y1, 1)
	x2 := min(x1+rw-1, gmap.Width-2)
	y2 := min(y1+rh-1, gmap.Height-2)
	if x2-x1 < 2 || y2-y1 < 2 {
		return
	}

	room := gamemap.Rect{X1: x1, Y1: y1, X2: x2, Y2: y2}
	for y := y1; y <= y2; y++ {
		for x := x1; x <= x2; x++ {
			gmap.Set(x, y, gamemap.MakeFloor())
		}
	}
	n.room = &room
	gmap.Rooms = append(gmap.Rooms, room)
}

// anyRoom returns the first room found under n, left subtree first.
func (n *node) anyRoom() *gamemap.Rect {
	if n == nil {
		return nil
	}
	if n.room != nil {
		return n.room
	}
	if r := n.left.anyRoom(); r != nil {
		return r
	}
	return n.right.anyRoom()
}

// connect joins the two halves of every split node, deepest splits first.
func (n *node) connect(gmap *gamemap.Grid, cfg *Config) {
	if n.leaf() {
		return
	}
	n.left.connect(gmap, cfg)
	n.right.connect(gmap, cfg)

	a, b := n.left.anyRoom(), n.right.anyRoom()
	if a == nil || b == nil {
		return
	}
	ax, ay := a.Center()
	bx, by := b.Center()
	carveCorridor(gmap, ax, ay, bx, by, cfg)
}

// Generate carves BSP rooms and corridors out of solid rock and returns the
// map plus a start point in the first room.
func Generate(cfg *Config) (*gamemap.Grid, int, int) {
	gmap := gamemap.New(cfg.MapWidth, cfg.MapHeight)
	root := &node{area: gamemap.Rect{X2: cfg.MapWidth - 1, Y2: cfg.MapHeight - 1}}

	// Breadth-first split; big leaves always split, small ones 75% of the time.
	var leaves []*node
	queue := []*node{root}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		big := n.width() > cfg.MaxLeafSize || n.height() > cfg.MaxLeafSize
		if (big || cfg.Rand.Float64() > 0.25) && n.split(cfg) {
			queue = append(queue, n.left, n.right)
			continue
		}
		leaves = append(leaves, n)
	}

	for _, n := range leaves {
		n.placeRoom(gmap, cfg)
	}
	root.connect(gmap, cfg)

	px, py := 1, 1
	if len(gmap.Rooms) > 0 {
		px, py = gmap.Rooms[0].Center()
	}
	for _, room := range gmap.Rooms {
		placeWindow(gmap, room)
	}
	return gmap, px, py
}

// placeWindow turns the wall just below the room's center column into glass
// when there is open floor on both sides of it.
func placeWindow(gmap *gamemap.Grid, room gamemap.Rect) {
	cx, _ := room.Center()
	wy := room.Y2 + 1
	if !gmap.InBounds(cx, wy+1) || gmap.At(cx, wy).Kind != gamemap.TileWall {
		return
	}
	if gmap.IsTransparent(cx, wy-1) && gmap.IsTransparent(cx, wy+1) {
		gmap.Set(cx, wy, gamemap.MakeGlass())
	}
}

// randRange returns a random int in [lo, hi]; lo when hi < lo.
func randRange(cfg *Config, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + cfg.Rand.Intn(hi-lo+1)
}
