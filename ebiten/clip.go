package ebiten

// nearW is the smallest clip space w kept; anything closer is behind the
// camera or too near to divide by.
const nearW = 1e-3

// clipVertex is a vertex in clip space with the attributes that are
// interpolated along a clipped edge.
type clipVertex struct {
	x, y, z, w float64
	u, v       float64
	r, g, b, a float64
}

func lerpClip(p, q clipVertex, t float64) clipVertex {
	l := func(a, b float64) float64 { return a + (b-a)*t }
	return clipVertex{
		x: l(p.x, q.x), y: l(p.y, q.y), z: l(p.z, q.z), w: l(p.w, q.w),
		u: l(p.u, q.u), v: l(p.v, q.v),
		r: l(p.r, q.r), g: l(p.g, q.g), b: l(p.b, q.b), a: l(p.a, q.a),
	}
}

// clipNear keeps the part of the convex polygon in front of the near plane.
// A polygon entirely in front is returned as is; one entirely behind gives
// nil. dst is reused for the result.
func clipNear(poly []clipVertex, dst []clipVertex) []clipVertex {
	behind := 0
	for _, p := range poly {
		if p.w < nearW {
			behind++
		}
	}
	if behind == 0 {
		return poly
	}
	if behind == len(poly) {
		return nil
	}
	dst = dst[:0]
	for i, cur := range poly {
		next := poly[(i+1)%len(poly)]
		curIn, nextIn := cur.w >= nearW, next.w >= nearW
		if curIn {
			dst = append(dst, cur)
		}
		if curIn != nextIn {
			t := (nearW - cur.w) / (next.w - cur.w)
			dst = append(dst, lerpClip(cur, next, t))
		}
	}
	return dst
}
