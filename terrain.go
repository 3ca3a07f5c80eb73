package ekq

import (
	perlin "github.com/aquilax/go-perlin"
)

// NoiseBand maps noise values below Below to tileset index Index.
type NoiseBand struct {
	Below float64
	Index int
}

// FillNoise sets every cell from 2D Perlin noise sampled every scale cells.
// Each cell gets the first band whose Below exceeds the noise value, or the
// last band if none does. The same seed always gives the same layout.
func (p *Tilepane) FillNoise(seed int64, scale float64, bands []NoiseBand) {
	if len(bands) == 0 {
		return
	}
	if scale <= 0 {
		scale = 1
	}
	noise := perlin.NewPerlin(2, 2, 3, seed)
	for y := 0; y < p.gridH; y++ {
		for x := 0; x < p.gridW; x++ {
			v := noise.Noise2D(float64(x)/scale, float64(y)/scale)
			index := bands[len(bands)-1].Index
			for _, band := range bands {
				if v < band.Below {
					index = band.Index
					break
				}
			}
			p.SetIndex(x, y, index)
		}
	}
}
