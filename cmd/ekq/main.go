package main

import (
	"flag"
	"image"
	"image/color"
	"log"
	"os"
	"path/filepath"

	"github.com/beoran/ekq"
	"github.com/beoran/ekq/ebiten"
)

const (
	sheetID = 1
	wallID  = 2
	skyID   = 3
)

// tile indices in the demo sheet
const (
	tileWater = iota
	tileSand
	tileGrass
	tileRock
)

var tileColors = []color.RGBA{
	tileWater: {40, 80, 200, 255},
	tileSand:  {220, 200, 120, 255},
	tileGrass: {60, 160, 60, 255},
	tileRock:  {120, 110, 100, 255},
}

func main() {
	configPath := flag.String("config", "", "YAML configuration file")
	dataDir := flag.String("data", "", "data directory, overrides the configuration")
	dumpMasks := flag.String("dump-masks", "", "write the blend masks as WebP files to this directory and exit")
	mazePath := flag.String("maze", "", "maze file to load")
	seed := flag.Int64("seed", 1, "terrain seed")
	flag.Parse()

	if *dumpMasks != "" {
		masks := ekq.SharedMasks()
		if err := masks.Init(); err != nil {
			log.Fatalf("masks: %v", err)
		}
		if err := masks.WriteWebP(*dumpMasks); err != nil {
			log.Fatalf("masks: %v", err)
		}
		return
	}

	cfg := ekq.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = ekq.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("Error loading config %s: %v", *configPath, err)
		}
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}

	backend := ebiten.NewBackend()
	store := ekq.NewResourceStore(os.DirFS(cfg.DataDir), backend)
	state, err := ekq.NewState(cfg, backend, store, ebiten.Now())
	if err != nil {
		log.Fatal(err)
	}

	log.Println("Building scene...")
	if err := buildScene(state, store, backend, cfg.DataDir, *mazePath, *seed); err != nil {
		log.Fatal(err)
	}
	log.Println("Scene complete.")

	g := ebiten.NewGame(state, backend, cfg.Screen.Width, cfg.Screen.Height)
	if err := ebiten.Run(g, "ekq"); err != nil {
		log.Fatal(err)
	}
}

// loadOrMake loads vpath from the data directory, or stores img when that
// fails so the demo runs without data files.
func loadOrMake(store *ekq.ResourceStore, backend *ebiten.Backend, id int, vpath string, img image.Image) error {
	_, err := store.LoadBitmap(id, vpath)
	if err == nil {
		return nil
	}
	log.Printf("Using generated %s: %v", vpath, err)
	bmp, err := backend.NewBitmap(img)
	if err != nil {
		return err
	}
	store.SetBitmap(id, bmp)
	return nil
}

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func demoSheet() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, ekq.TileW*len(tileColors), ekq.TileH))
	for i, c := range tileColors {
		for y := 0; y < ekq.TileH; y++ {
			for x := 0; x < ekq.TileW; x++ {
				img.SetRGBA(i*ekq.TileW+x, y, c)
			}
		}
	}
	return img
}

func buildScene(state *ekq.State, store *ekq.ResourceStore, backend *ebiten.Backend, dataDir, mazePath string, seed int64) error {
	if err := loadOrMake(store, backend, sheetID, "tiles.png", demoSheet()); err != nil {
		return err
	}
	if err := loadOrMake(store, backend, wallID, "wall.png", solid(32, 32, color.RGBA{150, 90, 60, 255})); err != nil {
		return err
	}
	if err := loadOrMake(store, backend, skyID, "sky.png", solid(32, 32, color.RGBA{120, 160, 230, 255})); err != nil {
		return err
	}

	set, err := ekq.NewTileset(store.Bitmap(sheetID))
	if err != nil {
		return err
	}
	for i := 0; i < set.Size(); i++ {
		// water lowest, rock highest
		set.Get(i).SetBlend(i + 1)
	}
	pane := ekq.NewTilepane(set, 64, 64)
	pane.FillNoise(seed, 8, []ekq.NoiseBand{
		{Below: -0.2, Index: tileWater},
		{Below: -0.1, Index: tileSand},
		{Below: 0.3, Index: tileGrass},
		{Below: 1, Index: tileRock},
	})
	pane.SetBlendType(ekq.BlendGradual)
	if err := pane.InitBlend(); err != nil {
		return err
	}
	state.AddLayer(pane)

	maze, err := demoMaze(store, mazePath)
	if err != nil {
		return err
	}
	state.SetMaze(maze)

	sky := ekq.NewSkybox()
	for dir := ekq.SkyNorth; dir <= ekq.SkyDown; dir++ {
		if err := sky.SetTexture(store, dir, skyID); err != nil {
			return err
		}
	}
	state.SetSkybox(sky)

	model, err := demoModel(store, dataDir)
	if err != nil {
		return err
	}
	state.AddModel(model)
	return nil
}

func demoMaze(store ekq.Store, vpath string) (*ekq.Maze, error) {
	if vpath != "" {
		return ekq.LoadMazeFile(vpath, store)
	}
	maze, err := ekq.NewMaze(1, store)
	if err != nil {
		return nil, err
	}
	if _, err := maze.AddFloor(0, 4, 4); err != nil {
		return nil, err
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			maze.AddWall(0, x, y, ekq.MazeDown, ekq.MazeWallRectangle, wallID)
			if x == 0 {
				maze.AddWall(0, x, y, ekq.MazeWest, ekq.MazeWallRectangle, wallID)
			}
			if x == 3 {
				maze.AddWall(0, x, y, ekq.MazeEast, ekq.MazeWallRectangle, wallID)
			}
			if y == 0 {
				maze.AddWall(0, x, y, ekq.MazeNorth, ekq.MazeWallRectangle, wallID)
			}
			if y == 3 {
				maze.AddWall(0, x, y, ekq.MazeSouth, ekq.MazeWallRectangle, wallID)
			}
		}
	}
	return maze, nil
}

// demoModel loads cube.obj, or builds a cube when it is missing.
func demoModel(store ekq.Store, dataDir string) (*ekq.Model, error) {
	var model *ekq.Model
	if f, err := os.Open(filepath.Join(dataDir, "cube.obj")); err == nil {
		defer f.Close()
		model, err = ekq.LoadOBJ(f)
		if err != nil {
			return nil, err
		}
	} else {
		model = cube()
	}
	model.SetTexture(store, wallID)
	model.SetPosition(ekq.V3(2, 0.5, 2))
	model.SetScale(ekq.V3(0.25, 0.25, 0.25))
	model.SetTorque(ekq.Rot3d{RY: 0.5})
	return model, nil
}

func cube() *ekq.Model {
	m := ekq.NewModel()
	faces := [][4][3]float64{
		{{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1}},
		{{1, -1, -1}, {-1, -1, -1}, {-1, 1, -1}, {1, 1, -1}},
		{{1, -1, 1}, {1, -1, -1}, {1, 1, -1}, {1, 1, 1}},
		{{-1, -1, -1}, {-1, -1, 1}, {-1, 1, 1}, {-1, 1, -1}},
		{{-1, 1, 1}, {1, 1, 1}, {1, 1, -1}, {-1, 1, -1}},
		{{-1, -1, -1}, {1, -1, -1}, {1, -1, 1}, {-1, -1, 1}},
	}
	uv := [4][2]float64{{0, 1}, {1, 1}, {1, 0}, {0, 0}}
	for _, f := range faces {
		var idx [4]int
		for i, p := range f {
			idx[i] = m.AddUV(p[0], p[1], p[2], uv[i][0], uv[i][1])
		}
		m.AddTriangle(idx[0], idx[1], idx[2])
		m.AddTriangle(idx[0], idx[2], idx[3])
	}
	return m
}
