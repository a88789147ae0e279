// pkg/render/engo/assets.go
package engo

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-tanks/pkg/config"
	"github.com/opd-ai/go-tanks/pkg/entity"
	"github.com/opd-ai/go-tanks/pkg/logging"
)

// TextureSource maps battle entities to drawables
type TextureSource interface {
	Tank(side entity.Side, variant entity.Variant) common.Drawable
	Shot(side entity.Side) common.Drawable
	Explosion(kind entity.ExplosionKind, frame int) common.Drawable
	Track() common.Drawable
	Background() common.Drawable
}

// Texture names, also the PNG file names looked up in the assets directory
const (
	textureTrack      = "tracksSmall"
	textureBackground = "tileGrass1"
	grassTileSize     = 64
)

// tankTextureName returns the texture of a tank by side and variant
func tankTextureName(side entity.Side, variant entity.Variant) string {
	tint := "blue"
	if side == entity.Hostile {
		tint = "red"
	}
	if variant == entity.VariantDestroyed {
		return "tankBody_" + tint + "_outline"
	}
	return "tank_" + tint
}

// shotTextureName returns the texture of a shot by side
func shotTextureName(side entity.Side) string {
	if side == entity.Hostile {
		return "shotRed"
	}
	return "shotThin"
}

// explosionTextureName returns the texture of one animation frame, 0-based
func explosionTextureName(kind entity.ExplosionKind, frame int) string {
	if kind == entity.SmokeExplosion {
		return fmt.Sprintf("explosionSmoke%d", frame+1)
	}
	return fmt.Sprintf("explosion%d", frame+1)
}

// AssetManager loads textures from PNG files when they exist and draws
// procedural replacements for the ones that don't.
type AssetManager struct {
	cfg      *config.GameConfig
	dir      string
	textures map[string]common.Drawable
	logger   *logging.Logger
}

// NewAssetManager creates a new asset manager reading PNGs from dir.
// An empty dir means every texture is procedural.
func NewAssetManager(cfg *config.GameConfig, dir string, logger *logging.Logger) *AssetManager {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &AssetManager{
		cfg:      cfg,
		dir:      dir,
		textures: make(map[string]common.Drawable),
		logger:   logger,
	}
}

// LoadAssets uploads every texture. It needs a running engo window.
func (am *AssetManager) LoadAssets() error {
	ctx := context.Background()
	loaded := 0

	for name, img := range proceduralImages(am.cfg) {
		if tex, ok := am.loadFile(ctx, name); ok {
			am.textures[name] = tex
			loaded++
			continue
		}
		am.textures[name] = common.NewTextureSingle(common.NewImageObject(img))
	}

	am.logger.Info(ctx, "textures ready",
		"total", len(am.textures),
		"from_files", loaded,
	)
	return nil
}

// loadFile loads name.png from the assets directory through engo's file
// loader, reporting false when the file does not exist or fails to load.
func (am *AssetManager) loadFile(ctx context.Context, name string) (common.Drawable, bool) {
	if am.dir == "" {
		return nil, false
	}

	url := name + ".png"
	if _, err := os.Stat(filepath.Join(am.dir, url)); err != nil {
		return nil, false
	}

	if err := engo.Files.Load(url); err != nil {
		am.logger.Warn(ctx, "failed to load texture file", "file", url, "error", err)
		return nil, false
	}
	tex, err := common.LoadedSprite(url)
	if err != nil {
		am.logger.Warn(ctx, "failed to create texture", "file", url, "error", err)
		return nil, false
	}
	return tex, true
}

// Tank implements TextureSource
func (am *AssetManager) Tank(side entity.Side, variant entity.Variant) common.Drawable {
	return am.textures[tankTextureName(side, variant)]
}

// Shot implements TextureSource
func (am *AssetManager) Shot(side entity.Side) common.Drawable {
	return am.textures[shotTextureName(side)]
}

// Explosion implements TextureSource
func (am *AssetManager) Explosion(kind entity.ExplosionKind, frame int) common.Drawable {
	return am.textures[explosionTextureName(kind, frame)]
}

// Track implements TextureSource
func (am *AssetManager) Track() common.Drawable {
	return am.textures[textureTrack]
}

// Background implements TextureSource
func (am *AssetManager) Background() common.Drawable {
	return am.textures[textureBackground]
}

var (
	blueBody  = color.NRGBA{R: 70, G: 110, B: 200, A: 255}
	redBody   = color.NRGBA{R: 200, G: 70, B: 60, A: 255}
	treadGray = color.NRGBA{R: 60, G: 60, B: 60, A: 255}
	wreckGray = color.NRGBA{R: 90, G: 90, B: 90, A: 255}
	grassA    = color.NRGBA{R: 96, G: 160, B: 72, A: 255}
	grassB    = color.NRGBA{R: 88, G: 150, B: 66, A: 255}
)

// proceduralImages draws every texture the battle needs, sized after the
// configured tanks and shots.
func proceduralImages(cfg *config.GameConfig) map[string]*image.NRGBA {
	images := make(map[string]*image.NRGBA)

	enemy := cfg.Player
	if len(cfg.Enemies) > 0 {
		enemy = cfg.Enemies[0]
	}

	sides := []struct {
		side entity.Side
		tank config.TankConfig
		body color.NRGBA
	}{
		{entity.Allied, cfg.Player, blueBody},
		{entity.Hostile, enemy, redBody},
	}
	for _, s := range sides {
		w, h := int(math.Ceil(s.tank.Width)), int(math.Ceil(s.tank.Height))
		images[tankTextureName(s.side, entity.VariantNormal)] = tankImage(w, h, s.body, true)
		images[tankTextureName(s.side, entity.VariantDestroyed)] = tankImage(w, h, wreckGray, false)

		sw, sh := int(math.Ceil(s.tank.ShotWidth)), int(math.Ceil(s.tank.ShotHeight))
		images[shotTextureName(s.side)] = shotImage(sw, sh, s.body)
	}

	fx := cfg.Effects
	for i := 0; i < fx.KillFrames; i++ {
		images[explosionTextureName(entity.KillExplosion, i)] = explosionImage(64, i, fx.KillFrames,
			color.NRGBA{R: 255, G: 170, B: 40, A: 255})
	}
	for i := 0; i < fx.SmokeFrames; i++ {
		images[explosionTextureName(entity.SmokeExplosion, i)] = explosionImage(32, i, fx.SmokeFrames,
			color.NRGBA{R: 150, G: 150, B: 150, A: 255})
	}

	images[textureTrack] = trackImage(int(math.Ceil(cfg.Player.Width)), int(math.Ceil(cfg.Player.Height)))
	images[textureBackground] = grassImage(int(cfg.Field.Width), int(cfg.Field.Height))

	return images
}

func fillRect(img *image.NRGBA, r image.Rectangle, c color.NRGBA) {
	r = r.Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
}

func fillCircle(img *image.NRGBA, cx, cy, radius float64, c color.NRGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			dx, dy := float64(x)+0.5-cx, float64(y)+0.5-cy
			if dx*dx+dy*dy <= radius*radius {
				img.SetNRGBA(x, y, c)
			}
		}
	}
}

// tankImage draws a tank seen from above with its barrel pointing down the
// image, which is the tank's forward direction at orientation zero.
func tankImage(w, h int, body color.NRGBA, barrel bool) *image.NRGBA {
	w, h = max(w, 4), max(h, 4)
	img := image.NewNRGBA(image.Rect(0, 0, w, h))

	tread := max(w/5, 1)
	fillRect(img, image.Rect(0, 0, tread, h), treadGray)
	fillRect(img, image.Rect(w-tread, 0, w, h), treadGray)
	fillRect(img, image.Rect(tread, h/8, w-tread, h-h/8), body)

	cx, cy := float64(w)/2, float64(h)*0.4
	turret := darken(body)
	fillCircle(img, cx, cy, float64(w)/4, turret)

	if barrel {
		bw := max(w/8, 1)
		fillRect(img, image.Rect(w/2-bw/2, int(cy), w/2-bw/2+bw, h), turret)
	}
	return img
}

func darken(c color.NRGBA) color.NRGBA {
	return color.NRGBA{
		R: uint8(int(c.R) * 3 / 4),
		G: uint8(int(c.G) * 3 / 4),
		B: uint8(int(c.B) * 3 / 4),
		A: c.A,
	}
}

func shotImage(w, h int, c color.NRGBA) *image.NRGBA {
	w, h = max(w, 1), max(h, 1)
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	fillRect(img, img.Bounds(), c)
	fillRect(img, image.Rect(0, 0, w, max(h/4, 1)), color.NRGBA{R: 255, G: 240, B: 160, A: 255})
	return img
}

// explosionImage draws frame i of n: a disc growing and fading out
func explosionImage(size, frame, frames int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	progress := float64(frame+1) / float64(max(frames, 1))
	c.A = uint8(255 * (1 - 0.6*progress))
	half := float64(size) / 2
	fillCircle(img, half, half, half*(0.3+0.7*progress), c)
	return img
}

func trackImage(w, h int) *image.NRGBA {
	w, h = max(w, 4), max(h, 4)
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	mark := color.NRGBA{R: 40, G: 40, B: 30, A: 140}
	tread := max(w/5, 1)
	for y := 0; y < h; y += 4 {
		fillRect(img, image.Rect(0, y, tread, y+2), mark)
		fillRect(img, image.Rect(w-tread, y, w, y+2), mark)
	}
	return img
}

// grassImage tiles the field in a checker of two greens
func grassImage(w, h int) *image.NRGBA {
	w, h = max(w, 1), max(h, 1)
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for ty := 0; ty*grassTileSize < h; ty++ {
		for tx := 0; tx*grassTileSize < w; tx++ {
			c := grassA
			if (tx+ty)%2 == 1 {
				c = grassB
			}
			fillRect(img, image.Rect(tx*grassTileSize, ty*grassTileSize,
				(tx+1)*grassTileSize, (ty+1)*grassTileSize), c)
		}
	}
	return img
}

var _ TextureSource = (*AssetManager)(nil)
