package trailgraph

import (
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
)

const (
	dirTrails    = "trails"
	dirFine      = "fine"
	dirSignposts = "signposts"
	dirRoutes    = "routes"

	signpostErrors = "errors.json"
)

// DirStore is a Store that keeps everything as files under a root dir
//
//	trails/<x>_<y>.png      coarse trail tiles
//	fine/<x>_<y>.png        fine trail tiles
//	signposts/<x>_<y>.json  signposts by tile
//	signposts/errors.json   signposts that could not be saved
//	routes/<x>_<y>.json     audit of each run
type DirStore struct {
	Root string
}

// NewDirStore returns a DirStore, creating the directories it needs
func NewDirStore(root string) (*DirStore, error) {
	for _, sub := range []string{dirTrails, dirFine, dirSignposts, dirRoutes} {
		err := os.MkdirAll(filepath.Join(root, sub), 0755)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to create store dir %s", sub)
		}
	}
	return &DirStore{Root: root}, nil
}

// tilePath returns the file path of a tile artifact
func (s *DirStore) tilePath(sub string, tileX, tileY int, ext string) string {
	return filepath.Join(s.Root, sub, fmt.Sprintf("%d_%d.%s", tileX, tileY, ext))
}

// LoadTrailTile reads a coarse trail tile
func (s *DirStore) LoadTrailTile(tileX, tileY int) (*image.NRGBA, error) {
	return loadNRGBA(s.tilePath(dirTrails, tileX, tileY, "png"))
}

// SaveTrailTile writes a coarse trail tile
func (s *DirStore) SaveTrailTile(tileX, tileY int, im *image.NRGBA) error {
	fpath := s.tilePath(dirTrails, tileX, tileY, "png")
	return errors.Wrapf(savePNG(fpath, im), "failed to save trail tile %d,%d", tileX, tileY)
}

// LoadFineTile reads a fine trail tile
func (s *DirStore) LoadFineTile(tileX, tileY int) (*image.NRGBA, error) {
	return loadNRGBA(s.tilePath(dirFine, tileX, tileY, "png"))
}

// SaveFineTile writes a fine trail tile
func (s *DirStore) SaveFineTile(tileX, tileY int, im *image.NRGBA) error {
	fpath := s.tilePath(dirFine, tileX, tileY, "png")
	return errors.Wrapf(savePNG(fpath, im), "failed to save fine tile %d,%d", tileX, tileY)
}

// LoadSignposts reads the signposts of a tile by key
func (s *DirStore) LoadSignposts(tileX, tileY int) (map[uint64]*Signpost, error) {
	fpath := s.tilePath(dirSignposts, tileX, tileY, "json")

	data, err := ioutil.ReadFile(fpath)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrTileNotFound, fpath)
	} else if err != nil {
		return nil, errors.Wrapf(err, "failed to read signposts %d,%d", tileX, tileY)
	}

	posts := []*Signpost{}
	err = json.Unmarshal(data, &posts)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode signposts %d,%d", tileX, tileY)
	}

	out := map[uint64]*Signpost{}
	for _, p := range posts {
		out[p.Key] = p
	}
	return out, nil
}

// SaveSignposts writes the signposts of a tile, ordered by key
func (s *DirStore) SaveSignposts(tileX, tileY int, posts map[uint64]*Signpost) error {
	list := make([]*Signpost, 0, len(posts))
	for _, p := range posts {
		list = append(list, p)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Key < list[j].Key
	})

	err := writeJSON(s.tilePath(dirSignposts, tileX, tileY, "json"), list)
	return errors.Wrapf(err, "failed to save signposts %d,%d", tileX, tileY)
}

// SaveSignpostErrors appends posts to the signpost error file
func (s *DirStore) SaveSignpostErrors(posts []*Signpost) error {
	fpath := filepath.Join(s.Root, dirSignposts, signpostErrors)

	existing := []*Signpost{}
	data, err := ioutil.ReadFile(fpath)
	if err == nil {
		err = json.Unmarshal(data, &existing)
		if err != nil {
			return errors.Wrap(err, "failed to decode signpost errors")
		}
	} else if !os.IsNotExist(err) {
		return errors.Wrap(err, "failed to read signpost errors")
	}

	err = writeJSON(fpath, append(existing, posts...))
	return errors.Wrap(err, "failed to save signpost errors")
}

// SaveRoutes writes the audit data of a run
func (s *DirStore) SaveRoutes(tileX, tileY int, data []byte) error {
	err := ioutil.WriteFile(s.tilePath(dirRoutes, tileX, tileY, "json"), data, 0644)
	return errors.Wrapf(err, "failed to save routes %d,%d", tileX, tileY)
}

// loadNRGBA reads a png as NRGBA. PNGs with no transparency are written
// as RGB so these are converted back.
func loadNRGBA(fpath string) (*image.NRGBA, error) {
	f, err := os.Open(fpath)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrTileNotFound, fpath)
	} else if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", fpath)
	}
	defer f.Close()

	im, err := png.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode %s", fpath)
	}

	if nrgba, ok := im.(*image.NRGBA); ok && nrgba.Rect.Min == image.ZP {
		return nrgba, nil
	}

	b := im.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(im.At(x, y)).(color.NRGBA)
			out.SetNRGBA(x-b.Min.X, y-b.Min.Y, c)
		}
	}
	return out, nil
}

// writeJSON encodes v to the given path
func writeJSON(fpath string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return ioutil.WriteFile(fpath, data, 0644)
}
