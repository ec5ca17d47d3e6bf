/*
Package minerdata is a library for extracting the caverns and their
background tiles from a Manic Miner binary.

The cavern definitions are stored as twenty consecutive 1024 byte records
starting at offset 0xb000 of the binary.
*/
package minerdata

import (
	"bytes"
	"io"
	"io/ioutil"
	"log"
	"os"

	"github.com/bodgit/minerdata/atlas"
	"github.com/bodgit/minerdata/cavern"
	"github.com/bodgit/minerdata/sprite"
	"github.com/cespare/xxhash"
)

const (
	// CavernsOffsetBytes is the file offset of the first cavern record
	CavernsOffsetBytes = 0xb000
	// CavernCount is the number of cavern records
	CavernCount = 20
	// CavernSizeBytes is the size of each cavern record
	CavernSizeBytes = cavern.SizeBytes
	// CavernsSizeBytes is the size of the whole caverns region
	CavernsSizeBytes = CavernCount * CavernSizeBytes

	defaultWorkers = 4
)

// GameData holds every cavern decoded from a binary, in file order.
type GameData struct {
	Caverns []*cavern.Cavern
	// Checksum is the xxhash of the raw caverns region
	Checksum uint64
}

// Sprites returns every tile sprite of every cavern, ordered by cavern and
// then tile slot.
func (gd *GameData) Sprites() []*sprite.Sprite {
	sprites := make([]*sprite.Sprite, 0, len(gd.Caverns)*cavern.NumTiles)
	for _, c := range gd.Caverns {
		sprites = append(sprites, c.Tiles[:]...)
	}
	return sprites
}

// Atlas composes every tile sprite into a single image.
func (gd *GameData) Atlas() (*atlas.Atlas, error) {
	sprites := gd.Sprites()
	tiles := make([]atlas.Tile, len(sprites))
	for i, s := range sprites {
		tiles[i] = s
	}
	return atlas.Compose(tiles)
}

// MinerData loads game data, logging progress to its logger.
type MinerData struct {
	logger  *log.Logger
	workers int
}

// New returns a MinerData that logs to logger. A nil logger discards
// everything.
func New(logger *log.Logger) *MinerData {
	if logger == nil {
		logger = log.New(ioutil.Discard, "", 0)
	}
	return &MinerData{
		logger:  logger,
		workers: defaultWorkers,
	}
}

func readFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

// Load reads and decodes all of the caverns from r. Either all of them are
// decoded successfully or an error is returned; a short read is reported as
// io.ErrUnexpectedEOF.
func (m *MinerData) Load(r io.ReadSeeker) (*GameData, error) {
	if _, err := r.Seek(CavernsOffsetBytes, io.SeekStart); err != nil {
		return nil, &CavernError{Index: 0, Offset: CavernsOffsetBytes, Err: err}
	}

	h := xxhash.New()
	tr := io.TeeReader(r, h)

	chunks := make([][]byte, CavernCount)
	for i := range chunks {
		offset := int64(CavernsOffsetBytes + i*CavernSizeBytes)
		chunks[i] = make([]byte, CavernSizeBytes)
		if err := readFull(tr, chunks[i]); err != nil {
			return nil, &CavernError{Index: i, Offset: offset, Err: err}
		}
		m.logger.Printf("Read cavern %d at offset %#x\n", i, offset)
	}

	caverns, err := m.decodeCaverns(chunks)
	if err != nil {
		return nil, err
	}

	for i, c := range caverns {
		m.logger.Printf("Decoded cavern %d %q\n", i, c.TrimmedName())
	}

	return &GameData{
		Caverns:  caverns,
		Checksum: h.Sum64(),
	}, nil
}

// LoadFile opens file and loads the game data from it.
func (m *MinerData) LoadFile(file string) (*GameData, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return m.Load(f)
}

// Load reads and decodes all of the caverns from r without logging.
func Load(r io.ReadSeeker) (*GameData, error) {
	return New(nil).Load(r)
}

// LoadBytes decodes all of the caverns from an in-memory binary.
func LoadBytes(b []byte) (*GameData, error) {
	return Load(bytes.NewReader(b))
}
