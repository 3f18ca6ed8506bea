/*
Package imagestore persists named memory region images in a key-value database.

Every image is stored under two keys written in one transaction: the full image with its
bytes, and a small info record that List iterates over without loading image data.
*/
package imagestore

import (
	"bytes"
	"crypto/sha256"
	"regexp"

	"github.com/ramkit/ramkit/internal/errors"
	"github.com/ramkit/ramkit/internal/keyvaluedb"
	"github.com/ramkit/ramkit/internal/logger"
	"github.com/ramkit/ramkit/internal/util"
	"github.com/ramkit/ramkit/pkg/memory"
)

var (
	imagePrefix = []byte("img/")
	infoPrefix  = []byte("info/")

	validName = regexp.MustCompile(`^[A-Za-z0-9._-]{1,128}$`)

	log = logger.CreateForPackage()
)

type (
	Image struct {
		_           struct{} `cbor:",toarray"`
		Name        string
		Description string
		Size        int64
		Data        []byte
		Digest      []byte
	}

	ImageInfo struct {
		_           struct{} `cbor:",toarray"`
		Name        string   `json:"name"`
		Description string   `json:"description,omitempty"`
		Size        int64    `json:"size"`
		Digest      []byte   `json:"-" cbor:"digest"`
	}

	Store struct {
		db keyvaluedb.KeyValueDB
	}
)

func New(db keyvaluedb.KeyValueDB) (*Store, error) {
	if db == nil {
		return nil, errors.Wrap(errors.ErrNullArgument, "image store db is nil")
	}
	return &Store{db: db}, nil
}

func (i *ImageInfo) DigestHex() string {
	return util.EncodeHex(i.Digest)
}

// Put stores a copy of all bytes of mem under name, replacing an existing image.
func (s *Store) Put(name string, mem memory.ReadOnly, description string) (*ImageInfo, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	if mem == nil {
		return nil, errors.Wrap(errors.ErrNullArgument, "image region is nil")
	}
	data := mem.AllBytes()
	digest := sha256.Sum256(data)
	img := &Image{
		Name:        name,
		Description: description,
		Size:        int64(len(data)),
		Data:        data,
		Digest:      digest[:],
	}
	info := img.Info()

	tx, err := s.db.StartTx()
	if err != nil {
		return nil, err
	}
	if err := tx.Write(key(imagePrefix, name), img); err != nil {
		return nil, rollback(tx, err)
	}
	if err := tx.Write(key(infoPrefix, name), info); err != nil {
		return nil, rollback(tx, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, errors.Wrapf(err, "storing image %q", name)
	}
	log.Debug("Stored image %s, %d bytes, digest %s", name, img.Size, info.DigestHex())
	return info, nil
}

// Get loads the image and returns a region over a private copy of its bytes.
func (s *Store) Get(name string) (*memory.BufferBacked, *Image, error) {
	if err := checkName(name); err != nil {
		return nil, nil, err
	}
	img := &Image{}
	found, err := s.db.Read(key(imagePrefix, name), img)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "reading image %q", name)
	}
	if !found {
		return nil, nil, errors.Wrapf(errors.ErrNotFound, "image %q", name)
	}
	if img.Data == nil {
		img.Data = []byte{}
	}
	digest := sha256.Sum256(img.Data)
	if !bytes.Equal(digest[:], img.Digest) || int64(len(img.Data)) != img.Size {
		return nil, nil, errors.Wrapf(errors.ErrInvalidArgument, "image %q is corrupted, digest mismatch", name)
	}
	mem, err := memory.New(img.Data)
	if err != nil {
		return nil, nil, err
	}
	return mem, img, nil
}

func (s *Store) Delete(name string) error {
	if err := checkName(name); err != nil {
		return err
	}
	tx, err := s.db.StartTx()
	if err != nil {
		return err
	}
	if err := tx.Delete(key(imagePrefix, name)); err != nil {
		return rollback(tx, err)
	}
	if err := tx.Delete(key(infoPrefix, name)); err != nil {
		return rollback(tx, err)
	}
	return tx.Commit()
}

// Empty reports whether the store holds no images.
func (s *Store) Empty() (bool, error) {
	return keyvaluedb.IsEmpty(s.db)
}

// List returns the stored images ordered by name.
func (s *Store) List() ([]*ImageInfo, error) {
	it := s.db.Find(infoPrefix)
	defer func() {
		if err := it.Close(); err != nil {
			log.Warning("Closing image iterator failed: %v", err)
		}
	}()
	var result []*ImageInfo
	for ; it.Valid() && bytes.HasPrefix(it.Key(), infoPrefix); it.Next() {
		info := &ImageInfo{}
		if err := it.Value(info); err != nil {
			return nil, errors.Wrapf(err, "decoding %s", it.Key())
		}
		result = append(result, info)
	}
	return result, nil
}

func (img *Image) Info() *ImageInfo {
	return &ImageInfo{
		Name:        img.Name,
		Description: img.Description,
		Size:        img.Size,
		Digest:      img.Digest,
	}
}

func checkName(name string) error {
	if !validName.MatchString(name) {
		return errors.Wrapf(errors.ErrInvalidArgument, "image name %q", name)
	}
	return nil
}

func key(prefix []byte, name string) []byte {
	return append(append([]byte{}, prefix...), name...)
}

func rollback(tx keyvaluedb.DBTransaction, err error) error {
	if rbErr := tx.Rollback(); rbErr != nil {
		log.Warning("Rollback failed: %v", rbErr)
	}
	return err
}
