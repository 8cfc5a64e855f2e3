package dataset

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"github.com/hashicorp/golang-lru"
	"github.com/hscells/ghost"
	"github.com/peterbourgon/diskv"
	"github.com/pkg/errors"
	"hash/fnv"
	"os"
)

// ErrCacheMiss is returned by a FolderCacher that does not hold a key.
var ErrCacheMiss = errors.New("cache miss")

// FolderCacher caches the parsed dataset of a benchmark folder.
type FolderCacher interface {
	Get(key string) (Dataset, error)
	Set(key string, d Dataset) error
}

// BlockTransform determines how diskv should partition folders.
func BlockTransform(blockSize int) func(string) []string {
	return func(s string) []string {
		var (
			sliceSize = len(s) / blockSize
			pathSlice = make([]string, sliceSize)
		)
		for i := 0; i < sliceSize; i++ {
			from, to := i*blockSize, (i*blockSize)+blockSize
			pathSlice[i] = s[from:to]
		}
		return pathSlice
	}
}

// folderKey identifies the current contents of a folder by path, size and modification time of both files.
func folderKey(paths ...string) (string, error) {
	h := fnv.New64a()
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(h, "%s\x00%d\x00%d\x00", p, info.Size(), info.ModTime().UnixNano())
	}
	return fmt.Sprintf("%016x", h.Sum64()), nil
}

type lruFolderCache struct {
	*lru.Cache
}

func (c lruFolderCache) Get(key string) (Dataset, error) {
	v, ok := c.Cache.Get(key)
	if !ok {
		return Dataset{}, ErrCacheMiss
	}
	d := v.(Dataset)
	return Dataset{
		X: append([][]float64(nil), d.X...),
		Y: append([]float64(nil), d.Y...),
	}, nil
}

func (c lruFolderCache) Set(key string, d Dataset) error {
	c.Cache.Add(key, d)
	return nil
}

// NewLRUFolderCache creates an in-memory cache holding at most size folders.
func NewLRUFolderCache(size int) (FolderCacher, error) {
	c, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return lruFolderCache{c}, nil
}

type diskvFolderCache struct {
	*diskv.Diskv
}

func (d diskvFolderCache) Get(key string) (Dataset, error) {
	b, err := d.Read(key)
	if err != nil {
		return Dataset{}, ErrCacheMiss
	}
	var ds Dataset
	err = gob.NewDecoder(bytes.NewReader(b)).Decode(&ds)
	if err != nil {
		return Dataset{}, err
	}
	return ds, nil
}

func (d diskvFolderCache) Set(key string, ds Dataset) error {
	var buff bytes.Buffer
	err := gob.NewEncoder(&buff).Encode(ds)
	if err != nil {
		return err
	}
	return d.Write(key, buff.Bytes())
}

// NewDiskvFolderCache creates an on-disk cache with the specified diskv parameters.
func NewDiskvFolderCache(dv *diskv.Diskv) FolderCacher {
	return diskvFolderCache{dv}
}

// NewFileFolderCache creates a gzip compressed on-disk cache rooted at path.
func NewFileFolderCache(path string) FolderCacher {
	return NewDiskvFolderCache(diskv.New(diskv.Options{
		BasePath:     path,
		Transform:    BlockTransform(8),
		CacheSizeMax: 4096 * 1024,
		Compression:  diskv.NewGzipCompression(),
	}))
}

// ghostStore is the part of a ghost document store the cache uses.
type ghostStore interface {
	Contains(key string) bool
	Get(key string, v interface{}) error
	Put(key string, v interface{}) error
	Close() error
}

// GhostFolderCache stores parsed folders in a gob encoded ghost document store. It must be closed after use.
type GhostFolderCache struct {
	g ghostStore
}

func (c *GhostFolderCache) Get(key string) (Dataset, error) {
	if !c.g.Contains(key) {
		return Dataset{}, ErrCacheMiss
	}
	var d Dataset
	if err := c.g.Get(key, &d); err != nil {
		return Dataset{}, err
	}
	return d, nil
}

func (c *GhostFolderCache) Set(key string, d Dataset) error {
	return c.g.Put(key, d)
}

// Close closes the underlying document store.
func (c *GhostFolderCache) Close() error {
	return c.g.Close()
}

// NewGhostFolderCache opens (or creates) a ghost document store at path.
func NewGhostFolderCache(path string) (*GhostFolderCache, error) {
	g, err := ghost.Open(path, ghost.NewGobSchema(Dataset{}))
	if err != nil {
		return nil, errors.Wrapf(err, "opening ghost store %s", path)
	}
	return &GhostFolderCache{g: g}, nil
}
