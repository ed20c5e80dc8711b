// Package ledgerstore persists decoded ledger state entries in goleveldb,
// keyed by their object index.
package ledgerstore

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/anyswap/xrpl-codec/codec"
	"github.com/anyswap/xrpl-codec/common"
	"github.com/anyswap/xrpl-codec/log"
	"github.com/pborman/uuid"
	goleveldb "github.com/syndtr/goleveldb/leveldb"
	dberrors "github.com/syndtr/goleveldb/leveldb/errors"
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"
)

const (
	// minCache is the minimum amount of memory in megabytes to allocate to leveldb
	// read and write caching, split half and half.
	minCache = 16

	// minHandles is the minimum number of files handles to allocate to the open
	// database files.
	minHandles = 16

	indexLength = 32
)

// key spaces
var (
	entryPrefix  = []byte("e")
	importPrefix = []byte("i")
)

// ErrNotFound is returned for a missing entry.
var ErrNotFound = dberrors.ErrNotFound

// IsNotFoundErr is err 'ErrNotFound'
func IsNotFoundErr(err error) bool {
	return errors.Is(err, dberrors.ErrNotFound)
}

// Store holds ledger entries as their canonical binary encoding, so a
// stored entry always decodes to what the codec would produce.
type Store struct {
	path  string
	lvldb *goleveldb.DB
	codec *codec.Codec
}

// ImportRecord describes one ledger data import.
type ImportRecord struct {
	ID      string    `json:"id"`
	Entries int       `json:"entries"`
	Bytes   int       `json:"bytes"`
	Time    time.Time `json:"time"`
}

// Open opens or creates the store at path.
func Open(path string, cache, handles int, readonly bool, c *codec.Codec) (*Store, error) {
	if cache < minCache {
		cache = minCache
	}
	if handles < minHandles {
		handles = minHandles
	}
	options := &opt.Options{
		Filter:                 filter.NewBloomFilter(10),
		DisableSeeksCompaction: true,
		OpenFilesCacheCapacity: handles,
		BlockCacheCapacity:     cache / 2 * opt.MiB,
		WriteBuffer:            cache / 4 * opt.MiB, // Two of these are used internally
		ReadOnly:               readonly,
	}
	usedCache := options.GetBlockCacheCapacity() + options.GetWriteBuffer()*2
	logCtx := []interface{}{"database", path, "cache", common.StorageSize(usedCache), "handles", options.GetOpenFilesCacheCapacity()}
	if readonly {
		logCtx = append(logCtx, "readonly", "true")
	}
	log.Info("Allocated cache and file handles", logCtx...)

	// Open the db and recover any potential corruptions
	db, err := goleveldb.OpenFile(path, options)
	if dberrors.IsCorrupted(err) {
		db, err = goleveldb.RecoverFile(path, nil)
	}
	if err != nil {
		return nil, err
	}
	if c == nil {
		c = codec.Default()
	}
	return &Store{path: path, lvldb: db, codec: c}, nil
}

// Close flushes any pending data to disk and closes the database.
func (s *Store) Close() error {
	return s.lvldb.Close()
}

// Path returns the path to the database directory.
func (s *Store) Path() string {
	return s.path
}

func parseIndex(index string) ([]byte, error) {
	b, err := hex.DecodeString(index)
	if err != nil || len(b) != indexLength {
		return nil, fmt.Errorf("%w: bad ledger index %q", codec.ErrInvalidHashLength, index)
	}
	return b, nil
}

func entryKey(index []byte) []byte {
	return append(append(make([]byte, 0, len(entryPrefix)+len(index)), entryPrefix...), index...)
}

func (s *Store) encodeEntry(entry map[string]interface{}) (key, value []byte, err error) {
	index, ok := entry[codec.IndexKey].(string)
	if !ok {
		return nil, nil, fmt.Errorf("%w: entry without %s", codec.ErrInvalidValue, codec.IndexKey)
	}
	raw, err := parseIndex(index)
	if err != nil {
		return nil, nil, err
	}
	value, err = s.codec.Encode(entry)
	if err != nil {
		return nil, nil, err
	}
	return entryKey(raw), value, nil
}

// Put stores entry under its index field.
func (s *Store) Put(entry map[string]interface{}) error {
	key, value, err := s.encodeEntry(entry)
	if err != nil {
		return err
	}
	return s.lvldb.Put(key, value, nil)
}

// Has reports whether an entry is stored under index.
func (s *Store) Has(index string) (bool, error) {
	raw, err := parseIndex(index)
	if err != nil {
		return false, err
	}
	return s.lvldb.Has(entryKey(raw), nil)
}

// Get decodes the entry stored under index.
func (s *Store) Get(index string) (map[string]interface{}, error) {
	raw, err := parseIndex(index)
	if err != nil {
		return nil, err
	}
	value, err := s.lvldb.Get(entryKey(raw), nil)
	if err != nil {
		return nil, err
	}
	return s.decodeEntry(raw, value)
}

func (s *Store) decodeEntry(index, value []byte) (map[string]interface{}, error) {
	entry, err := s.codec.Decode(value)
	if err != nil {
		return nil, fmt.Errorf("entry %X: %w", index, err)
	}
	entry[codec.IndexKey] = strings.ToUpper(hex.EncodeToString(index))
	return entry, nil
}

// Delete removes the entry stored under index.
func (s *Store) Delete(index string) error {
	raw, err := parseIndex(index)
	if err != nil {
		return err
	}
	return s.lvldb.Delete(entryKey(raw), nil)
}

// ImportLedgerData decodes a ledger state blob and writes every entry in a
// single batch. Nothing is written if any entry fails to decode.
func (s *Store) ImportLedgerData(blob []byte) (*ImportRecord, error) {
	entries, err := s.codec.DecodeLedgerData(blob)
	if err != nil {
		return nil, err
	}
	batch := new(goleveldb.Batch)
	for i, entry := range entries {
		key, value, err := s.encodeEntry(entry)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		batch.Put(key, value)
	}
	record := &ImportRecord{
		ID:      uuid.New(),
		Entries: len(entries),
		Bytes:   len(blob),
		Time:    time.Now().UTC(),
	}
	meta, err := json.Marshal(record)
	if err != nil {
		return nil, err
	}
	batch.Put(append(append([]byte{}, importPrefix...), record.ID...), meta)
	if err := s.lvldb.Write(batch, nil); err != nil {
		return nil, err
	}
	log.Info("imported ledger data", "id", record.ID, "entries", record.Entries, "size", common.StorageSize(record.Bytes))
	return record, nil
}

// Iterate calls fn for every stored entry in index order until fn returns
// an error.
func (s *Store) Iterate(fn func(entry map[string]interface{}) error) error {
	iter := s.lvldb.NewIterator(util.BytesPrefix(entryPrefix), nil)
	defer iter.Release()
	for iter.Next() {
		index := iter.Key()[len(entryPrefix):]
		entry, err := s.decodeEntry(index, iter.Value())
		if err != nil {
			return err
		}
		if err := fn(entry); err != nil {
			return err
		}
	}
	return iter.Error()
}

// Imports lists the recorded imports, oldest first.
func (s *Store) Imports() ([]*ImportRecord, error) {
	iter := s.lvldb.NewIterator(util.BytesPrefix(importPrefix), nil)
	defer iter.Release()
	var records []*ImportRecord
	for iter.Next() {
		record := new(ImportRecord)
		if err := json.Unmarshal(iter.Value(), record); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := iter.Error(); err != nil {
		return nil, err
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Time.Before(records[j].Time) })
	return records, nil
}

// Compact flattens the entry key space.
func (s *Store) Compact() error {
	return s.lvldb.CompactRange(*util.BytesPrefix(entryPrefix))
}
