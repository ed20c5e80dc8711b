package codec

import (
	"fmt"
	"sync"

	"github.com/anyswap/xrpl-codec/definitions"
	. "gopkg.in/check.v1"
)

type ConcurrentSuite struct{}

var _ = Suite(&ConcurrentSuite{})

const workers = 16

// roundTrip encodes and decodes every fixture and reports the first
// mismatch.
func roundTrip(codec *Codec, fixtures []txFixture) error {
	for _, test := range fixtures {
		encoded, err := codec.EncodeHex(test.JSON)
		if err != nil {
			return fmt.Errorf("%s: %w", test.Description, err)
		}
		if encoded != test.Binary {
			return fmt.Errorf("%s: encoded %s", test.Description, encoded)
		}
		if _, err := codec.DecodeHex(encoded); err != nil {
			return fmt.Errorf("%s: %w", test.Description, err)
		}
		id, err := codec.TransactionID(test.JSON)
		if err != nil {
			return fmt.Errorf("%s: %w", test.Description, err)
		}
		if test.Hash != "" && id != test.Hash {
			return fmt.Errorf("%s: id %s", test.Description, id)
		}
	}
	return nil
}

func (s *ConcurrentSuite) TestSharedCodec(c *C) {
	fixtures := loadTransactions(c)
	var (
		wg      sync.WaitGroup
		errs    = make([]error, workers)
		codecs  = make([]*Codec, workers)
		defsets = make([]*definitions.Definitions, workers)
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			codecs[i] = Default()
			defsets[i] = definitions.Default()
			errs[i] = roundTrip(codecs[i], fixtures)
		}(i)
	}
	wg.Wait()
	for i := 0; i < workers; i++ {
		c.Check(errs[i], IsNil, Commentf("worker %d", i))
		c.Check(codecs[i], Equals, codecs[0])
		c.Check(defsets[i], Equals, defsets[0])
	}
}

func (s *ConcurrentSuite) TestExtendWhileEncoding(c *C) {
	fixtures := loadTransactions(c)
	base := Default().Definitions()
	var (
		wg   sync.WaitGroup
		errs = make([]error, workers)
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				errs[i] = roundTrip(Default(), fixtures)
				return
			}
			overlay := fmt.Sprintf(`{"TRANSACTION_TYPES": {"Concurrent%d": %d}}`, i, 300+i)
			defs, err := base.ExtendJSON([]byte(overlay))
			if err != nil {
				errs[i] = err
				return
			}
			errs[i] = roundTrip(New(defs), fixtures)
		}(i)
	}
	wg.Wait()
	for i, err := range errs {
		c.Check(err, IsNil, Commentf("worker %d", i))
	}
	_, ok := base.TransactionTypeCode("Concurrent1")
	c.Check(ok, Equals, false)
}
