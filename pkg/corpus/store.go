package corpus

import (
	"encoding/json"
	"time"

	"github.com/boltdb/bolt"
	"github.com/pkg/errors"
)

// Sample is a named input kept for re-parsing against a language.
type Sample struct {
	Language  string
	Name      string
	Input     string
	UpdatedAt time.Time
}

// Store keeps samples in a bolt file, one bucket per language, keyed by
// sample name.
type Store struct {
	boltDB *bolt.DB
	now    func() time.Time
}

func Open(dataFile string) (*Store, error) {
	boltDB, err := bolt.Open(dataFile, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Wrapf(err, "opening corpus %s", dataFile)
	}
	return &Store{
		boltDB: boltDB,
		now:    time.Now,
	}, nil
}

func (s *Store) Close() error {
	return s.boltDB.Close()
}

func checkNames(language, name string) error {
	if language == "" {
		return &invalidName{What: "language"}
	}
	if name == "" {
		return &invalidName{What: "sample"}
	}
	return nil
}

// Save creates or replaces a sample.
func (s *Store) Save(language, name, input string) (*Sample, error) {
	if err := checkNames(language, name); err != nil {
		return nil, err
	}
	sample := &Sample{
		Language:  language,
		Name:      name,
		Input:     input,
		UpdatedAt: s.now().UTC(),
	}
	sampleBytes, err := json.Marshal(sample)
	if err != nil {
		return nil, err
	}
	if err := s.boltDB.Update(func(tx *bolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists([]byte(language))
		if err != nil {
			return err
		}
		return bucket.Put([]byte(name), sampleBytes)
	}); err != nil {
		return nil, errors.Wrap(err, "saving sample")
	}
	return sample, nil
}

func (s *Store) Get(language, name string) (*Sample, error) {
	if err := checkNames(language, name); err != nil {
		return nil, err
	}
	var sample *Sample
	err := s.boltDB.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(language))
		if bucket == nil {
			return &NoSuchSample{Language: language, Name: name}
		}
		sampleBytes := bucket.Get([]byte(name))
		if sampleBytes == nil {
			return &NoSuchSample{Language: language, Name: name}
		}
		sample = &Sample{}
		return decodeSample(sampleBytes, sample)
	})
	if err != nil {
		return nil, err
	}
	return sample, nil
}

// List returns a language's samples ordered by name.
func (s *Store) List(language string) ([]*Sample, error) {
	samples := []*Sample{}
	err := s.boltDB.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(language))
		if bucket == nil {
			return nil
		}
		return bucket.ForEach(func(_ []byte, sampleBytes []byte) error {
			sample := &Sample{}
			if err := decodeSample(sampleBytes, sample); err != nil {
				return err
			}
			samples = append(samples, sample)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return samples, nil
}

// Languages returns the names of languages that have a bucket.
func (s *Store) Languages() ([]string, error) {
	var languages []string
	err := s.boltDB.View(func(tx *bolt.Tx) error {
		return tx.ForEach(func(name []byte, _ *bolt.Bucket) error {
			languages = append(languages, string(name))
			return nil
		})
	})
	return languages, err
}

func (s *Store) Delete(language, name string) error {
	if err := checkNames(language, name); err != nil {
		return err
	}
	return s.boltDB.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(language))
		if bucket == nil || bucket.Get([]byte(name)) == nil {
			return &NoSuchSample{Language: language, Name: name}
		}
		return bucket.Delete([]byte(name))
	})
}

func decodeSample(sampleBytes []byte, sample *Sample) error {
	if err := json.Unmarshal(sampleBytes, sample); err != nil {
		return errors.Wrap(err, "decoding sample")
	}
	return nil
}
