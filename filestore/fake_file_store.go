package filestore

import (
	"fmt"
	"io"
	"io/ioutil"
	"time"
)

// FakeFileStore holds uploads in memory, for tests.
type FakeFileStore struct {
	Stored map[string][]byte
}

func NewFakeFileStore() *FakeFileStore {
	return &FakeFileStore{Stored: make(map[string][]byte)}
}

func (f *FakeFileStore) Store(key string, body io.Reader, contentType string) error {
	data, err := ioutil.ReadAll(body)
	if err != nil {
		return err
	}
	f.Stored[key] = data
	return nil
}

func (f *FakeFileStore) PublicUrl(key string) string {
	return "https://fake.test/" + key
}

func (f *FakeFileStore) SignedUrl(key string, ttl time.Duration) (string, error) {
	return fmt.Sprintf("https://fake.test/%s?signed=1&ttl=%d", key, int64(ttl.Seconds())), nil
}

func (f *FakeFileStore) CleanUp() {}
