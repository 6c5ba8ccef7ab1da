package filestore

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const TmpFileDirPrefix = "_tmp_file_store_"

// LocalFileStore keeps uploads on the local disk for development runs. The
// server mounts the folder under /files so PublicUrl stays resolvable.
type LocalFileStore struct {
	bucket     string
	folderName string
	baseUrl    string
}

func NewLocalFileStore(bucket string, baseUrl string) (*LocalFileStore, error) {
	folderName, err := CreateFolder(bucket)
	if err != nil {
		return nil, err
	}

	return &LocalFileStore{
		bucket:     bucket,
		folderName: folderName,
		baseUrl:    strings.TrimSuffix(baseUrl, "/"),
	}, nil
}

func CreateFolder(bucket string) (string, error) {
	folderName := TmpFileDirPrefix + bucket
	err := os.MkdirAll(folderName, os.ModePerm)
	if err != nil && strings.Contains(err.Error(), "file exists") {
		return folderName, nil
	}
	return folderName, err
}

func DeleteFolder(folderName string) error {
	return os.RemoveAll(folderName)
}

// FolderName exposes the on-disk folder so the server can mount it as a
// static route.
func (s *LocalFileStore) FolderName() string {
	return s.folderName
}

func (s *LocalFileStore) Store(key string, body io.Reader, contentType string) error {
	target := filepath.Join(s.folderName, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(target), os.ModePerm); err != nil {
		return err
	}

	out, err := os.Create(target)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, body)
	return err
}

func (s *LocalFileStore) PublicUrl(key string) string {
	return s.baseUrl + "/files/" + key
}

// SignedUrl on local disk only mimics the expiry contract with a query
// parameter, it is never enforced. Good enough for development.
func (s *LocalFileStore) SignedUrl(key string, ttl time.Duration) (string, error) {
	expires := time.Now().Add(ttl).Unix()
	return fmt.Sprintf("%s/files/%s?expires=%d", s.baseUrl, key, expires), nil
}

func (s *LocalFileStore) CleanUp() {
	DeleteFolder(s.folderName)
}
