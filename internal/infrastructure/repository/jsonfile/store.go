package jsonfile

import (
	"os"
	"path/filepath"
	"strconv"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
)

const (
	trackerFile     = "tracker.json"
	attendanceFile  = "attendance.json"
	performanceFile = "performance.json"
	rosterFile      = "roster.json"
)

// documentStore reads and writes whole JSON documents under root. Writes go
// through temp files in the same directory and renames, so readers never see
// a half written document.
type documentStore struct {
	root string
}

func newDocumentStore(root string) documentStore {
	return documentStore{root: filepath.Clean(root)}
}

func (s documentStore) seasonPath(season int, name string) string {
	return filepath.Join(s.root, strconv.Itoa(season), name)
}

func (s documentStore) read(path string, dst any) (bool, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, crerr.Wrapf(err, "read %s", path)
	}
	if err := sonic.Unmarshal(raw, dst); err != nil {
		return false, crerr.Wrapf(err, "decode %s", path)
	}
	return true, nil
}

// document is one file written by writeAll.
type document struct {
	path  string
	value any
}

// writeAll replaces a set of documents as one unit. Every document is encoded
// and staged in a temp file before the first rename; if a rename fails, the
// files already moved are put back from hard-link backups of their previous
// content.
func (s documentStore) writeAll(docs []document) error {
	payloads := make([][]byte, len(docs))
	for i, doc := range docs {
		raw, err := sonic.ConfigStd.MarshalIndent(doc.value, "", "  ")
		if err != nil {
			return crerr.Wrapf(err, "encode %s", doc.path)
		}
		payloads[i] = append(raw, '\n')
	}

	var scratch []string
	defer func() {
		for _, name := range scratch {
			_ = os.Remove(name)
		}
	}()

	temps := make([]string, len(docs))
	for i, doc := range docs {
		tmpName, err := stage(doc.path, payloads[i])
		if tmpName != "" {
			scratch = append(scratch, tmpName)
		}
		if err != nil {
			return err
		}
		temps[i] = tmpName
	}

	backups := make([]string, len(docs))
	for i, doc := range docs {
		info, err := os.Lstat(doc.path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		backup := temps[i] + ".bak"
		if err := os.Link(doc.path, backup); err != nil {
			return crerr.Wrapf(err, "back up %s", doc.path)
		}
		scratch = append(scratch, backup)
		backups[i] = backup
	}

	for i, doc := range docs {
		if err := os.Rename(temps[i], doc.path); err != nil {
			restore(docs[:i], backups[:i])
			return crerr.Wrapf(err, "replace %s", doc.path)
		}
	}
	return nil
}

// stage writes raw into a synced temp file next to path.
func stage(path string, raw []byte) (string, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", crerr.Wrapf(err, "create directory %s", dir)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return "", crerr.Wrapf(err, "create temp file for %s", path)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		return tmpName, crerr.Wrapf(err, "write %s", tmpName)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return tmpName, crerr.Wrapf(err, "sync %s", tmpName)
	}
	if err := tmp.Close(); err != nil {
		return tmpName, crerr.Wrapf(err, "close %s", tmpName)
	}
	return tmpName, nil
}

// restore undoes renames that already happened. A document without a backup
// did not exist before and is removed again.
func restore(docs []document, backups []string) {
	for i, doc := range docs {
		if backups[i] == "" {
			_ = os.Remove(doc.path)
			continue
		}
		_ = os.Rename(backups[i], doc.path)
	}
}

// seasons lists the season directories holding a tracker.
func (s documentStore) seasons() ([]int, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, crerr.Wrapf(err, "list %s", s.root)
	}

	out := make([]int, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() || len(entry.Name()) != 4 {
			continue
		}
		year, err := strconv.Atoi(entry.Name())
		if err != nil {
			continue
		}
		if _, err := os.Stat(s.seasonPath(year, trackerFile)); err != nil {
			continue
		}
		out = append(out, year)
	}
	return out, nil
}
