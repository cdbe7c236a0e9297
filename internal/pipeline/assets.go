package pipeline

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ledongthuc/pdf"
)

type AssetStatus struct {
	UID    string
	Path   string
	Exists bool
	Pages  int
	Err    error
}

func (a AssetStatus) OK() bool {
	return a.Exists && a.Err == nil
}

// CheckAssets looks for <pdfDir>/<uid><ext> for every uid and opens each one
// found to count its pages.
func CheckAssets(uids []string, pdfDir, ext string) []AssetStatus {
	out := make([]AssetStatus, 0, len(uids))
	for _, uid := range uids {
		st := AssetStatus{UID: uid, Path: filepath.Join(pdfDir, uid+ext)}
		if _, err := os.Stat(st.Path); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				st.Err = err
			}
			out = append(out, st)
			continue
		}
		st.Exists = true
		st.Pages, st.Err = countPages(st.Path)
		out = append(out, st)
	}
	return out
}

// The pdf reader panics on some malformed files.
func countPages(path string) (n int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.New("unreadable pdf")
		}
	}()
	f, r, err := pdf.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return r.NumPage(), nil
}
