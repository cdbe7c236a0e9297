// Package eligibility decides which records may be exported: a record is
// dropped when its UID is restricted by policy or already ingested.
package eligibility

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"etdbatch/internal/policy"
	"etdbatch/internal/storage"
)

type Reason string

const (
	ReasonNone       Reason = ""
	ReasonRestricted Reason = "restricted"
	ReasonDuplicate  Reason = "duplicate"
)

// Restricted is the set of numeric UIDs covered by the restriction policy.
type Restricted struct {
	ranges     []policy.Range
	ids        map[int64]struct{}
	exceptions map[int64]struct{}
}

func NewRestricted(p policy.Restricted) *Restricted {
	r := &Restricted{
		ranges:     append([]policy.Range(nil), p.Ranges...),
		ids:        map[int64]struct{}{},
		exceptions: map[int64]struct{}{},
	}
	for _, s := range p.Sets {
		for _, id := range s.IDs {
			r.ids[id] = struct{}{}
		}
	}
	for _, id := range p.Exceptions {
		r.exceptions[id] = struct{}{}
	}
	return r
}

// Contains reports membership. UIDs that are not plain integers are never
// restricted.
func (r *Restricted) Contains(uid string) bool {
	n, err := strconv.ParseInt(uid, 10, 64)
	if err != nil {
		return false
	}
	if _, ok := r.exceptions[n]; ok {
		return false
	}
	if _, ok := r.ids[n]; ok {
		return true
	}
	for _, rg := range r.ranges {
		if n >= rg.First && n <= rg.Last {
			return true
		}
	}
	return false
}

type Duplicates map[string]struct{}

func (d Duplicates) Contains(uid string) bool {
	_, ok := d[uid]
	return ok
}

func (d Duplicates) add(raw, ext string) {
	v := strings.TrimSpace(raw)
	if ext != "" {
		v = strings.TrimSpace(strings.TrimSuffix(v, ext))
	}
	if v != "" {
		d[v] = struct{}{}
	}
}

// LoadDuplicateList reads one "<uid><ext>" entry per line.
func LoadDuplicateList(path, ext string) (Duplicates, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("duplicates: %w", err)
	}
	defer f.Close()

	d := Duplicates{}
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		d.add(sc.Text(), ext)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("duplicates: read %s: %w", path, err)
	}
	return d, nil
}

// LoadDuplicateDB reads the first column of query from a SQLite inventory.
func LoadDuplicateDB(path, query, ext string) (Duplicates, error) {
	db, err := storage.Open(path)
	if err != nil {
		return nil, fmt.Errorf("duplicates: open %s: %w", path, err)
	}
	defer db.Close()

	uids, err := db.ListUIDs(query)
	if err != nil {
		return nil, fmt.Errorf("duplicates: %w", err)
	}
	d := Duplicates{}
	for _, u := range uids {
		d.add(u, ext)
	}
	return d, nil
}

// LoadDuplicates picks the list or database loader from the file extension.
func LoadDuplicates(path, query, ext string) (Duplicates, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return LoadDuplicateDB(path, query, ext)
	default:
		return LoadDuplicateList(path, ext)
	}
}

type Filter struct {
	restricted *Restricted
	duplicates Duplicates
}

func New(p *policy.Policy, dups Duplicates) *Filter {
	if dups == nil {
		dups = Duplicates{}
	}
	return &Filter{restricted: NewRestricted(p.Restricted), duplicates: dups}
}

// Check reports whether uid may be exported, and if not, why.
func (f *Filter) Check(uid string) (bool, Reason) {
	if f.restricted.Contains(uid) {
		return false, ReasonRestricted
	}
	if f.duplicates.Contains(uid) {
		return false, ReasonDuplicate
	}
	return true, ReasonNone
}
