// Package inventory indexes the mod files installed in a directory.
package inventory

import (
	"os"
	"sort"
	"strings"

	"github.com/apex/log"
	"github.com/go-git/go-billy/v5"
	"github.com/pkg/errors"

	"github.com/tie/modsync/fetcher"
	"github.com/tie/modsync/modsync"
)

// Index maps project identifiers to installed files.
// It is built once per run and must not be modified afterwards.
type Index map[string]modsync.InstalledMod

func (idx Index) Lookup(id string) (modsync.InstalledMod, bool) {
	m, ok := idx[id]
	return m, ok
}

// Mods returns installed mods sorted by file name.
func (idx Index) Mods() []modsync.InstalledMod {
	mods := make([]modsync.InstalledMod, 0, len(idx))
	for _, m := range idx {
		mods = append(mods, m)
	}
	sort.Slice(mods, func(i, j int) bool {
		return mods[i].Filename < mods[j].Filename
	})
	return mods
}

// Inventory is the content of a mods directory.
type Inventory struct {
	Index Index

	// Duplicates are managed files for a project that already has
	// a file in Index.
	Duplicates []modsync.InstalledMod

	// Partial are temporary files left behind by interrupted
	// downloads.
	Partial []string
}

// Leftovers returns the files that no run will ever update:
// duplicates and partial downloads.
func (inv *Inventory) Leftovers() []string {
	names := make([]string, 0, len(inv.Duplicates)+len(inv.Partial))
	for _, m := range inv.Duplicates {
		names = append(names, m.Filename)
	}
	names = append(names, inv.Partial...)
	sort.Strings(names)
	return names
}

// Scan lists the root of fs and indexes every managed file name.
// Subdirectories and files without a project id segment are ignored.
func Scan(fs billy.Filesystem, l log.Interface) (Index, error) {
	inv, err := Read(fs, l)
	if err != nil {
		return nil, err
	}
	return inv.Index, nil
}

// Read is like Scan but also reports duplicates and partial downloads.
// When several files map to the same project, the first name in
// lexical order is indexed.
func Read(fs billy.Filesystem, l log.Interface) (*Inventory, error) {
	inv := &Inventory{Index: Index{}}
	fis, err := fs.ReadDir("")
	if errors.Is(err, os.ErrNotExist) {
		return inv, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read dir %q", fs.Root())
	}
	names := make([]string, 0, len(fis))
	for _, fi := range fis {
		if fi.IsDir() {
			continue
		}
		names = append(names, fi.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		if strings.HasPrefix(name, fetcher.TempPrefix) {
			l.WithField("file", name).Debug("partial download")
			inv.Partial = append(inv.Partial, name)
			continue
		}
		id, err := modsync.ParseManagedName(name)
		if err != nil {
			l.WithField("file", name).Debug("not a managed file, ignoring")
			continue
		}
		m := modsync.InstalledMod{ID: id, Filename: name}
		if prev, ok := inv.Index[id]; ok {
			l.WithFields(log.Fields{
				"mod":  id,
				"file": name,
				"kept": prev.Filename,
			}).Warn("duplicate mod file, run clean to remove it")
			inv.Duplicates = append(inv.Duplicates, m)
			continue
		}
		inv.Index[id] = m
	}
	return inv, nil
}
