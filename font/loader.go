// seehuhn.de/go/pdfinterp - a content stream interpreter for PDF files
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package font

import (
	"sync"

	"seehuhn.de/go/pdfinterp/pdf"
)

// A Loader reads fonts and caches the result.
//
// Fonts given as indirect objects are cached by the pair (Getter,
// Reference), so that every font is only read once, even when it is used
// by many content streams.  Getters used with a Loader must be comparable
// (for example pointers).
//
// It is safe to use a Loader concurrently from multiple goroutines.  If
// several goroutines request the same font at the same time, the font is
// read once and all callers receive the same result.
type Loader struct {
	mu    sync.Mutex
	cache map[cacheKey]*cacheEntry
}

type cacheKey struct {
	r   pdf.Getter
	ref pdf.Reference
}

type cacheEntry struct {
	ready chan struct{}
	font  Font
	err   error
}

// NewLoader returns a new, empty font cache.
func NewLoader() *Loader {
	return &Loader{
		cache: make(map[cacheKey]*cacheEntry),
	}
}

// Load returns the font described by obj.
// Direct font dictionaries are read every time and are not cached.
func (l *Loader) Load(r pdf.Getter, obj pdf.Object) (Font, error) {
	ref, isRef := obj.(pdf.Reference)
	if !isRef {
		return Read(r, obj)
	}

	key := cacheKey{r, ref}
	l.mu.Lock()
	if l.cache == nil {
		l.cache = make(map[cacheKey]*cacheEntry)
	}
	e, found := l.cache[key]
	if !found {
		e = &cacheEntry{ready: make(chan struct{})}
		l.cache[key] = e
	}
	l.mu.Unlock()

	if found {
		<-e.ready
		return e.font, e.err
	}

	e.font, e.err = Read(r, ref)
	close(e.ready)
	return e.font, e.err
}

// Len returns the number of cached fonts.
func (l *Loader) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.cache)
}
