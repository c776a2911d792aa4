// Package placeholder renders stand-in product artwork. The same name always
// yields the same SVG and the same storage path, so re-seeding never
// duplicates files.
package placeholder

import (
	"context"
	"encoding/xml"
	"fmt"
	"hash/fnv"
	"strings"
	"sync"
	"unicode"

	"github.com/shashiranjanraj/storefront/pkg/storage"
	"github.com/shashiranjanraj/storefront/pkg/workerpool"
)

// Dir is the storage directory placeholders are written to.
const Dir = "placeholders"

var palette = []string{
	"#2563eb", "#7c3aed", "#db2777", "#dc2626",
	"#ea580c", "#ca8a04", "#16a34a", "#0891b2",
}

func sum(name string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(name)) //nolint:errcheck
	return h.Sum32()
}

// Initials returns up to two upper-cased initials of name, or "?".
func Initials(name string) string {
	var out []rune
	for _, word := range strings.FieldsFunc(name, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		out = append(out, unicode.ToUpper([]rune(word)[0]))
		if len(out) == 2 {
			break
		}
	}
	if len(out) == 0 {
		return "?"
	}
	return string(out)
}

// Color picks the background colour for name from a fixed palette.
func Color(name string) string {
	return palette[sum(name)%uint32(len(palette))]
}

// SVG renders a 400x400 tile with the initials of name.
func SVG(name string) []byte {
	var label strings.Builder
	xml.EscapeText(&label, []byte(Initials(name))) //nolint:errcheck
	var title strings.Builder
	xml.EscapeText(&title, []byte(name)) //nolint:errcheck

	return []byte(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="400" height="400" viewBox="0 0 400 400">`+
		`<title>%s</title>`+
		`<rect width="400" height="400" fill="%s"/>`+
		`<text x="200" y="200" dy=".35em" text-anchor="middle" font-family="sans-serif" font-size="140" fill="#ffffff">%s</text>`+
		`</svg>`, title.String(), Color(name), label.String()))
}

// Path returns the disk path for name's placeholder.
func Path(name string) string {
	var slug strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			slug.WriteRune(r)
			dash = false
		case !dash && slug.Len() > 0:
			slug.WriteByte('-')
			dash = true
		}
	}
	s := strings.TrimSuffix(slug.String(), "-")
	if s == "" {
		s = "item"
	}
	return fmt.Sprintf("%s/%s-%08x.svg", Dir, s, sum(name))
}

// Generator writes placeholders to a storage disk.
type Generator struct {
	disk storage.Disk
}

func NewGenerator(disk storage.Disk) *Generator {
	return &Generator{disk: disk}
}

// Ensure writes name's placeholder unless it already exists and returns its
// public URL.
func (g *Generator) Ensure(ctx context.Context, name string) (string, error) {
	p := Path(name)
	if !g.disk.Exists(ctx, p) {
		if err := g.disk.Put(ctx, p, SVG(name)); err != nil {
			return "", fmt.Errorf("placeholder: %s: %w", name, err)
		}
	}
	return g.disk.URL(p), nil
}

// EnsureAll writes the placeholders for names on workers goroutines and
// returns their URLs keyed by name.
func (g *Generator) EnsureAll(ctx context.Context, names []string, workers int) (map[string]string, error) {
	var mu sync.Mutex
	urls := make(map[string]string, len(names))

	pool := workerpool.New(ctx, workers)
	for _, name := range names {
		mu.Lock()
		_, seen := urls[name]
		urls[name] = ""
		mu.Unlock()
		if seen {
			continue
		}
		if err := pool.Submit(func(ctx context.Context) error {
			url, err := g.Ensure(ctx, name)
			if err != nil {
				return err
			}
			mu.Lock()
			urls[name] = url
			mu.Unlock()
			return nil
		}); err != nil {
			pool.Wait() //nolint:errcheck
			return nil, err
		}
	}
	if err := pool.Wait(); err != nil {
		return nil, err
	}
	return urls, nil
}
