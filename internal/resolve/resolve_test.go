package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lx-lang/lx/internal/ast"
)

type fakeIndex struct {
	known map[string]bool
}

func (f fakeIndex) HasQualified(name string) bool {
	return f.known[name]
}

func TestResolveBareOwnModule(t *testing.T) {
	idx := fakeIndex{known: map[string]bool{"demo.helper": true}}
	got := Resolve("helper", "demo", nil, idx)
	assert.Equal(t, "demo.helper", got)
}

func TestResolveBareViaImport(t *testing.T) {
	idx := fakeIndex{known: map[string]bool{"other.util": true}}
	imports := []ast.Import{{Path: "other"}}
	got := Resolve("util", "demo", imports, idx)
	assert.Equal(t, "other.util", got)
}

func TestResolveBareUnknownReturnsUnchanged(t *testing.T) {
	idx := fakeIndex{known: map[string]bool{}}
	got := Resolve("mystery", "demo", nil, idx)
	assert.Equal(t, "mystery", got)
}

func TestResolveDottedViaAlias(t *testing.T) {
	idx := fakeIndex{known: map[string]bool{"other.pkg.util": true}}
	imports := []ast.Import{{Path: "other.pkg", Alias: "o"}}
	got := Resolve("o.util", "demo", imports, idx)
	assert.Equal(t, "other.pkg.util", got)
}

func TestResolveDottedViaLastSegment(t *testing.T) {
	idx := fakeIndex{known: map[string]bool{"other.pkg.util": true}}
	imports := []ast.Import{{Path: "other.pkg"}}
	got := Resolve("pkg.util", "demo", imports, idx)
	assert.Equal(t, "other.pkg.util", got)
}

func TestResolveIdempotentOnAlreadyQualified(t *testing.T) {
	idx := fakeIndex{known: map[string]bool{"demo.helper": true}}
	got := Resolve("demo.helper", "demo", nil, idx)
	assert.Equal(t, "demo.helper", got)
}

func TestResolveDottedNoImportMatchReturnsUnchanged(t *testing.T) {
	idx := fakeIndex{known: map[string]bool{}}
	imports := []ast.Import{{Path: "other"}}
	got := Resolve("unrelated.thing", "demo", imports, idx)
	assert.Equal(t, "unrelated.thing", got)
}
