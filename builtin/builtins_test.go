package builtin

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twied/noumenon/eval"
	"github.com/twied/noumenon/parser"
	"github.com/twied/noumenon/value"
)

func newEvaluator(t *testing.T) (*eval.Evaluator, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	ev := eval.New(All(), true)
	ev.Out = &out
	return ev, &out
}

func run(t *testing.T, ev *eval.Evaluator, src string) value.Value {
	t.Helper()
	stmts, err := parser.Parse(src)
	require.NoError(t, err)
	return ev.Run(stmts)
}

func TestPrintAndPrintln(t *testing.T) {
	ev, out := newEvaluator(t)
	run(t, ev, `print("a"); print("b"); println("c");`)
	assert.Equal(t, "abc\n", out.String())
}

func TestTypeof(t *testing.T) {
	ev, out := newEvaluator(t)
	run(t, ev, `println(typeof(1)); println(typeof(1.0)); println(typeof([])); println(typeof({})); println(typeof(null));`)
	assert.Equal(t, "Int\nFloat\nArray\nObject\nNull\n", out.String())
}

func TestRangeAndLength(t *testing.T) {
	ev, out := newEvaluator(t)
	run(t, ev, `var r = range(2, 5); println(length(r)); println(r[0]); println(r[2]);`)
	assert.Equal(t, "3\n2\n4\n", out.String())
}

func TestRangeNegativeSpanIsEmpty(t *testing.T) {
	ev, out := newEvaluator(t)
	run(t, ev, `println(length(range(5, 2)));`)
	assert.Equal(t, "0\n", out.String())
}

func TestLengthOfEmptyCollections(t *testing.T) {
	ev, out := newEvaluator(t)
	run(t, ev, `println(length([])); println(length("")); println(length({}));`)
	assert.Equal(t, "0\n0\n0\n", out.String())
}

func TestLengthWithNoArgsYieldsNull(t *testing.T) {
	ev, out := newEvaluator(t)
	run(t, ev, `println(typeof(length()));`)
	assert.Equal(t, "Null\n", out.String())
}

func TestRequireRunsFileWithArgBound(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lib.noum")
	require.NoError(t, os.WriteFile(path, []byte(`return arg[0] + 1;`), 0o644))

	ev, out := newEvaluator(t)
	run(t, ev, `var r = require("`+filepath.ToSlash(path)+`", 41); println(r);`)
	assert.Equal(t, "42\n", out.String())
}

func TestRequireSeesCallSiteLocalShadowingGlobal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lib.noum")
	require.NoError(t, os.WriteFile(path, []byte(`return x + 1;`), 0o644))

	ev, out := newEvaluator(t)
	run(t, ev, `
		var x = 41;
		var f = function() {
			var x = 999;
			return require("`+filepath.ToSlash(path)+`");
		};
		println(f());
	`)
	// require parents the new scope on the call site, not the root, so it
	// sees f's local x (999), shadowing the global x (41): same as an
	// ordinary call would.
	assert.Equal(t, "1000\n", out.String())
}

func TestRequireSeesCallerLocal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lib.noum")
	require.NoError(t, os.WriteFile(path, []byte(`return x + 1;`), 0o644))

	ev, out := newEvaluator(t)
	run(t, ev, `
		var f = function() {
			var x = 41;
			return require("`+filepath.ToSlash(path)+`");
		};
		println(f());
	`)
	assert.Equal(t, "42\n", out.String())
}

func TestRequireMissingFileYieldsNull(t *testing.T) {
	ev, out := newEvaluator(t)
	run(t, ev, `println(typeof(require("/no/such/file.noum")));`)
	assert.Equal(t, "Null\n", out.String())
}

func TestRequireWithoutExplicitReturnYieldsEmptyObject(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lib.noum")
	require.NoError(t, os.WriteFile(path, []byte(`var x = 1;`), 0o644))

	ev, out := newEvaluator(t)
	run(t, ev, `println(typeof(require("`+filepath.ToSlash(path)+`")));`)
	assert.Equal(t, "Object\n", out.String())
}

func TestListPrintsScopeChainInnermostFirst(t *testing.T) {
	ev, out := newEvaluator(t)
	run(t, ev, `var x = 1; if (true) { var y = 2; list(); }`)
	s := out.String()
	assert.Contains(t, s, "x = 1")
	assert.Contains(t, s, "y = 2")
	assert.Less(t, strings.Index(s, "y = 2"), strings.Index(s, "x = 1"))
}
