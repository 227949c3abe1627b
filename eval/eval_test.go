package eval_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twied/noumenon/builtin"
	"github.com/twied/noumenon/eval"
	"github.com/twied/noumenon/parser"
)

func runSrc(t *testing.T, src string) string {
	t.Helper()
	var out bytes.Buffer
	ev := eval.New(builtin.All(), true)
	ev.Out = &out
	stmts, err := parser.Parse(src)
	require.NoError(t, err)
	ev.Run(stmts)
	return out.String()
}

func TestScenarioArithmeticPrecedence(t *testing.T) {
	assert.Equal(t, "7\n", runSrc(t, `println(1 + 2 * 3);`))
}

func TestScenarioFibonacci(t *testing.T) {
	out := runSrc(t, `var f = function(n) { if (n < 2) { return n; } return f(n-1) + f(n-2); }; println(f(10));`)
	assert.Equal(t, "55\n", out)
}

func TestScenarioObjectIterationSortedKeys(t *testing.T) {
	out := runSrc(t, `var o = {a: 1, b: 2}; o["c"] = 3; for (var k, v : o) { print(k); print("="); println(v); }`)
	assert.Equal(t, "a=1\nb=2\nc=3\n", out)
}

func TestScenarioStringIterationReversal(t *testing.T) {
	out := runSrc(t, `var s = ""; for (var c : "héllo") { s = c + s; } println(s);`)
	assert.Equal(t, "olléh\n", out)
}

func TestScenarioTypeofAll(t *testing.T) {
	out := runSrc(t, `println(typeof(1)); println(typeof(1.0)); println(typeof([])); println(typeof({})); println(typeof(null));`)
	assert.Equal(t, "Int\nFloat\nArray\nObject\nNull\n", out)
}

func TestScenarioArraySubtractionAndLength(t *testing.T) {
	out := runSrc(t, `var a = [10,20,30]; println(a - 20); println(length(a - 20));`)
	assert.Equal(t, "[10, 30]\n2\n", out)
}

func TestDivisionByZeroYieldsNull(t *testing.T) {
	out := runSrc(t, `println(typeof(1 / 0)); println(typeof(1 % 0));`)
	assert.Equal(t, "Null\nNull\n", out)
}

func TestTruncatedDivisionIdentity(t *testing.T) {
	out := runSrc(t, `var a = 17; var b = 5; println((a/b)*b + a%b);`)
	assert.Equal(t, "17\n", out)
}

func TestOnlyBoolTrueIsTruthy(t *testing.T) {
	out := runSrc(t, `if (1) { println("entered"); } println("after");`)
	assert.Equal(t, "after\n", out, "non-Bool truthy values never enter a then-branch")
}

func TestRedefinitionIsRefusedPriorValueStands(t *testing.T) {
	out := runSrc(t, `var x = 1; var x = 2; println(x);`)
	assert.Equal(t, "1\n", out)
}

func TestShadowingInNestedScopeIsAllowed(t *testing.T) {
	out := runSrc(t, `var x = 1; if (true) { var x = 2; println(x); } println(x);`)
	assert.Equal(t, "2\n1\n", out)
}

func TestDynamicScopingResolvesAgainstCaller(t *testing.T) {
	// g's body references "y", which is not in its own definition scope but
	// is bound in the caller's scope at call time: dynamic, not lexical,
	// scoping per the language's open-question decision.
	out := runSrc(t, `
		var g = function() { return y; };
		var caller = function() { var y = 99; return g(); };
		println(caller());
	`)
	assert.Equal(t, "99\n", out)
}

func TestFunctionCallMissingArgsBecomeNull(t *testing.T) {
	out := runSrc(t, `var f = function(a, b) { println(typeof(b)); return a; }; f(1);`)
	assert.Equal(t, "Null\n", out)
}

func TestFunctionCallExtraArgsIgnored(t *testing.T) {
	out := runSrc(t, `var f = function(a) { return a; }; println(f(1, 2, 3));`)
	assert.Equal(t, "1\n", out)
}

func TestForLoopWithoutKeyBindingIteratesValues(t *testing.T) {
	out := runSrc(t, `for (var v : [1,2,3]) { println(v); }`)
	assert.Equal(t, "1\n2\n3\n", out)
}

func TestIntEqualsFloatIsUndefined(t *testing.T) {
	out := runSrc(t, `println(1 == 1.0);`)
	assert.Equal(t, "null\n", out)
}
