package interp_test

import (
	"bytes"
	"testing"

	"github.com/sdecook/glox/internal/lox/diag"
	"github.com/sdecook/glox/internal/lox/interp"
	"github.com/sdecook/glox/internal/lox/parser"
	"github.com/sdecook/glox/internal/lox/resolver"
	"github.com/sdecook/glox/internal/lox/scanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, src string) (string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	r := diag.New(&stderr)

	toks := scanner.New(src, r).Scan()
	stmts := parser.New(toks, r).Parse()
	require.False(t, r.HadError(), "fixture must parse cleanly: %s", stderr.String())

	locals := resolver.New(r).Resolve(stmts)
	require.False(t, r.HadError(), "fixture must resolve cleanly: %s", stderr.String())

	interp.New(&stdout, r).Interpret(stmts, locals)
	return stdout.String(), stderr.String()
}

func TestArithmeticPrecedenceAndNoTrailingZero(t *testing.T) {
	out, _ := run(t, `print 1 + 2 * 3;`)
	assert.Equal(t, "7\n", out)
}

func TestStringConcatenation(t *testing.T) {
	out, _ := run(t, `print "foo" + "bar";`)
	assert.Equal(t, "foobar\n", out)
}

func TestClosureCapturesEnvironment(t *testing.T) {
	out, _ := run(t, `
		fun makeCounter() {
			var i = 0;
			fun count() {
				i = i + 1;
				print i;
			}
			return count;
		}
		var counter = makeCounter();
		counter();
		counter();
	`)
	assert.Equal(t, "1\n2\n", out)
}

func TestClassInheritanceAndSuper(t *testing.T) {
	out, _ := run(t, `
		class Doughnut {
			cook() { print "Fry until golden brown."; }
		}
		class BostonCream < Doughnut {
			cook() {
				super.cook();
				print "Pipe full of custard and coat with chocolate.";
			}
		}
		BostonCream().cook();
	`)
	assert.Equal(t, "Fry until golden brown.\nPipe full of custard and coat with chocolate.\n", out)
}

func TestInitializerAlwaysReturnsThis(t *testing.T) {
	out, _ := run(t, `
		class Thing {
			init(x) { this.x = x; }
		}
		var t = Thing(5);
		print t.x;
	`)
	assert.Equal(t, "5\n", out)
}

func TestUndefinedVariableIsRuntimeError(t *testing.T) {
	out, errOut := run(t, `print nope;`)
	assert.Equal(t, "", out)
	assert.Contains(t, errOut, "Undefined variable 'nope'.")
}

func TestAddingNumberAndStringIsRuntimeError(t *testing.T) {
	_, errOut := run(t, `print 1 + "two";`)
	assert.Contains(t, errOut, "Operands must be two numbers or two strings.")
}

func TestForLoopAccumulates(t *testing.T) {
	out, _ := run(t, `
		var total = 0;
		for (var i = 1; i <= 4; i = i + 1) {
			total = total + i;
		}
		print total;
	`)
	assert.Equal(t, "10\n", out)
}

func TestInterpreterPersistsGlobalsAcrossCalls(t *testing.T) {
	var stdout, stderr bytes.Buffer
	r := diag.New(&stderr)
	i := interp.New(&stdout, r)

	for _, src := range []string{`var count = 0;`, `count = count + 1; print count;`, `count = count + 1; print count;`} {
		toks := scanner.New(src, r).Scan()
		stmts := parser.New(toks, r).Parse()
		require.False(t, r.HadError())
		locals := resolver.New(r).Resolve(stmts)
		require.False(t, r.HadError())
		i.Interpret(stmts, locals)
	}

	assert.Equal(t, "1\n2\n", stdout.String())
}
