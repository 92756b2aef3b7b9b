package repl

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExecuteWithRecoveryAcceptsDeclarationWithoutMain(t *testing.T) {
	r := &Repl{}
	var buf bytes.Buffer
	r.executeWithRecovery(&buf, "fn add(a: u32, b: u32) -> u32 { return a + b; }")

	assert.Contains(t, buf.String(), "ok")
	assert.Contains(t, r.acc, "fn add")
}

func TestExecuteWithRecoveryRejectsBadDeclaration(t *testing.T) {
	r := &Repl{}
	var buf bytes.Buffer
	r.executeWithRecovery(&buf, "fn bad() -> u32 { return undefined_name; }")

	assert.Contains(t, buf.String(), "ANALYSIS")
	assert.Empty(t, r.acc)
}

func TestExecuteWithRecoveryAccumulatesAcrossCalls(t *testing.T) {
	r := &Repl{}
	var buf bytes.Buffer
	r.executeWithRecovery(&buf, "const LIMIT: u32 = 10;")
	assert.Contains(t, r.acc, "LIMIT")

	buf.Reset()
	r.executeWithRecovery(&buf, "fn under(x: u32) -> bool { return x < LIMIT; }")
	assert.Contains(t, buf.String(), "ok")
	assert.Contains(t, r.acc, "fn under")
	assert.Contains(t, r.acc, "LIMIT")
}

func TestExecuteWithRecoveryResetClearsAccumulation(t *testing.T) {
	r := &Repl{}
	var buf bytes.Buffer
	r.executeWithRecovery(&buf, "const LIMIT: u32 = 10;")
	assert.NotEmpty(t, r.acc)

	r.acc = ""
	assert.Empty(t, r.acc)
}
