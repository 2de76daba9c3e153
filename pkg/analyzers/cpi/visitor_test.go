package cpi //nolint:testpackage // testing internal implementation.

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solstat/solstat/pkg/analyzers/analyze"
	"github.com/solstat/solstat/pkg/metrics"
	"github.com/solstat/solstat/pkg/rustast"
)

func classifySource(t *testing.T, source string) *metrics.CallClassificationProfile {
	t.Helper()

	parser := rustast.NewParser()
	root, err := parser.Parse(context.Background(), "test.rs", []byte(source))
	require.NoError(t, err)

	visitor := NewVisitor()
	traverser := analyze.NewTraverser()
	traverser.RegisterVisitor(visitor)
	traverser.Traverse(root)

	return visitor.Profile()
}

func TestVisitor_SingleSignedCall(t *testing.T) {
	t.Parallel()

	source := `
fn pay(client: Client, amount: u64) {
    client.transfer(amount);
}
`
	profile := classifySource(t, source)

	assert.Equal(t, 1, profile.SignedCalls)
	assert.Equal(t, 0, profile.UnsignedCalls)
	assert.Equal(t, 1, profile.Categories[metrics.CategoryToken])
	assert.Equal(t, []string{"token_program"}, profile.DistinctTargets)
	assert.InDelta(t, 12.0, profile.ComplexityScore(), 1e-9)
}

func TestVisitor_UnsignedCall(t *testing.T) {
	t.Parallel()

	source := `
fn flush(client: Client) {
    client.sync_native();
}
`
	profile := classifySource(t, source)

	assert.Equal(t, 0, profile.SignedCalls)
	assert.Equal(t, 1, profile.UnsignedCalls)
	assert.InDelta(t, 2.0, profile.ComplexityScore(), 1e-9)
}

func TestVisitor_LowLevelInvoke(t *testing.T) {
	t.Parallel()

	source := `
fn call_out(ix: Instruction, accounts: Vec<AccountInfo>) {
    invoke(&ix, &accounts);
    invoke_signed(&ix, &accounts, &[&seeds]);
}
`
	profile := classifySource(t, source)

	assert.Equal(t, 2, profile.Categories[metrics.CategoryOther])
	assert.Equal(t, 2, profile.SignedCalls)
	assert.Equal(t, []string{"low_level_invoke"}, profile.DistinctTargets)
}

func TestVisitor_ScopedPathCalls(t *testing.T) {
	t.Parallel()

	source := `
fn setup(ctx: Context, lamports: u64) {
    system_instruction::create_account(&payer, &new, lamports, space, &owner);
    token::mint_to(cpi_ctx, amount);
    program::invoke(&ix, &accounts);
}
`
	profile := classifySource(t, source)

	assert.Equal(t, 1, profile.Categories[metrics.CategorySystem])
	assert.Equal(t, 1, profile.Categories[metrics.CategoryToken])
	assert.Equal(t, 1, profile.Categories[metrics.CategoryOther])
	assert.Equal(t,
		[]string{"low_level_invoke", "system_program", "token_program"},
		profile.DistinctTargets)
}

func TestVisitor_AccountInitializationCalls(t *testing.T) {
	t.Parallel()

	source := `
fn bootstrap(ctx: Context) {
    token::initialize_mint(cpi_ctx, decimals, &authority, None);
    token::initialize_account(account_ctx);
}
`
	profile := classifySource(t, source)

	assert.Equal(t, 2, profile.Categories[metrics.CategoryToken])
	assert.Equal(t, []string{"token_program"}, profile.DistinctTargets)
	assert.Equal(t, 2, profile.SignedCalls)
	assert.Equal(t, 0, profile.UnsignedCalls)
}

func TestVisitor_UnclassifiedCallsIgnored(t *testing.T) {
	t.Parallel()

	source := `
fn local(v: Vec<u64>) -> usize {
    helper(v.len());
    v.iter().count()
}
`
	profile := classifySource(t, source)

	assert.Zero(t, profile.TotalClassified())
	assert.Empty(t, profile.DistinctTargets)
	assert.InDelta(t, 0.0, profile.ComplexityScore(), 1e-9)
}

func TestVisitor_TargetsDeduplicatedAcrossCalls(t *testing.T) {
	t.Parallel()

	source := `
fn drain(client: Client, amount: u64) {
    client.transfer(amount);
    client.burn(amount);
    client.close_account();
}
`
	profile := classifySource(t, source)

	assert.Equal(t, 3, profile.Categories[metrics.CategoryToken])
	assert.Equal(t, []string{"token_program"}, profile.DistinctTargets)
	assert.Equal(t, 2, profile.SignedCalls)
	assert.Equal(t, 1, profile.UnsignedCalls)
}
