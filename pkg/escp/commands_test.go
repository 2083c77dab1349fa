package escp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCommandTable_Variants(t *testing.T) {
	t.Parallel()

	for _, v := range []Variant{ESCP, ESCP2} {
		table, err := NewCommandTable(v)
		require.NoError(t, err, v.String())
		assert.Equal(t, v, table.Variant())

		for _, cmd := range requiredCommands(v) {
			assert.True(t, table.Supports(cmd), "%v missing %v", v, cmd)
		}
	}
}

func TestNewCommandTable_UnknownVariant(t *testing.T) {
	t.Parallel()

	_, err := NewCommandTable(Variant(7))
	assert.ErrorIs(t, err, ErrUnsupportedVariant)
}

func TestNewCommandTable_MissingOpcodeIsTableError(t *testing.T) {
	t.Parallel()

	opcodes, err := variantOpcodes(ESCP)
	require.NoError(t, err)
	delete(opcodes, CmdJustify)

	_, err = newCommandTable(ESCP, opcodes)
	assert.ErrorIs(t, err, ErrProtocolTable)
	assert.Contains(t, err.Error(), "justify")
}

func TestCommandTable_VariantOnlyCommands(t *testing.T) {
	t.Parallel()

	escp, err := NewCommandTable(ESCP)
	require.NoError(t, err)
	escp2, err := NewCommandTable(ESCP2)
	require.NoError(t, err)

	assert.False(t, escp.Supports(CmdMarginTop))
	assert.False(t, escp.Supports(CmdLineSpacing360))
	assert.True(t, escp.Supports(CmdLineSpacing772))

	assert.True(t, escp2.Supports(CmdMarginTop))
	assert.True(t, escp2.Supports(CmdLineSpacing360))
	assert.False(t, escp2.Supports(CmdLineSpacing772))

	_, err = escp.Lookup(CmdMarginTop)
	assert.ErrorIs(t, err, ErrUnsupportedDirective)
}

func TestCommandTable_LookupIsACopy(t *testing.T) {
	t.Parallel()

	table, err := NewCommandTable(ESCP)
	require.NoError(t, err)

	seq, err := table.Lookup(CmdInit)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x1b, 0x40}, seq)

	seq[1] = 'Z'
	again, _ := table.Lookup(CmdInit)
	assert.Equal(t, []byte{0x1b, 0x40}, again)
}

func TestCommandTable_CommandsSorted(t *testing.T) {
	t.Parallel()

	table, err := NewCommandTable(ESCP2)
	require.NoError(t, err)

	cmds := table.Commands()
	require.NotEmpty(t, cmds)
	assert.Equal(t, CmdInit, cmds[0])
	for i := 1; i < len(cmds); i++ {
		assert.Less(t, cmds[i-1], cmds[i])
	}
	for _, cmd := range cmds {
		assert.NotContains(t, cmd.String(), "command(")
	}
}
