package commandline

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplaceRuleList(t *testing.T) {
	var rules ReplaceRuleList
	require.NoError(t, rules.Set(`^Tns -> `))
	require.NoError(t, rules.Set(`Type$->Record`))

	require.Len(t, rules, 2)
	assert.Equal(t, "", rules[0].To)
	assert.Equal(t, "FooRecord", rules[1].From.ReplaceAllString("FooType", rules[1].To))
	assert.Equal(t, "^Tns -> , Type$ -> Record", rules.String())
}

func TestReplaceRuleErrors(t *testing.T) {
	var rules ReplaceRuleList
	assert.Error(t, rules.Set("no arrow"))
	assert.Error(t, rules.Set("[ -> x"))
	assert.Empty(t, rules)
}

func TestReplaceRuleListFlag(t *testing.T) {
	var rules ReplaceRuleList
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.VarP(&rules, "replace", "r", "replacement rule")
	require.NoError(t, flags.Parse([]string{"-r", "a -> b", "--replace", "c->d"}))
	assert.Len(t, rules, 2)
	assert.Equal(t, "rule", flags.Lookup("replace").Value.Type())
}
