package roster_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fsr-protokoll/editor/internal/domain"
	"github.com/fsr-protokoll/editor/internal/roster"
)

// ---- Parse -----------------------------------------------------------------

// Commas inside the alias brackets do not split members.
func TestParse_BracketComma(t *testing.T) {
	got := roster.Parse("Alice [Ali, A.], Bob")
	assert.Equal(t, []domain.Member{
		{Name: "Alice", Aliases: []string{"Ali", "A."}},
		{Name: "Bob", Aliases: []string{}},
	}, got)
}

func TestParse_Empty(t *testing.T) {
	assert.Equal(t, []domain.Member{}, roster.Parse(""))
	assert.Equal(t, []domain.Member{}, roster.Parse(" , ,, "))
}

func TestParse_TrimsAndDropsEmptyAliases(t *testing.T) {
	got := roster.Parse("  Carol  [ , C ,  ] ,Dave")
	assert.Equal(t, []domain.Member{
		{Name: "Carol", Aliases: []string{"C"}},
		{Name: "Dave", Aliases: []string{}},
	}, got)
}

func TestParse_BracketOnlyEntry_Dropped(t *testing.T) {
	got := roster.Parse("[x, y], Eve")
	assert.Equal(t, []domain.Member{{Name: "Eve", Aliases: []string{}}}, got)
}

// An entry that does not end in a bracket list is taken whole as the name.
func TestParse_UnmatchedEntryIsName(t *testing.T) {
	got := roster.Parse("Frank [F] Jr., Grace [unclosed")
	assert.Equal(t, []domain.Member{
		{Name: "Frank [F] Jr.", Aliases: []string{}},
		{Name: "Grace [unclosed", Aliases: []string{}},
	}, got)
}

// ---- Normalize -------------------------------------------------------------

func TestNormalize(t *testing.T) {
	got := roster.Normalize([]domain.Member{
		{Name: " Alice ", Aliases: []string{" Ali ", ""}},
		{Name: "   "},
		{Name: "Bob"},
	})
	assert.Equal(t, []domain.Member{
		{Name: "Alice", Aliases: []string{"Ali"}},
		{Name: "Bob", Aliases: []string{}},
	}, got)
}

// ---- suggestions and selection ---------------------------------------------

func TestSuggest_MatchesNameOrAlias(t *testing.T) {
	members := roster.Parse("Alice [Ali], Bob [Bobby], Carol")

	assert.Equal(t, []string{"Alice", "Bob", "Carol"}, roster.Suggest(members, "", nil))
	assert.Equal(t, []string{"Bob"}, roster.Suggest(members, "BOBBY", nil))
	assert.Equal(t, []string{"Alice", "Carol"}, roster.Suggest(members, "l", nil))
	assert.Equal(t, []string{"Carol"}, roster.Suggest(members, "l", []string{"Alice"}))
	assert.Empty(t, roster.Suggest(members, "zzz", nil))
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"Alice", "Bob"}, roster.Names(roster.Parse("Alice [A], Bob")))
}

func TestAddSelection(t *testing.T) {
	sel := []string{"Alice"}

	assert.Equal(t, []string{"Alice", "Bob"}, roster.AddSelection(sel, "  Bob ", roster.Unlimited))
	assert.Equal(t, []string{"Alice"}, roster.AddSelection(sel, "Alice", roster.Unlimited))
	assert.Equal(t, []string{"Alice"}, roster.AddSelection(sel, "   ", roster.Unlimited))
	assert.Equal(t, []string{"Alice"}, roster.AddSelection(sel, "Bob", 1))
	assert.Equal(t, []string{"Eve"}, roster.AddSelection(nil, "Eve", 1))
	assert.Equal(t, []string{"Alice"}, sel, "input must not be modified")
}

func TestRemoveSelection(t *testing.T) {
	assert.Equal(t, []string{"Alice", "Carol"}, roster.RemoveSelection([]string{"Alice", "Bob", "Carol"}, "Bob"))
	assert.Equal(t, []string{}, roster.RemoveSelection(nil, "Bob"))
}
