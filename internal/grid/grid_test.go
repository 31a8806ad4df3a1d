package grid

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type member struct {
	ID     int
	Name   string
	Region string
	Age    any
	Active bool
}

func memberColumns() []Column[member] {
	return []Column[member]{
		{Field: "id", Label: "ID", Sortable: true, Value: func(m member) any { return m.ID }},
		{Field: "name", Label: "Name", Sortable: true, Filterable: true, Value: func(m member) any { return m.Name }},
		{Field: "region", Label: "Region", Sortable: true, Value: func(m member) any { return m.Region }},
		{Field: "age", Label: "Age", Sortable: true, Value: func(m member) any { return m.Age }},
		{Field: "notes", Label: "Notes", Value: func(member) any { return "" }},
	}
}

func memberKey(m member) int { return m.ID }

var phonetic = []string{
	"Alpha", "Bravo", "Charlie", "Delta", "Echo", "Foxtrot", "Golf", "Hotel",
	"India", "Juliet", "Kilo", "Lima", "Mike", "November", "Oscar", "Papa",
	"Quebec", "Romeo", "Sierra", "Tango", "Uniform", "Victor", "Whiskey",
	"Xray", "Yankee",
}

// phoneticMembers returns the 25 names in a shuffled but fixed order. Kilo
// and Yankee live in the "Coastal" region so that "al" matches exactly three
// records.
func phoneticMembers() []member {
	regions := []string{"north", "south", "east", "west"}
	order := []int{7, 19, 0, 23, 12, 3, 15, 10, 21, 5, 1, 17, 9, 24, 14, 2, 11, 20, 6, 16, 4, 22, 13, 8, 18}
	out := make([]member, 0, len(order))
	for i, idx := range order {
		region := regions[i%len(regions)]
		if phonetic[idx] == "Kilo" || phonetic[idx] == "Yankee" {
			region = "Coastal"
		}
		out = append(out, member{ID: idx + 1, Name: phonetic[idx], Region: region})
	}
	return out
}

func names(rows []member) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Name)
	}
	return out
}

func ids(rows []member) []int {
	out := make([]int, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.ID)
	}
	return out
}

func scenarioFields(m member) []any { return []any{m.ID, m.Name, m.Region} }

func newScenarioEngine() *Engine[member, int] {
	e := New(memberColumns(), memberKey, Options[member]{
		Sortable:   true,
		Filterable: true,
		Pagination: true,
		Search:     true,
		PageSize:   10,
		Fields:     scenarioFields,
	})
	e.SetSource(phoneticMembers())
	return e
}

func TestEngine_PhoneticScenario(t *testing.T) {
	e := newScenarioEngine()

	require.True(t, e.ToggleSort("name"))
	v := e.View()
	assert.Equal(t, 3, v.TotalPages)
	assert.Equal(t, phonetic[:10], names(v.Rows))

	e.SetPage(2)
	require.Equal(t, 2, e.Page())
	assert.Equal(t, phonetic[10:20], names(e.View().Rows))

	e.SetQuery("al")
	v = e.View()
	assert.Equal(t, 1, e.Page())
	assert.Equal(t, 1, v.TotalPages)
	assert.Equal(t, 3, v.Matched)
	assert.Equal(t, 25, v.Total)
	assert.Equal(t, []string{"Alpha", "Kilo", "Yankee"}, names(v.Rows))
}

func TestEngine_InitialState(t *testing.T) {
	e := New(memberColumns(), memberKey, Options[member]{Pagination: true})

	assert.Equal(t, "", e.Query())
	assert.Equal(t, "", e.SortField())
	assert.Equal(t, Ascending, e.Direction())
	assert.Equal(t, 1, e.Page())
	assert.Equal(t, DefaultPageSize, e.PageSize())
	assert.Empty(t, e.Selected())
	assert.False(t, e.ShowFilterPanel())

	v := e.View()
	assert.Empty(t, v.Rows)
	assert.Equal(t, 0, v.TotalPages)
}

func TestEngine_NilKeyPanics(t *testing.T) {
	assert.Panics(t, func() {
		New[member, int](memberColumns(), nil, Options[member]{})
	})
}

func TestEngine_ToggleSort(t *testing.T) {
	e := newScenarioEngine()
	e.SetPage(3)

	require.True(t, e.ToggleSort("name"))
	assert.Equal(t, "name", e.SortField())
	assert.Equal(t, Ascending, e.Direction())
	assert.Equal(t, 1, e.Page())

	e.SetPage(2)
	require.True(t, e.ToggleSort("name"))
	assert.Equal(t, Descending, e.Direction())
	assert.Equal(t, 1, e.Page())
	assert.Equal(t, "Yankee", e.View().Rows[0].Name)

	require.True(t, e.ToggleSort("name"))
	assert.Equal(t, Ascending, e.Direction())

	e.SetPage(2)
	require.True(t, e.ToggleSort("region"))
	assert.Equal(t, "region", e.SortField())
	assert.Equal(t, Ascending, e.Direction())
	assert.Equal(t, 1, e.Page())
}

func TestEngine_ToggleSortIgnoresUnsortableFields(t *testing.T) {
	e := newScenarioEngine()
	e.SetPage(2)

	assert.False(t, e.ToggleSort("notes"))
	assert.False(t, e.ToggleSort("missing"))
	assert.Equal(t, "", e.SortField())
	assert.Equal(t, 2, e.Page())

	disabled := New(memberColumns(), memberKey, Options[member]{Pagination: true})
	assert.False(t, disabled.ToggleSort("name"))
	assert.Equal(t, "", disabled.SortField())
}

func TestEngine_SelectionIndependence(t *testing.T) {
	e := newScenarioEngine()
	e.ToggleSort("name")
	e.SetPage(2)

	first := e.View().Rows[0]
	require.True(t, e.ToggleSelection(first))
	assert.Equal(t, "", e.Query())
	assert.Equal(t, "name", e.SortField())
	assert.Equal(t, Ascending, e.Direction())
	assert.Equal(t, 2, e.Page())

	e.SetPage(3)
	e.ToggleSelection(e.View().Rows[3])
	before := e.Selected()
	require.Len(t, before, 2)

	e.SetQuery("zzz")
	e.ToggleSort("name")
	e.SetPage(7)
	e.SetSource(phoneticMembers())
	assert.Equal(t, before, e.Selected())
	assert.True(t, e.IsSelected(first))

	// Toggling a record outside the current window is legal.
	assert.Empty(t, e.View().Rows)
	assert.False(t, e.ToggleSelection(first))
	assert.False(t, e.IsSelected(first))
	assert.Len(t, e.Selected(), 1)
}

func TestEngine_SelectionSurvivesRebuiltSource(t *testing.T) {
	e := newScenarioEngine()
	target := e.View().Rows[4]
	e.ToggleSelection(target)

	// New record values with equal keys still match.
	rebuilt := phoneticMembers()
	for i := range rebuilt {
		rebuilt[i].Region = "rebuilt"
	}
	e.SetSource(rebuilt)

	selected := e.SelectedRecords()
	require.Len(t, selected, 1)
	assert.Equal(t, target.ID, selected[0].ID)
	assert.Equal(t, "rebuilt", selected[0].Region)
}

func TestEngine_SelectAllVisibleOnlySelectsWindow(t *testing.T) {
	e := newScenarioEngine()
	e.ToggleSort("name")
	e.SetPage(3)

	e.SelectAllVisible()
	assert.True(t, e.AllVisibleSelected())
	assert.Equal(t, ids(e.View().Rows), e.Selected())
	assert.Len(t, e.Selected(), 5)

	e.SetPage(1)
	assert.False(t, e.AllVisibleSelected())

	e.ClearSelection()
	assert.Empty(t, e.Selected())

	e.SetQuery("al")
	e.SelectAllVisible()
	assert.Len(t, e.Selected(), 3)
}

func TestEngine_OutOfRangePage(t *testing.T) {
	e := newScenarioEngine()

	e.SetPage(9)
	v := e.View()
	assert.Empty(t, v.Rows)
	assert.Equal(t, 3, v.TotalPages)
	assert.Equal(t, 9, e.Page())

	e.SetPage(0)
	assert.Empty(t, e.View().Rows)

	e.SetPage(-4)
	assert.Empty(t, e.View().Rows)

	e.SetPage(math.MaxInt)
	assert.Empty(t, e.View().Rows)
	assert.Equal(t, math.MaxInt, e.Page())
	assert.False(t, e.NextPage())
	assert.True(t, e.PrevPage())
	assert.Equal(t, 3, e.Page())
}

func TestEngine_PageStepping(t *testing.T) {
	e := newScenarioEngine()

	assert.False(t, e.PrevPage())
	assert.True(t, e.NextPage())
	assert.True(t, e.NextPage())
	assert.Equal(t, 3, e.Page())
	assert.False(t, e.NextPage())
	assert.True(t, e.PrevPage())
	assert.Equal(t, 2, e.Page())

	e.SetPage(8)
	assert.True(t, e.PrevPage())
	assert.Equal(t, 3, e.Page())
}

func TestEngine_NoClampWhenMatchesShrink(t *testing.T) {
	e := newScenarioEngine()
	e.SetPage(3)
	require.Len(t, e.View().Rows, 5)

	// Fewer records arrive; the page stays where it was.
	e.SetSource(phoneticMembers()[:12])
	assert.Equal(t, 3, e.Page())
	assert.Empty(t, e.View().Rows)
	assert.Equal(t, 2, e.View().TotalPages)
}

func TestEngine_FilterPanel(t *testing.T) {
	e := newScenarioEngine()
	before := e.View()

	e.ToggleFilterPanel()
	assert.True(t, e.ShowFilterPanel())
	assert.Equal(t, before, e.View())
	e.ToggleFilterPanel()
	assert.False(t, e.ShowFilterPanel())

	off := New(memberColumns(), memberKey, Options[member]{})
	off.ToggleFilterPanel()
	assert.False(t, off.ShowFilterPanel())
}

func TestEngine_SetQueryUnchangedKeepsPage(t *testing.T) {
	e := newScenarioEngine()
	e.SetQuery("a")
	e.SetPage(2)
	e.SetQuery("a")
	assert.Equal(t, 2, e.Page())
}

func TestEngine_DisabledStages(t *testing.T) {
	e := New(memberColumns(), memberKey, Options[member]{Fields: scenarioFields})
	e.SetSource(phoneticMembers())

	e.SetQuery("al")
	v := e.View()
	assert.Len(t, v.Rows, 25, "search disabled passes everything through")
	assert.Equal(t, 1, v.TotalPages, "pagination disabled reports a single page")
	assert.Equal(t, ids(phoneticMembers()), ids(v.Rows))
}

func TestEngine_MemoizedViewMatchesFreshDerivation(t *testing.T) {
	e := newScenarioEngine()

	steps := []func(){
		func() { e.ToggleSort("name") },
		func() { e.SetPage(2) },
		func() { e.SetQuery("o") },
		func() { e.ToggleSort("name") },
		func() { e.ToggleSort("region") },
		func() { e.SetSource(phoneticMembers()[3:]) },
		func() { e.SetQuery("") },
		func() { e.SetPage(3) },
		func() { e.ToggleSort("region") },
	}
	for i, step := range steps {
		step()
		want := Derive(e.Source(), e.Columns(), scenarioFields, e.Params(), NewCollator())
		require.Equal(t, want, e.View(), "step %d", i)
	}
}

func TestEngine_ViewIsACopy(t *testing.T) {
	e := newScenarioEngine()
	v := e.View()
	v.Rows[0].Name = "mutated"
	assert.NotEqual(t, "mutated", e.View().Rows[0].Name)
}

func ExampleEngine() {
	type user struct {
		Email string
		Name  string
	}
	cols := []Column[user]{
		{Field: "name", Label: "Name", Sortable: true, Value: func(u user) any { return u.Name }},
	}
	e := New(cols, func(u user) string { return u.Email }, Options[user]{
		Sortable: true, Search: true, Pagination: true, PageSize: 2,
	})
	e.SetSource([]user{
		{"c@example.com", "Carol"},
		{"a@example.com", "Alice"},
		{"b@example.com", "Bob"},
	})
	e.ToggleSort("name")
	v := e.View()
	for _, u := range v.Rows {
		fmt.Println(u.Name)
	}
	fmt.Println("pages:", v.TotalPages)
	// Output:
	// Alice
	// Bob
	// pages: 2
}
