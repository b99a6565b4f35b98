package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmptyExcludeFilterExcludesNothing(t *testing.T) {
	var f ExcludeFilter
	assert.False(t, f.ShouldExclude("src/Main.java"))
	assert.False(t, f.ShouldExclude("test/Test.java"))
}

func TestExcludeFileStartsWith(t *testing.T) {
	f := NewExcludeFilter([]ExcludeEntry{
		{Kind: ExcludeFileStartsWith, Keyword: "Test"},
	})
	assert.True(t, f.ShouldExclude("src/TestMain.java"))
	assert.True(t, f.ShouldExclude("TestFile.java"))
	assert.False(t, f.ShouldExclude("src/Main.java"))
	assert.False(t, f.ShouldExclude("src/MyTest.java"))
}

func TestExcludeFileEndsWith(t *testing.T) {
	f := NewExcludeFilter([]ExcludeEntry{
		{Kind: ExcludeFileEndsWith, Keyword: ".test.java"},
	})
	assert.True(t, f.ShouldExclude("src/Main.test.java"))
	assert.False(t, f.ShouldExclude("src/Main.java"))
	assert.False(t, f.ShouldExclude("src/Test.java"))
}

func TestExcludePathContains(t *testing.T) {
	f := NewExcludeFilter([]ExcludeEntry{
		{Kind: ExcludePathContains, Keyword: "/test/"},
	})
	assert.True(t, f.ShouldExclude("src/test/Main.java"))
	assert.False(t, f.ShouldExclude("src/Main.java"))
	assert.False(t, f.ShouldExclude("test.java"))
}

func TestExcludeEntriesAreOrCombined(t *testing.T) {
	f := NewExcludeFilter([]ExcludeEntry{
		{Kind: ExcludeFileStartsWith, Keyword: "Test"},
		{Kind: ExcludePathContains, Keyword: "/generated/"},
	})
	assert.True(t, f.ShouldExclude("src/TestMain.java"))
	assert.True(t, f.ShouldExclude("src/generated/Model.java"))
	assert.False(t, f.ShouldExclude("src/Main.java"))
}

func TestParseExcludeKind(t *testing.T) {
	k, ok := ParseExcludeKind("file_starts_with")
	assert.True(t, ok)
	assert.Equal(t, ExcludeFileStartsWith, k)

	k, ok = ParseExcludeKind("path_contains")
	assert.True(t, ok)
	assert.Equal(t, ExcludePathContains, k)

	_, ok = ParseExcludeKind("path_not_contains")
	assert.False(t, ok)
}

func TestExtFilterEmptyMatchesAll(t *testing.T) {
	var f ExtFilter
	assert.True(t, f.Matches("test.java"))
	assert.True(t, f.Matches("anything"))
}

func TestExtFilterIncludeOnly(t *testing.T) {
	f := ExtFilter{Include: []string{".java", ".kt"}}
	assert.True(t, f.Matches("Test.java"))
	assert.True(t, f.Matches("Test.kt"))
	assert.False(t, f.Matches("Test.go"))
	assert.False(t, f.Matches("Test"))
}

func TestExtFilterExcludeOverridesInclude(t *testing.T) {
	f := ExtFilter{
		Include: []string{".java"},
		Exclude: []string{".test.java"},
	}
	assert.True(t, f.Matches("Main.java"))
	assert.False(t, f.Matches("Main.test.java"))
}

func TestExtFilterExcludeOnly(t *testing.T) {
	f := ExtFilter{Exclude: []string{".gen.go"}}
	assert.True(t, f.Matches("model.go"))
	assert.False(t, f.Matches("model.gen.go"))
}
