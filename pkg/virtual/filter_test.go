package virtual

import (
	"math/rand/v2"
	"slices"
	"strings"
	"testing"

	"github.com/matryer/is"
)

type company struct {
	Name  string
	Admin string
}

func companyFields(c company) []string {
	return []string{c.Name, c.Admin}
}

func names(cs []company) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Name
	}
	return out
}

func TestFilterScenario(t *testing.T) {
	items := []company{{Name: "Acme"}, {Name: "Bravo"}, {Name: "Acme Two"}}
	cases := []struct {
		query string
		want  []string
	}{
		{"acme", []string{"Acme", "Acme Two"}},
		{"ACME t", []string{"Acme Two"}},
		{"", []string{"Acme", "Bravo", "Acme Two"}},
		{"zzz", []string{}},
	}
	for _, c := range cases {
		t.Run(c.query, func(t *testing.T) {
			is := is.New(t)
			got := Filter(items, c.query, companyFields)
			is.True(got != nil)
			is.Equal(names(got), c.want)
		})
	}
}

func TestFilterEmptyQueryIsIdentity(t *testing.T) {
	is := is.New(t)
	items := []company{{Name: "b"}, {Name: "a"}}
	got := Filter(items, "", companyFields)
	is.Equal(got, items)
	is.True(&got[0] == &items[0]) // same backing array

	var none []company
	is.Equal(Filter(none, "", companyFields), none)
}

func TestFilterUnicode(t *testing.T) {
	is := is.New(t)
	items := []company{{Name: "Straße GmbH"}, {Name: "ÉCOLE"}, {Name: "Other", Admin: "Élodie"}}
	is.Equal(names(Filter(items, "STRASSE", companyFields)), []string{"Straße GmbH"})
	is.Equal(names(Filter(items, "éco", companyFields)), []string{"ÉCOLE"})
	is.Equal(names(Filter(items, "élo", companyFields)), []string{"Other"})
}

func TestFilterProperties(t *testing.T) {
	is := is.New(t)
	r := rand.New(rand.NewPCG(1, 2))
	alphabet := []rune("abAB c")
	word := func(n int) string {
		var sb strings.Builder
		for i := 0; i < n; i++ {
			sb.WriteRune(alphabet[r.IntN(len(alphabet))])
		}
		return sb.String()
	}

	for round := 0; round < 200; round++ {
		items := make([]company, r.IntN(40))
		for i := range items {
			items[i] = company{Name: word(r.IntN(8)), Admin: word(r.IntN(8))}
		}
		query := word(r.IntN(3))
		got := Filter(items, query, companyFields)

		contains := func(c company) bool {
			q := strings.ToLower(query)
			return strings.Contains(strings.ToLower(c.Name), q) ||
				strings.Contains(strings.ToLower(c.Admin), q)
		}

		// got is an ordered subsequence made of exactly the matching items.
		j := 0
		for _, it := range items {
			if contains(it) {
				is.True(j < len(got))
				is.Equal(got[j], it)
				j++
			}
		}
		is.Equal(j, len(got))
		is.True(slices.IndexFunc(got, func(c company) bool { return !contains(c) }) < 0)
	}
}

func TestMatcher(t *testing.T) {
	is := is.New(t)
	m := NewMatcher("")
	is.True(m.Empty())
	is.True(m.Match())

	m = NewMatcher("Pro")
	is.True(!m.Empty())
	is.True(m.Match("basic", "PRO"))
	is.True(!m.Match("basic", "enterprise"))
	is.True(!m.Match())
}
