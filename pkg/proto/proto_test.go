package proto

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/matryer/is"
	"gopkg.in/yaml.v3"
)

func TestParseEnums(t *testing.T) {
	is := is.New(t)

	for _, p := range Plans {
		v, err := ParsePlan(p.String())
		is.NoErr(err)
		is.Equal(v, p)
	}
	for _, r := range Roles {
		v, err := ParseRole(r.String())
		is.NoErr(err)
		is.Equal(v, r)
	}
	for _, s := range Statuses {
		v, err := ParseStatus(s.String())
		is.NoErr(err)
		is.Equal(v, s)
	}

	_, err := ParsePlan("free")
	is.True(errors.Is(err, ErrInvalidPlan))
	_, err = ParseRole("owner")
	is.True(errors.Is(err, ErrInvalidRole))
	_, err = ParseStatus("banned")
	is.True(errors.Is(err, ErrInvalidStatus))
}

func TestOrganizationEncoding(t *testing.T) {
	is := is.New(t)
	org := Organization{
		ID:          7,
		CompanyName: "Acme",
		Plan:        EnterprisePlan,
		Users: []User{
			{ID: 1, FirstName: "Ada", LastName: "Lovelace", Role: AdminRole, Status: PendingStatus},
		},
	}

	bts, err := json.Marshal(org)
	is.NoErr(err)
	var m map[string]any
	is.NoErr(json.Unmarshal(bts, &m))
	is.Equal(m["plan"], "enterprise")
	is.Equal(m["users"].([]any)[0].(map[string]any)["status"], "pending")

	var back Organization
	is.NoErr(yaml.Unmarshal([]byte("id: 3\nplan: pro\nusers:\n  - id: 1\n    role: admin\n"), &back))
	is.Equal(back.Plan, ProPlan)
	is.Equal(back.NumUsers(), 1)
	is.Equal(back.Users[0].Role, AdminRole)

	is.True(yaml.Unmarshal([]byte("plan: gold\n"), &back) != nil)
}

func TestFullName(t *testing.T) {
	is := is.New(t)
	is.Equal(User{FirstName: "Ada", LastName: "Lovelace"}.FullName(), "Ada Lovelace")
	is.Equal(User{FirstName: "Ada"}.FullName(), "Ada")
	is.Equal(User{LastName: "Lovelace"}.FullName(), "Lovelace")
}

func TestFindOrganization(t *testing.T) {
	is := is.New(t)
	orgs := []Organization{{ID: 1, CompanyName: "Acme"}, {ID: 2, CompanyName: "Bravo"}}

	o, err := FindOrganization(orgs, 2)
	is.NoErr(err)
	is.Equal(o.CompanyName, "Bravo")

	_, err = FindOrganization(orgs, 3)
	is.True(errors.Is(err, ErrOrganizationNotFound))
}
