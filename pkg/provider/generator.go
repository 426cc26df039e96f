package provider

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/soft-orgs/pkg/proto"
)

// Generator generates random organizations.
type Generator struct {
	// Count is the number of organizations.
	Count int
	// MaxUsers is the maximum number of users of an organization. Each
	// organization gets between 0 and MaxUsers users.
	MaxUsers int
	// Seed makes the output reproducible. Zero uses a new random seed on
	// every call.
	Seed int64
	// Now is the reference time of generated dates. Defaults to time.Now.
	Now func() time.Time
	// Window is how far before Now generated dates go. Defaults to a year.
	Window time.Duration
}

var _ Provider = Generator{}

// Organizations implements Provider.
func (g Generator) Organizations(ctx context.Context) ([]proto.Organization, error) {
	seed := uint64(g.Seed)
	if seed == 0 {
		seed = rand.Uint64()
	}
	now := time.Now()
	if g.Now != nil {
		now = g.Now()
	}

	window := g.Window
	if window <= 0 {
		window = 365 * 24 * time.Hour
	}

	gen := &generator{
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		now:    now,
		window: window,
	}

	orgs := make([]proto.Organization, g.Count)
	for i := range orgs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		orgs[i] = gen.organization(int64(i+1), g.MaxUsers)
	}
	return orgs, nil
}

type generator struct {
	rng    *rand.Rand
	now    time.Time
	window time.Duration
}

func (g *generator) pick(list []string) string {
	return list[g.rng.IntN(len(list))]
}

// recent returns a time within the window before now.
func (g *generator) recent() time.Time {
	return g.now.Add(-time.Duration(g.rng.Int64N(int64(g.window)))).Truncate(time.Second)
}

func (g *generator) companyName() string {
	switch g.rng.IntN(3) {
	case 0:
		return g.pick(lastNames) + " - " + g.pick(lastNames)
	case 1:
		return g.pick(lastNames) + " " + g.pick(companySuffixes)
	default:
		return g.pick(lastNames) + ", " + g.pick(lastNames) + " and " + g.pick(lastNames)
	}
}

func (g *generator) user(id int64) proto.User {
	first, last := g.pick(firstNames), g.pick(lastNames)
	return proto.User{
		ID:        id,
		FirstName: first,
		LastName:  last,
		Email:     last + first + "@email.com",
		CreatedAt: g.recent(),
		LastLogin: g.recent(),
		Role:      proto.Roles[g.rng.IntN(len(proto.Roles))],
		Status:    proto.Statuses[g.rng.IntN(len(proto.Statuses))],
	}
}

func (g *generator) organization(id int64, maxUsers int) proto.Organization {
	count := g.rng.IntN(maxUsers + 1)
	org := proto.Organization{
		ID:                   id,
		CompanyName:          g.companyName(),
		AdminName:            g.pick(firstNames) + " " + g.pick(lastNames),
		UserCount:            count,
		InvitationsRemaining: g.rng.IntN(201),
		Plan:                 proto.Plans[g.rng.IntN(len(proto.Plans))],
		Users:                make([]proto.User, count),
	}
	for u := range org.Users {
		org.Users[u] = g.user(int64(u + 1))
	}
	return org
}
