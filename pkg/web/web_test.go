package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/soft-orgs/pkg/config"
	"github.com/charmbracelet/soft-orgs/pkg/proto"
	"github.com/charmbracelet/soft-orgs/pkg/provider"
	"github.com/charmbracelet/soft-orgs/pkg/test"
	"github.com/matryer/is"
)

func fixtures() []proto.Organization {
	return []proto.Organization{
		test.Org(1, "Acme", "Ann", proto.BasicPlan, 3),
		test.Org(2, "Bravo", "Bob", proto.ProPlan, 1),
		test.Org(3, "Acme Two", "Cid", proto.EnterprisePlan, 2),
	}
}

func serve(tb testing.TB, p provider.Provider, target string) *httptest.ResponseRecorder {
	tb.Helper()
	ctx := config.WithContext(context.Background(), config.DefaultConfig())
	if p != nil {
		ctx = provider.WithContext(ctx, p)
	}
	w := httptest.NewRecorder()
	NewRouter(ctx).ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func decode[T any](tb testing.TB, w *httptest.ResponseRecorder) T {
	tb.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		tb.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return v
}

func TestHealth(t *testing.T) {
	is := is.New(t)
	p := provider.Static(fixtures())

	is.Equal(serve(t, p, "/livez").Code, http.StatusOK)
	is.Equal(serve(t, p, "/readyz").Code, http.StatusOK)
	is.Equal(serve(t, nil, "/readyz").Code, http.StatusServiceUnavailable)
}

func TestListOrganizations(t *testing.T) {
	is := is.New(t)
	p := provider.Static(fixtures())

	w := serve(t, p, "/api/organizations")
	is.Equal(w.Code, http.StatusOK)
	is.Equal(w.Header().Get("Content-Type"), "application/json; charset=utf-8")
	all := decode[Page[OrganizationSummary]](t, w)
	is.Equal(all.Total, 3)
	is.Equal(len(all.Items), 3)
	is.Equal(all.Next, "")
	is.Equal(all.Items[0].CompanyName, "Acme")
	is.Equal(all.Items[0].Users, 3)
	is.Equal(all.Items[0].Plan, proto.BasicPlan)

	w = serve(t, p, "/api/organizations?q=acme&sort=-users")
	is.Equal(w.Code, http.StatusOK)
	res := decode[Page[OrganizationSummary]](t, w)
	is.Equal(res.Total, 2)
	is.Equal(res.Items[0].CompanyName, "Acme")
	is.Equal(res.Items[1].CompanyName, "Acme Two")
}

func TestListOrganizationsPaging(t *testing.T) {
	is := is.New(t)
	p := provider.Static(test.Orgs(5))

	res := decode[Page[OrganizationSummary]](t, serve(t, p, "/api/organizations?limit=2&sort=-company"))
	is.Equal(res.Total, 5)
	is.Equal(len(res.Items), 2)
	is.Equal(res.Items[0].CompanyName, "Org 5")
	is.Equal(res.Next, "/api/organizations?limit=2&offset=2&sort=-company")

	res = decode[Page[OrganizationSummary]](t, serve(t, p, res.Next))
	is.Equal(res.Items[0].CompanyName, "Org 3")

	res = decode[Page[OrganizationSummary]](t, serve(t, p, "/api/organizations?offset=10"))
	is.Equal(res.Total, 5)
	is.Equal(len(res.Items), 0)
	is.Equal(res.Next, "")
}

func TestListOrganizationsErrors(t *testing.T) {
	is := is.New(t)
	p := provider.Static(fixtures())

	for _, target := range []string{
		"/api/organizations?sort=actions",
		"/api/organizations?limit=-1",
		"/api/organizations?offset=x",
	} {
		w := serve(t, p, target)
		is.Equal(w.Code, http.StatusBadRequest) // target
		is.True(decode[errorResponse](t, w).Message != "")
	}

	is.Equal(serve(t, nil, "/api/organizations").Code, http.StatusServiceUnavailable)

	failing := provider.Func(func(context.Context) ([]proto.Organization, error) {
		return nil, errors.New("boom")
	})
	w := serve(t, failing, "/api/organizations")
	is.Equal(w.Code, http.StatusInternalServerError)
	is.Equal(decode[errorResponse](t, w).Message, "failed to load organizations")
}

func TestGetOrganization(t *testing.T) {
	is := is.New(t)
	p := provider.Static(fixtures())

	w := serve(t, p, "/api/organizations/2")
	is.Equal(w.Code, http.StatusOK)
	org := decode[OrganizationSummary](t, w)
	is.Equal(org.ID, int64(2))
	is.Equal(org.CompanyName, "Bravo")
	is.Equal(org.InvitationsRemaining, 20)

	w = serve(t, p, "/api/organizations/42")
	is.Equal(w.Code, http.StatusNotFound)
	is.Equal(decode[errorResponse](t, w).Message, proto.ErrOrganizationNotFound.Error())

	is.Equal(serve(t, p, "/api/organizations/abc").Code, http.StatusNotFound)
}

func TestListUsers(t *testing.T) {
	is := is.New(t)
	p := provider.Static(fixtures())

	res := decode[Page[proto.User]](t, serve(t, p, "/api/organizations/1/users"))
	is.Equal(res.Total, 3)
	is.Equal(res.Items[0].Email, "user1@email.com")

	res = decode[Page[proto.User]](t, serve(t, p, "/api/organizations/1/users?q=user2"))
	is.Equal(res.Total, 1)
	is.Equal(res.Items[0].ID, int64(2))

	res = decode[Page[proto.User]](t, serve(t, p, "/api/organizations/1/users?sort=-last_login&limit=1"))
	is.Equal(res.Items[0].ID, int64(3))
	is.Equal(res.Next, "/api/organizations/1/users?limit=1&offset=1&sort=-last_login")

	is.Equal(serve(t, p, "/api/organizations/1/users?sort=actions").Code, http.StatusBadRequest)
	is.Equal(serve(t, p, "/api/organizations/9/users").Code, http.StatusNotFound)
}

func TestListOptionsEncode(t *testing.T) {
	is := is.New(t)
	is.Equal(ListOptions{}.Encode(), "")
	is.Equal(ListOptions{Query: "acme corp", Limit: 10}.Encode(), "limit=10&q=acme+corp")
}

func TestNotFound(t *testing.T) {
	is := is.New(t)
	w := serve(t, provider.Static(fixtures()), "/nope")
	is.Equal(w.Code, http.StatusNotFound)
	is.Equal(decode[errorResponse](t, w).Message, "Not Found")
}
