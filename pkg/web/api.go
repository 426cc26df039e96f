package web

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/soft-orgs/pkg/columns"
	"github.com/charmbracelet/soft-orgs/pkg/proto"
	"github.com/charmbracelet/soft-orgs/pkg/provider"
	"github.com/charmbracelet/soft-orgs/pkg/virtual"
	"github.com/google/go-querystring/query"
	"github.com/gorilla/mux"
)

// DefaultLimit is the page size of list requests without a limit.
const DefaultLimit = 50

// MaxLimit caps the page size of list requests.
const MaxLimit = 500

// ListOptions are the query parameters of list requests.
type ListOptions struct {
	Query  string `url:"q,omitempty"`
	Sort   string `url:"sort,omitempty"`
	Limit  int    `url:"limit,omitempty"`
	Offset int    `url:"offset,omitempty"`
}

// Encode returns the URL query of the options.
func (o ListOptions) Encode() string {
	v, err := query.Values(o)
	if err != nil {
		return ""
	}
	return v.Encode()
}

var errInvalidParam = errors.New("invalid parameter")

func parseListOptions(v url.Values) (ListOptions, error) {
	opts := ListOptions{
		Query: v.Get("q"),
		Sort:  v.Get("sort"),
		Limit: DefaultLimit,
	}
	for _, p := range []struct {
		name string
		dst  *int
	}{
		{"limit", &opts.Limit},
		{"offset", &opts.Offset},
	} {
		s := v.Get(p.name)
		if s == "" {
			continue
		}
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return opts, errInvalidParam
		}
		*p.dst = n
	}
	if opts.Limit == 0 || opts.Limit > MaxLimit {
		opts.Limit = MaxLimit
	}
	return opts, nil
}

// Page is a page of a list response.
type Page[T any] struct {
	// Total is the number of items matching the query.
	Total int    `json:"total"`
	Items []T    `json:"items"`
	Next  string `json:"next,omitempty"`
}

// page sorts, then filters, then slices items.
func page[T any](path string, items []T, cols virtual.Columns[T], opts ListOptions) (Page[T], error) {
	s, err := virtual.ParseSort(cols, opts.Sort)
	if err != nil {
		return Page[T]{}, err
	}
	items = virtual.Filter(virtual.Sort(items, cols, s), opts.Query, cols.Fields)
	p := Page[T]{Total: len(items), Items: []T{}}
	if opts.Offset < len(items) {
		end := min(opts.Offset+opts.Limit, len(items))
		p.Items = items[opts.Offset:end]
		if end < len(items) {
			next := opts
			next.Offset = end
			p.Next = path + "?" + next.Encode()
		}
	}
	return p, nil
}

// OrganizationSummary is an organization without its users.
type OrganizationSummary struct {
	ID                   int64      `json:"id"`
	CompanyName          string     `json:"company_name"`
	AdminName            string     `json:"admin_name"`
	Plan                 proto.Plan `json:"plan"`
	Users                int        `json:"users"`
	InvitationsRemaining int        `json:"invitations_remaining"`
}

func summarize(o proto.Organization) OrganizationSummary {
	return OrganizationSummary{
		ID:                   o.ID,
		CompanyName:          o.CompanyName,
		AdminName:            o.AdminName,
		Plan:                 o.Plan,
		Users:                o.NumUsers(),
		InvitationsRemaining: o.InvitationsRemaining,
	}
}

// OrganizationsController registers the read-only organizations API.
func OrganizationsController(_ context.Context, r *mux.Router) {
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/organizations", listOrganizations).Methods(http.MethodGet)
	api.HandleFunc("/organizations/{id:[0-9]+}", getOrganization).Methods(http.MethodGet)
	api.HandleFunc("/organizations/{id:[0-9]+}/users", listUsers).Methods(http.MethodGet)
}

func loadOrganizations(w http.ResponseWriter, r *http.Request) ([]proto.Organization, bool) {
	ctx := r.Context()
	p := provider.FromContext(ctx)
	if p == nil {
		renderJSONError(w, r, http.StatusServiceUnavailable, provider.ErrNoProvider.Error())
		return nil, false
	}
	orgs, err := p.Organizations(ctx)
	if err != nil {
		log.FromContext(ctx).Error("failed to load organizations", "err", err)
		renderJSONError(w, r, http.StatusInternalServerError, "failed to load organizations")
		return nil, false
	}
	return orgs, true
}

func findOrganization(w http.ResponseWriter, r *http.Request) (proto.Organization, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		renderJSONError(w, r, http.StatusBadRequest, "invalid organization id")
		return proto.Organization{}, false
	}
	orgs, ok := loadOrganizations(w, r)
	if !ok {
		return proto.Organization{}, false
	}
	org, err := proto.FindOrganization(orgs, id)
	if err != nil {
		renderJSONError(w, r, http.StatusNotFound, err.Error())
		return proto.Organization{}, false
	}
	return org, true
}

func listOrganizations(w http.ResponseWriter, r *http.Request) {
	opts, err := parseListOptions(r.URL.Query())
	if err != nil {
		renderJSONError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	orgs, ok := loadOrganizations(w, r)
	if !ok {
		return
	}
	p, err := page(r.URL.Path, orgs, columns.Organizations(), opts)
	if err != nil {
		renderJSONError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	out := Page[OrganizationSummary]{
		Total: p.Total,
		Items: make([]OrganizationSummary, len(p.Items)),
		Next:  p.Next,
	}
	for i, o := range p.Items {
		out.Items[i] = summarize(o)
	}
	renderJSON(w, http.StatusOK, out)
}

func getOrganization(w http.ResponseWriter, r *http.Request) {
	org, ok := findOrganization(w, r)
	if !ok {
		return
	}
	renderJSON(w, http.StatusOK, summarize(org))
}

func listUsers(w http.ResponseWriter, r *http.Request) {
	opts, err := parseListOptions(r.URL.Query())
	if err != nil {
		renderJSONError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	org, ok := findOrganization(w, r)
	if !ok {
		return
	}
	p, err := page(r.URL.Path, org.Users, columns.Users(), opts)
	if err != nil {
		renderJSONError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	renderJSON(w, http.StatusOK, p)
}
