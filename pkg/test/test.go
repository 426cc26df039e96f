// Package test provides helpers shared by the tests of the dashboard.
package test

import (
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/soft-orgs/pkg/proto"
)

var (
	used = map[int]struct{}{}
	lock sync.Mutex
)

// RandomPort returns a random port number.
// This is mainly used for testing.
func RandomPort() int {
	l, err := net.Listen("tcp", "localhost:0") //nolint:gosec
	if err != nil {
		panic(err)
	}
	port := l.Addr().(*net.TCPAddr).Port
	_ = l.Close()

	lock.Lock()
	if _, ok := used[port]; ok {
		lock.Unlock()
		return RandomPort()
	}
	used[port] = struct{}{}
	lock.Unlock()
	return port
}

// Epoch is the reference time of fixture data.
var Epoch = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

// Org returns an organization fixture with n users.
func Org(id int64, company, admin string, plan proto.Plan, n int) proto.Organization {
	org := proto.Organization{
		ID:                   id,
		CompanyName:          company,
		AdminName:            admin,
		UserCount:            n,
		InvitationsRemaining: int(id) * 10,
		Plan:                 plan,
		Users:                make([]proto.User, n),
	}
	for i := range org.Users {
		uid := int64(i + 1)
		org.Users[i] = proto.User{
			ID:        uid,
			FirstName: "User",
			LastName:  strconv.FormatInt(uid, 10),
			Email:     "user" + strconv.FormatInt(uid, 10) + "@email.com",
			CreatedAt: Epoch,
			LastLogin: Epoch.Add(time.Duration(uid) * time.Hour),
			Role:      proto.Roles[i%len(proto.Roles)],
			Status:    proto.Statuses[i%len(proto.Statuses)],
		}
	}
	return org
}

// Orgs returns n organizations named "Org 1" to "Org n", each with a single
// user.
func Orgs(n int) []proto.Organization {
	orgs := make([]proto.Organization, n)
	for i := range orgs {
		id := int64(i + 1)
		orgs[i] = Org(id, "Org "+strconv.FormatInt(id, 10), "Admin", proto.Plans[i%len(proto.Plans)], 1)
	}
	return orgs
}
