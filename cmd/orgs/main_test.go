package main

import (
	"flag"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/soft-orgs/pkg/test"
	"github.com/rogpeppe/go-internal/testscript"
)

var update = flag.Bool("update", false, "update script files")

func TestMain(m *testing.M) {
	os.Exit(testscript.RunMain(m, map[string]func() int{
		"orgs": run,
	}))
}

func TestScript(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir:           "testdata",
		UpdateScripts: *update,
		Cmds: map[string]func(ts *testscript.TestScript, neg bool, args []string){
			"waitfor":    cmdWaitFor,
			"httpget":    cmdHTTPGet,
			"stopserver": cmdStopServer,
		},
		Setup: func(e *testscript.Env) error {
			e.Setenv("SOFT_ORGS_DATA_PATH", filepath.Join(e.WorkDir, "data"))
			e.Setenv("SOFT_ORGS_DATASET_DELAY", "0s")
			e.Setenv("SOFT_ORGS_DATASET_USERS", "20")
			e.Setenv("SOFT_ORGS_TESTRUN", "1")

			sshAddr := fmt.Sprintf("localhost:%d", test.RandomPort())
			httpAddr := fmt.Sprintf("localhost:%d", test.RandomPort())
			statsAddr := fmt.Sprintf("localhost:%d", test.RandomPort())
			e.Setenv("SSH_ADDR", sshAddr)
			e.Setenv("HTTP_ADDR", httpAddr)
			e.Setenv("STATS_ADDR", statsAddr)
			e.Setenv("SOFT_ORGS_SSH_LISTEN_ADDR", sshAddr)
			e.Setenv("SOFT_ORGS_HTTP_LISTEN_ADDR", httpAddr)
			e.Setenv("SOFT_ORGS_STATS_LISTEN_ADDR", statsAddr)
			return nil
		},
	})
}

// cmdWaitFor waits until addr accepts connections.
func cmdWaitFor(ts *testscript.TestScript, neg bool, args []string) {
	if neg || len(args) != 1 {
		ts.Fatalf("usage: waitfor ADDR")
	}
	deadline := time.Now().Add(10 * time.Second)
	for time.Now().Before(deadline) {
		conn, err := net.DialTimeout("tcp", args[0], time.Second)
		if err == nil {
			conn.Close() //nolint:errcheck
			return
		}
		time.Sleep(50 * time.Millisecond)
	}
	ts.Fatalf("%s is not listening", args[0])
}

// cmdHTTPGet writes the body of a GET request to stdout. It fails on error
// statuses.
func cmdHTTPGet(ts *testscript.TestScript, neg bool, args []string) {
	if len(args) != 1 {
		ts.Fatalf("usage: httpget URL")
	}
	res, err := http.Get(args[0]) //nolint:gosec,noctx
	ts.Check(err)
	defer res.Body.Close() //nolint:errcheck

	_, err = io.Copy(ts.Stdout(), res.Body)
	ts.Check(err)

	failed := res.StatusCode >= http.StatusBadRequest
	switch {
	case failed && !neg:
		ts.Fatalf("unexpected status %s", res.Status)
	case !failed && neg:
		ts.Fatalf("unexpected success %s", res.Status)
	}
}

// cmdStopServer stops the server started with SOFT_ORGS_TESTRUN.
func cmdStopServer(ts *testscript.TestScript, neg bool, args []string) {
	if neg || len(args) != 0 {
		ts.Fatalf("usage: stopserver")
	}
	req, err := http.NewRequest(http.MethodHead, "http://"+ts.Getenv("STATS_ADDR")+"/__stop", nil) //nolint:noctx
	ts.Check(err)
	res, err := http.DefaultClient.Do(req)
	ts.Check(err)
	res.Body.Close() //nolint:errcheck
}
