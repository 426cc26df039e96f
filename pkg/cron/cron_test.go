package cron

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/matryer/is"
)

func TestCronLogger(t *testing.T) {
	is := is.New(t)
	var buf bytes.Buffer
	logger := log.New(&buf)
	logger.SetLevel(log.DebugLevel)
	clogger := cronLogger{logger}
	clogger.Info("foo")
	clogger.Error(errors.New("bar"), "test")
	is.Equal(buf.String(), "DEBU foo\nERRO test err=bar\n")
}

func TestSchedulerAddRemove(t *testing.T) {
	is := is.New(t)
	s := NewScheduler(context.TODO())
	id, err := s.AddFunc("noop", "* * * * *", func(context.Context) error { return nil })
	is.NoErr(err)
	is.Equal(len(s.Entries()), 1)
	s.Remove(id)
	is.Equal(len(s.Entries()), 0)

	_, err = s.AddFunc("bad", "every now and then", func(context.Context) error { return nil })
	is.True(err != nil)
}

func TestSchedulerJobLogs(t *testing.T) {
	is := is.New(t)
	var buf bytes.Buffer
	logger := log.New(&buf)
	logger.SetLevel(log.DebugLevel)
	ctx := log.WithContext(context.TODO(), logger)

	s := NewScheduler(ctx)
	var got context.Context
	s.wrap("refresh", func(ctx context.Context) error {
		got = ctx
		return errors.New("boom")
	})()
	is.Equal(got, ctx)
	is.True(strings.Contains(buf.String(), "job failed"))
	is.True(strings.Contains(buf.String(), "job=refresh"))

	buf.Reset()
	s.wrap("refresh", func(context.Context) error { return nil })()
	is.True(strings.Contains(buf.String(), "job done"))
}
